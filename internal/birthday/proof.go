package birthday

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"moa/internal/domain"
	"moa/internal/notify"
)

const (
	maxProofImages  = 5
	maxProofMessage = 500
)

// proofImagePattern accepts an http(s) URL or a scheme-less path. The path
// excludes ':' so no other scheme can slip through.
var proofImagePattern = regexp.MustCompile(`(?i)^(https?://[^\s/?#]+/)?[^\s?#:]*[^\s?#:/]\.(jpe?g|png|gif|webp)([?#]\S*)?$`)

// ProofRequest is the owner's purchase-proof submission.
type ProofRequest struct {
	UserID  string
	EventID string
	Images  []string
	Message string
}

// ProofResult is the stored proof and who was told about it.
type ProofResult struct {
	Proof      domain.PurchaseProof
	Recipients []domain.Recipient
}

// RegisterProof records the single purchase proof of a completed event and
// notifies every participant other than the owner.
func (s *Service) RegisterProof(ctx context.Context, req ProofRequest) (res *ProofResult, err error) {
	ctx, span := s.startSpan(ctx, "birthday.register_proof",
		attribute.String("event.id", req.EventID),
		attribute.Int("proof.images", len(req.Images)),
	)
	defer func() { endSpan(span, err) }()

	ev, err := s.loadEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if ev.Status != domain.EventStatusCompleted {
		return nil, domain.Invalid(reasonNotCompleted)
	}
	if req.UserID != ev.OwnerID {
		return nil, domain.Forbidden(reasonNotOwner)
	}
	if _, err := s.proofs.GetProofByEvent(ctx, ev.ID); err == nil {
		return nil, domain.Conflict(reasonProofExists)
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("check proof: %w", err)
	}
	images, message, err := validateProof(req.Images, req.Message)
	if err != nil {
		return nil, err
	}

	proof := domain.PurchaseProof{
		ID:        uuid.NewString(),
		EventID:   ev.ID,
		Images:    images,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.proofs.CreateProof(ctx, &proof); err != nil {
		if errors.Is(err, domain.ErrDuplicateProof) {
			return nil, domain.Conflict(reasonProofExists)
		}
		return nil, fmt.Errorf("store proof: %w", err)
	}
	s.logger.Info().Str("event_id", ev.ID).Str("proof_id", proof.ID).Msg("birthday: purchase proof registered")

	recipients, err := s.proofRecipients(ctx, *ev)
	if err != nil {
		s.logger.Warn().Err(err).Str("event_id", ev.ID).Msg("birthday: participant lookup failed, proof not broadcast")
		return &ProofResult{Proof: proof}, nil
	}
	ids := make([]string, len(recipients))
	for i, r := range recipients {
		ids[i] = r.ID
	}
	ownerName := s.userNames(ctx, []string{ev.OwnerID})[ev.OwnerID]
	s.dispatch(ctx, notify.Intents(ids, purchaseProofPosted(ownerName, proof.Message)))

	return &ProofResult{Proof: proof, Recipients: recipients}, nil
}

// GetProof returns the proof of eventID.
func (s *Service) GetProof(ctx context.Context, eventID string) (*domain.PurchaseProof, error) {
	proof, err := s.proofs.GetProofByEvent(ctx, eventID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NotFound("purchase proof not found")
		}
		return nil, fmt.Errorf("load proof: %w", err)
	}
	return proof, nil
}

func (s *Service) proofRecipients(ctx context.Context, ev domain.Event) ([]domain.Recipient, error) {
	participants, err := s.events.ListParticipations(ctx, ev.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		if p.UserID != ev.OwnerID {
			ids = append(ids, p.UserID)
		}
	}
	names := s.userNames(ctx, ids)
	out := make([]domain.Recipient, len(ids))
	for i, id := range ids {
		out[i] = domain.Recipient{ID: id, Name: names[id]}
	}
	return out, nil
}

// validateProof checks images and message and returns their trimmed forms.
func validateProof(images []string, message string) ([]string, string, error) {
	if len(images) < 1 || len(images) > maxProofImages {
		return nil, "", domain.Invalid(reasonImageCount)
	}
	cleaned := make([]string, len(images))
	for i, img := range images {
		img = strings.TrimSpace(img)
		if !proofImagePattern.MatchString(img) {
			return nil, "", domain.Invalid(reasonImageFormat)
		}
		cleaned[i] = img
	}
	trimmed := strings.TrimSpace(message)
	if n := utf8.RuneCountInString(trimmed); n < 1 || n > maxProofMessage {
		return nil, "", domain.Invalid(reasonMessageLength)
	}
	return cleaned, trimmed, nil
}
