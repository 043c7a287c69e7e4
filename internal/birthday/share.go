package birthday

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"moa/internal/domain"
)

const shareTokenBytes = 24

// EventSummary is the public view of an event behind a share link.
type EventSummary struct {
	Event            domain.Event
	OwnerName        string
	ParticipantCount int
	Countdown        Countdown
}

// CreateShareToken issues a share link for an active event. A zero
// expiresAt uses the configured TTL.
func (s *Service) CreateShareToken(ctx context.Context, eventID string, expiresAt time.Time) (*domain.ShareToken, error) {
	now := s.now()
	if expiresAt.IsZero() {
		expiresAt = now.Add(s.opts.ShareTokenTTL)
	}
	if !expiresAt.After(now) {
		return nil, domain.Invalid(reasonTokenExpiry)
	}
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.Joinable(now) {
		return nil, domain.Invalid(reasonShareClosedEvent)
	}
	value, err := newShareToken()
	if err != nil {
		return nil, fmt.Errorf("generate share token: %w", err)
	}
	token := &domain.ShareToken{
		Token:     value,
		EventID:   ev.ID,
		ExpiresAt: expiresAt,
		IsActive:  true,
		CreatedAt: now,
	}
	if err := s.tokens.CreateShareToken(ctx, token); err != nil {
		return nil, fmt.Errorf("store share token: %w", err)
	}
	return token, nil
}

// ResolveShareToken returns the event behind a usable token.
func (s *Service) ResolveShareToken(ctx context.Context, token string) (*EventSummary, error) {
	t, err := s.tokens.GetShareToken(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NotFound(reasonTokenNotFound)
		}
		return nil, fmt.Errorf("load share token: %w", err)
	}
	now := s.now()
	if !t.Usable(now) {
		return nil, domain.NotFound(reasonTokenNotFound)
	}
	ev, err := s.loadEvent(ctx, t.EventID)
	if err != nil {
		return nil, err
	}
	count, err := s.events.CountParticipations(ctx, ev.ID)
	if err != nil {
		return nil, fmt.Errorf("count participations: %w", err)
	}
	return &EventSummary{
		Event:            *ev,
		OwnerName:        s.userNames(ctx, []string{ev.OwnerID})[ev.OwnerID],
		ParticipantCount: count,
		Countdown:        CountdownTo(ev.Deadline, now, s.opts.Location),
	}, nil
}

// PurgeShareTokens deletes expired and deactivated tokens.
func (s *Service) PurgeShareTokens(ctx context.Context) (int64, error) {
	n, err := s.tokens.PurgeShareTokens(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge share tokens: %w", err)
	}
	if n > 0 {
		s.logger.Info().Int64("purged", n).Msg("birthday: share tokens purged")
	}
	return n, nil
}

func newShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
