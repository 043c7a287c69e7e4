package birthday

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"moa/internal/domain"
	"moa/internal/metrics"
)

// JoinRequest is a user's request to join an event.
type JoinRequest struct {
	UserID  string
	EventID string
	Type    domain.ParticipationType
	Amount  int64
}

// JoinResult is the recorded participation and the event totals after it.
type JoinResult struct {
	Participation domain.Participation
	Event         domain.EventAggregate
}

// Join validates and records a participation. Checks run in a fixed order
// and each failure has its own reason. The participation insert and the
// pool increment are a single repository transaction; the owner is told
// afterwards, best-effort.
func (s *Service) Join(ctx context.Context, req JoinRequest) (res *JoinResult, err error) {
	ctx, span := s.startSpan(ctx, "birthday.join",
		attribute.String("event.id", req.EventID),
		attribute.String("participation.type", string(req.Type)),
	)
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = domain.KindOf(err)
		}
		metrics.JoinsTotal.WithLabelValues(string(req.Type), outcome).Inc()
		endSpan(span, err)
	}()

	ev, err := s.loadEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if req.UserID == ev.OwnerID {
		return nil, domain.Invalid(reasonOwnJoin)
	}
	following, err := s.graph.IsFollowing(ctx, req.UserID, ev.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("check follow: %w", err)
	}
	if !following {
		return nil, domain.Forbidden(reasonNotFollowing)
	}
	now := s.now()
	if !ev.Joinable(now) {
		return nil, domain.Invalid(reasonEventClosed)
	}
	if _, err := s.events.GetParticipation(ctx, ev.ID, req.UserID); err == nil {
		return nil, domain.Invalid(reasonAlreadyJoined)
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("check participation: %w", err)
	}
	if err := validateAmount(req.Type, req.Amount); err != nil {
		return nil, err
	}

	p := domain.Participation{
		EventID: ev.ID,
		UserID:  req.UserID,
		Amount:  req.Amount,
		Type:    req.Type,
	}
	agg, err := s.events.Join(ctx, &p, now)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateParticipation):
			return nil, domain.Invalid(reasonAlreadyJoined)
		case errors.Is(err, domain.ErrEventNotActive):
			return nil, domain.Invalid(reasonEventClosed)
		case errors.Is(err, domain.ErrPoolOverflow):
			return nil, domain.Invalid(reasonPoolOverflow)
		case isNotFound(err):
			return nil, domain.NotFound(reasonEventNotFound)
		default:
			return nil, fmt.Errorf("record participation: %w", err)
		}
	}
	if p.Type == domain.ParticipationWithMoney {
		metrics.PooledAmountTotal.Add(float64(p.Amount))
	}
	s.logger.Info().
		Str("event_id", ev.ID).
		Str("user_id", req.UserID).
		Str("type", string(p.Type)).
		Int64("amount", p.Amount).
		Int64("pooled_amount", agg.PooledAmount).
		Msg("birthday: participation recorded")

	names := s.userNames(ctx, []string{req.UserID})
	s.dispatch(ctx, []domain.NotificationIntent{{
		RecipientID:  ev.OwnerID,
		Notification: participationReceived(names[req.UserID], p),
	}})

	return &JoinResult{Participation: p, Event: *agg}, nil
}

func validateAmount(t domain.ParticipationType, amount int64) error {
	switch t {
	case domain.ParticipationWithMoney:
		if amount < 1 {
			return domain.Invalid(reasonAmountTooSmall)
		}
	case domain.ParticipationWithoutMoney:
		if amount != 0 {
			return domain.Invalid(reasonAmountNotZero)
		}
	default:
		return domain.Invalid(reasonInvalidType)
	}
	return nil
}

// ParticipationInfo is everything a viewer needs to render an event.
type ParticipationInfo struct {
	Event            domain.Event
	ParticipantCount int
	Countdown        Countdown
	Participation    *domain.Participation
	HasWrittenLetter bool
	Action           ActionDescriptor
}

// GetParticipationInfo loads the event as seen by userID.
func (s *Service) GetParticipationInfo(ctx context.Context, userID, eventID string) (info *ParticipationInfo, err error) {
	ctx, span := s.startSpan(ctx, "birthday.participation_info", attribute.String("event.id", eventID))
	defer func() { endSpan(span, err) }()

	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	count, err := s.events.CountParticipations(ctx, ev.ID)
	if err != nil {
		return nil, fmt.Errorf("count participations: %w", err)
	}

	var joined *domain.Participation
	p, err := s.events.GetParticipation(ctx, ev.ID, userID)
	switch {
	case err == nil:
		joined = p
	case isNotFound(err):
	default:
		return nil, fmt.Errorf("load participation: %w", err)
	}

	wrote := false
	if joined != nil && s.letters != nil {
		wrote, err = s.letters.HasWrittenLetter(ctx, userID, ev.ID)
		if err != nil {
			return nil, fmt.Errorf("check letter: %w", err)
		}
	}

	now := s.now()
	return &ParticipationInfo{
		Event:            *ev,
		ParticipantCount: count,
		Countdown:        CountdownTo(ev.Deadline, now, s.opts.Location),
		Participation:    joined,
		HasWrittenLetter: wrote,
		Action:           ProjectStatus(*ev, joined != nil, wrote, now),
	}, nil
}
