package birthday

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"moa/internal/domain"
	"moa/internal/metrics"
	"moa/internal/notify"
)

// ForceComplete moves an active event to completed and notifies the owner
// and every participant. It returns nil without side effects when the event
// is not active, including when a concurrent caller won the transition.
func (s *Service) ForceComplete(ctx context.Context, eventID string) (ev *domain.Event, err error) {
	ctx, span := s.startSpan(ctx, "birthday.force_complete", attribute.String("event.id", eventID))
	defer func() { endSpan(span, err) }()

	current, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.EventStatusActive {
		return nil, nil
	}
	completed, err := s.events.TransitionStatus(ctx, eventID, domain.EventStatusActive, domain.EventStatusCompleted, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return nil, nil
		}
		return nil, fmt.Errorf("complete event: %w", err)
	}
	metrics.EventTransitionsTotal.WithLabelValues(string(domain.EventStatusCompleted)).Inc()
	s.logger.Info().
		Str("event_id", completed.ID).
		Int64("pooled_amount", completed.PooledAmount).
		Msg("birthday: event completed")

	s.announceCompleted(ctx, *completed)
	return completed, nil
}

// ForceCompleteAs completes eventID on behalf of actorID, who must own it.
func (s *Service) ForceCompleteAs(ctx context.Context, actorID, eventID string) (*domain.Event, error) {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.OwnerID != actorID {
		return nil, domain.Forbidden(reasonNotOwner)
	}
	return s.ForceComplete(ctx, eventID)
}

// ForceCompleteForOwner completes the owner's active event, if any.
func (s *Service) ForceCompleteForOwner(ctx context.Context, ownerID string) (*domain.Event, error) {
	ev, err := s.events.FindActiveEventByOwner(ctx, ownerID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active event: %w", err)
	}
	return s.ForceComplete(ctx, ev.ID)
}

func (s *Service) announceCompleted(ctx context.Context, ev domain.Event) {
	intents := []domain.NotificationIntent{{RecipientID: ev.OwnerID, Notification: moaCompleted(ev)}}

	participants, err := s.events.ListParticipations(ctx, ev.ID)
	if err != nil {
		s.logger.Warn().Err(err).Str("event_id", ev.ID).Msg("birthday: participant lookup failed, notifying owner only")
		s.dispatch(ctx, intents)
		return
	}
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		if p.UserID != ev.OwnerID {
			ids = append(ids, p.UserID)
		}
	}
	ownerName := s.userNames(ctx, []string{ev.OwnerID})[ev.OwnerID]
	intents = append(intents, notify.Intents(ids, eventCompleted(ownerName))...)
	s.dispatch(ctx, intents)
}

// CloseExpired performs the deadline sweep: every active event whose
// deadline has passed becomes closed. No notifications are sent.
func (s *Service) CloseExpired(ctx context.Context) (closed []domain.Event, err error) {
	ctx, span := s.startSpan(ctx, "birthday.close_expired")
	defer func() {
		span.SetAttributes(attribute.Int("events.closed", len(closed)))
		endSpan(span, err)
	}()

	closed, err = s.events.CloseExpiredEvents(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("close expired events: %w", err)
	}
	for _, ev := range closed {
		metrics.EventTransitionsTotal.WithLabelValues(string(domain.EventStatusClosed)).Inc()
		s.logger.Info().
			Str("event_id", ev.ID).
			Str("owner_id", ev.OwnerID).
			Int64("pooled_amount", ev.PooledAmount).
			Msg("birthday: event closed at deadline")
	}
	return closed, nil
}

// Cancel moves an active event to cancelled. No notifications are sent.
func (s *Service) Cancel(ctx context.Context, eventID string) (ev *domain.Event, err error) {
	ctx, span := s.startSpan(ctx, "birthday.cancel", attribute.String("event.id", eventID))
	defer func() { endSpan(span, err) }()

	current, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.EventStatusActive {
		return nil, domain.Invalid(reasonCancelNotActive)
	}
	cancelled, err := s.events.TransitionStatus(ctx, eventID, domain.EventStatusActive, domain.EventStatusCancelled, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return nil, domain.Invalid(reasonCancelNotActive)
		}
		return nil, fmt.Errorf("cancel event: %w", err)
	}
	metrics.EventTransitionsTotal.WithLabelValues(string(domain.EventStatusCancelled)).Inc()
	s.logger.Info().Str("event_id", eventID).Msg("birthday: event cancelled")
	return cancelled, nil
}
