package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"moa/internal/domain"
	"moa/internal/infra"
	"moa/internal/sqlinline"
)

const (
	constraintOneActivePerOwner = "events_one_active_per_owner"
	constraintOwnerDeadline     = "events_owner_deadline_key"
	constraintParticipationKey  = "participations_event_user_key"
)

// EventRepositoryPG implements domain.EventRepository backed by PostgreSQL.
type EventRepositoryPG struct {
	db infra.TxExecutor
}

// NewEventRepository creates a new EventRepositoryPG.
func NewEventRepository(db infra.TxExecutor) *EventRepositoryPG {
	return &EventRepositoryPG{db: db}
}

// CreateActiveEvent closes the owner's stale active event, if any, and
// inserts ev in the same transaction. The partial unique index on active
// events turns a concurrent create into domain.ErrActiveEventExists, and the
// (owner, deadline) index turns a reopen of a finished cycle into
// domain.ErrEventAlreadyOpened.
func (r *EventRepositoryPG) CreateActiveEvent(ctx context.Context, ev *domain.Event, now time.Time) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	err := r.db.InTx(ctx, func(tx infra.SQLExecutor) error {
		if _, err := tx.Exec(ctx, sqlinline.QCloseStaleActiveEvent, ev.OwnerID, now); err != nil {
			return fmt.Errorf("close stale event: %w", err)
		}
		if _, err := tx.Exec(ctx, sqlinline.QInsertActiveEvent, ev.ID, ev.OwnerID, ev.Title, ev.Deadline, now); err != nil {
			if c, ok := infra.UniqueViolation(err); ok {
				switch c {
				case constraintOneActivePerOwner:
					return domain.ErrActiveEventExists
				case constraintOwnerDeadline:
					return domain.ErrEventAlreadyOpened
				}
			}
			return fmt.Errorf("insert event: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	ev.Status = domain.EventStatusActive
	ev.PooledAmount = 0
	ev.CreatedAt = now
	ev.UpdatedAt = now
	return nil
}

func (r *EventRepositoryPG) HasActiveEvent(ctx context.Context, ownerID string, now time.Time) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, sqlinline.QHasActiveEvent, ownerID, now).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *EventRepositoryPG) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	return scanEvent(r.db.QueryRow(ctx, sqlinline.QGetEvent, eventID))
}

func (r *EventRepositoryPG) FindActiveEventByOwner(ctx context.Context, ownerID string) (*domain.Event, error) {
	return scanEvent(r.db.QueryRow(ctx, sqlinline.QFindActiveEventByOwner, ownerID))
}

// TransitionStatus is a compare-and-set on the status column.
func (r *EventRepositoryPG) TransitionStatus(ctx context.Context, eventID string, from, to domain.EventStatus, now time.Time) (*domain.Event, error) {
	ev, err := scanEvent(r.db.QueryRow(ctx, sqlinline.QTransitionEventStatus, eventID, string(from), string(to), now))
	if err == nil {
		return ev, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := r.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return nil, domain.ErrStatusConflict
}

func (r *EventRepositoryPG) CloseExpiredEvents(ctx context.Context, now time.Time) ([]domain.Event, error) {
	rows, err := r.db.Query(ctx, sqlinline.QCloseExpiredEvents, now)
	if err != nil {
		return nil, err
	}
	closed, err := collect(rows, scanEvent)
	if err != nil {
		return nil, err
	}
	sort.Slice(closed, func(i, j int) bool { return closed[i].Deadline.Before(closed[j].Deadline) })
	return closed, nil
}

// Join locks the event row, re-checks it is joinable, inserts the
// participation and bumps the pool, all in one transaction.
func (r *EventRepositoryPG) Join(ctx context.Context, p *domain.Participation, now time.Time) (*domain.EventAggregate, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	var agg domain.EventAggregate
	err := r.db.InTx(ctx, func(tx infra.SQLExecutor) error {
		ev, err := scanEvent(tx.QueryRow(ctx, sqlinline.QGetEventForUpdate, p.EventID))
		if err != nil {
			return err
		}
		if !ev.Joinable(now) {
			return domain.ErrEventNotActive
		}
		if p.Type == domain.ParticipationWithMoney && !domain.PoolFits(ev.PooledAmount, p.Amount) {
			return domain.ErrPoolOverflow
		}
		if _, err := tx.Exec(ctx, sqlinline.QInsertParticipation, p.ID, p.EventID, p.UserID, p.Amount, string(p.Type), now); err != nil {
			if c, ok := infra.UniqueViolation(err); ok && c == constraintParticipationKey {
				return domain.ErrDuplicateParticipation
			}
			return fmt.Errorf("insert participation: %w", err)
		}
		agg.EventID = ev.ID
		agg.PooledAmount = ev.PooledAmount
		if p.Type == domain.ParticipationWithMoney {
			if err := tx.QueryRow(ctx, sqlinline.QIncrementPooledAmount, ev.ID, p.Amount, now).Scan(&agg.PooledAmount); err != nil {
				return fmt.Errorf("increment pool: %w", err)
			}
		}
		if err := tx.QueryRow(ctx, sqlinline.QCountParticipations, ev.ID).Scan(&agg.ParticipantCount); err != nil {
			return fmt.Errorf("count participations: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.ParticipatedAt = now
	return &agg, nil
}

func (r *EventRepositoryPG) GetParticipation(ctx context.Context, eventID, userID string) (*domain.Participation, error) {
	return scanParticipation(r.db.QueryRow(ctx, sqlinline.QGetParticipation, eventID, userID))
}

func (r *EventRepositoryPG) ListParticipations(ctx context.Context, eventID string) ([]domain.Participation, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListParticipations, eventID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanParticipation)
}

func (r *EventRepositoryPG) CountParticipations(ctx context.Context, eventID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, sqlinline.QCountParticipations, eventID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

var _ domain.EventRepository = (*EventRepositoryPG)(nil)
