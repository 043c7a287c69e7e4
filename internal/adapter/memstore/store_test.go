package memstore

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"moa/internal/domain"
)

var now = time.Date(2026, time.March, 12, 12, 0, 0, 0, time.UTC)

func TestCreateActiveEventSingleActivePerOwner(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := &domain.Event{OwnerID: "o", Deadline: now.Add(time.Hour)}
	if err := s.CreateActiveEvent(ctx, first, now); err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == "" || first.Status != domain.EventStatusActive {
		t.Fatalf("event not initialised: %+v", first)
	}

	second := &domain.Event{OwnerID: "o", Deadline: now.Add(2 * time.Hour)}
	if err := s.CreateActiveEvent(ctx, second, now); !errors.Is(err, domain.ErrActiveEventExists) {
		t.Fatalf("second create err = %v, want ErrActiveEventExists", err)
	}

	later := now.Add(2 * time.Hour)
	third := &domain.Event{OwnerID: "o", Deadline: later.Add(time.Hour)}
	if err := s.CreateActiveEvent(ctx, third, later); err != nil {
		t.Fatalf("create after expiry: %v", err)
	}
	old, _ := s.GetEvent(ctx, first.ID)
	if old.Status != domain.EventStatusClosed {
		t.Fatalf("stale event status = %s, want closed", old.Status)
	}
}

func TestCreateActiveEventRejectsSameDeadlineInAnyStatus(t *testing.T) {
	ctx := context.Background()
	dl := now.Add(48 * time.Hour)
	for _, status := range []domain.EventStatus{domain.EventStatusCompleted, domain.EventStatusCancelled, domain.EventStatusClosed} {
		s := New()
		s.PutEvent(domain.Event{ID: "stale", OwnerID: "o", Status: domain.EventStatusActive, Deadline: now.Add(-time.Hour)})
		s.PutEvent(domain.Event{ID: "done", OwnerID: "o", Status: status, Deadline: dl})

		err := s.CreateActiveEvent(ctx, &domain.Event{OwnerID: "o", Deadline: dl}, now)
		if !errors.Is(err, domain.ErrEventAlreadyOpened) {
			t.Fatalf("%s: err = %v, want ErrEventAlreadyOpened", status, err)
		}
		stale, _ := s.GetEvent(ctx, "stale")
		if stale.Status != domain.EventStatusActive {
			t.Fatalf("%s: rejected create closed the stale event", status)
		}
	}
}

func TestJoinRejectsPoolOverflow(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.PutEvent(domain.Event{ID: "E", OwnerID: "o", Status: domain.EventStatusActive, Deadline: now.Add(time.Hour)})

	if _, err := s.Join(ctx, &domain.Participation{EventID: "E", UserID: "a", Type: domain.ParticipationWithMoney, Amount: math.MaxInt64 - 10}, now); err != nil {
		t.Fatalf("first join: %v", err)
	}
	_, err := s.Join(ctx, &domain.Participation{EventID: "E", UserID: "b", Type: domain.ParticipationWithMoney, Amount: 11}, now)
	if !errors.Is(err, domain.ErrPoolOverflow) {
		t.Fatalf("second join err = %v, want ErrPoolOverflow", err)
	}
	ev, _ := s.GetEvent(ctx, "E")
	if ev.PooledAmount != math.MaxInt64-10 {
		t.Fatalf("pooled amount = %d", ev.PooledAmount)
	}
	if n, _ := s.CountParticipations(ctx, "E"); n != 1 {
		t.Fatalf("participations = %d, want 1", n)
	}
}

func TestJoinUpdatesAggregate(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.PutEvent(domain.Event{ID: "E", OwnerID: "o", Status: domain.EventStatusActive, Deadline: now.Add(time.Hour)})

	agg, err := s.Join(ctx, &domain.Participation{EventID: "E", UserID: "a", Type: domain.ParticipationWithMoney, Amount: 300}, now)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if agg.PooledAmount != 300 || agg.ParticipantCount != 1 {
		t.Fatalf("aggregate = %+v", agg)
	}
	agg, err = s.Join(ctx, &domain.Participation{EventID: "E", UserID: "b", Type: domain.ParticipationWithoutMoney}, now)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if agg.PooledAmount != 300 || agg.ParticipantCount != 2 {
		t.Fatalf("aggregate = %+v", agg)
	}

	if _, err := s.Join(ctx, &domain.Participation{EventID: "E", UserID: "a", Type: domain.ParticipationWithMoney, Amount: 1}, now); !errors.Is(err, domain.ErrDuplicateParticipation) {
		t.Fatalf("duplicate err = %v", err)
	}
	if _, err := s.Join(ctx, &domain.Participation{EventID: "E", UserID: "c", Type: domain.ParticipationWithoutMoney}, now.Add(2*time.Hour)); !errors.Is(err, domain.ErrEventNotActive) {
		t.Fatalf("expired err = %v", err)
	}

	list, _ := s.ListParticipations(ctx, "E")
	if len(list) != 2 || list[0].UserID != "a" || list[1].UserID != "b" {
		t.Fatalf("ledger order = %+v", list)
	}
}

func TestTransitionStatusCompareAndSet(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.PutEvent(domain.Event{ID: "E", OwnerID: "o", Status: domain.EventStatusActive, Deadline: now})

	if _, err := s.TransitionStatus(ctx, "E", domain.EventStatusActive, domain.EventStatusCompleted, now); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if _, err := s.TransitionStatus(ctx, "E", domain.EventStatusActive, domain.EventStatusClosed, now); !errors.Is(err, domain.ErrStatusConflict) {
		t.Fatalf("second transition err = %v", err)
	}
	if _, err := s.TransitionStatus(ctx, "nope", domain.EventStatusActive, domain.EventStatusClosed, now); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing err = %v", err)
	}
}

func TestCreateProofOncePerEvent(t *testing.T) {
	s := New()
	ctx := context.Background()
	images := []string{"a.jpg"}
	if err := s.CreateProof(ctx, &domain.PurchaseProof{EventID: "E", Images: images, Message: "m"}); err != nil {
		t.Fatalf("create proof: %v", err)
	}
	images[0] = "mutated.jpg"
	if err := s.CreateProof(ctx, &domain.PurchaseProof{EventID: "E", Images: []string{"b.jpg"}, Message: "m"}); !errors.Is(err, domain.ErrDuplicateProof) {
		t.Fatalf("duplicate proof err = %v", err)
	}
	got, _ := s.GetProofByEvent(ctx, "E")
	if got.Images[0] != "a.jpg" {
		t.Fatalf("stored images aliased caller slice: %v", got.Images)
	}
}

func TestFollowersOfSorted(t *testing.T) {
	s := New()
	s.Follow("z", "o")
	s.Follow("a", "o")
	s.Follow("m", "other")

	got, _ := s.FollowersOf(context.Background(), "o")
	if len(got) != 2 || got[0] != "a" || got[1] != "z" {
		t.Fatalf("followers = %v", got)
	}
	ok, _ := s.IsFollowing(context.Background(), "m", "o")
	if ok {
		t.Fatal("m should not follow o")
	}
}
