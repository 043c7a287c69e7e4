package birthday

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"moa/internal/adapter/memstore"
	"moa/internal/domain"
	"moa/internal/notify"
	"moa/internal/notify/notifytest"
)

var kst = time.FixedZone("KST", 9*60*60)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fixture struct {
	store *memstore.Store
	sink  *notifytest.Recorder
	clock *fixedClock
	svc   *Service
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	store := memstore.New()
	return newFixtureWith(t, now, store, store)
}

func newFixtureWith(t *testing.T, now time.Time, store *memstore.Store, events domain.EventRepository) *fixture {
	t.Helper()
	sink := &notifytest.Recorder{}
	clock := &fixedClock{now: now}
	svc := NewService(Deps{
		Events:   events,
		Proofs:   store,
		Tokens:   store,
		Users:    store,
		Graph:    store,
		Letters:  store,
		Notifier: notify.NewInline(sink, zerolog.Nop()),
		Clock:    clock,
		Logger:   zerolog.Nop(),
	}, Options{Location: kst})
	return &fixture{store: store, sink: sink, clock: clock, svc: svc}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// seedActiveEvent stores an active event for owner with the given deadline
// and registers followers of the owner.
func (f *fixture) seedActiveEvent(id, owner string, deadline time.Time, followers ...string) domain.Event {
	f.store.PutUser(domain.User{ID: owner, Name: "Owner " + owner})
	for _, follower := range followers {
		f.store.PutUser(domain.User{ID: follower, Name: "Friend " + follower})
		f.store.Follow(follower, owner)
	}
	ev := domain.Event{
		ID:       id,
		OwnerID:  owner,
		Title:    "birthday",
		Deadline: deadline,
		Status:   domain.EventStatusActive,
	}
	f.store.PutEvent(ev)
	return ev
}
