package birthday

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moa/internal/domain"
)

var completeNow = time.Date(2026, time.March, 14, 10, 0, 0, 0, kst)

// seedJoinedEvent opens E for owner and has n followers join with money,
// amounts summing to total.
func seedJoinedEvent(t *testing.T, f *fixture, n int, total int64) []string {
	t.Helper()
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%d", i+1)
	}
	f.seedActiveEvent("E", "owner", joinDeadline(), ids...)
	share := total / int64(n)
	for i, id := range ids {
		amount := share
		if i == n-1 {
			amount = total - share*int64(n-1)
		}
		_, err := f.svc.Join(context.Background(), JoinRequest{UserID: id, EventID: "E", Type: domain.ParticipationWithMoney, Amount: amount})
		require.NoError(t, err)
	}
	f.sink.Reset()
	return ids
}

func TestForceCompleteNotifiesOwnerAndParticipants(t *testing.T) {
	f := newFixture(t, completeNow)
	ids := seedJoinedEvent(t, f, 6, 150000)

	ev, err := f.svc.ForceComplete(context.Background(), "E")
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, domain.EventStatusCompleted, ev.Status)
	assert.Equal(t, int64(150000), ev.PooledAmount)

	owner := f.sink.OfType(domain.NotificationMoaCompleted)
	require.Len(t, owner, 1)
	assert.Equal(t, "owner", owner[0].RecipientID)
	assert.Contains(t, owner[0].Message, "150,000")

	friends := f.sink.OfType(domain.NotificationEventCompleted)
	require.Len(t, friends, len(ids))
	got := make([]string, len(friends))
	for i, n := range friends {
		got[i] = n.RecipientID
	}
	assert.ElementsMatch(t, ids, got)

	again, err := f.svc.ForceComplete(context.Background(), "E")
	require.NoError(t, err)
	assert.Nil(t, again)
	assert.Len(t, f.sink.Sent(), 1+len(ids))
}

func TestForceCompleteNonActiveIsNoop(t *testing.T) {
	for _, status := range []domain.EventStatus{domain.EventStatusClosed, domain.EventStatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t, completeNow)
			f.store.PutEvent(domain.Event{ID: "E", OwnerID: "owner", Status: status, Deadline: joinDeadline()})

			ev, err := f.svc.ForceComplete(context.Background(), "E")
			require.NoError(t, err)
			assert.Nil(t, ev)
			assert.Empty(t, f.sink.Sent())

			stored, err := f.store.GetEvent(context.Background(), "E")
			require.NoError(t, err)
			assert.Equal(t, status, stored.Status)
		})
	}
}

func TestForceCompleteMissingEvent(t *testing.T) {
	f := newFixture(t, completeNow)
	_, err := f.svc.ForceComplete(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestForceCompleteAsRequiresOwner(t *testing.T) {
	f := newFixture(t, completeNow)
	seedJoinedEvent(t, f, 2, 2000)

	_, err := f.svc.ForceCompleteAs(context.Background(), "p1", "E")
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.sink.Sent())

	ev, err := f.svc.ForceCompleteAs(context.Background(), "owner", "E")
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, domain.EventStatusCompleted, ev.Status)
}

func TestForceCompleteForOwner(t *testing.T) {
	f := newFixture(t, completeNow)

	ev, err := f.svc.ForceCompleteForOwner(context.Background(), "owner")
	require.NoError(t, err)
	assert.Nil(t, ev)

	seedJoinedEvent(t, f, 1, 500)
	ev, err = f.svc.ForceCompleteForOwner(context.Background(), "owner")
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "E", ev.ID)
}

func TestCloseExpiredIsSilent(t *testing.T) {
	f := newFixture(t, completeNow)
	seedJoinedEvent(t, f, 3, 9000)
	f.store.PutEvent(domain.Event{ID: "later", OwnerID: "other", Status: domain.EventStatusActive, Deadline: joinDeadline().Add(48 * time.Hour)})

	f.clock.Set(joinDeadline().Add(time.Minute))
	closed, err := f.svc.CloseExpired(context.Background())
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, "E", closed[0].ID)
	assert.Equal(t, domain.EventStatusClosed, closed[0].Status)
	assert.Equal(t, int64(9000), closed[0].PooledAmount)
	assert.Empty(t, f.sink.Sent())

	later, err := f.store.GetEvent(context.Background(), "later")
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusActive, later.Status)

	again, err := f.svc.CloseExpired(context.Background())
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestCancel(t *testing.T) {
	f := newFixture(t, completeNow)
	seedJoinedEvent(t, f, 1, 100)

	ev, err := f.svc.Cancel(context.Background(), "E")
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusCancelled, ev.Status)
	assert.Empty(t, f.sink.Sent())

	_, err = f.svc.Cancel(context.Background(), "E")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, reasonCancelNotActive, domain.Reason(err))

	_, err = f.svc.Join(context.Background(), JoinRequest{UserID: "p1", EventID: "E", Type: domain.ParticipationWithoutMoney})
	require.ErrorIs(t, err, domain.ErrValidation)
}
