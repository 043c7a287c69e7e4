package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"moa/internal/domain"
	"moa/internal/notify/notifytest"
)

func TestNotifyManyContinuesPastFailures(t *testing.T) {
	sink := &notifytest.Recorder{Fail: map[string]error{"u2": errors.New("socket closed")}}
	n := domain.Notification{Type: domain.NotificationEventCompleted, Title: "done", Message: "thanks"}

	res := NotifyMany(context.Background(), sink, zerolog.Nop(), []string{"u1", "u2", "u3"}, n)

	if res.Attempted != 3 || res.Sent != 2 || res.Failed != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	sent := sink.Sent()
	if len(sent) != 2 || sent[0].RecipientID != "u1" || sent[1].RecipientID != "u3" {
		t.Fatalf("unexpected deliveries: %+v", sent)
	}
}

func TestIntentsSkipsBlankAndDuplicateRecipients(t *testing.T) {
	intents := Intents([]string{"a", "", "b", "a"}, domain.Notification{Type: domain.NotificationPurchaseProof})
	if len(intents) != 2 {
		t.Fatalf("expected 2 intents, got %d", len(intents))
	}
	if intents[0].RecipientID != "a" || intents[1].RecipientID != "b" {
		t.Fatalf("unexpected order: %+v", intents)
	}
}

func TestAsyncDrainsOnStop(t *testing.T) {
	sink := &notifytest.Recorder{}
	d := NewAsync(sink, zerolog.Nop(), 3, 16)
	d.Start(context.Background())

	d.Dispatch(context.Background(), Intents([]string{"a", "b", "c", "d"}, domain.Notification{Type: domain.NotificationBirthdayReminder}))
	d.Stop()

	if got := len(sink.Sent()); got != 4 {
		t.Fatalf("expected 4 deliveries after stop, got %d", got)
	}
}

func TestAsyncDropsAfterStop(t *testing.T) {
	sink := &notifytest.Recorder{}
	d := NewAsync(sink, zerolog.Nop(), 1, 4)
	d.Start(context.Background())
	d.Stop()
	d.Stop()

	d.Dispatch(context.Background(), Intents([]string{"late"}, domain.Notification{Type: domain.NotificationBirthdayReminder}))
	if got := sink.Attempts(); got != 0 {
		t.Fatalf("expected no delivery after stop, got %d", got)
	}
}

func TestAsyncDropsWhenQueueFull(t *testing.T) {
	sink := &notifytest.Recorder{}
	d := NewAsync(sink, zerolog.Nop(), 1, 2)

	// Workers not started: only the queue capacity is accepted.
	d.Dispatch(context.Background(), Intents([]string{"a", "b", "c"}, domain.Notification{Type: domain.NotificationBirthdayReminder}))
	if got := d.Pending(); got != 2 {
		t.Fatalf("expected 2 pending, got %d", got)
	}
	d.Start(context.Background())
	d.Stop()
	if got := len(sink.Sent()); got != 2 {
		t.Fatalf("expected 2 deliveries, got %d", got)
	}
}

func TestInlineDeliversWithCancelledContext(t *testing.T) {
	sink := &notifytest.Recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	NewInline(sink, zerolog.Nop()).Dispatch(ctx, Intents([]string{"a"}, domain.Notification{Type: domain.NotificationMoaCompleted}))
	if got := len(sink.Sent()); got != 1 {
		t.Fatalf("expected 1 delivery, got %d", got)
	}
}
