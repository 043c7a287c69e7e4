package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"moa/internal/domain"
	"moa/internal/sqlinline"
)

func TestCreateProofMapsDuplicate(t *testing.T) {
	db := newStubDB()
	db.execs[sqlinline.QInsertPurchaseProof] = func([]any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, &pgconn.PgError{Code: "23505", ConstraintName: constraintProofPerEvent}
	}
	err := NewProofRepository(db).CreateProof(context.Background(), &domain.PurchaseProof{EventID: "E", Images: []string{"a.jpg"}, Message: "m"})
	if !errors.Is(err, domain.ErrDuplicateProof) {
		t.Fatalf("expected ErrDuplicateProof, got %v", err)
	}
}

func TestGetProofByEvent(t *testing.T) {
	db := newStubDB()
	db.rows[sqlinline.QGetPurchaseProofByEvent] = func([]any) pgx.Row {
		return values("P", "E", []string{"a.jpg", "b.png"}, "thanks", now)
	}
	proof, err := NewProofRepository(db).GetProofByEvent(context.Background(), "E")
	if err != nil {
		t.Fatalf("GetProofByEvent returned error: %v", err)
	}
	if len(proof.Images) != 2 || proof.Message != "thanks" {
		t.Fatalf("unexpected proof: %+v", proof)
	}

	db.rows[sqlinline.QGetPurchaseProofByEvent] = func([]any) pgx.Row { return noRows() }
	if _, err := NewProofRepository(db).GetProofByEvent(context.Background(), "E"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPurgeShareTokensReturnsRowsAffected(t *testing.T) {
	db := newStubDB()
	db.execs[sqlinline.QPurgeShareTokens] = okTag("DELETE 3")
	n, err := NewShareTokenRepository(db).PurgeShareTokens(context.Background(), now)
	if err != nil || n != 3 {
		t.Fatalf("PurgeShareTokens = (%d, %v), want 3", n, err)
	}
}

func TestGetShareTokenMissing(t *testing.T) {
	db := newStubDB()
	db.rows[sqlinline.QGetShareToken] = func([]any) pgx.Row { return noRows() }
	if _, err := NewShareTokenRepository(db).GetShareToken(context.Background(), "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDirectoryFollowersAndUsers(t *testing.T) {
	db := newStubDB()
	db.queries[sqlinline.QFollowersOf] = func([]any) (pgx.Rows, error) {
		return &stubRows{data: [][]any{{"a"}, {"b"}}}, nil
	}
	bday := now
	db.queries[sqlinline.QFindUsersByIDs] = func(args []any) (pgx.Rows, error) {
		ids, _ := args[0].([]string)
		if len(ids) != 1 || ids[0] != "u1" {
			t.Errorf("unexpected ids: %#v", args[0])
		}
		return &stubRows{data: [][]any{{"u1", "Kim", &bday}}}, nil
	}
	dir := NewDirectory(db)

	followers, err := dir.FollowersOf(context.Background(), "owner")
	if err != nil || len(followers) != 2 || followers[1] != "b" {
		t.Fatalf("FollowersOf = (%v, %v)", followers, err)
	}
	users, err := dir.FindUsersByIDs(context.Background(), []string{"u1"})
	if err != nil || len(users) != 1 || users[0].Name != "Kim" || users[0].Birthday == nil {
		t.Fatalf("FindUsersByIDs = (%+v, %v)", users, err)
	}
	if users, err := dir.FindUsersByIDs(context.Background(), nil); err != nil || users != nil {
		t.Fatalf("empty lookup = (%v, %v)", users, err)
	}
}

func TestNotificationOutboxSend(t *testing.T) {
	db := newStubDB()
	var got []any
	db.execs[sqlinline.QInsertNotification] = func(args []any) (pgconn.CommandTag, error) {
		got = args
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	n := domain.Notification{Type: domain.NotificationMoaCompleted, Title: "done", Message: "pooled"}
	if err := NewNotificationOutbox(db).Send(context.Background(), "owner", n); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if len(got) != 5 || got[1] != "owner" || got[2] != string(domain.NotificationMoaCompleted) {
		t.Fatalf("unexpected outbox args: %#v", got)
	}
}
