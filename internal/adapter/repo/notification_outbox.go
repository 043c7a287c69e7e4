package repo

import (
	"context"

	"github.com/google/uuid"

	"moa/internal/domain"
	"moa/internal/infra"
	"moa/internal/sqlinline"
)

// NotificationOutbox is a domain.NotificationSink that appends each
// notification to the notifications table. Delivery to devices is owned by
// the service reading that table.
type NotificationOutbox struct {
	db infra.SQLExecutor
}

func NewNotificationOutbox(db infra.SQLExecutor) *NotificationOutbox {
	return &NotificationOutbox{db: db}
}

func (o *NotificationOutbox) Send(ctx context.Context, recipientID string, n domain.Notification) error {
	_, err := o.db.Exec(ctx, sqlinline.QInsertNotification, uuid.NewString(), recipientID, string(n.Type), n.Title, n.Message)
	return err
}

var _ domain.NotificationSink = (*NotificationOutbox)(nil)
