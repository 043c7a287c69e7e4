package notify

import (
	"context"

	"github.com/rs/zerolog"

	"moa/internal/domain"
)

// LogSink writes intents to the log instead of delivering them.
type LogSink struct {
	Logger zerolog.Logger
}

func (s LogSink) Send(_ context.Context, recipientID string, n domain.Notification) error {
	s.Logger.Info().
		Str("recipient_id", recipientID).
		Str("type", string(n.Type)).
		Str("title", n.Title).
		Msg(n.Message)
	return nil
}
