// Package birthday implements the birthday pool lifecycle: opening events
// ahead of a birthday, the join protocol, the participant-facing status
// projection, completion and closing, and post-completion purchase proofs.
//
// Every operation commits its domain write first and only then hands the
// resulting notification intents to a notify.Dispatcher.
package birthday

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"moa/internal/domain"
	"moa/internal/notify"
)

const (
	DefaultLookaheadDays = 7
	DefaultClosingHour   = 21
	DefaultShareTokenTTL = 72 * time.Hour
)

// Options tunes the scheduling policy. Zero values select the defaults, so
// a closing hour of midnight cannot be configured.
type Options struct {
	LookaheadDays int
	ClosingHour   int
	Location      *time.Location
	ShareTokenTTL time.Duration
}

func (o Options) withDefaults() Options {
	if o.LookaheadDays <= 0 {
		o.LookaheadDays = DefaultLookaheadDays
	}
	if o.ClosingHour <= 0 || o.ClosingHour > 23 {
		o.ClosingHour = DefaultClosingHour
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.ShareTokenTTL <= 0 {
		o.ShareTokenTTL = DefaultShareTokenTTL
	}
	return o
}

// Deps lists the collaborators of the engine.
type Deps struct {
	Events   domain.EventRepository
	Proofs   domain.ProofRepository
	Tokens   domain.ShareTokenRepository
	Users    domain.UserDirectory
	Graph    domain.SocialGraph
	Letters  domain.LetterDirectory
	Notifier notify.Dispatcher
	Clock    domain.Clock
	Logger   zerolog.Logger
}

// Service is the engine entry point. It holds no state beyond its
// collaborators and is safe for concurrent use.
type Service struct {
	events   domain.EventRepository
	proofs   domain.ProofRepository
	tokens   domain.ShareTokenRepository
	users    domain.UserDirectory
	graph    domain.SocialGraph
	letters  domain.LetterDirectory
	notifier notify.Dispatcher
	clock    domain.Clock
	logger   zerolog.Logger
	tracer   trace.Tracer
	opts     Options
}

// NewService wires the engine.
func NewService(deps Deps, opts Options) *Service {
	clock := deps.Clock
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &Service{
		events:   deps.Events,
		proofs:   deps.Proofs,
		tokens:   deps.Tokens,
		users:    deps.Users,
		graph:    deps.Graph,
		letters:  deps.Letters,
		notifier: deps.Notifier,
		clock:    clock,
		logger:   deps.Logger.With().Str("component", "birthday").Logger(),
		tracer:   otel.Tracer("moa/birthday"),
		opts:     opts.withDefaults(),
	}
}

// Options returns the effective options.
func (s *Service) Options() Options {
	return s.opts
}

func (s *Service) now() time.Time {
	return s.clock.Now().In(s.opts.Location)
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan records err on span unless it is a domain rule violation.
func endSpan(span trace.Span, err error) {
	if err != nil {
		if domain.KindOf(err) == "internal" {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.String("error.kind", domain.KindOf(err)))
		}
	}
	span.End()
}

func (s *Service) dispatch(ctx context.Context, intents []domain.NotificationIntent) {
	if s.notifier == nil || len(intents) == 0 {
		return
	}
	s.notifier.Dispatch(ctx, intents)
}

// loadEvent maps a missing event to a NotFound domain error.
func (s *Service) loadEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ev, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NotFound(reasonEventNotFound)
		}
		return nil, fmt.Errorf("load event %s: %w", eventID, err)
	}
	return ev, nil
}

// userNames resolves display names, falling back to the id. Lookup failures
// are logged and do not fail the caller.
func (s *Service) userNames(ctx context.Context, ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		names[id] = id
	}
	if len(ids) == 0 || s.users == nil {
		return names
	}
	users, err := s.users.FindUsersByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Int("count", len(ids)).Msg("birthday: user lookup failed")
		return names
	}
	for _, u := range users {
		if u.Name != "" {
			names[u.ID] = u.Name
		}
	}
	return names
}
