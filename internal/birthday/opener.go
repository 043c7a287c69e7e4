package birthday

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"moa/internal/domain"
	"moa/internal/metrics"
	"moa/internal/notify"
)

// OpenReport summarises one pass of the event opener.
type OpenReport struct {
	Scanned int
	Opened  int
	Skipped int
	Failed  int
}

// OpenEventsForUpcomingBirthdays opens one active event for every user whose
// next birthday falls within the lookahead window and who has no live
// active event. Each user is an independent unit: a failure is logged and
// counted and the pass continues. The returned error is non-nil only when
// the user listing itself fails.
func (s *Service) OpenEventsForUpcomingBirthdays(ctx context.Context) (report OpenReport, err error) {
	ctx, span := s.startSpan(ctx, "birthday.open_events")
	defer func() {
		span.SetAttributes(
			attribute.Int("users.scanned", report.Scanned),
			attribute.Int("events.opened", report.Opened),
			attribute.Int("users.failed", report.Failed),
		)
		endSpan(span, err)
	}()

	users, err := s.users.FindUsersWithBirthday(ctx)
	if err != nil {
		return report, fmt.Errorf("list users with birthday: %w", err)
	}

	now := s.now()
	for _, u := range users {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		report.Scanned++
		opened, err := s.openSafely(ctx, u, now)
		switch {
		case err != nil:
			report.Failed++
			metrics.SchedulerOwnerFailuresTotal.Inc()
			s.logger.Error().Err(err).Str("user_id", u.ID).Msg("birthday: open event failed")
		case opened:
			report.Opened++
		default:
			report.Skipped++
		}
	}
	s.logger.Info().
		Int("scanned", report.Scanned).
		Int("opened", report.Opened).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("birthday: open pass finished")
	return report, nil
}

func (s *Service) openSafely(ctx context.Context, u domain.User, now time.Time) (opened bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			opened = false
			err = fmt.Errorf("panic while opening event: %v", r)
		}
	}()
	return s.openForUser(ctx, u, now)
}

func (s *Service) openForUser(ctx context.Context, u domain.User, now time.Time) (bool, error) {
	if u.Birthday == nil {
		return false, nil
	}
	active, err := s.events.HasActiveEvent(ctx, u.ID, now)
	if err != nil {
		return false, fmt.Errorf("check active event: %w", err)
	}
	if active {
		return false, nil
	}

	next, daysUntil := NextBirthday(*u.Birthday, now, s.opts.Location)
	if daysUntil < 0 || daysUntil > s.opts.LookaheadDays {
		return false, nil
	}
	deadline := time.Date(next.Year(), next.Month(), next.Day(), s.opts.ClosingHour, 0, 0, 0, s.opts.Location)
	if deadline.Before(now) {
		// Birthday is today but the closing hour has already passed.
		return false, nil
	}

	ev := &domain.Event{
		ID:       uuid.NewString(),
		OwnerID:  u.ID,
		Title:    eventTitle(displayName(u)),
		Deadline: deadline,
		Status:   domain.EventStatusActive,
	}
	if err := s.events.CreateActiveEvent(ctx, ev, now); err != nil {
		if errors.Is(err, domain.ErrActiveEventExists) {
			s.logger.Debug().Str("user_id", u.ID).Msg("birthday: active event opened concurrently, skipping")
			return false, nil
		}
		if errors.Is(err, domain.ErrEventAlreadyOpened) {
			s.logger.Debug().Str("user_id", u.ID).Time("deadline", deadline).Msg("birthday: cycle already opened for this birthday, skipping")
			return false, nil
		}
		return false, fmt.Errorf("create event: %w", err)
	}
	metrics.EventsOpenedTotal.Inc()
	s.logger.Info().
		Str("event_id", ev.ID).
		Str("user_id", u.ID).
		Time("deadline", ev.Deadline).
		Int("days_until", daysUntil).
		Msg("birthday: event opened")

	s.announceOpened(ctx, u, daysUntil)
	return true, nil
}

func (s *Service) announceOpened(ctx context.Context, owner domain.User, daysUntil int) {
	followers, err := s.graph.FollowersOf(ctx, owner.ID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", owner.ID).Msg("birthday: follower lookup failed, skipping announcements")
		return
	}
	name := displayName(owner)
	intents := notify.Intents(followers, birthdayReminder(name, daysUntil))
	intents = append(intents, notify.Intents(followers, friendEventCreated(name))...)
	s.dispatch(ctx, intents)
}

func displayName(u domain.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}

// NextBirthday returns the next occurrence of birthday on or after the
// calendar day of now in loc, and the number of whole days until it. Feb 29
// falls on Feb 28 in non-leap years.
func NextBirthday(birthday, now time.Time, loc *time.Location) (time.Time, int) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	next := occurrence(today.Year(), birthday.Month(), birthday.Day(), loc)
	if next.Before(today) {
		next = occurrence(today.Year()+1, birthday.Month(), birthday.Day(), loc)
	}
	return next, civilDays(today, next)
}

func occurrence(year int, month time.Month, day int, loc *time.Location) time.Time {
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// civilDays counts calendar days from a to b, independent of DST shifts.
func civilDays(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}
