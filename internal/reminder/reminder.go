// Package reminder arranges fire-once local alerts for prayers that are
// still ahead of now and not yet marked complete. The core has no
// timing behavior of its own; this collaborator owns every timer.
package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Fardin5046/salat-tracker/internal/notify"
	"github.com/Fardin5046/salat-tracker/internal/prayer"
	"github.com/Fardin5046/salat-tracker/internal/store"
)

// Notifier delivers one reminder. at is the scheduled "HH:MM" time.
type Notifier interface {
	Notify(k prayer.Key, label, at string)
}

// LogNotifier writes reminders to the application log.
type LogNotifier struct{}

func (LogNotifier) Notify(k prayer.Key, label, at string) {
	log.Info().Str("prayer", string(k)).Str("time", at).Msgf("time for %s", label)
}

// Scheduler owns the pending alarm set. Reschedule always cancels every
// pending alarm first so a record change can never leave a stale or
// duplicate reminder armed.
type Scheduler struct {
	mu        sync.Mutex
	store     *store.TrackerStore
	schedule  prayer.Schedule
	notifiers []Notifier
	timers    []*time.Timer
	now       func() time.Time
}

func NewScheduler(st *store.TrackerStore, schedule prayer.Schedule, notifiers ...Notifier) *Scheduler {
	return &Scheduler{
		store:     st,
		schedule:  schedule,
		notifiers: notifiers,
		now:       time.Now,
	}
}

// Bind subscribes the scheduler to store changes so marking a prayer
// complete immediately drops its pending alarm. Returns the
// unsubscribe function.
func (s *Scheduler) Bind(hub *notify.Hub) (cancel func()) {
	return hub.Subscribe(func() {
		s.Reschedule(context.Background())
	})
}

// CancelAll stops every pending alarm.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelAll()
}

func (s *Scheduler) cancelAll() {
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

// Reschedule rebuilds today's alarm set from the current day record:
// one alarm per prayer whose scheduled time is still ahead and whose
// flag is false.
func (s *Scheduler) Reschedule(ctx context.Context) {
	now := s.now()
	rec := s.store.Day(ctx, prayer.DateKey(now))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelAll()

	for _, k := range s.pending(rec, now) {
		at, err := s.schedule.At(k, now)
		if err != nil {
			log.Warn().Err(err).Str("prayer", string(k)).Msg("skipping reminder with bad schedule entry")
			continue
		}
		k := k
		hhmm := s.schedule[k]
		s.timers = append(s.timers, time.AfterFunc(at.Sub(now), func() {
			s.fire(k, hhmm)
		}))
	}
	log.Debug().Int("alarms", len(s.timers)).Msg("reminders rescheduled")
}

// pending returns, in canonical order, the prayers still worth an alarm.
func (s *Scheduler) pending(rec prayer.DayRecord, now time.Time) []prayer.Key {
	var keys []prayer.Key
	for _, k := range prayer.Keys {
		if rec.Completed(k) {
			continue
		}
		at, err := s.schedule.At(k, now)
		if err != nil || !at.After(now) {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

// Pending exposes the armed alarm count, for the status endpoint and tests.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Scheduler) fire(k prayer.Key, at string) {
	for _, n := range s.notifiers {
		n.Notify(k, prayer.Label(k), at)
	}
}
