package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Fardin5046/salat-tracker/internal/blob"
	"github.com/Fardin5046/salat-tracker/internal/notify"
	"github.com/Fardin5046/salat-tracker/internal/prayer"
	"github.com/Fardin5046/salat-tracker/internal/store"
)

// fixedClock pins "now" mid-day so which alarms arm is deterministic and
// none of them fire during the test.
func fixedClock() time.Time {
	return time.Date(2024, time.March, 1, 12, 0, 0, 0, time.Local)
}

func newTestScheduler(t *testing.T) (*Scheduler, *store.TrackerStore, *notify.Hub) {
	t.Helper()
	hub := notify.NewHub()
	st := store.New(blob.NewMemory(), hub)
	s := NewScheduler(st, prayer.DefaultSchedule)
	s.now = fixedClock
	return s, st, hub
}

func TestRescheduleArmsOnlyFuturePrayers(t *testing.T) {
	s, _, _ := newTestScheduler(t)

	// At 12:00 fajr (05:00) is past; zuhr, asr, maghrib, isha remain.
	s.Reschedule(context.Background())
	assert.Equal(t, 4, s.Pending())
}

func TestRescheduleSkipsCompletedPrayers(t *testing.T) {
	s, st, _ := newTestScheduler(t)
	ctx := context.Background()

	today := prayer.DateKey(fixedClock())
	st.SetDay(ctx, today, prayer.DayRecord{Zuhr: true, Asr: true})

	s.Reschedule(ctx)
	assert.Equal(t, 2, s.Pending())
}

func TestCancelAllClearsPendingAlarms(t *testing.T) {
	s, _, _ := newTestScheduler(t)

	s.Reschedule(context.Background())
	assert.NotZero(t, s.Pending())

	s.CancelAll()
	assert.Zero(t, s.Pending())
}

func TestRescheduleReplacesInsteadOfStacking(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	ctx := context.Background()

	s.Reschedule(ctx)
	s.Reschedule(ctx)
	s.Reschedule(ctx)
	assert.Equal(t, 4, s.Pending())
}

func TestStoreChangeTriggersReschedule(t *testing.T) {
	s, st, hub := newTestScheduler(t)
	ctx := context.Background()

	cancel := s.Bind(hub)
	defer cancel()

	// Marking zuhr complete drops its alarm via the hub signal.
	today := prayer.DateKey(fixedClock())
	st.Toggle(ctx, today, prayer.Zuhr)
	assert.Equal(t, 3, s.Pending())

	// Unmarking brings it back.
	st.Toggle(ctx, today, prayer.Zuhr)
	assert.Equal(t, 4, s.Pending())
}

func TestRescheduleWithExhaustedDay(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	s.now = func() time.Time {
		return time.Date(2024, time.March, 1, 23, 0, 0, 0, time.Local)
	}

	s.Reschedule(context.Background())
	assert.Zero(t, s.Pending())
}

type recordingNotifier struct {
	fired []prayer.Key
}

func (r *recordingNotifier) Notify(k prayer.Key, label, at string) {
	r.fired = append(r.fired, k)
}

func TestFireDeliversToAllNotifiers(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{}
	st := store.New(blob.NewMemory(), notify.NewHub())
	s := NewScheduler(st, prayer.DefaultSchedule, a, b)

	s.fire(prayer.Maghrib, "18:30")
	assert.Equal(t, []prayer.Key{prayer.Maghrib}, a.fired)
	assert.Equal(t, []prayer.Key{prayer.Maghrib}, b.fired)
}
