package prayer

import (
	"fmt"
	"time"
)

// Schedule maps each prayer to its local wall-clock time ("HH:MM").
// It drives next-prayer resolution and reminder timing only; it is
// never persisted per day.
type Schedule map[Key]string

// DefaultSchedule is the built-in prayer time table.
var DefaultSchedule = Schedule{
	Fajr:    "05:00",
	Zuhr:    "13:00",
	Asr:     "16:30",
	Maghrib: "18:30",
	Isha:    "20:00",
}

// Clone returns a copy safe for the caller to mutate.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// timeToMinutes parses "HH:MM" to minutes since midnight.
func timeToMinutes(hhmm string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	return h*60 + m, nil
}

// NextPrayer returns the first prayer, in canonical order, whose
// scheduled time is strictly after now's local time of day. ok is false
// once the day's schedule is exhausted. Completion state is not
// consulted; callers wanting "next incomplete" filter against the day
// record themselves.
func NextPrayer(now time.Time, schedule Schedule) (Key, bool) {
	minutesNow := now.Hour()*60 + now.Minute()
	for _, k := range Keys {
		at, err := timeToMinutes(schedule[k])
		if err != nil {
			continue
		}
		if minutesNow < at {
			return k, true
		}
	}
	return "", false
}

// At resolves a prayer's scheduled time onto the calendar day of base.
func (s Schedule) At(k Key, base time.Time) (time.Time, error) {
	minutes, err := timeToMinutes(s[k])
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(base.Year(), base.Month(), base.Day(), minutes/60, minutes%60, 0, 0, base.Location()), nil
}
