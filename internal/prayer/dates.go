package prayer

import "time"

// dateLayout is the canonical date key form. Keys in this form compare
// lexicographically in chronological order.
const dateLayout = "2006-01-02"

// DateKey truncates an instant to its local calendar date.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// WeekStart returns local midnight of the Monday of the week containing t.
// time.Weekday numbers Sunday as 0; remap so Monday is 0.
func WeekStart(t time.Time) time.Time {
	diff := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-diff, 0, 0, 0, 0, t.Location())
}

// CurrentWeekRange returns the seven date keys Monday through Sunday of
// the week containing t, ascending.
func CurrentWeekRange(t time.Time) []string {
	start := WeekStart(t)
	return RangeDays(start, start.AddDate(0, 0, 6))
}

// CurrentMonthRange returns every date key of the month containing t,
// first day through last, ascending. Day 0 of the next month normalizes
// to the last day of this one, which handles month lengths and leap
// years without a table.
func CurrentMonthRange(t time.Time) []string {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
	return RangeDays(start, end)
}

// RangeDays returns every date key from start to end inclusive,
// ascending. A start after end yields an empty sequence.
func RangeDays(start, end time.Time) []string {
	var days []string
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		days = append(days, DateKey(cur))
	}
	return days
}
