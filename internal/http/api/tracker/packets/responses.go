package packets

import "github.com/Fardin5046/salat-tracker/internal/prayer"

type DayResponse struct {
	Date   string           `json:"date"`
	Record prayer.DayRecord `json:"record"`
}

// TodayResponse frames the checklist view: today's record plus the next
// scheduled prayer, null once the day's schedule is exhausted.
type TodayResponse struct {
	Date       string           `json:"date"`
	Record     prayer.DayRecord `json:"record"`
	NextPrayer *prayer.Key      `json:"next_prayer"`
}

type StatsResponse struct {
	Range             string       `json:"range"`
	Stats             prayer.Stats `json:"stats"`
	CompletionPercent float64      `json:"completion_percent"`
}

type MissedResponse struct {
	Range  string               `json:"range"`
	Missed []prayer.MissedEntry `json:"missed"`
}

type ScheduleEntry struct {
	Prayer prayer.Key `json:"prayer"`
	Label  string     `json:"label"`
	Time   string     `json:"time"`
}

type ImportResponse struct {
	Applied bool `json:"applied"`
}
