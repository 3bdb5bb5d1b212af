package prayer

// TaskCount carries per-prayer completion counters.
type TaskCount struct {
	Completed int `json:"completed"`
	Missed    int `json:"missed"`
}

// Stats aggregates completion over a set of date keys. Derived on
// demand, never persisted.
type Stats struct {
	TotalCompleted int               `json:"total_completed"`
	TotalMissed    int               `json:"total_missed"`
	TotalSlots     int               `json:"total_slots"`
	ByPrayer       map[Key]TaskCount `json:"by_prayer"`
}

// CompletionPercent returns completed/slots as a percentage. Zero
// slots reads as 0%, never NaN.
func (s Stats) CompletionPercent() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.TotalCompleted) / float64(s.TotalSlots) * 100
}

// ComputeStats tallies completion over the given date keys. Input order
// does not affect the result; duplicate dates are counted every time
// they appear. An empty input yields all-zero counters with zero slots.
func ComputeStats(dateKeys []string, m Map) Stats {
	stats := Stats{
		TotalSlots: len(dateKeys) * len(Keys),
		ByPrayer:   make(map[Key]TaskCount, len(Keys)),
	}
	for _, k := range Keys {
		stats.ByPrayer[k] = TaskCount{}
	}
	for _, date := range dateKeys {
		rec := m.Day(date)
		for _, k := range Keys {
			count := stats.ByPrayer[k]
			if rec.Completed(k) {
				count.Completed++
				stats.TotalCompleted++
			} else {
				count.Missed++
				stats.TotalMissed++
			}
			stats.ByPrayer[k] = count
		}
	}
	return stats
}

// MissedEntry is one incomplete (date, prayer) pair.
type MissedEntry struct {
	Date   string `json:"date"`
	Prayer Key    `json:"prayer"`
}

// ComputeMissedHistory lists every incomplete slot across the given
// date keys: outer order follows the input, inner order is canonical.
// Callers truncating to "most recent" rely on that ordering.
func ComputeMissedHistory(dateKeys []string, m Map) []MissedEntry {
	var out []MissedEntry
	for _, date := range dateKeys {
		rec := m.Day(date)
		for _, k := range Keys {
			if !rec.Completed(k) {
				out = append(out, MissedEntry{Date: date, Prayer: k})
			}
		}
	}
	return out
}
