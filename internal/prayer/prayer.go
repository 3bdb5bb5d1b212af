package prayer

// Key identifies one of the five daily prayers.
type Key string

const (
	Fajr    Key = "fajr"
	Zuhr    Key = "zuhr"
	Asr     Key = "asr"
	Maghrib Key = "maghrib"
	Isha    Key = "isha"
)

// Keys is the canonical prayer order. Aggregation and next-prayer
// resolution both depend on this ordering.
var Keys = []Key{Fajr, Zuhr, Asr, Maghrib, Isha}

var labels = map[Key]string{
	Fajr:    "Fajr",
	Zuhr:    "Zuhr",
	Asr:     "Asr",
	Maghrib: "Maghrib",
	Isha:    "Isha",
}

// Label returns the display name for a prayer key.
func Label(k Key) string {
	return labels[k]
}

// ParseKey validates a user-supplied prayer name.
func ParseKey(s string) (Key, bool) {
	k := Key(s)
	_, ok := labels[k]
	return k, ok
}

// DayRecord holds the completion flags for one calendar day. The zero
// value is an all-false day, so absent dates read as nothing completed.
// Unknown JSON fields are ignored on decode and missing fields stay false.
type DayRecord struct {
	Fajr    bool `json:"fajr"`
	Zuhr    bool `json:"zuhr"`
	Asr     bool `json:"asr"`
	Maghrib bool `json:"maghrib"`
	Isha    bool `json:"isha"`
}

// Completed reports whether the given prayer is marked done.
func (d DayRecord) Completed(k Key) bool {
	switch k {
	case Fajr:
		return d.Fajr
	case Zuhr:
		return d.Zuhr
	case Asr:
		return d.Asr
	case Maghrib:
		return d.Maghrib
	case Isha:
		return d.Isha
	}
	return false
}

// SetCompleted sets the flag for the given prayer.
func (d *DayRecord) SetCompleted(k Key, done bool) {
	switch k {
	case Fajr:
		d.Fajr = done
	case Zuhr:
		d.Zuhr = done
	case Asr:
		d.Asr = done
	case Maghrib:
		d.Maghrib = done
	case Isha:
		d.Isha = done
	}
}

// Toggle flips the flag for the given prayer.
func (d *DayRecord) Toggle(k Key) {
	d.SetCompleted(k, !d.Completed(k))
}

// Map is the full store contents: date key ("YYYY-MM-DD") to day record.
type Map map[string]DayRecord

// Day returns the record for a date, falling back to an all-false day
// when the date has never been written.
func (m Map) Day(date string) DayRecord {
	return m[date]
}
