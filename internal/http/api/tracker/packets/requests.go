package packets

// TogglePrayerRequest marks or unmarks one prayer on one day.
type TogglePrayerRequest struct {
	Prayer string `json:"prayer" binding:"required"`
}

// SetDayRequest replaces a day's record wholesale. Absent flags read as
// false, so a partial body resets the omitted prayers.
type SetDayRequest struct {
	Fajr    bool `json:"fajr"`
	Zuhr    bool `json:"zuhr"`
	Asr     bool `json:"asr"`
	Maghrib bool `json:"maghrib"`
	Isha    bool `json:"isha"`
}
