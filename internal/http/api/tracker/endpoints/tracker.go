package endpoints

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Fardin5046/salat-tracker/internal/http/api"
	"github.com/Fardin5046/salat-tracker/internal/http/api/tracker/packets"
	"github.com/Fardin5046/salat-tracker/internal/prayer"
	"github.com/Fardin5046/salat-tracker/internal/store"
)

// importBodyLimit caps import payloads; the store is one small JSON blob.
const importBodyLimit = 1 << 20

type TrackerController struct {
	store    *store.TrackerStore
	schedule prayer.Schedule
	now      func() time.Time
}

func NewTrackerController(st *store.TrackerStore, schedule prayer.Schedule) *TrackerController {
	return &TrackerController{store: st, schedule: schedule, now: time.Now}
}

func TrackerModule(st *store.TrackerStore, schedule prayer.Schedule) api.Module {
	return NewTrackerController(st, schedule).Module()
}

func (t *TrackerController) Module() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/tracker/today", t.getToday)
		c.GET("/tracker/days/:date", t.getDay)
		c.PUT("/tracker/days/:date", t.setDay)
		c.POST("/tracker/days/:date/toggle", t.togglePrayer)

		c.GET("/tracker/stats", t.getStats)
		c.GET("/tracker/missed", t.getMissed)
		c.GET("/tracker/schedule", t.getSchedule)

		c.RawGET("/tracker/export", t.exportStore)
		c.POST("/tracker/import", t.importStore)
	})
}

func parseDateParam(ctx *gin.Context) (string, *api.APIError) {
	date := ctx.Param("date")
	if _, err := time.ParseInLocation("2006-01-02", date, time.Local); err != nil {
		return "", &api.APIError{Code: http.StatusBadRequest, Message: "invalid date, want YYYY-MM-DD"}
	}
	return date, nil
}

// rangeFor resolves the range query param against the current instant.
func (t *TrackerController) rangeFor(ctx *gin.Context) (string, []string, *api.APIError) {
	name := ctx.DefaultQuery("range", "week")
	switch name {
	case "week":
		return name, prayer.CurrentWeekRange(t.now()), nil
	case "month":
		return name, prayer.CurrentMonthRange(t.now()), nil
	}
	return "", nil, &api.APIError{Code: http.StatusBadRequest, Message: "range must be week or month"}
}

func (t *TrackerController) getToday(ctx *gin.Context) (any, *api.APIError) {
	now := t.now()
	response := packets.TodayResponse{
		Date:   prayer.DateKey(now),
		Record: t.store.Day(ctx, prayer.DateKey(now)),
	}
	if next, ok := prayer.NextPrayer(now, t.schedule); ok {
		response.NextPrayer = &next
	}
	return response, nil
}

func (t *TrackerController) getDay(ctx *gin.Context) (any, *api.APIError) {
	date, apiErr := parseDateParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.DayResponse{Date: date, Record: t.store.Day(ctx, date)}, nil
}

func (t *TrackerController) setDay(ctx *gin.Context) (any, *api.APIError) {
	date, apiErr := parseDateParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.SetDayRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	rec := prayer.DayRecord{
		Fajr:    request.Fajr,
		Zuhr:    request.Zuhr,
		Asr:     request.Asr,
		Maghrib: request.Maghrib,
		Isha:    request.Isha,
	}
	t.store.SetDay(ctx, date, rec)
	return packets.DayResponse{Date: date, Record: rec}, nil
}

func (t *TrackerController) togglePrayer(ctx *gin.Context) (any, *api.APIError) {
	date, apiErr := parseDateParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.TogglePrayerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	key, ok := prayer.ParseKey(request.Prayer)
	if !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown prayer"}
	}

	rec := t.store.Toggle(ctx, date, key)
	return packets.DayResponse{Date: date, Record: rec}, nil
}

func (t *TrackerController) getStats(ctx *gin.Context) (any, *api.APIError) {
	name, dates, apiErr := t.rangeFor(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	stats := prayer.ComputeStats(dates, t.store.Load(ctx))
	return packets.StatsResponse{
		Range:             name,
		Stats:             stats,
		CompletionPercent: stats.CompletionPercent(),
	}, nil
}

func (t *TrackerController) getMissed(ctx *gin.Context) (any, *api.APIError) {
	name, dates, apiErr := t.rangeFor(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	missed := prayer.ComputeMissedHistory(dates, t.store.Load(ctx))

	// Most recent first for display; the engine emits ascending date order.
	for i, j := 0, len(missed)-1; i < j; i, j = i+1, j-1 {
		missed[i], missed[j] = missed[j], missed[i]
	}
	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid limit"}
		}
		if limit < len(missed) {
			missed = missed[:limit]
		}
	}
	return packets.MissedResponse{Range: name, Missed: missed}, nil
}

func (t *TrackerController) getSchedule(ctx *gin.Context) (any, *api.APIError) {
	entries := make([]packets.ScheduleEntry, 0, len(prayer.Keys))
	for _, k := range prayer.Keys {
		entries = append(entries, packets.ScheduleEntry{
			Prayer: k,
			Label:  prayer.Label(k),
			Time:   t.schedule[k],
		})
	}
	return entries, nil
}

// exportStore streams the persisted blob verbatim.
func (t *TrackerController) exportStore(ctx *gin.Context) {
	ctx.Header("Content-Disposition", `attachment; filename="prayer-tracker.json"`)
	ctx.Data(http.StatusOK, "application/json", t.store.Export(ctx))
}

func (t *TrackerController) importStore(ctx *gin.Context) (any, *api.APIError) {
	raw, err := io.ReadAll(io.LimitReader(ctx.Request.Body, importBodyLimit))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "could not read body"}
	}

	applied := t.store.Import(ctx, raw)
	if !applied {
		log.Warn().Msg("import payload rejected, store unchanged")
	}
	return packets.ImportResponse{Applied: applied}, nil
}
