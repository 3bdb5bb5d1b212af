package endpoints

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fardin5046/salat-tracker/internal/blob"
	"github.com/Fardin5046/salat-tracker/internal/http/api"
	"github.com/Fardin5046/salat-tracker/internal/notify"
	"github.com/Fardin5046/salat-tracker/internal/prayer"
	"github.com/Fardin5046/salat-tracker/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.TrackerStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(blob.NewMemory(), notify.NewHub())
	ctl := NewTrackerController(st, prayer.DefaultSchedule)
	ctl.now = func() time.Time {
		return time.Date(2024, time.March, 7, 12, 0, 0, 0, time.Local)
	}

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"}, ctl.Module())
	return r, st
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetToday(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/tracker/today", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Date       string           `json:"date"`
		Record     prayer.DayRecord `json:"record"`
		NextPrayer *string          `json:"next_prayer"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2024-03-07", resp.Date)
	require.NotNil(t, resp.NextPrayer)
	assert.Equal(t, "zuhr", *resp.NextPrayer)
}

func TestToggleEndpoint(t *testing.T) {
	r, st := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/tracker/days/2024-03-07/toggle", `{"prayer":"fajr"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Record prayer.DayRecord `json:"record"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Record.Fajr)
	assert.True(t, st.Day(context.Background(), "2024-03-07").Completed(prayer.Fajr))
}

func TestToggleRejectsUnknownPrayer(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodPost, "/api/tracker/days/2024-03-07/toggle", `{"prayer":"brunch"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleRejectsBadDate(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodPost, "/api/tracker/days/tomorrow/toggle", `{"prayer":"fajr"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetAndGetDay(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPut, "/api/tracker/days/2024-03-05", `{"fajr":true,"isha":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/tracker/days/2024-03-05", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Record prayer.DayRecord `json:"record"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Record.Fajr)
	assert.True(t, resp.Record.Isha)
	assert.False(t, resp.Record.Zuhr)
}

func TestStatsWeek(t *testing.T) {
	r, st := newTestRouter(t)
	// 2024-03-07 falls in the week 2024-03-04..2024-03-10.
	st.SetDay(context.Background(), "2024-03-04", prayer.DayRecord{Fajr: true})

	w := do(r, http.MethodGet, "/api/tracker/stats?range=week", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Range string       `json:"range"`
		Stats prayer.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "week", resp.Range)
	assert.Equal(t, 35, resp.Stats.TotalSlots)
	assert.Equal(t, 1, resp.Stats.TotalCompleted)
	assert.Equal(t, 34, resp.Stats.TotalMissed)
}

func TestStatsRejectsUnknownRange(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/tracker/stats?range=year", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMissedLimitKeepsMostRecent(t *testing.T) {
	r, st := newTestRouter(t)
	// Complete everything except isha on the last day of the week.
	st.SetDay(context.Background(), "2024-03-10", prayer.DayRecord{Fajr: true, Zuhr: true, Asr: true, Maghrib: true})

	w := do(r, http.MethodGet, "/api/tracker/missed?range=week&limit=3", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Missed []prayer.MissedEntry `json:"missed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Missed, 3)
	assert.Equal(t, prayer.MissedEntry{Date: "2024-03-10", Prayer: prayer.Isha}, resp.Missed[0])
	assert.Equal(t, "2024-03-09", resp.Missed[1].Date)
}

func TestScheduleEndpointCanonicalOrder(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/tracker/schedule", "")
	require.Equal(t, http.StatusOK, w.Code)

	var entries []struct {
		Prayer string `json:"prayer"`
		Time   string `json:"time"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 5)
	assert.Equal(t, "fajr", entries[0].Prayer)
	assert.Equal(t, "isha", entries[4].Prayer)
	assert.Equal(t, "05:00", entries[0].Time)
}

func TestExportImportRoundtrip(t *testing.T) {
	r, _ := newTestRouter(t)

	do(r, http.MethodPost, "/api/tracker/days/2024-03-01/toggle", `{"prayer":"maghrib"}`)

	w := do(r, http.MethodGet, "/api/tracker/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	exported := w.Body.String()
	assert.Contains(t, exported, `"2024-03-01"`)

	// A fresh server accepts the exported blob wholesale.
	r2, st2 := newTestRouter(t)
	w = do(r2, http.MethodPost, "/api/tracker/import", exported)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, st2.Day(context.Background(), "2024-03-01").Completed(prayer.Maghrib))
}

func TestImportArrayLeavesStoreUnchanged(t *testing.T) {
	r, st := newTestRouter(t)
	st.Toggle(context.Background(), "2024-03-01", prayer.Fajr)

	w := do(r, http.MethodPost, "/api/tracker/import", `[]`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Applied bool `json:"applied"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Applied)
	assert.True(t, st.Day(context.Background(), "2024-03-01").Completed(prayer.Fajr))
}
