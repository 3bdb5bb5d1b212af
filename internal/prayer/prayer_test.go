package prayer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayRecordZeroValueAllFalse(t *testing.T) {
	var rec DayRecord
	for _, k := range Keys {
		assert.False(t, rec.Completed(k))
	}
}

func TestDayRecordToggle(t *testing.T) {
	var rec DayRecord
	rec.Toggle(Asr)
	assert.True(t, rec.Completed(Asr))
	rec.Toggle(Asr)
	assert.False(t, rec.Completed(Asr))
}

func TestDayRecordJSONShape(t *testing.T) {
	raw, err := json.Marshal(DayRecord{Fajr: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"fajr":true,"zuhr":false,"asr":false,"maghrib":false,"isha":false}`, string(raw))
}

func TestDayRecordDecodeToleratesExtraAndMissingFields(t *testing.T) {
	var rec DayRecord
	require.NoError(t, json.Unmarshal([]byte(`{"fajr":true,"witr":true}`), &rec))
	assert.True(t, rec.Completed(Fajr))
	assert.False(t, rec.Completed(Isha))
}

func TestMapDayDefaultsEmpty(t *testing.T) {
	m := Map{}
	rec := m.Day("2024-01-01")
	for _, k := range Keys {
		assert.False(t, rec.Completed(k))
	}
}
