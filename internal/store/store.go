// Package store is the record store: the date-keyed prayer map behind
// one named blob, with fail-soft load/save semantics. Persistence
// failures degrade to an empty or unchanged store and are never
// surfaced to callers; this is convenience tracking data, not a system
// of record.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Fardin5046/salat-tracker/internal/blob"
	"github.com/Fardin5046/salat-tracker/internal/notify"
	"github.com/Fardin5046/salat-tracker/internal/prayer"
)

// StorageKey names the single persisted blob. Kept identical to the
// original client's localStorage key so an exported file round-trips.
const StorageKey = "prayer-tracker:v1"

// TrackerStore reads and writes the whole prayer map as one blob.
// Every mutation is read-modify-write over the entire store and the
// last whole write wins; two writers on the same backend can lose each
// other's edits. That contract is deliberate — single person, mostly
// one client at a time. The mutex only serializes in-process callers.
type TrackerStore struct {
	mu   sync.Mutex
	blob blob.Blob
	hub  *notify.Hub
}

func New(b blob.Blob, hub *notify.Hub) *TrackerStore {
	return &TrackerStore{blob: b, hub: hub}
}

// decode parses a persisted payload. Only a non-object top level is an
// error; an individual day that fails to decode reads as an empty day.
func decode(raw []byte) (prayer.Map, error) {
	var days map[string]json.RawMessage
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, err
	}
	m := make(prayer.Map, len(days))
	for date, rawDay := range days {
		var rec prayer.DayRecord
		if err := json.Unmarshal(rawDay, &rec); err != nil {
			log.Warn().Str("date", date).Msg("unreadable day record, treating as empty")
		}
		m[date] = rec
	}
	return m, nil
}

// Load returns the persisted map. A missing, unreadable or malformed
// payload degrades to an empty map.
func (s *TrackerStore) Load(ctx context.Context) prayer.Map {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *TrackerStore) load(ctx context.Context) prayer.Map {
	raw, found, err := s.blob.Get(ctx, StorageKey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read prayer store, starting empty")
		return prayer.Map{}
	}
	if !found {
		return prayer.Map{}
	}
	m, err := decode(raw)
	if err != nil {
		log.Warn().Err(err).Msg("corrupt prayer store payload, starting empty")
		return prayer.Map{}
	}
	return m
}

// Save overwrites the persisted map wholesale and, on success,
// broadcasts the change. Write failures are logged and swallowed.
func (s *TrackerStore) Save(ctx context.Context, m prayer.Map) {
	s.mu.Lock()
	saved := s.save(ctx, m)
	s.mu.Unlock()
	s.publish(saved)
}

// save persists under the store lock and reports success. Notification
// happens in publish, outside the lock, so a subscriber may read the
// store from its callback.
func (s *TrackerStore) save(ctx context.Context, m prayer.Map) bool {
	raw, err := json.Marshal(m)
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode prayer store")
		return false
	}
	if err := s.blob.Set(ctx, StorageKey, raw); err != nil {
		log.Warn().Err(err).Msg("failed to persist prayer store")
		return false
	}
	return true
}

func (s *TrackerStore) publish(saved bool) {
	if saved && s.hub != nil {
		s.hub.Publish()
	}
}

// Day returns the record for a date, every flag present, all false when
// the date has never been written.
func (s *TrackerStore) Day(ctx context.Context, date string) prayer.DayRecord {
	return s.Load(ctx).Day(date)
}

// SetDay replaces one day's record and persists the whole store.
func (s *TrackerStore) SetDay(ctx context.Context, date string, rec prayer.DayRecord) {
	s.mu.Lock()
	m := s.load(ctx)
	m[date] = rec
	saved := s.save(ctx, m)
	s.mu.Unlock()
	s.publish(saved)
}

// Toggle flips one prayer's flag for a date and returns the updated
// record. This is the sole mutation primitive the checklist UI uses.
func (s *TrackerStore) Toggle(ctx context.Context, date string, k prayer.Key) prayer.DayRecord {
	s.mu.Lock()
	m := s.load(ctx)
	rec := m.Day(date)
	rec.Toggle(k)
	m[date] = rec
	saved := s.save(ctx, m)
	s.mu.Unlock()
	s.publish(saved)
	return rec
}

// Export returns the persisted blob verbatim, "{}" when nothing has
// been persisted yet.
func (s *TrackerStore) Export(ctx context.Context) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, found, err := s.blob.Get(ctx, StorageKey)
	if err != nil || !found {
		return []byte("{}")
	}
	return raw
}

// Import replaces the store wholesale with a user-supplied payload,
// with the same whole-store-overwrite semantics as any other save.
// Anything that is not a JSON object is silently ignored and reported
// as not applied; no mutation occurs.
func (s *TrackerStore) Import(ctx context.Context, raw []byte) bool {
	m, err := decode(raw)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring malformed import payload")
		return false
	}
	s.Save(ctx, m)
	return true
}
