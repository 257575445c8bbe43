package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/logger"
	"github.com/julianstephens/dayquest/internal/models"
)

// State is everything the cache persists for the device: one entry per
// collection plus the theme and the first-use install date.
type State struct {
	Snapshot    models.Snapshot
	Theme       string
	InstallDate time.Time
}

// Load reads every entry. An entry that fails to decode is logged and
// treated as absent so a damaged cache never blocks start-up; only read
// errors from the store itself are returned.
func Load(c Cache) (State, error) {
	var st State
	var profile models.Profile

	entries := []struct {
		key string
		dst any
	}{
		{constants.CacheKeyProfile, &profile},
		{constants.CacheKeyTasks, &st.Snapshot.Tasks},
		{constants.CacheKeyExpenses, &st.Snapshot.Expenses},
		{constants.CacheKeyAppointments, &st.Snapshot.Appointments},
		{constants.CacheKeyRewards, &st.Snapshot.Rewards},
		{constants.CacheKeyTrophies, &st.Snapshot.Trophies},
		{constants.CacheKeyTheme, &st.Theme},
		{constants.CacheKeyInstallDate, &st.InstallDate},
	}

	for _, e := range entries {
		raw, ok, err := c.Get(e.key)
		if err != nil {
			return State{}, err
		}
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(raw), e.dst); err != nil {
			logger.Warn("discarding corrupt cache entry", "key", e.key, "error", err)
			reflect.ValueOf(e.dst).Elem().SetZero()
			continue
		}
		if e.key == constants.CacheKeyProfile {
			st.Snapshot.Profile = &profile
		}
	}

	for i := range st.Snapshot.Expenses {
		st.Snapshot.Expenses[i].Normalize()
	}
	return st, nil
}

// Save writes every entry in one transaction. A nil profile leaves the stored
// profile untouched.
func Save(c Cache, st State) error {
	values := map[string]any{
		constants.CacheKeyTasks:        nonNil(st.Snapshot.Tasks),
		constants.CacheKeyExpenses:     nonNil(st.Snapshot.Expenses),
		constants.CacheKeyAppointments: nonNil(st.Snapshot.Appointments),
		constants.CacheKeyRewards:      nonNil(st.Snapshot.Rewards),
		constants.CacheKeyTrophies:     nonNil(st.Snapshot.Trophies),
		constants.CacheKeyTheme:        st.Theme,
	}
	if st.Snapshot.Profile != nil {
		values[constants.CacheKeyProfile] = st.Snapshot.Profile
	}
	if !st.InstallDate.IsZero() {
		values[constants.CacheKeyInstallDate] = st.InstallDate
	}

	entries := make(map[string]string, len(values))
	for key, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode cache entry %q: %w", key, err)
		}
		entries[key] = string(raw)
	}
	return c.SetAll(entries)
}

// nonNil makes empty collections encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
