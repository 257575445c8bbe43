package remote

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/julianstephens/dayquest/internal/models"
)

// Method names a Store call for failure injection and call counting.
type Method string

const (
	MethodFetchProfile Method = "fetch_profile"
	MethodFetchAll     Method = "fetch_all"
	MethodCreate       Method = "create"
	MethodUpdate       Method = "update"
	MethodDelete       Method = "delete"
	MethodSaveProfile  Method = "save_profile"
)

// Memory is an in-process Store for tests. Fail and FailFetch simulate an
// unreachable backend.
type Memory struct {
	mu        sync.Mutex
	profiles  map[string]models.Profile
	records   map[string][]models.Record
	fail      map[Method]error
	failFetch map[models.EntityKind]error
	calls     map[Method]int
}

func NewMemory() *Memory {
	return &Memory{
		profiles:  make(map[string]models.Profile),
		records:   make(map[string][]models.Record),
		fail:      make(map[Method]error),
		failFetch: make(map[models.EntityKind]error),
		calls:     make(map[Method]int),
	}
}

// Fail makes every call to method return err. A nil err clears it.
func (m *Memory) Fail(method Method, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.fail, method)
		return
	}
	m.fail[method] = err
}

// FailFetch makes FetchAll fail for a single kind only.
func (m *Memory) FailFetch(kind models.EntityKind, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failFetch, kind)
		return
	}
	m.failFetch[kind] = err
}

// Calls returns how many times method was invoked, failed calls included.
func (m *Memory) Calls(method Method) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// Seed stores records for userID without counting as Create calls.
func (m *Memory) Seed(userID string, recs ...models.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[userID] = append(m.records[userID], recs...)
}

func (m *Memory) SeedProfile(userID string, p models.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[userID] = p
}

// Records returns the stored records of one kind for userID.
func (m *Memory) Records(userID string, kind models.EntityKind) []models.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byKind(userID, kind)
}

func (m *Memory) byKind(userID string, kind models.EntityKind) []models.Record {
	var out []models.Record
	for _, r := range m.records[userID] {
		if r.Kind() == kind {
			out = append(out, r)
		}
	}
	return out
}

func (m *Memory) enter(method Method) error {
	m.calls[method]++
	return m.fail[method]
}

func (m *Memory) FetchProfile(_ context.Context, userID string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(MethodFetchProfile); err != nil {
		return nil, err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *Memory) FetchAll(_ context.Context, userID string, kind models.EntityKind) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(MethodFetchAll); err != nil {
		return nil, err
	}
	if err := m.failFetch[kind]; err != nil {
		return nil, err
	}
	return m.byKind(userID, kind), nil
}

// Create appends rec. A record whose id is already stored for the user is
// ignored, as are reward and trophy unlocks for an already unlocked catalog id.
func (m *Memory) Create(_ context.Context, userID string, rec models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(MethodCreate); err != nil {
		return err
	}
	for _, r := range m.records[userID] {
		if r.Kind() != rec.Kind() {
			continue
		}
		if r.RecordID() == rec.RecordID() {
			return nil
		}
		if unlockKind(rec.Kind()) && r.DedupKey() == rec.DedupKey() {
			return nil
		}
	}
	m.records[userID] = append(m.records[userID], rec)
	return nil
}

func (m *Memory) Update(_ context.Context, userID string, rec models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(MethodUpdate); err != nil {
		return err
	}
	recs := m.records[userID]
	for i, r := range recs {
		if r.Kind() == rec.Kind() && r.RecordID() == rec.RecordID() {
			recs[i] = rec
			return nil
		}
	}
	return fmt.Errorf("update %s %s: %w", rec.Kind(), rec.RecordID(), ErrNotFound)
}

func (m *Memory) Delete(_ context.Context, userID string, kind models.EntityKind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(MethodDelete); err != nil {
		return err
	}
	recs := m.records[userID]
	i := slices.IndexFunc(recs, func(r models.Record) bool {
		return r.Kind() == kind && r.RecordID() == id
	})
	if i >= 0 {
		m.records[userID] = slices.Delete(recs, i, i+1)
		return nil
	}
	return fmt.Errorf("delete %s %s: %w", kind, id, ErrNotFound)
}

func (m *Memory) SaveProfile(_ context.Context, userID string, p models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(MethodSaveProfile); err != nil {
		return err
	}
	m.profiles[userID] = p
	return nil
}

func (m *Memory) Close() error { return nil }

func unlockKind(k models.EntityKind) bool {
	return k == models.KindReward || k == models.KindTrophy
}
