package reconcile

import (
	"fmt"
	"testing"
	"time"

	"github.com/julianstephens/dayquest/internal/models"
)

var jan1 = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func task(id, title string, at time.Time) models.Task {
	return models.Task{ID: id, Title: title, CreatedAt: at, Category: models.TaskCategoryHome, Priority: models.PriorityLow}
}

func assertUniqueKeys[T models.Record](t *testing.T, recs []T) {
	t.Helper()
	seen := map[string]string{}
	for _, r := range recs {
		if prev, ok := seen[r.DedupKey()]; ok {
			t.Errorf("records %s and %s share dedup key %q", prev, r.RecordID(), r.DedupKey())
		}
		seen[r.DedupKey()] = r.RecordID()
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name          string
		remote, local []models.Task
		wantMerged    []string
		wantLocalOnly []string
	}{
		{
			name:          "both empty",
			wantMerged:    []string{},
			wantLocalOnly: nil,
		},
		{
			name:          "local only",
			local:         []models.Task{task("l1", "Buy milk", jan1)},
			wantMerged:    []string{"l1"},
			wantLocalOnly: []string{"l1"},
		},
		{
			name:          "remote wins on shared key",
			remote:        []models.Task{task("r1", "Buy milk", jan1.Add(3*time.Hour))},
			local:         []models.Task{task("l1", "Buy milk", jan1)},
			wantMerged:    []string{"r1"},
			wantLocalOnly: nil,
		},
		{
			name:          "same title on another day is distinct",
			remote:        []models.Task{task("r1", "Buy milk", jan1)},
			local:         []models.Task{task("l1", "Buy milk", jan1.AddDate(0, 0, 1))},
			wantMerged:    []string{"r1", "l1"},
			wantLocalOnly: []string{"l1"},
		},
		{
			name:          "local duplicates collapse",
			local:         []models.Task{task("l1", "Run", jan1), task("l2", "Run", jan1)},
			wantMerged:    []string{"l1"},
			wantLocalOnly: []string{"l1"},
		},
		{
			name:          "remote duplicates collapse",
			remote:        []models.Task{task("r1", "Run", jan1), task("r2", "Run", jan1)},
			wantMerged:    []string{"r1"},
			wantLocalOnly: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, localOnly := Merge(tt.remote, tt.local)
			if got := ids(merged); fmt.Sprint(got) != fmt.Sprint(tt.wantMerged) {
				t.Errorf("merged = %v, want %v", got, tt.wantMerged)
			}
			if got := ids(localOnly); fmt.Sprint(got) != fmt.Sprint(tt.wantLocalOnly) {
				t.Errorf("localOnly = %v, want %v", got, tt.wantLocalOnly)
			}
			assertUniqueKeys(t, merged)
		})
	}
}

// Every combination of a small pool of overlapping records must merge
// without two records sharing a key.
func TestMergeDedupInvariant(t *testing.T) {
	pool := []models.Expense{
		{ID: "a", Title: "Lunch", Amount: 20, Date: jan1},
		{ID: "b", Title: "Lunch", Amount: 20, Date: jan1.Add(time.Hour)},
		{ID: "c", Title: "Lunch", Amount: 21, Date: jan1},
		{ID: "d", Title: "Bus", Amount: 3, Date: jan1},
		{ID: "e", Title: "Bus", Amount: 3, Date: jan1.AddDate(0, 0, 1)},
	}

	n := len(pool)
	for rmask := 0; rmask < 1<<n; rmask++ {
		for lmask := 0; lmask < 1<<n; lmask++ {
			var remote, local []models.Expense
			for i := 0; i < n; i++ {
				if rmask&(1<<i) != 0 {
					remote = append(remote, pool[i])
				}
				if lmask&(1<<i) != 0 {
					local = append(local, pool[i])
				}
			}
			merged, localOnly := Merge(remote, local)
			assertUniqueKeys(t, merged)

			remoteKeys := map[string]bool{}
			for _, r := range remote {
				remoteKeys[r.DedupKey()] = true
			}
			for _, l := range localOnly {
				if remoteKeys[l.DedupKey()] {
					t.Fatalf("pushing %s although its key exists remotely", l.ID)
				}
			}
		}
	}
}

func TestMergeProfile(t *testing.T) {
	remote := &models.Profile{Name: "Remote", TotalXP: 10}
	local := &models.Profile{Name: "Local", TotalXP: 500}

	if got := MergeProfile(remote, local); got.Name != "Remote" || got.TotalXP != 10 {
		t.Errorf("remote present: got %+v, want remote as-is", got)
	}
	if got := MergeProfile(nil, local); got.Name != "Local" {
		t.Errorf("remote absent: got %+v, want local", got)
	}
	if got := MergeProfile(nil, nil); got != nil {
		t.Errorf("both absent: got %+v, want nil", got)
	}

	got := MergeProfile(remote, nil)
	got.TotalXP = 99
	if remote.TotalXP != 10 {
		t.Error("MergeProfile returned an alias of its input")
	}
}

func ids[T models.Record](recs []T) []string {
	if recs == nil {
		return nil
	}
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.RecordID())
	}
	return out
}
