package reconcile

import "github.com/julianstephens/dayquest/internal/models"

// Merge unions remote with the local records whose dedup key is not already
// present remotely. Remote records come first and win on a shared key.
// Records that repeat a key already taken, on either side, are dropped, so
// merged never holds two records with one key. localOnly is the subset of
// merged that came from local and still has to be pushed.
func Merge[T models.Record](remote, local []T) (merged, localOnly []T) {
	seen := make(map[string]struct{}, len(remote)+len(local))
	merged = make([]T, 0, len(remote)+len(local))

	for _, r := range remote {
		key := r.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, r)
	}

	for _, l := range local {
		key := l.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, l)
		localOnly = append(localOnly, l)
	}

	return merged, localOnly
}

// MergeProfile keeps the remote profile when there is one, otherwise local.
// There is no field-level merge.
func MergeProfile(remote, local *models.Profile) *models.Profile {
	if remote != nil {
		p := *remote
		return &p
	}
	if local != nil {
		p := *local
		return &p
	}
	return nil
}

// mergeSnapshots applies Merge to every collection and returns the records
// to push in collection order.
func mergeSnapshots(remote, local models.Snapshot) (models.Snapshot, []models.Record) {
	var merged models.Snapshot
	var push []models.Record

	var tasks []models.Task
	merged.Tasks, tasks = Merge(remote.Tasks, local.Tasks)
	push = appendRecords(push, tasks)

	var expenses []models.Expense
	merged.Expenses, expenses = Merge(remote.Expenses, local.Expenses)
	push = appendRecords(push, expenses)

	var appointments []models.Appointment
	merged.Appointments, appointments = Merge(remote.Appointments, local.Appointments)
	push = appendRecords(push, appointments)

	var rewards []models.RewardUnlock
	merged.Rewards, rewards = Merge(remote.Rewards, local.Rewards)
	push = appendRecords(push, rewards)

	var trophies []models.TrophyUnlock
	merged.Trophies, trophies = Merge(remote.Trophies, local.Trophies)
	push = appendRecords(push, trophies)

	merged.Profile = MergeProfile(remote.Profile, local.Profile)
	return merged, push
}

func appendRecords[T models.Record](dst []models.Record, src []T) []models.Record {
	for _, r := range src {
		dst = append(dst, r)
	}
	return dst
}
