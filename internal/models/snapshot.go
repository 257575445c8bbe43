package models

import "slices"

// Snapshot is the full set of collections for one user: what the local cache
// stores, what the remote store returns, and what reconciliation produces.
type Snapshot struct {
	Profile      *Profile       `json:"profile,omitempty"`
	Tasks        []Task         `json:"tasks"`
	Expenses     []Expense      `json:"expenses"`
	Appointments []Appointment  `json:"appointments"`
	Rewards      []RewardUnlock `json:"rewards"`
	Trophies     []TrophyUnlock `json:"trophies"`
}

// Clone returns a copy that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Tasks:        slices.Clone(s.Tasks),
		Expenses:     slices.Clone(s.Expenses),
		Appointments: slices.Clone(s.Appointments),
		Rewards:      slices.Clone(s.Rewards),
		Trophies:     slices.Clone(s.Trophies),
	}
	if s.Profile != nil {
		p := *s.Profile
		out.Profile = &p
	}
	return out
}

// Records flattens every non-profile collection into one slice.
func (s Snapshot) Records() []Record {
	var out []Record
	for _, t := range s.Tasks {
		out = append(out, t)
	}
	for _, e := range s.Expenses {
		out = append(out, e)
	}
	for _, a := range s.Appointments {
		out = append(out, a)
	}
	for _, r := range s.Rewards {
		out = append(out, r)
	}
	for _, t := range s.Trophies {
		out = append(out, t)
	}
	return out
}

// IsEmpty reports whether the snapshot holds no profile and no records.
func (s Snapshot) IsEmpty() bool {
	return s.Profile == nil && len(s.Records()) == 0
}
