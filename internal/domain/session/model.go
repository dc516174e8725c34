package session

import "time"

// State is the competition-wide presentation state. SuspenseOrder is a fixed
// permutation of team ids, valid only while SuspenseMode is on; it is rolled
// once at activation so the hidden leaderboard order stays stable.
type State struct {
	SuspenseMode  bool
	SuspenseOrder []string
	PauseUntil    *time.Time
}

// Paused is derived fresh on every read, never stored: a pause timestamp in
// the past means "not paused".
func (s State) Paused(now time.Time) bool {
	return s.PauseUntil != nil && s.PauseUntil.After(now)
}

// ValidOrderFor reports whether SuspenseOrder is a full permutation of the
// given team ids. A stale order (teams added or removed since activation)
// must not drive the leaderboard.
func (s State) ValidOrderFor(teamIDs []string) bool {
	if len(s.SuspenseOrder) != len(teamIDs) {
		return false
	}
	want := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		want[id] = struct{}{}
	}
	for _, id := range s.SuspenseOrder {
		if _, ok := want[id]; !ok {
			return false
		}
		delete(want, id)
	}
	return len(want) == 0
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.SuspenseOrder = append([]string(nil), s.SuspenseOrder...)
	if s.PauseUntil != nil {
		at := *s.PauseUntil
		out.PauseUntil = &at
	}
	return out
}
