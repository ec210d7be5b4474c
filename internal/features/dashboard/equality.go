package dashboard

import "encoding/json"

// DashboardsEqual reports whether two dashboard lists carry the same state.
// The sync loop calls this on every poll tick, so cheap structural checks
// run first and the JSON comparison only when they all pass.
func DashboardsEqual(a, b []Dashboard) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	// Same backing array means same state; skip the deep comparison.
	if &a[0] == &b[0] {
		return true
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
		if len(a[i].Widgets) != len(b[i].Widgets) {
			return false
		}
	}

	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(aj) == string(bj)
}
