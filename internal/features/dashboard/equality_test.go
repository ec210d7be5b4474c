package dashboard

import (
	"testing"

	"go-dashboards/internal/features/widget"
)

func TestDashboardsEqual(t *testing.T) {
	base := func() []Dashboard {
		return []Dashboard{
			{ID: "1", Name: "A", Widgets: []widget.Widget{
				{ID: "w1", Type: widget.TypeText, Title: "Note", Config: map[string]any{"text": "hi"}},
			}},
			{ID: "2", Name: "B", Widgets: []widget.Widget{}},
		}
	}

	tests := []struct {
		name   string
		mutate func(d []Dashboard) []Dashboard
		want   bool
	}{
		{"Identical", func(d []Dashboard) []Dashboard { return d }, true},
		{
			"Different Length",
			func(d []Dashboard) []Dashboard { return d[:1] },
			false,
		},
		{
			"Different Page ID",
			func(d []Dashboard) []Dashboard { d[1].ID = "x"; return d },
			false,
		},
		{
			"Different Widget Count",
			func(d []Dashboard) []Dashboard { d[0].Widgets = nil; return d },
			false,
		},
		{
			"Different Config Value",
			func(d []Dashboard) []Dashboard {
				d[0].Widgets[0].Config = map[string]any{"text": "bye"}
				return d
			},
			false,
		},
		{
			"Renamed Page",
			func(d []Dashboard) []Dashboard { d[1].Name = "C"; return d },
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DashboardsEqual(base(), tt.mutate(base())); got != tt.want {
				t.Errorf("DashboardsEqual() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDashboardsEqualSameSliceShortCircuits(t *testing.T) {
	// A config holding a value JSON cannot marshal proves the deep compare
	// is skipped when both arguments share a backing array.
	list := []Dashboard{
		{ID: "1", Widgets: []widget.Widget{
			{ID: "w1", Type: widget.TypeText, Config: map[string]any{"bad": make(chan int)}},
		}},
	}
	if !DashboardsEqual(list, list) {
		t.Error("a list must equal itself without deep comparison")
	}

	clone := append([]Dashboard(nil), list...)
	if DashboardsEqual(list, clone) {
		t.Error("distinct slices must fall through to the deep comparison")
	}
}

func TestDashboardsEqualNilVsEmpty(t *testing.T) {
	// A nil list and an empty list carry the same state.
	if !DashboardsEqual(nil, []Dashboard{}) {
		t.Error("nil and empty lists must be equal")
	}
}
