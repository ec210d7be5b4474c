package datasource

import (
	"testing"

	"go-dashboards/internal/features/widget"
)

func TestRefreshableDescriptor(t *testing.T) {
	tests := []struct {
		name string
		w    widget.Widget
		want bool
	}{
		{
			"Chart URL With Interval",
			widget.Widget{Type: widget.TypeChart, Config: map[string]any{
				"sourceType": "url", "url": "https://x/data.csv", "refreshSeconds": float64(30),
			}},
			true,
		},
		{
			"Zero Interval Skipped",
			widget.Widget{Type: widget.TypeTable, Config: map[string]any{
				"sourceType": "url", "url": "https://x", "refreshSeconds": float64(0),
			}},
			false,
		},
		{
			"Paste Source Skipped",
			widget.Widget{Type: widget.TypeChart, Config: map[string]any{
				"sourceType": "paste", "raw": "a\n1", "refreshSeconds": float64(30),
			}},
			false,
		},
		{
			"URL Source Without URL Skipped",
			widget.Widget{Type: widget.TypeKPI, Config: map[string]any{
				"sourceType": "url", "refreshSeconds": float64(30),
			}},
			false,
		},
		{
			"KPI Code With Interval",
			widget.Widget{Type: widget.TypeKPI, Config: map[string]any{
				"sourceType": "code", "code": "value := 1", "refreshSeconds": float64(10),
			}},
			true,
		},
		{
			"Code On Chart Skipped",
			widget.Widget{Type: widget.TypeChart, Config: map[string]any{
				"sourceType": "code", "code": "value := 1", "refreshSeconds": float64(10),
			}},
			false,
		},
		{
			"Text Widget Skipped",
			widget.Widget{Type: widget.TypeText, Config: map[string]any{
				"sourceType": "url", "url": "https://x", "refreshSeconds": float64(30),
			}},
			false,
		},
		{
			"Nil Config Skipped",
			widget.Widget{Type: widget.TypeChart},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := refreshableDescriptor(tt.w); got != tt.want {
				t.Errorf("refreshableDescriptor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDescriptorIdentityChangesWithConfig(t *testing.T) {
	base := Descriptor{SourceType: "url", URL: "https://x", Format: "auto", RefreshSeconds: 30}

	same := base
	if base.Identity() != same.Identity() {
		t.Error("identical descriptors must share an identity")
	}

	changed := base
	changed.RefreshSeconds = 60
	if base.Identity() == changed.Identity() {
		t.Error("interval change must produce a new identity")
	}

	changed = base
	changed.URL = "https://y"
	if base.Identity() == changed.Identity() {
		t.Error("url change must produce a new identity")
	}
}
