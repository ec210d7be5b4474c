package dashboard

import (
	"testing"

	"go-dashboards/internal/features/widget"
)

func page(ids ...string) *Dashboard {
	d := &Dashboard{ID: "dash", Name: "Test", Widgets: []widget.Widget{}}
	for _, id := range ids {
		d.Widgets = append(d.Widgets, widget.Widget{ID: id, Type: widget.TypeText, Title: id})
	}
	return d
}

func order(d *Dashboard) []string {
	ids := make([]string, len(d.Widgets))
	for i, w := range d.Widgets {
		ids[i] = w.ID
	}
	return ids
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddWidgetAssignsIDAndNormalizes(t *testing.T) {
	d := page()
	added := d.AddWidget(widget.Widget{Type: widget.TypeText, Title: "Note", ID: "client-chosen"})

	if added.ID == "" || added.ID == "client-chosen" {
		t.Errorf("AddWidget must assign a fresh id, got %q", added.ID)
	}
	if added.Config["size"] != "large" {
		t.Errorf("config not normalized: %#v", added.Config)
	}
}

func TestReplaceWidgetClearsInactiveSourceFields(t *testing.T) {
	d := page("k")
	d.Widgets[0].Type = widget.TypeKPI

	err := d.ReplaceWidget(widget.Widget{
		ID:   "k",
		Type: widget.TypeKPI,
		Config: map[string]any{
			"sourceType": "url",
			"url":        "https://example.com/data.json",
			"code":       "value := 7",
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg := d.Widgets[0].Config
	if cfg["code"] != "" {
		t.Errorf("url-mode kpi persisted code = %q, want empty", cfg["code"])
	}
	if cfg["url"] != "https://example.com/data.json" {
		t.Errorf("active source field lost: %#v", cfg)
	}
}

func TestDuplicateWidget(t *testing.T) {
	d := page("a", "b", "c")
	d.Widgets[0].Title = "BTC"
	d.Widgets[0].Config = map[string]any{"text": "x"}

	dup, err := d.DuplicateWidget("a")
	if err != nil {
		t.Fatal(err)
	}
	if dup.Title != "BTC (cópia)" {
		t.Errorf("title = %q", dup.Title)
	}
	if dup.ID == "a" {
		t.Error("copy must get a fresh id")
	}
	if len(d.Widgets) != 4 || d.Widgets[3].ID != dup.ID {
		t.Error("copy must land at the end of the list")
	}

	// Config is a copy, not an alias.
	dup.Config["text"] = "y"
	if d.Widgets[0].Config["text"] != "x" {
		t.Error("duplicate shares config map with source")
	}

	if _, err := d.DuplicateWidget("ghost"); err != ErrWidgetNotFound {
		t.Errorf("err = %v, want ErrWidgetNotFound", err)
	}
}

func TestDeleteWidget(t *testing.T) {
	d := page("a", "b", "c")
	d.DeleteWidget("b")
	if !sameOrder(order(d), []string{"a", "c"}) {
		t.Errorf("order = %v", order(d))
	}

	// Unknown id is a silent no-op.
	d.DeleteWidget("ghost")
	if len(d.Widgets) != 2 {
		t.Error("deleting an unknown id must change nothing")
	}
}

func TestMoveWidget(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		direction string
		want      []string
	}{
		{"Up Swaps With Previous", "b", "up", []string{"b", "a", "c"}},
		{"Left Is Up", "b", "left", []string{"b", "a", "c"}},
		{"Down Swaps With Next", "b", "down", []string{"a", "c", "b"}},
		{"Right Is Down", "b", "right", []string{"a", "c", "b"}},
		{"First Up Is NoOp", "a", "up", []string{"a", "b", "c"}},
		{"Last Down Is NoOp", "c", "down", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := page("a", "b", "c")
			if err := d.MoveWidget(tt.id, tt.direction); err != nil {
				t.Fatal(err)
			}
			if !sameOrder(order(d), tt.want) {
				t.Errorf("order = %v, want %v", order(d), tt.want)
			}
		})
	}

	d := page("a")
	if err := d.MoveWidget("a", "sideways"); err == nil {
		t.Error("invalid direction must error")
	}
	if err := d.MoveWidget("ghost", "up"); err != ErrWidgetNotFound {
		t.Errorf("err = %v, want ErrWidgetNotFound", err)
	}
}

func TestResizeWidgetClamps(t *testing.T) {
	d := page("a")
	if err := d.ResizeWidget("a", 50, 9000); err != nil {
		t.Fatal(err)
	}
	if d.Widgets[0].Width != widget.MinWidth || d.Widgets[0].Height != 9000 {
		t.Errorf("size = %v x %v", d.Widgets[0].Width, d.Widgets[0].Height)
	}
}

func TestReorderWidget(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		target string
		before bool
		want   []string
	}{
		{"Drop Before First", "c", "a", true, []string{"c", "a", "b"}},
		{"Drop After First", "c", "a", false, []string{"a", "c", "b"}},
		{"Drop After Last", "a", "c", false, []string{"b", "c", "a"}},
		{"Drop On Self", "b", "b", true, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := page("a", "b", "c")
			if err := d.ReorderWidget(tt.id, tt.target, tt.before); err != nil {
				t.Fatal(err)
			}
			if !sameOrder(order(d), tt.want) {
				t.Errorf("order = %v, want %v", order(d), tt.want)
			}
		})
	}
}

func TestNextDashboardName(t *testing.T) {
	tests := []struct {
		name     string
		existing []Dashboard
		want     string
	}{
		{"Empty", nil, "Dashboard 1"},
		{"Sequential", []Dashboard{{Name: "Dashboard 1"}}, "Dashboard 2"},
		{
			"Skips Taken",
			[]Dashboard{{Name: "Cripto"}, {Name: "Dashboard 3"}},
			"Dashboard 4",
		},
		{
			"Counts From Length",
			[]Dashboard{{Name: "A"}, {Name: "B"}},
			"Dashboard 3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextDashboardName(tt.existing); got != tt.want {
				t.Errorf("NextDashboardName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenameDashboard(t *testing.T) {
	list := []Dashboard{{ID: "1", Name: "Old"}}

	if err := RenameDashboard(list, "1", "  New  "); err != nil {
		t.Fatal(err)
	}
	if list[0].Name != "New" {
		t.Errorf("name = %q, want trimmed", list[0].Name)
	}

	if err := RenameDashboard(list, "1", "   "); err != ErrEmptyName {
		t.Errorf("err = %v, want ErrEmptyName", err)
	}
	if err := RenameDashboard(list, "ghost", "X"); err != ErrDashboardNotFound {
		t.Errorf("err = %v, want ErrDashboardNotFound", err)
	}
}

func TestRemoveDashboardReselectsActive(t *testing.T) {
	list := []Dashboard{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	remaining, active := RemoveDashboard(list, "3", "1")
	if len(remaining) != 2 || active != "1" {
		t.Errorf("active = %q, want surviving selection kept", active)
	}

	remaining, active = RemoveDashboard(list, "1", "1")
	if active != "2" {
		t.Errorf("active = %q, want first remaining page", active)
	}

	remaining, active = RemoveDashboard([]Dashboard{{ID: "1"}}, "1", "1")
	if len(remaining) != 0 || active != "" {
		t.Errorf("empty workspace must clear selection, got %q", active)
	}
}

func TestActiveDashboardFallsBack(t *testing.T) {
	list := []Dashboard{{ID: "1"}, {ID: "2"}}

	if d := ActiveDashboard(list, "2"); d == nil || d.ID != "2" {
		t.Error("existing selection must resolve")
	}
	if d := ActiveDashboard(list, "stale"); d == nil || d.ID != "1" {
		t.Error("stale selection must fall back to first page")
	}
	if d := ActiveDashboard(nil, "1"); d != nil {
		t.Error("no pages resolves to nil")
	}
}
