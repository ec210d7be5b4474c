package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"go-dashboards/internal/features/widget"
	"go-dashboards/pkg/utils"
)

// Pure operations on dashboards and dashboard lists. All mutations the
// builder UI performs funnel through these so the persisted state can never
// diverge from what a browser session would have produced.

var (
	ErrWidgetNotFound    = errors.New("widget not found")
	ErrDashboardNotFound = errors.New("dashboard not found")
	ErrEmptyName         = errors.New("name must not be empty")
)

// AddWidget appends w with a fresh id and an eagerly normalized config.
// Clearing runs after normalization so inactive-source fields stay cleared
// instead of being refilled with defaults.
func (d *Dashboard) AddWidget(w widget.Widget) *widget.Widget {
	w.ID = utils.NewID()
	w.Config = widget.ClearInactiveSource(w.Type, widget.Normalize(w.Type, w.Config))
	d.Widgets = append(d.Widgets, w)
	return &d.Widgets[len(d.Widgets)-1]
}

// ReplaceWidget swaps the widget with w.ID for w, keeping its position.
func (d *Dashboard) ReplaceWidget(w widget.Widget) error {
	w.Config = widget.ClearInactiveSource(w.Type, widget.Normalize(w.Type, w.Config))
	for i := range d.Widgets {
		if d.Widgets[i].ID == w.ID {
			d.Widgets[i] = w
			return nil
		}
	}
	return ErrWidgetNotFound
}

// DuplicateWidget appends a copy of the widget with the given id. The copy
// gets a fresh id and " (cópia)" appended to its title.
func (d *Dashboard) DuplicateWidget(id string) (*widget.Widget, error) {
	src := d.findWidget(id)
	if src == nil {
		return nil, ErrWidgetNotFound
	}
	dup := *src
	dup.ID = utils.NewID()
	dup.Title = src.Title + " (cópia)"
	dup.Config = cloneConfig(src.Config)
	d.Widgets = append(d.Widgets, dup)
	return &d.Widgets[len(d.Widgets)-1], nil
}

// DeleteWidget removes the widget with the given id. Deleting an unknown id
// is a no-op, matching the builder's filter semantics.
func (d *Dashboard) DeleteWidget(id string) {
	out := d.Widgets[:0]
	for _, w := range d.Widgets {
		if w.ID != id {
			out = append(out, w)
		}
	}
	d.Widgets = out
}

// MoveWidget shifts the widget one slot in the given direction by swapping
// with its neighbour. Up and left are the same motion, as are down and right.
// Already at the boundary means no change.
func (d *Dashboard) MoveWidget(id, direction string) error {
	cur := -1
	for i := range d.Widgets {
		if d.Widgets[i].ID == id {
			cur = i
			break
		}
	}
	if cur < 0 {
		return ErrWidgetNotFound
	}

	next := cur
	switch direction {
	case "up", "left":
		if cur > 0 {
			next = cur - 1
		}
	case "down", "right":
		if cur < len(d.Widgets)-1 {
			next = cur + 1
		}
	default:
		return fmt.Errorf("invalid direction '%s'", direction)
	}

	if next == cur {
		return nil
	}
	d.Widgets[cur], d.Widgets[next] = d.Widgets[next], d.Widgets[cur]
	return nil
}

// ResizeWidget sets the widget's size, clamped to the layout floors.
func (d *Dashboard) ResizeWidget(id string, width, height float64) error {
	w := d.findWidget(id)
	if w == nil {
		return ErrWidgetNotFound
	}
	w.Width, w.Height = widget.ClampSize(width, height)
	return nil
}

// ReorderWidget removes the widget with id and reinserts it relative to
// targetID, before or after depending on where the drop landed.
func (d *Dashboard) ReorderWidget(id, targetID string, before bool) error {
	if id == targetID {
		return nil
	}
	src := d.findWidget(id)
	if src == nil || d.findWidget(targetID) == nil {
		return ErrWidgetNotFound
	}
	moved := *src
	d.DeleteWidget(id)

	target := -1
	for i := range d.Widgets {
		if d.Widgets[i].ID == targetID {
			target = i
			break
		}
	}
	at := widget.InsertIndex(target, before)
	d.Widgets = append(d.Widgets, widget.Widget{})
	copy(d.Widgets[at+1:], d.Widgets[at:])
	d.Widgets[at] = moved
	return nil
}

func (d *Dashboard) findWidget(id string) *widget.Widget {
	for i := range d.Widgets {
		if d.Widgets[i].ID == id {
			return &d.Widgets[i]
		}
	}
	return nil
}

func cloneConfig(cfg map[string]any) map[string]any {
	if cfg == nil {
		return nil
	}
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		out[k] = v
	}
	return out
}

// NextDashboardName picks the first free "Dashboard N" for a new page.
// Counting starts at len+1 so a fresh workspace gets "Dashboard 1",
// "Dashboard 2" and so on even after deletions shuffled the numbers.
func NextDashboardName(existing []Dashboard) string {
	taken := make(map[string]bool, len(existing))
	for _, d := range existing {
		taken[d.Name] = true
	}
	i := len(existing) + 1
	name := fmt.Sprintf("Dashboard %d", i)
	for taken[name] {
		i++
		name = fmt.Sprintf("Dashboard %d", i)
	}
	return name
}

// AddDashboard appends a new empty page with a deduplicated name and returns
// it along with the updated list.
func AddDashboard(list []Dashboard) ([]Dashboard, Dashboard) {
	d := Dashboard{
		ID:      utils.NewID(),
		Name:    NextDashboardName(list),
		Widgets: []widget.Widget{},
	}
	return append(list, d), d
}

// RenameDashboard sets a trimmed, non-empty name on the page with the given id.
func RenameDashboard(list []Dashboard, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	for i := range list {
		if list[i].ID == id {
			list[i].Name = name
			return nil
		}
	}
	return ErrDashboardNotFound
}

// RemoveDashboard deletes the page with the given id and recomputes the
// active page: the current selection survives if it still exists, otherwise
// the first remaining page is selected, otherwise nothing is.
func RemoveDashboard(list []Dashboard, id, activeID string) (remaining []Dashboard, nextActive string) {
	remaining = make([]Dashboard, 0, len(list))
	for _, d := range list {
		if d.ID != id {
			remaining = append(remaining, d)
		}
	}
	for _, d := range remaining {
		if d.ID == activeID {
			return remaining, activeID
		}
	}
	if len(remaining) > 0 {
		return remaining, remaining[0].ID
	}
	return remaining, ""
}

// ActiveDashboard resolves the selected page, falling back to the first page
// when the selection is stale or unset.
func ActiveDashboard(list []Dashboard, activeID string) *Dashboard {
	if len(list) == 0 {
		return nil
	}
	for i := range list {
		if list[i].ID == activeID {
			return &list[i]
		}
	}
	return &list[0]
}
