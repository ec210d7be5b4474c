package workspace

import (
	"strings"
	"testing"

	"go-dashboards/internal/features/datasource"
	"go-dashboards/internal/features/widget"
)

func TestPresetDashboardsShape(t *testing.T) {
	pages := PresetDashboards(datasource.NewResolver())

	if len(pages) != 3 {
		t.Fatalf("expected 3 preset pages, got %d", len(pages))
	}

	names := []string{"Main", "Cripto", "Macro"}
	for i, want := range names {
		if pages[i].Name != want {
			t.Errorf("page %d name = %q, want %q", i, pages[i].Name, want)
		}
		if pages[i].ID == "" {
			t.Errorf("page %q has no id", want)
		}
	}

	if len(pages[0].Widgets) != 0 {
		t.Errorf("Main page should start empty, got %d widgets", len(pages[0].Widgets))
	}
	if len(pages[1].Widgets) != 5 {
		t.Errorf("Cripto page should have 5 widgets, got %d", len(pages[1].Widgets))
	}
	if len(pages[2].Widgets) != 1 {
		t.Errorf("Macro page should have 1 widget, got %d", len(pages[2].Widgets))
	}
}

func TestPresetChartWidgetsAreParsed(t *testing.T) {
	pages := PresetDashboards(datasource.NewResolver())

	var chart *widget.Widget
	for i := range pages[1].Widgets {
		if pages[1].Widgets[i].Type == widget.TypeChart {
			chart = &pages[1].Widgets[i]
			break
		}
	}
	if chart == nil {
		t.Fatal("Cripto page has no chart widget")
	}

	rows, ok := chart.Config["data"].([]any)
	if !ok || len(rows) != 5 {
		t.Fatalf("chart data not parsed from CSV, got %T with %d rows", chart.Config["data"], len(rows))
	}
	if got := chart.Config["xField"]; got != "date" {
		t.Errorf("xField = %v, want date", got)
	}
	yFields, _ := chart.Config["yFields"].([]string)
	if len(yFields) != 2 || yFields[0] != "btc" || yFields[1] != "eth" {
		t.Errorf("yFields = %v, want [btc eth]", yFields)
	}
	if got := chart.Config["sourceType"]; got != widget.SourcePaste {
		t.Errorf("sourceType = %v, want paste", got)
	}
}

func TestPresetIframesPointAtEmbeds(t *testing.T) {
	pages := PresetDashboards(datasource.NewResolver())

	iframes := 0
	for _, w := range pages[1].Widgets {
		if w.Type != widget.TypeIframe {
			continue
		}
		iframes++
		url, _ := w.Config["url"].(string)
		if url == "" {
			t.Errorf("iframe %q has no url", w.Title)
		}
		if strings.Contains(w.Title, "FRED") {
			scroll, _ := w.Config["scroll"].(map[string]any)
			if scroll == nil || scroll["forceIframeScroll"] != true {
				t.Errorf("FRED iframe should force iframe scroll, config = %v", w.Config["scroll"])
			}
		}
	}
	if iframes != 3 {
		t.Errorf("expected 3 iframe widgets on Cripto, got %d", iframes)
	}
}
