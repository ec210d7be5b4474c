package widget

// WidgetType discriminates the config shape carried by a widget.
type WidgetType string

const (
	TypeText         WidgetType = "text"
	TypeIframe       WidgetType = "iframe"
	TypeEmbed        WidgetType = "embed"
	TypeChart        WidgetType = "chart"
	TypeTable        WidgetType = "table"
	TypeKPI          WidgetType = "kpi"
	TypeSectionTitle WidgetType = "section-title"
)

// Source types for chart/table widgets.
const (
	SourcePaste = "paste"
	SourceURL   = "url"
	SourceFile  = "file"
	SourceCode  = "code" // KPI only
)

// Widget is one renderable unit on a dashboard page. Config is kept as
// loosely-typed JSON and eagerly normalized (see Normalize); a section-title
// is a heading, not a card: its config is exactly {text, size} and it carries
// no geometry.
type Widget struct {
	ID     string         `json:"id" bson:"id"`
	Type   WidgetType     `json:"type" bson:"type"`
	Title  string         `json:"title" bson:"title"`
	Width  float64        `json:"width,omitempty" bson:"width,omitempty"`
	Height float64        `json:"height,omitempty" bson:"height,omitempty"`
	Config map[string]any `json:"config,omitempty" bson:"config,omitempty"`
}

// IsSectionTitle reports whether the widget is the structural heading variant.
func (w *Widget) IsSectionTitle() bool {
	return w.Type == TypeSectionTitle
}

// IsKnownType reports whether t is one of the supported widget types.
func IsKnownType(t WidgetType) bool {
	switch t {
	case TypeText, TypeIframe, TypeEmbed, TypeChart, TypeTable, TypeKPI, TypeSectionTitle:
		return true
	}
	return false
}
