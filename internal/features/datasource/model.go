package datasource

import "time"

// Format of a data payload after detection or parsing.
const (
	FormatAuto  = "auto"
	FormatEmpty = "empty"
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatXLSX  = "xlsx"
)

// Descriptor is everything needed to resolve a widget's data: where the
// payload lives and how to interpret it. It is the data-facing slice of a
// chart, table or kpi config.
type Descriptor struct {
	SourceType     string  `json:"sourceType"`
	Raw            string  `json:"raw,omitempty"`
	URL            string  `json:"url,omitempty"`
	Format         string  `json:"format,omitempty"`
	RefreshSeconds float64 `json:"refreshSeconds,omitempty"`
	FileName       string  `json:"fileName,omitempty"`
	JSONPath       string  `json:"jsonPath,omitempty"`
	Code           string  `json:"code,omitempty"`
}

// Identity keys a descriptor for the refresher: two descriptors with the
// same identity schedule the same work, so a config edit that changes any of
// these fields forces a re-registration.
func (d Descriptor) Identity() string {
	return d.URL + "|" + d.SourceType + "|" + d.Format + "|" +
		formatSeconds(d.RefreshSeconds) + "|" + d.Code
}

// Result is a resolved tabular payload. Columns preserves source column
// order when the format carries one (CSV header, XLSX first row). XField and
// YFields are the chart axis suggestion derived from that order, so a chart
// built from this result starts with sensible axes.
type Result struct {
	Rows    []map[string]any `json:"rows"`
	Format  string           `json:"format"`
	Raw     string           `json:"raw,omitempty"`
	Columns []string         `json:"columns,omitempty"`
	XField  string           `json:"xField,omitempty"`
	YFields []string         `json:"yFields,omitempty"`
}

// CachedValue is the last successful refresh outcome for one widget.
type CachedValue struct {
	Value     any              `json:"value,omitempty"`
	Rows      []map[string]any `json:"rows,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type ResolveRequest struct {
	URL    string `json:"url"`
	Format string `json:"format"`
}

type KPIRequest struct {
	SourceType string `json:"sourceType"`
	URL        string `json:"url,omitempty"`
	Format     string `json:"format,omitempty"`
	JSONPath   string `json:"jsonPath,omitempty"`
	Code       string `json:"code,omitempty"`
}
