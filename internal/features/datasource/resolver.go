package datasource

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Resolver turns a descriptor into rows. URLs are fetched with a shared
// client; raw text and uploaded files are parsed in place.
type Resolver interface {
	Resolve(ctx context.Context, d Descriptor) (*Result, error)
	ParseText(text, preferredFormat string) (*Result, error)
	ParseFile(name string, r io.Reader) (*Result, error)
}

type ResolverImpl struct {
	httpClient *http.Client
}

func NewResolver() Resolver {
	return &ResolverImpl{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

var xlsxContentType = regexp.MustCompile(`(?i)application/(vnd\.openxmlformats-officedocument\.spreadsheetml\.sheet|vnd\.ms-excel)`)

// Resolve fetches and parses the descriptor's URL, or parses its pasted raw
// text when no URL is set.
func (r *ResolverImpl) Resolve(ctx context.Context, d Descriptor) (*Result, error) {
	if d.URL == "" {
		return r.ParseText(d.Raw, d.Format)
	}

	target := NormalizeSheetsURL(d.URL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")

	res, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d", res.StatusCode)
	}

	contentType := res.Header.Get("Content-Type")
	if xlsxContentType.MatchString(contentType) || looksLikeXlsxURL(target) {
		return parseXLSX(res.Body)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	return r.ParseText(string(body), d.Format)
}

// ParseText parses pasted or fetched text. Format "auto" sniffs JSON by the
// leading bracket and falls back to CSV.
func (r *ResolverImpl) ParseText(text, preferredFormat string) (*Result, error) {
	format := preferredFormat
	if format == "" || format == FormatAuto {
		format = DetectFormat(text)
	}

	switch format {
	case FormatEmpty:
		return &Result{Rows: []map[string]any{}, Format: FormatEmpty, Raw: ""}, nil
	case FormatJSON:
		return parseJSON(text)
	default:
		return parseCSV(text)
	}
}

// ParseFile parses an uploaded file by extension: .xlsx, .json, or CSV as
// the default.
func (r *ResolverImpl) ParseFile(name string, src io.Reader) (*Result, error) {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".xlsx") {
		return parseXLSX(src)
	}

	body, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(lower, ".json") {
		return parseJSON(string(body))
	}
	return parseCSV(string(body))
}

// DetectFormat sniffs the payload shape: empty, json or csv.
func DetectFormat(text string) string {
	t := strings.TrimSpace(text)
	if t == "" {
		return FormatEmpty
	}
	if strings.HasPrefix(t, "[") || strings.HasPrefix(t, "{") {
		return FormatJSON
	}
	return FormatCSV
}

// NormalizeSheetsURL rewrites a Google Sheets /edit link into its CSV export
// endpoint. Anything else passes through untouched, including unparseable
// URLs.
func NormalizeSheetsURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if !strings.Contains(u.Hostname(), "docs.google.com") || !strings.Contains(u.Path, "/spreadsheets/") {
		return raw
	}
	if !strings.HasSuffix(u.Path, "/export") {
		if idx := strings.Index(u.Path, "/edit"); idx >= 0 {
			u.Path = u.Path[:idx] + "/export"
			u.Fragment = ""
		}
	}
	q := u.Query()
	if q.Get("format") == "" {
		q.Set("format", "csv")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func looksLikeXlsxURL(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".xlsx")
}

// parseJSON accepts either a top-level array of objects or an envelope with
// a data array. Anything else yields no rows.
func parseJSON(text string) (*Result, error) {
	out := &Result{Rows: []map[string]any{}, Format: FormatJSON, Raw: text}

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return out, nil
	}

	var items []any
	switch v := parsed.(type) {
	case []any:
		items = v
	case map[string]any:
		if data, ok := v["data"].([]any); ok {
			items = data
		}
	}

	for _, item := range items {
		if row, ok := item.(map[string]any); ok {
			out.Rows = append(out.Rows, row)
		}
	}
	if len(out.Rows) > 0 {
		out.Columns = columnsOf(out.Rows[0])
	}
	return out, nil
}

// parseCSV reads a header row plus records, typing each cell dynamically:
// numbers become float64, true/false become bool, everything else stays a
// string. Empty cells become nil.
func parseCSV(text string) (*Result, error) {
	out := &Result{Rows: []map[string]any{}, Format: FormatCSV, Raw: text}

	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	if len(records) == 0 {
		return out, nil
	}

	header := records[0]
	out.Columns = append(out.Columns, header...)

	for _, record := range records[1:] {
		if emptyRecord(record) {
			continue
		}
		row := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = typeCell(record[i])
			} else {
				row[col] = nil
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// parseXLSX reads the first sheet, first row as header. Cells missing from
// short rows become nil.
func parseXLSX(src io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}

	out := &Result{Rows: []map[string]any{}, Format: FormatXLSX}
	if len(rows) == 0 {
		return out, nil
	}

	header := rows[0]
	out.Columns = append(out.Columns, header...)

	for _, record := range rows[1:] {
		row := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(record) && record[i] != "" {
				row[col] = typeCell(record[i])
			} else {
				row[col] = nil
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func typeCell(cell string) any {
	if cell == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(cell, 64); err == nil {
		return n
	}
	switch strings.ToLower(cell) {
	case "true":
		return true
	case "false":
		return false
	}
	return cell
}

func emptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func columnsOf(row map[string]any) []string {
	cols := make([]string, 0, len(row))
	for k := range row {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
