package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"Empty", "", FormatEmpty},
		{"Whitespace Only", "   \n\t ", FormatEmpty},
		{"JSON Array", `[{"a":1}]`, FormatJSON},
		{"JSON Object", `{"data":[]}`, FormatJSON},
		{"Leading Whitespace JSON", "  \n[1]", FormatJSON},
		{"CSV", "date,price\n2024-01-01,42", FormatCSV},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.text); got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseCSVDynamicTyping(t *testing.T) {
	r := NewResolver()

	result, err := r.ParseText("date,price,active\n2024-01-01,42.5,true\n2024-01-02,,false\n", FormatAuto)
	if err != nil {
		t.Fatal(err)
	}
	if result.Format != FormatCSV {
		t.Errorf("format = %q", result.Format)
	}
	if !reflect.DeepEqual(result.Columns, []string{"date", "price", "active"}) {
		t.Errorf("columns = %v", result.Columns)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(result.Rows))
	}

	first := result.Rows[0]
	if first["date"] != "2024-01-01" {
		t.Errorf("date = %v (%T)", first["date"], first["date"])
	}
	if first["price"] != 42.5 {
		t.Errorf("price = %v (%T), want float64", first["price"], first["price"])
	}
	if first["active"] != true {
		t.Errorf("active = %v (%T), want bool", first["active"], first["active"])
	}
	if result.Rows[1]["price"] != nil {
		t.Errorf("empty cell = %v, want nil", result.Rows[1]["price"])
	}
}

func TestParseCSVSkipsEmptyLines(t *testing.T) {
	r := NewResolver()

	result, err := r.ParseText("a,b\n1,2\n\n3,4\n", FormatCSV)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Rows) != 2 {
		t.Errorf("rows = %d, want blank lines skipped", len(result.Rows))
	}
}

func TestParseJSONShapes(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name     string
		text     string
		wantRows int
	}{
		{"Top Level Array", `[{"a":1},{"a":2}]`, 2},
		{"Data Envelope", `{"data":[{"a":1}]}`, 1},
		{"Scalar Envelope", `{"price": 42}`, 0},
		{"Invalid JSON", `{broken`, 0},
		{"Array With Scalars", `[1, {"a":2}, "x"]`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.ParseText(tt.text, FormatJSON)
			if err != nil {
				t.Fatal(err)
			}
			if len(result.Rows) != tt.wantRows {
				t.Errorf("rows = %d, want %d", len(result.Rows), tt.wantRows)
			}
			if result.Raw != tt.text {
				t.Error("raw payload must be preserved")
			}
		})
	}
}

func TestNormalizeSheetsURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"Edit Link Rewritten",
			"https://docs.google.com/spreadsheets/d/abc123/edit#gid=0",
			"https://docs.google.com/spreadsheets/d/abc123/export?format=csv",
		},
		{
			"Export Link Kept",
			"https://docs.google.com/spreadsheets/d/abc123/export?format=csv",
			"https://docs.google.com/spreadsheets/d/abc123/export?format=csv",
		},
		{
			"Other Hosts Untouched",
			"https://example.com/data.csv",
			"https://example.com/data.csv",
		},
		{
			"Non Spreadsheet Google URL Untouched",
			"https://docs.google.com/document/d/abc/edit",
			"https://docs.google.com/document/d/abc/edit",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSheetsURL(tt.in); got != tt.want {
				t.Errorf("NormalizeSheetsURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveFetchesAndParses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("sym,price\nBTC,65000\nETH,3200\n"))
	}))
	defer srv.Close()

	r := NewResolver()
	result, err := r.Resolve(context.Background(), Descriptor{URL: srv.URL, Format: FormatAuto})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Rows) != 2 || result.Rows[0]["sym"] != "BTC" || result.Rows[0]["price"] != float64(65000) {
		t.Errorf("rows = %#v", result.Rows)
	}
}

func TestResolveHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	r := NewResolver()
	if _, err := r.Resolve(context.Background(), Descriptor{URL: srv.URL}); err == nil {
		t.Error("non-2xx status must error")
	}
}

func TestResolveWithoutURLParsesRaw(t *testing.T) {
	r := NewResolver()
	result, err := r.Resolve(context.Background(), Descriptor{Raw: `[{"a":1}]`, Format: FormatAuto})
	if err != nil {
		t.Fatal(err)
	}
	if result.Format != FormatJSON || len(result.Rows) != 1 {
		t.Errorf("result = %#v", result)
	}
}
