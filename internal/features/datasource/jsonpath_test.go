package datasource

import (
	"encoding/json"
	"testing"
)

func TestGetByPath(t *testing.T) {
	var doc any
	payload := `{
		"price": 42,
		"data": [
			{"symbol": "BTC", "quote": {"usd": 65000.5}},
			{"symbol": "ETH"}
		],
		"meta": {"count": 2}
	}`
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want any
	}{
		{"Top Level Key", "price", float64(42)},
		{"Nested Key", "meta.count", float64(2)},
		{"Indexed Segment", "data[0].symbol", "BTC"},
		{"Deep Indexed Path", "data[0].quote.usd", 65000.5},
		{"Index Out Of Range", "data[5].symbol", nil},
		{"Index Into Non Array", "meta[0]", nil},
		{"Missing Key", "data[1].quote", nil},
		{"Step Through Missing", "nope.deeper.still", nil},
		{"Empty Path", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetByPath(doc, tt.path); got != tt.want {
				t.Errorf("GetByPath(%q) = %v (%T), want %v", tt.path, got, got, tt.want)
			}
		})
	}
}

func TestGetByPathNilDocument(t *testing.T) {
	if got := GetByPath(nil, "a.b"); got != nil {
		t.Errorf("GetByPath(nil) = %v, want nil", got)
	}
}
