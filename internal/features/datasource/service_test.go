package datasource

import (
	"context"
	"reflect"
	"testing"
)

func TestParseTextSuggestsChartFields(t *testing.T) {
	svc := NewDataSourceService(NewResolver(), nil)

	result, err := svc.ParseText(context.Background(), "date,btc,eth\n2025-08-01,62000,3200", "auto")
	if err != nil {
		t.Fatal(err)
	}
	if result.XField != "date" {
		t.Errorf("xField = %q, want date (CSV header order)", result.XField)
	}
	if !reflect.DeepEqual(result.YFields, []string{"btc", "eth"}) {
		t.Errorf("yFields = %v, want [btc eth]", result.YFields)
	}
}

func TestParseTextNoRowsNoSuggestion(t *testing.T) {
	svc := NewDataSourceService(NewResolver(), nil)

	result, err := svc.ParseText(context.Background(), "", "auto")
	if err != nil {
		t.Fatal(err)
	}
	if result.XField != "" || len(result.YFields) != 0 {
		t.Errorf("empty payload suggested axes: %q %v", result.XField, result.YFields)
	}
}
