package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go-dashboards/internal/features/widget"
)

type DataSourceService interface {
	ResolveURL(ctx context.Context, url, format string) (*Result, error)
	ParseText(ctx context.Context, text, format string) (*Result, error)
	ParseUpload(ctx context.Context, filename string, file io.Reader) (*Result, error)
	ResolveKPI(ctx context.Context, req *KPIRequest) (any, error)
	WidgetValue(widgetID string) (CachedValue, bool)
}

type DataSourceServiceImpl struct {
	Resolver  Resolver
	Refresher *Refresher
}

func NewDataSourceService(resolver Resolver, refresher *Refresher) DataSourceService {
	return &DataSourceServiceImpl{
		Resolver:  resolver,
		Refresher: refresher,
	}
}

func (s *DataSourceServiceImpl) ResolveURL(ctx context.Context, url, format string) (*Result, error) {
	if url == "" {
		return nil, errors.New("url is required")
	}
	result, err := s.Resolver.Resolve(ctx, Descriptor{SourceType: widget.SourceURL, URL: url, Format: format})
	return withChartFields(result), err
}

func (s *DataSourceServiceImpl) ParseText(ctx context.Context, text, format string) (*Result, error) {
	result, err := s.Resolver.ParseText(text, format)
	return withChartFields(result), err
}

func (s *DataSourceServiceImpl) ParseUpload(ctx context.Context, filename string, file io.Reader) (*Result, error) {
	if filename == "" {
		return nil, errors.New("file name is required")
	}
	result, err := s.Resolver.ParseFile(filename, file)
	return withChartFields(result), err
}

// withChartFields annotates a parse result with the axis suggestion a chart
// built from it should start with, honoring source column order.
func withChartFields(result *Result) *Result {
	if result == nil || len(result.Rows) == 0 {
		return result
	}
	rows := make([]any, len(result.Rows))
	for i, row := range result.Rows {
		rows[i] = map[string]any(row)
	}
	result.XField, result.YFields = widget.InferFields(rows, result.Columns)
	return result
}

// ResolveKPI computes a single display value. Code mode runs the sandboxed
// script; url mode fetches and either walks the jsonPath or takes the first
// cell of the first row, exactly as the KPI card does on screen.
func (s *DataSourceServiceImpl) ResolveKPI(ctx context.Context, req *KPIRequest) (any, error) {
	switch req.SourceType {
	case widget.SourceCode:
		return RunValueScript(ctx, req.Code)

	case widget.SourceURL:
		if req.URL == "" {
			return nil, errors.New("url is required")
		}
		result, err := s.Resolver.Resolve(ctx, Descriptor{
			SourceType: widget.SourceURL,
			URL:        req.URL,
			Format:     req.Format,
		})
		if err != nil {
			return nil, err
		}

		if result.Format == FormatJSON && req.JSONPath != "" {
			var parsed any
			if err := json.Unmarshal([]byte(result.Raw), &parsed); err != nil {
				return nil, err
			}
			return GetByPath(parsed, req.JSONPath), nil
		}

		if len(result.Rows) > 0 && len(result.Columns) > 0 {
			return result.Rows[0][result.Columns[0]], nil
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported kpi source '%s'", req.SourceType)
	}
}

func (s *DataSourceServiceImpl) WidgetValue(widgetID string) (CachedValue, bool) {
	return s.Refresher.Value(widgetID)
}
