package widget

// Normalize rewrites cfg into the canonical shape for the given widget type,
// filling every missing key with its default. A chart with data but no xField
// gets its axis fields inferred, and yFields never contains the xField. The
// result is a fresh map; cfg is never mutated. Normalizing an already
// normalized config returns an equal map. Unknown types pass through
// untouched (empty map when cfg is nil).
func Normalize(t WidgetType, cfg map[string]any) map[string]any {
	switch t {
	case TypeText:
		return map[string]any{
			"text":      strOr(cfg, "text", ""),
			"size":      strOr(cfg, "size", "large"),
			"alignment": strOr(cfg, "alignment", "left"),
			"color":     strOr(cfg, "color", "default"),
		}
	case TypeSectionTitle:
		return map[string]any{
			"text": strOr(cfg, "text", ""),
			"size": strOr(cfg, "size", "large"),
		}
	case TypeIframe:
		scroll, _ := mapValue(cfg, "scroll")
		return map[string]any{
			"url":       strOr(cfg, "url", ""),
			"allowFull": boolOr(cfg, "allowFull", true),
			"border":    boolOr(cfg, "border", true),
			"scroll": map[string]any{
				"horizontal": strOr(scroll, "horizontal", "auto"),
				"vertical":   strOr(scroll, "vertical", "auto"),
				// any value other than an explicit false means visible
				"showScrollbars":    !isFalse(scroll, "showScrollbars"),
				"forceIframeScroll": isTrue(scroll, "forceIframeScroll"),
			},
		}
	case TypeEmbed:
		return map[string]any{
			"html": strOr(cfg, "html", ""),
		}
	case TypeChart:
		data := rowsOr(cfg, "data")
		xField := strOr(cfg, "xField", "")
		yFields := strSliceOr(cfg, "yFields")
		if xField == "" && len(data) > 0 {
			inferredX, inferredY := InferFields(data, nil)
			xField = inferredX
			if len(yFields) == 0 {
				yFields = inferredY
			}
		}
		if xField != "" {
			yFields = withoutField(yFields, xField)
		}
		return map[string]any{
			"sourceType":     strOr(cfg, "sourceType", SourcePaste),
			"raw":            strOr(cfg, "raw", ""),
			"url":            strOr(cfg, "url", ""),
			"format":         strOr(cfg, "format", "auto"),
			"refreshSeconds": numOr(cfg, "refreshSeconds", 0),
			"fileName":       strOr(cfg, "fileName", ""),
			"data":           data,
			"xField":         xField,
			"yFields":        yFields,
			"chartType":      strOr(cfg, "chartType", "line"),
			"stacked":        boolOr(cfg, "stacked", false),
			"showLegend":     boolOr(cfg, "showLegend", true),
			"showGrid":       boolOr(cfg, "showGrid", true),
		}
	case TypeTable:
		data := rowsOr(cfg, "data")
		columnsOrder := strSliceOr(cfg, "columnsOrder")
		if !hasSlice(cfg, "columnsOrder") {
			columnsOrder = ColumnsFromRows(data)
		}
		return map[string]any{
			"sourceType":     strOr(cfg, "sourceType", SourcePaste),
			"raw":            strOr(cfg, "raw", ""),
			"url":            strOr(cfg, "url", ""),
			"format":         strOr(cfg, "format", "auto"),
			"refreshSeconds": numOr(cfg, "refreshSeconds", 0),
			"fileName":       strOr(cfg, "fileName", ""),
			"data":           data,
			"columnsOrder":   columnsOrder,
			"columnsHidden":  strSliceOr(cfg, "columnsHidden"),
			"maxRows":        numOr(cfg, "maxRows", 500),
			"stickyHeader":   boolOr(cfg, "stickyHeader", true),
		}
	case TypeKPI:
		return map[string]any{
			"label":          strOr(cfg, "label", ""),
			"value":          valueOr(cfg, "value", ""),
			"note":           strOr(cfg, "note", ""),
			"sourceType":     strOr(cfg, "sourceType", SourcePaste),
			"url":            strOr(cfg, "url", ""),
			"format":         strOr(cfg, "format", "auto"),
			"refreshSeconds": numOr(cfg, "refreshSeconds", 0),
			"jsonPath":       strOr(cfg, "jsonPath", ""),
			"code":           strOr(cfg, "code", "value := 0"),
		}
	default:
		if cfg == nil {
			return map[string]any{}
		}
		out := make(map[string]any, len(cfg))
		for k, v := range cfg {
			out[k] = v
		}
		return out
	}
}

// ClearInactiveSource wipes config fields that belong to source modes other
// than the active one. Applied on every save of a chart, table or kpi widget
// so a stale URL never resurrects after the user switches to pasted data.
func ClearInactiveSource(t WidgetType, cfg map[string]any) map[string]any {
	if cfg == nil {
		return cfg
	}
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		out[k] = v
	}

	switch t {
	case TypeChart, TypeTable:
		switch strOr(out, "sourceType", SourcePaste) {
		case SourceFile:
			out["url"] = ""
			out["raw"] = ""
			out["format"] = "auto"
			out["refreshSeconds"] = float64(0)
		case SourceURL:
			out["raw"] = ""
			out["fileName"] = ""
			out["format"] = "auto"
		case SourcePaste:
			out["url"] = ""
			out["fileName"] = ""
			out["format"] = "auto"
			out["refreshSeconds"] = float64(0)
		}
		if strOr(out, "raw", "") == "" && strOr(out, "fileName", "") == "" && strOr(out, "url", "") == "" {
			out["data"] = []any{}
		}
	case TypeKPI:
		switch strOr(out, "sourceType", SourcePaste) {
		case SourceURL:
			out["code"] = ""
			out["format"] = "auto"
		case SourceCode:
			out["url"] = ""
			out["jsonPath"] = ""
			out["format"] = "auto"
			out["refreshSeconds"] = float64(0)
		default: // paste, fixed value
			out["url"] = ""
			out["jsonPath"] = ""
			out["code"] = ""
			out["format"] = "auto"
			out["refreshSeconds"] = float64(0)
		}
	}
	return out
}

// ColumnsFromRows derives a table's column order from the keys of the first
// row. Map iteration order is not stable, so keys are sorted; resolvers that
// know the real header order (CSV, XLSX) pass it along instead.
func ColumnsFromRows(rows []any) []string {
	if len(rows) == 0 {
		return []string{}
	}
	first, ok := rows[0].(map[string]any)
	if !ok {
		return []string{}
	}
	cols := make([]string, 0, len(first))
	for k := range first {
		cols = append(cols, k)
	}
	sortStrings(cols)
	return cols
}

// InferFields picks a chart's x field and up to five y fields from the first
// row of a resolved data set.
func InferFields(rows []any, ordered []string) (xField string, yFields []string) {
	keys := ordered
	if len(keys) == 0 {
		keys = ColumnsFromRows(rows)
	}
	if len(keys) == 0 {
		return "", []string{}
	}
	xField = keys[0]
	yFields = make([]string, 0, 5)
	for _, k := range keys[1:] {
		if k == xField {
			continue
		}
		yFields = append(yFields, k)
		if len(yFields) == 5 {
			break
		}
	}
	return xField, yFields
}
