package workspace

import (
	"go-dashboards/internal/features/dashboard"
	"go-dashboards/internal/features/datasource"
	"go-dashboards/internal/features/widget"
	"go-dashboards/pkg/utils"
)

// Sample payloads for the starter pages. Kept as pasted CSV so the preset
// widgets look exactly like ones a user would build by hand.
const (
	presetCryptoCSV = "date,btc,eth\n2025-08-01,62000,3200\n2025-08-02,62500,3220\n2025-08-03,61800,3185\n2025-08-04,63000,3250\n2025-08-05,64000,3305"
	presetMacroCSV  = "date,cpi_yoy,unemployment_rate\n2025-03,3.5,3.9\n2025-04,3.4,3.9\n2025-05,3.3,4.0\n2025-06,3.2,4.0\n2025-07,3.1,4.0"
	presetTableCSV  = "rank,name,symbol,price,mcap_usd\n1,Bitcoin,BTC,64000,1260000000000\n2,Ethereum,ETH,3300,396000000000\n3,BNB,BNB,600,92000000000\n4,Solana,SOL,140,65000000000\n5,USDT,USDT,1,118000000000"

	tvBTC = "https://s.tradingview.com/widgetembed/?symbol=BINANCE%3ABTCUSDT&interval=60&hidesidetoolbar=1&symboledit=1&saveimage=1&toolbarbg=f1f3f6&theme=light&style=1&timezone=Etc%2FUTC&withdateranges=1&hideideas=1"
	tvDXY = "https://s.tradingview.com/widgetembed/?symbol=TVC%3ADXY&interval=D&hidesidetoolbar=1&symboledit=1&saveimage=1&toolbarbg=f1f3f6&theme=light&style=1&timezone=Etc%2FUTC&withdateranges=1&hideideas=1"
)

// PresetDashboards builds the starter workspace: an empty Main page plus a
// crypto page and a macro page with sample widgets. Used when a user has no
// stored state anywhere.
func PresetDashboards(resolver datasource.Resolver) []dashboard.Dashboard {
	cripto := dashboard.Dashboard{
		ID:   utils.NewID(),
		Name: "Cripto",
		Widgets: []widget.Widget{
			{
				ID: utils.NewID(), Type: widget.TypeIframe, Title: "BTC/USDT — Grande",
				Width: 500, Height: 400,
				Config: widget.Normalize(widget.TypeIframe, map[string]any{"url": tvBTC}),
			},
			{
				ID: utils.NewID(), Type: widget.TypeIframe, Title: "DXY — Pequeno",
				Width: 250, Height: 200,
				Config: widget.Normalize(widget.TypeIframe, map[string]any{"url": tvDXY}),
			},
			{
				ID: utils.NewID(), Type: widget.TypeIframe, Title: "FRED — Inflação",
				Width: 400, Height: 300,
				Config: widget.Normalize(widget.TypeIframe, map[string]any{
					"url": "https://fred.stlouisfed.org/graph/?g=1aXz",
					"scroll": map[string]any{
						"forceIframeScroll": true,
					},
				}),
			},
			{
				ID: utils.NewID(), Type: widget.TypeChart, Title: "Gráfico — Médio",
				Width: 350, Height: 250,
				Config: chartConfigFromCSV(resolver, presetCryptoCSV),
			},
			{
				ID: utils.NewID(), Type: widget.TypeTable, Title: "Tabela — Largo",
				Width: 600, Height: 180,
				Config: tableConfigFromCSV(resolver, presetTableCSV),
			},
		},
	}

	macro := dashboard.Dashboard{
		ID:   utils.NewID(),
		Name: "Macro",
		Widgets: []widget.Widget{
			{
				ID: utils.NewID(), Type: widget.TypeChart, Title: "Inflação (YoY) x Desemprego (amostra)",
				Width: 500, Height: 350,
				Config: chartConfigFromCSV(resolver, presetMacroCSV),
			},
		},
	}

	main := dashboard.Dashboard{ID: utils.NewID(), Name: "Main", Widgets: []widget.Widget{}}

	return []dashboard.Dashboard{main, cripto, macro}
}

func chartConfigFromCSV(resolver datasource.Resolver, raw string) map[string]any {
	rows, columns := parsePreset(resolver, raw)
	xField, yFields := widget.InferFields(rows, columns)

	return widget.Normalize(widget.TypeChart, map[string]any{
		"sourceType": widget.SourcePaste,
		"raw":        raw,
		"format":     datasource.FormatCSV,
		"data":       rows,
		"xField":     xField,
		"yFields":    yFields,
	})
}

func tableConfigFromCSV(resolver datasource.Resolver, raw string) map[string]any {
	rows, columns := parsePreset(resolver, raw)

	return widget.Normalize(widget.TypeTable, map[string]any{
		"sourceType":   widget.SourcePaste,
		"raw":          raw,
		"format":       datasource.FormatCSV,
		"data":         rows,
		"columnsOrder": columns,
	})
}

func parsePreset(resolver datasource.Resolver, raw string) ([]any, []string) {
	result, err := resolver.ParseText(raw, datasource.FormatCSV)
	if err != nil {
		return []any{}, nil
	}
	rows := make([]any, len(result.Rows))
	for i, row := range result.Rows {
		rows[i] = map[string]any(row)
	}
	return rows, result.Columns
}
