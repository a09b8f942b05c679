package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/levesol/solarproposal/pkg/types"
)

var (
	chartBlue   = drawing.ColorFromHex("1f3a5f")
	chartOrange = drawing.ColorFromHex("f5862e")
	chartGreen  = drawing.ColorFromHex("3d8c40")
)

func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(f))
	}
	return ""
}

// paybackChart plots the cumulative position over the projection horizon:
// yearly savings accumulate against the upfront investment, crossing zero at
// the payback year.
func paybackChart(p *types.Proposal) ([]byte, error) {
	xs := make([]float64, len(p.YearlyProjection))
	ys := make([]float64, len(p.YearlyProjection))
	cumulative := -p.Financial.InvestmentTotal
	for i, r := range p.YearlyProjection {
		cumulative += r.MonthlySavings * 12
		xs[i] = float64(r.CalendarYear)
		ys[i] = cumulative
	}

	graph := chart.Chart{
		Width:  1000,
		Height: 420,
		XAxis: chart.XAxis{
			ValueFormatter: yearFormatter,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("R$ %.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Posição acumulada",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chartGreen,
					StrokeWidth: 2.5,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render payback chart: %w", err)
	}
	return buf.Bytes(), nil
}

// billsChart plots the projected monthly bill with and without the system,
// year by year. Both series stay positive so they read cleanly even when the
// early compensation years erode the savings.
func billsChart(p *types.Proposal) ([]byte, error) {
	xs := make([]float64, len(p.YearlyProjection))
	without := make([]float64, len(p.YearlyProjection))
	with := make([]float64, len(p.YearlyProjection))
	for i, r := range p.YearlyProjection {
		xs[i] = float64(r.CalendarYear)
		without[i] = r.BillWithoutSystem
		with[i] = r.BillWithSystem
	}

	graph := chart.Chart{
		Width:  1000,
		Height: 420,
		XAxis: chart.XAxis{
			ValueFormatter: yearFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Sem sistema",
				XValues: xs,
				YValues: without,
				Style: chart.Style{
					StrokeColor: chartBlue,
					StrokeWidth: 2.5,
				},
			},
			chart.ContinuousSeries{
				Name:    "Com sistema",
				XValues: xs,
				YValues: with,
				Style: chart.Style{
					StrokeColor: chartOrange,
					StrokeWidth: 2.5,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render bills chart: %w", err)
	}
	return buf.Bytes(), nil
}

// firstYearChart compares the first-year monthly bill with and without the
// system as two bars.
func firstYearChart(p *types.Proposal) ([]byte, error) {
	graph := chart.BarChart{
		Width:    520,
		Height:   420,
		BarWidth: 140,
		Bars: []chart.Value{
			{
				Value: p.Financial.FirstYearBillWithout,
				Label: "Sem sistema",
				Style: chart.Style{FillColor: chartBlue, StrokeColor: chartBlue},
			},
			{
				Value: p.Financial.FirstYearBillWith,
				Label: "Com sistema",
				Style: chart.Style{FillColor: chartOrange, StrokeColor: chartOrange},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render first-year chart: %w", err)
	}
	return buf.Bytes(), nil
}
