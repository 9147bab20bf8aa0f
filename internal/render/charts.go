package render

import (
	"bytes"
	"image/color"

	"github.com/ougirez/silverboard/internal/domain"
	"github.com/shopspring/decimal"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func writePNG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PriceTrend renders the filtered price band as a line over years.
func PriceTrend(records []domain.PriceRecord) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Silver Price Trend"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Price (INR per kg)"

	points := make(plotter.XYs, len(records))
	for i, rec := range records {
		points[i].X = float64(rec.Year)
		points[i].Y = rec.PricePerKg.InexactFloat64()
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, err
	}
	line.Width = vg.Points(2)
	line.Color = color.RGBA{R: 70, G: 70, B: 70, A: 255}

	p.Add(line, plotter.NewGrid())

	return writePNG(p, 12*vg.Inch, 6*vg.Inch)
}

// TopStates renders the ranked summaries as a bar chart, largest first.
func TopStates(groups []domain.RegionSummary) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Top Silver Consuming States"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "Silver Purchased (kg)"

	values := make(plotter.Values, len(groups))
	names := make([]string, len(groups))
	for i, g := range groups {
		values[i] = g.QuantityKg.InexactFloat64()
		names[i] = g.StateName
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}

	p.Add(bars)
	p.NominalX(names...)

	return writePNG(p, 10*vg.Inch, 6*vg.Inch)
}

// PeriodTotal renders a single labeled bar for the period total.
func PeriodTotal(label string, total decimal.Decimal) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Overall Silver Sales - " + label
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "Silver Purchased (kg)"

	bars, err := plotter.NewBarChart(plotter.Values{total.InexactFloat64()}, vg.Points(60))
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}

	p.Add(bars)
	p.NominalX(label)

	return writePNG(p, 6*vg.Inch, 6*vg.Inch)
}
