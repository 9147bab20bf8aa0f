package render

import (
	"fmt"
	"image/color"

	"github.com/ougirez/silverboard/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	minBubbleRadius = 4  // points
	maxBubbleRadius = 14 // points
)

// noDataFill marks regions without a joined quantity. Deliberately outside
// the grayscale ramp so "no data" never reads as "zero".
var noDataFill = color.RGBA{R: 228, G: 236, B: 246, A: 255}

// Map renders the configured map mode.
func Map(data *domain.MapData) ([]byte, error) {
	switch data.Mode {
	case domain.MapModePolygon:
		return choropleth(data)
	case domain.MapModePoint:
		return bubbleMap(data)
	default:
		return nil, fmt.Errorf("unknown map mode %q", data.Mode)
	}
}

// choropleth fills each state polygon with an intensity proportional to its
// quantity.
func choropleth(data *domain.MapData) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "State-wise Silver Purchases (kg)"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.HideAxes()

	for _, region := range data.Regions {
		fill := color.Color(noDataFill)
		if region.QuantityKg != nil {
			fill = rampGray(ratio(data, region))
		}
		for _, ring := range region.Rings {
			poly, err := plotter.NewPolygon(ringXYs(ring))
			if err != nil {
				return nil, err
			}
			poly.Color = fill
			poly.LineStyle.Color = color.Black
			poly.LineStyle.Width = vg.Points(0.5)
			p.Add(poly)
		}
	}

	return writePNG(p, 10*vg.Inch, 10*vg.Inch)
}

// bubbleMap draws the boundary outline as a static background, then one
// bubble per joined capital, radius interpolated linearly by quantity.
// Points without a joined quantity are left off the overlay.
func bubbleMap(data *domain.MapData) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "State-wise Silver Purchases (kg)"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.HideAxes()

	for _, ring := range data.Boundary {
		outline, err := plotter.NewPolygon(ringXYs(ring))
		if err != nil {
			return nil, err
		}
		outline.Color = nil
		outline.LineStyle.Color = color.Black
		outline.LineStyle.Width = vg.Points(1)
		p.Add(outline)
	}

	labels := plotter.XYLabels{}
	for _, region := range data.Regions {
		if region.QuantityKg == nil {
			continue
		}

		bubble, err := plotter.NewScatter(plotter.XYs{{X: region.Lon, Y: region.Lat}})
		if err != nil {
			return nil, err
		}
		r := ratio(data, region)
		bubble.GlyphStyle.Shape = draw.CircleGlyph{}
		bubble.GlyphStyle.Radius = vg.Points(minBubbleRadius + r*(maxBubbleRadius-minBubbleRadius))
		bubble.GlyphStyle.Color = rampGray(r)
		p.Add(bubble)

		labels.XYs = append(labels.XYs, plotter.XY{X: region.Lon, Y: region.Lat})
		labels.Labels = append(labels.Labels, region.RegionCode)
	}

	labelPlot, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, err
	}
	p.Add(labelPlot)

	return writePNG(p, 10*vg.Inch, 10*vg.Inch)
}

func ratio(data *domain.MapData, region domain.JoinedRegion) float64 {
	if region.QuantityKg == nil || data.MaxKg.IsZero() {
		return 0
	}
	return region.QuantityKg.Div(data.MaxKg).InexactFloat64()
}

// rampGray maps 0..1 onto light-to-dark gray.
func rampGray(r float64) color.Color {
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}
	return color.Gray{Y: uint8(220 - 190*r)}
}

func ringXYs(ring [][2]float64) plotter.XYs {
	xys := make(plotter.XYs, len(ring))
	for i, pt := range ring {
		xys[i].X = pt[0]
		xys[i].Y = pt[1]
	}
	return xys
}
