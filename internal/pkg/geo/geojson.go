package geo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/ougirez/silverboard/internal/pkg/constants"
)

// CRS is a coordinate reference system label, e.g. "EPSG:4326".
type CRS string

// WGS84 is assumed whenever a layer carries no crs member.
const WGS84 CRS = "EPSG:4326"

// crs84 is the legacy GeoJSON spelling of WGS84 with lon/lat axis order.
const crs84 = "urn:ogc:def:crs:ogc:1.3:crs84"

type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   Geometry               `json:"geometry"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	CRS      *crsField `json:"crs,omitempty"`
	Features []Feature `json:"features"`
}

type crsField struct {
	Type       string `json:"type"`
	Properties struct {
		Name string `json:"name"`
	} `json:"properties"`
}

// ParseFeatureCollection decodes a GeoJSON layer.
func ParseFeatureCollection(data []byte) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := sonic.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse geojson: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("unexpected geojson type %q", fc.Type)
	}
	return &fc, nil
}

// CRSName returns the declared CRS, or WGS84 when the layer has none.
func (fc *FeatureCollection) CRSName() CRS {
	if fc.CRS == nil || fc.CRS.Properties.Name == "" {
		return WGS84
	}
	return CRS(fc.CRS.Properties.Name)
}

// Property looks up a feature property by case-insensitive name and returns
// its string form.
func (f *Feature) Property(name string) (string, bool) {
	for k, v := range f.Properties {
		if strings.EqualFold(k, name) {
			s, ok := v.(string)
			return s, ok
		}
	}
	return "", false
}

// Point decodes a Point geometry as (lon, lat).
func (g *Geometry) Point() (float64, float64, error) {
	if g.Type != "Point" {
		return 0, 0, fmt.Errorf("geometry is %q, not Point", g.Type)
	}
	var coords []float64
	if err := sonic.Unmarshal(g.Coordinates, &coords); err != nil {
		return 0, 0, fmt.Errorf("failed to parse point coordinates: %w", err)
	}
	if len(coords) < 2 {
		return 0, 0, fmt.Errorf("point has %d coordinates", len(coords))
	}
	return coords[0], coords[1], nil
}

// Rings decodes a Polygon or MultiPolygon geometry into its outer rings,
// holes dropped. Each ring is a closed sequence of [lon, lat] pairs.
func (g *Geometry) Rings() ([][][2]float64, error) {
	switch g.Type {
	case "Polygon":
		var poly [][][2]float64
		if err := sonic.Unmarshal(g.Coordinates, &poly); err != nil {
			return nil, fmt.Errorf("failed to parse polygon coordinates: %w", err)
		}
		if len(poly) == 0 {
			return nil, nil
		}
		return [][][2]float64{poly[0]}, nil
	case "MultiPolygon":
		var multi [][][][2]float64
		if err := sonic.Unmarshal(g.Coordinates, &multi); err != nil {
			return nil, fmt.Errorf("failed to parse multipolygon coordinates: %w", err)
		}
		rings := make([][][2]float64, 0, len(multi))
		for _, poly := range multi {
			if len(poly) > 0 {
				rings = append(rings, poly[0])
			}
		}
		return rings, nil
	default:
		return nil, fmt.Errorf("geometry is %q, not Polygon or MultiPolygon", g.Type)
	}
}

// CheckCompatible verifies two layers share one CRS before they are
// overlaid. Reprojection is not supported, so a mismatch is an error for
// the map section.
func CheckCompatible(a, b CRS) error {
	if canonical(a) == canonical(b) {
		return nil
	}
	return constants.NewCRSMismatchError(string(a), string(b))
}

func canonical(c CRS) CRS {
	lower := strings.ToLower(string(c))
	if lower == crs84 || lower == strings.ToLower(string(WGS84)) {
		return WGS84
	}
	return CRS(lower)
}
