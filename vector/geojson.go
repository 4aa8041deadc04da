package vector

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

type geojsonFeatureCollection struct {
	Type     string           `json:"type"`
	Features []geojsonFeature `json:"features"`
}

type geojsonFeature struct {
	Type       string          `json:"type"`
	Geometry   geojsonGeometry `json:"geometry"`
	Properties map[string]int  `json:"properties"`
}

type geojsonGeometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// WriteGeoJSON writes the collection to path as a GeoJSON feature
// collection with a "label" property per feature.
func WriteGeoJSON(c *Collection, path string) error {
	fc := geojsonFeatureCollection{Type: "FeatureCollection"}
	for _, f := range c.Features {
		coords := make([][][2]float64, 0, len(f.Rings))
		for _, ring := range f.Rings {
			r := make([][2]float64, 0, len(ring))
			for _, p := range ring {
				r = append(r, [2]float64{p.X, p.Y})
			}
			coords = append(coords, r)
		}
		fc.Features = append(fc.Features, geojsonFeature{
			Type:       "Feature",
			Geometry:   geojsonGeometry{Type: "Polygon", Coordinates: coords},
			Properties: map[string]int{"label": f.Label},
		})
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return errors.Wrap(err, "encoding geojson")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing geojson %q", path)
	}
	return nil
}
