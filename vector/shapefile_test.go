package vector

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"go.viam.com/test"

	"github.com/geoscope/otbsegm/geo"
)

const testWKT = `GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433]]`

func rectangle(minX, minY, maxX, maxY float64) *shp.Polygon {
	points := []shp.Point{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
		{X: minX, Y: minY},
	}
	return &shp.Polygon{
		Box:       shp.Box{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY},
		NumParts:  1,
		NumPoints: int32(len(points)),
		Parts:     []int32{0},
		Points:    points,
	}
}

func writeTestShapefile(t *testing.T, path string, labels map[*shp.Polygon]int, withPrj bool) {
	t.Helper()
	writer, err := shp.Create(path, shp.POLYGON)
	test.That(t, err, test.ShouldBeNil)
	err = writer.SetFields([]shp.Field{shp.NumberField("DN", 10)})
	test.That(t, err, test.ShouldBeNil)

	row := 0
	for poly, label := range labels {
		writer.Write(poly)
		err = writer.WriteAttribute(row, 0, label)
		test.That(t, err, test.ShouldBeNil)
		row++
	}
	writer.Close()

	if withPrj {
		prj := strings.TrimSuffix(path, ".shp") + ".prj"
		test.That(t, os.WriteFile(prj, []byte(testWKT), 0o644), test.ShouldBeNil)
	}
}

func TestReadShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segments.shp")
	writeTestShapefile(t, path, map[*shp.Polygon]int{
		rectangle(0, 0, 6, 4): 1,
		rectangle(6, 0, 10, 4): 2,
	}, true)

	coll, err := ReadShapefile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, coll.Len(), test.ShouldEqual, 2)
	test.That(t, coll.CRS, test.ShouldEqual, testWKT)
	test.That(t, coll.Labels(), test.ShouldHaveLength, 2)

	for _, f := range coll.Features {
		test.That(t, f.Rings, test.ShouldHaveLength, 1)
		test.That(t, f.Rings[0], test.ShouldHaveLength, 5)
		test.That(t, f.Label, test.ShouldBeGreaterThan, 0)
	}

	ext := coll.Extent()
	test.That(t, ext.ApproxEqual(geo.NewExtent(0, 0, 10, 4), 1e-9), test.ShouldBeTrue)
}

func TestReadShapefileNoProjection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.shp")
	writeTestShapefile(t, path, map[*shp.Polygon]int{rectangle(1, 1, 2, 2): 7}, false)

	coll, err := ReadShapefile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, coll.CRS, test.ShouldEqual, "")
	test.That(t, coll.Features[0].Label, test.ShouldEqual, 7)
}

func TestReadShapefileMissing(t *testing.T) {
	_, err := ReadShapefile(filepath.Join(t.TempDir(), "nope.shp"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestWriteGeoJSON(t *testing.T) {
	coll := &Collection{Features: []Feature{{
		Rings: [][]Point{{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}},
		Label: 3,
	}}}

	path := filepath.Join(t.TempDir(), "out.geojson")
	test.That(t, WriteGeoJSON(coll, path), test.ShouldBeNil)

	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string         `json:"type"`
				Coordinates [][][2]float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]int `json:"properties"`
		} `json:"features"`
	}
	test.That(t, json.Unmarshal(data, &decoded), test.ShouldBeNil)
	test.That(t, decoded.Type, test.ShouldEqual, "FeatureCollection")
	test.That(t, decoded.Features, test.ShouldHaveLength, 1)
	test.That(t, decoded.Features[0].Geometry.Type, test.ShouldEqual, "Polygon")
	test.That(t, decoded.Features[0].Geometry.Coordinates[0], test.ShouldHaveLength, 5)
	test.That(t, decoded.Features[0].Properties["label"], test.ShouldEqual, 3)
}
