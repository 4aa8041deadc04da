package vector

import (
	"os"
	"strconv"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// labelFieldNames are the attribute names the toolbox uses for the
// segment label, probed case-insensitively.
var labelFieldNames = []string{"DN", "label"}

// ReadShapefile reads the polygon shapefile at path into a Collection.
// The segment label is taken from the first matching label attribute, or
// failing that the first numeric attribute. A side-car .prj file, when
// present, supplies the CRS.
func ReadShapefile(path string) (*Collection, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening shapefile %q", path)
	}
	defer goutils.UncheckedErrorFunc(reader.Close)

	labelIdx, err := findLabelField(reader.Fields())
	if err != nil {
		return nil, errors.Wrapf(err, "in shapefile %q", path)
	}

	coll := &Collection{CRS: readProjection(path)}
	for reader.Next() {
		row, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			return nil, errors.Errorf("feature %d of %q is %T, want polygon", row, path, shape)
		}

		label := 0
		if labelIdx >= 0 {
			raw := strings.TrimSpace(reader.ReadAttribute(row, labelIdx))
			if label, err = strconv.Atoi(raw); err != nil {
				return nil, errors.Wrapf(err, "feature %d of %q has non-integer label %q", row, path, raw)
			}
		}

		coll.Features = append(coll.Features, Feature{
			Rings: polygonRings(poly),
			Label: label,
		})
	}
	if err := reader.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading shapefile %q", path)
	}
	return coll, nil
}

// findLabelField returns the index of the label attribute, or -1 when the
// file carries no attributes at all.
func findLabelField(fields []shp.Field) (int, error) {
	if len(fields) == 0 {
		return -1, nil
	}
	for _, want := range labelFieldNames {
		for i, f := range fields {
			if strings.EqualFold(f.String(), want) {
				return i, nil
			}
		}
	}
	for i, f := range fields {
		if f.Fieldtype == 'N' {
			return i, nil
		}
	}
	return 0, errors.New("no label attribute found")
}

func polygonRings(poly *shp.Polygon) [][]Point {
	rings := make([][]Point, 0, len(poly.Parts))
	for i, start := range poly.Parts {
		end := int32(len(poly.Points))
		if i+1 < len(poly.Parts) {
			end = poly.Parts[i+1]
		}
		ring := make([]Point, 0, end-start)
		for _, p := range poly.Points[start:end] {
			ring = append(ring, Point{X: p.X, Y: p.Y})
		}
		rings = append(rings, ring)
	}
	return rings
}

// readProjection returns the WKT in the shapefile's .prj side-car, or ""
// when there is none.
func readProjection(shpPath string) string {
	prj := strings.TrimSuffix(shpPath, ".shp") + ".prj"
	data, err := os.ReadFile(prj)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
