package raster

import (
	"testing"

	"go.viam.com/test"

	"github.com/geoscope/otbsegm/geo"
)

func TestRasterAccessors(t *testing.T) {
	r := New(4, 3, 2)
	test.That(t, r.Width(), test.ShouldEqual, 4)
	test.That(t, r.Height(), test.ShouldEqual, 3)
	test.That(t, r.Bands(), test.ShouldEqual, 2)

	r.SetValue(0, 2, 1, 7.0)
	r.SetValue(1, 3, 2, -1.5)
	test.That(t, r.Value(0, 2, 1), test.ShouldEqual, 7.0)
	test.That(t, r.Value(1, 3, 2), test.ShouldEqual, -1.5)
	test.That(t, r.Value(0, 0, 0), test.ShouldEqual, 0.0)

	// bands are independent views of the backing data
	band := r.Band(1)
	test.That(t, band, test.ShouldHaveLength, 12)
	test.That(t, band[2*4+3], test.ShouldEqual, -1.5)
}

func TestRasterLabel(t *testing.T) {
	r := New(2, 2, 1)
	r.SetValue(0, 1, 1, 41.6)
	test.That(t, r.Label(1, 1), test.ShouldEqual, 42)
	test.That(t, r.Label(0, 0), test.ShouldEqual, 0)
}

func TestRasterExtent(t *testing.T) {
	r := New(10, 5, 1)
	// north-up: negative pixel height
	r.SetTransform([6]float64{100, 2, 0, 60, 0, -2})

	ext := r.Extent()
	test.That(t, ext.ApproxEqual(geo.NewExtent(100, 50, 120, 60), 1e-9), test.ShouldBeTrue)
	test.That(t, ext.Width(), test.ShouldEqual, 20.0)
	test.That(t, ext.Height(), test.ShouldEqual, 10.0)
}

func TestRasterProjectionRoundTrip(t *testing.T) {
	r := New(1, 1, 1)
	test.That(t, r.Projection(), test.ShouldEqual, "")
	r.SetProjection(`PROJCS["WGS 84 / UTM zone 33N"]`)
	test.That(t, r.Projection(), test.ShouldContainSubstring, "UTM zone 33N")
}
