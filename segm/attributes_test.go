package segm

import (
	"testing"

	"go.viam.com/test"
)

func TestMeanShiftParamsFromAttributes(t *testing.T) {
	params, err := MeanShiftParamsFromAttributes(map[string]interface{}{
		"spatialr": 7,
		"mode":     "raster",
		"mask":     "clouds.tif",
		"vector": map[string]interface{}{
			"tilesize": 256,
		},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, params.SpatialR, test.ShouldEqual, 7.0)
	test.That(t, params.Mode, test.ShouldEqual, ModeRaster)
	test.That(t, params.Mask, test.ShouldEqual, "clouds.tif")
	test.That(t, params.Vector.TileSize, test.ShouldEqual, 256.0)

	// unnamed attributes keep their defaults
	test.That(t, params.RangeR, test.ShouldEqual, 15.0)
	test.That(t, params.MaxIter, test.ShouldEqual, 100)
	test.That(t, params.Vector.Stitch, test.ShouldBeTrue)
}

func TestWatershedParamsFromAttributes(t *testing.T) {
	params, err := WatershedParamsFromAttributes(map[string]interface{}{
		"thresh": 0.05,
		"level":  0.5,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, params.Threshold, test.ShouldEqual, 0.05)
	test.That(t, params.Level, test.ShouldEqual, 0.5)
	test.That(t, params.Mode, test.ShouldEqual, ModeVector)
}

func TestLSMSParamsFromAttributes(t *testing.T) {
	params, err := LSMSParamsFromAttributes(map[string]interface{}{
		"tilesizex": 1000,
		"tilesizey": 800,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, params.TileSizeX, test.ShouldEqual, 1000)
	test.That(t, params.TileSizeY, test.ShouldEqual, 800)
	test.That(t, params.RAM, test.ShouldEqual, 256)
}

func TestMProfilesParamsFromAttributesBadValue(t *testing.T) {
	_, err := MProfilesParamsFromAttributes(map[string]interface{}{
		"size": "not-a-number",
	})
	test.That(t, err, test.ShouldNotBeNil)
}
