package raster

import (
	"github.com/lukeroth/gdal"
	"github.com/pkg/errors"
)

const gtiffDriver = "GTiff"

// ReadGeoTIFF reads the raster at path into memory, all bands.
func ReadGeoTIFF(path string) (*Raster, error) {
	ds, err := gdal.Open(path, gdal.ReadOnly)
	if err != nil {
		return nil, errors.Wrapf(err, "opening raster %q", path)
	}
	defer ds.Close()

	r := New(ds.RasterXSize(), ds.RasterYSize(), ds.RasterCount())
	r.SetTransform(ds.GeoTransform())
	r.SetProjection(ds.Projection())

	for b := 0; b < r.bands; b++ {
		band := ds.RasterBand(b + 1)
		if err := band.IO(gdal.Read, 0, 0, r.width, r.height, r.Band(b), r.width, r.height, 0, 0); err != nil {
			return nil, errors.Wrapf(err, "reading band %d of %q", b+1, path)
		}
	}
	return r, nil
}

// WriteGeoTIFF writes the raster to path as a GeoTIFF, carrying the
// geotransform and projection through.
func WriteGeoTIFF(r *Raster, path string) error {
	driver, err := gdal.GetDriverByName(gtiffDriver)
	if err != nil {
		return errors.Wrap(err, "gtiff driver unavailable")
	}

	ds := driver.Create(path, r.width, r.height, r.bands, gdal.Float64, nil)
	defer ds.Close()

	if err := ds.SetGeoTransform(r.transform); err != nil {
		return errors.Wrapf(err, "setting geotransform on %q", path)
	}
	if r.projection != "" {
		if err := ds.SetProjection(r.projection); err != nil {
			return errors.Wrapf(err, "setting projection on %q", path)
		}
	}

	for b := 0; b < r.bands; b++ {
		band := ds.RasterBand(b + 1)
		if err := band.IO(gdal.Write, 0, 0, r.width, r.height, r.Band(b), r.width, r.height, 0, 0); err != nil {
			return errors.Wrapf(err, "writing band %d of %q", b+1, path)
		}
	}
	return nil
}
