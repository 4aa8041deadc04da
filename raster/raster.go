// Package raster provides an in-memory georeferenced raster and GeoTIFF
// I/O for staging segmentation inputs and reading labeled outputs.
package raster

import (
	"math"

	"github.com/geoscope/otbsegm/geo"
)

// Raster is an in-memory georeferenced grid of samples. Band data is
// stored band-major. The geotransform follows the GDAL convention:
// {originX, pixelWidth, rotX, originY, rotY, pixelHeight} with a negative
// pixel height for north-up data.
type Raster struct {
	width  int
	height int
	bands  int

	data       []float64
	transform  [6]float64
	projection string
}

// New allocates a zero-filled raster of the given shape.
func New(width, height, bands int) *Raster {
	return &Raster{
		width:  width,
		height: height,
		bands:  bands,
		data:   make([]float64, width*height*bands),
	}
}

// Width returns the number of columns.
func (r *Raster) Width() int {
	return r.width
}

// Height returns the number of rows.
func (r *Raster) Height() int {
	return r.height
}

// Bands returns the number of bands.
func (r *Raster) Bands() int {
	return r.bands
}

// Value returns the sample at (x, y) in the given zero-based band.
func (r *Raster) Value(band, x, y int) float64 {
	return r.data[band*r.width*r.height+y*r.width+x]
}

// SetValue assigns the sample at (x, y) in the given zero-based band.
func (r *Raster) SetValue(band, x, y int, v float64) {
	r.data[band*r.width*r.height+y*r.width+x] = v
}

// Label returns the first-band sample at (x, y) rounded to the nearest
// integer. Segment-labeled outputs carry one integer label per pixel.
func (r *Raster) Label(x, y int) int {
	return int(math.Round(r.Value(0, x, y)))
}

// Band returns the backing samples of the given zero-based band.
func (r *Raster) Band(band int) []float64 {
	n := r.width * r.height
	return r.data[band*n : (band+1)*n]
}

// Transform returns the geotransform.
func (r *Raster) Transform() [6]float64 {
	return r.transform
}

// SetTransform assigns the geotransform.
func (r *Raster) SetTransform(t [6]float64) {
	r.transform = t
}

// Projection returns the projection as WKT; empty when ungeoreferenced.
func (r *Raster) Projection() string {
	return r.projection
}

// SetProjection assigns the projection WKT.
func (r *Raster) SetProjection(wkt string) {
	r.projection = wkt
}

// Extent returns the spatial extent implied by the geotransform and the
// raster shape.
func (r *Raster) Extent() geo.Extent {
	t := r.transform
	x0 := t[0]
	y0 := t[3]
	x1 := t[0] + t[1]*float64(r.width) + t[2]*float64(r.height)
	y1 := t[3] + t[4]*float64(r.width) + t[5]*float64(r.height)
	return geo.NewExtent(math.Min(x0, x1), math.Min(y0, y1), math.Max(x0, x1), math.Max(y0, y1))
}
