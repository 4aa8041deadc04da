// Package geo holds the small geospatial types shared by the raster and
// vector packages.
package geo

import "math"

// Extent is an axis-aligned bounding box in the coordinate reference
// system of the data it was derived from.
type Extent struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewExtent returns the extent spanning the given corners.
func NewExtent(minX, minY, maxX, maxY float64) Extent {
	return Extent{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// IsZero reports whether the extent is the zero value.
func (e Extent) IsZero() bool {
	return e == Extent{}
}

// Width returns the horizontal span of the extent.
func (e Extent) Width() float64 {
	return e.MaxX - e.MinX
}

// Height returns the vertical span of the extent.
func (e Extent) Height() float64 {
	return e.MaxY - e.MinY
}

// Union returns the smallest extent containing both e and o.
func (e Extent) Union(o Extent) Extent {
	if e.IsZero() {
		return o
	}
	if o.IsZero() {
		return e
	}
	return Extent{
		MinX: math.Min(e.MinX, o.MinX),
		MinY: math.Min(e.MinY, o.MinY),
		MaxX: math.Max(e.MaxX, o.MaxX),
		MaxY: math.Max(e.MaxY, o.MaxY),
	}
}

// ApproxEqual reports whether the two extents match to within tol on
// every edge.
func (e Extent) ApproxEqual(o Extent, tol float64) bool {
	return math.Abs(e.MinX-o.MinX) <= tol &&
		math.Abs(e.MinY-o.MinY) <= tol &&
		math.Abs(e.MaxX-o.MaxX) <= tol &&
		math.Abs(e.MaxY-o.MaxY) <= tol
}
