package segm

import "math"

// Vector-mode defaults, matching the toolbox application defaults.
const (
	defaultVectorMinSize  = 1
	defaultVectorSimplify = 0.1
	defaultVectorTileSize = 1024
)

// VectorOptions configure the vector output of the Segmentation
// application. They are ignored in raster mode. Build them with
// DefaultVectorOptions and adjust; a zero VectorOptions disables
// stitching, which is not the toolbox default.
type VectorOptions struct {
	// Neighbor selects 8-neighborhood connectivity when true,
	// 4-neighborhood when false.
	Neighbor bool `json:"neighbor"`
	// Stitch re-joins polygons split at tile boundaries.
	Stitch bool `json:"stitch"`
	// MinSize is the minimum object size in pixels; rounded to the
	// nearest integer.
	MinSize float64 `json:"minsize"`
	// Simplify is the geometry simplification tolerance in pixels.
	Simplify float64 `json:"simplify"`
	// TileSize is the vectorization tile size in pixels; rounded to the
	// nearest integer.
	TileSize float64 `json:"tilesize"`
}

// DefaultVectorOptions returns the toolbox defaults.
func DefaultVectorOptions() VectorOptions {
	return VectorOptions{
		Neighbor: false,
		Stitch:   true,
		MinSize:  defaultVectorMinSize,
		Simplify: defaultVectorSimplify,
		TileSize: defaultVectorTileSize,
	}
}

// normalize rounds the integer-valued options and fills unset numeric
// ones with their defaults.
func (o *VectorOptions) normalize() {
	if o.MinSize == 0 {
		o.MinSize = defaultVectorMinSize
	}
	if o.Simplify == 0 {
		o.Simplify = defaultVectorSimplify
	}
	if o.TileSize == 0 {
		o.TileSize = defaultVectorTileSize
	}
	o.MinSize = math.Round(o.MinSize)
	o.TileSize = math.Round(o.TileSize)
}
