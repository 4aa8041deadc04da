// Package vector provides the in-memory feature collection returned by
// vector-mode segmentation, read from the toolbox's shapefile output.
package vector

import (
	"github.com/geoscope/otbsegm/geo"
)

// Point is a 2D vertex in the collection's coordinate reference system.
type Point struct {
	X, Y float64
}

// Feature is one segment polygon with its integer segment label.
type Feature struct {
	// Rings holds the polygon's rings, outer ring first.
	Rings [][]Point
	// Label is the segment label attribute.
	Label int
}

// Collection is a set of segment features plus the CRS they live in.
type Collection struct {
	Features []Feature
	// CRS is the coordinate reference system as WKT; empty when the
	// source carried none.
	CRS string
}

// Len returns the number of features.
func (c *Collection) Len() int {
	return len(c.Features)
}

// Labels returns the distinct segment labels present in the collection.
func (c *Collection) Labels() []int {
	seen := make(map[int]bool)
	var out []int
	for _, f := range c.Features {
		if !seen[f.Label] {
			seen[f.Label] = true
			out = append(out, f.Label)
		}
	}
	return out
}

// Extent returns the bounding extent of all features.
func (c *Collection) Extent() geo.Extent {
	var ext geo.Extent
	first := true
	for _, f := range c.Features {
		for _, ring := range f.Rings {
			for _, p := range ring {
				if first {
					ext = geo.NewExtent(p.X, p.Y, p.X, p.Y)
					first = false
					continue
				}
				ext = ext.Union(geo.NewExtent(p.X, p.Y, p.X, p.Y))
			}
		}
	}
	return ext
}
