// Package segm exposes parameter-marshaling wrappers around the Orfeo
// ToolBox segmentation applications. Each wrapper validates and
// normalizes its arguments, stages in-memory inputs to temporary files,
// builds the toolbox command, runs the external process through an
// otb.Connection and returns the output as a vector feature collection
// or a labeled raster. The segmentation algorithms themselves live
// entirely in the external toolbox.
package segm

import (
	"math"

	"github.com/pkg/errors"

	"github.com/geoscope/otbsegm/otb"
	"github.com/geoscope/otbsegm/raster"
	"github.com/geoscope/otbsegm/vector"
	"github.com/geoscope/otbsegm/workspace"
)

// Mode selects the output representation of a segmentation run.
type Mode string

const (
	// ModeVector returns attributed segment polygons.
	ModeVector = Mode("vector")
	// ModeRaster returns a single-band labeled raster.
	ModeRaster = Mode("raster")
)

func (m Mode) validate() error {
	switch m {
	case ModeVector, ModeRaster:
		return nil
	}
	return errors.Errorf("invalid mode %q, want %q or %q", m, ModeVector, ModeRaster)
}

// OTB application names.
const (
	segmentationApp = "Segmentation"
	lsmsApp         = "LargeScaleMeanShift"
)

// Result is the output of one segmentation run. Exactly one of Features
// and Raster is set, matching the requested mode.
type Result struct {
	Mode     Mode
	Features *vector.Collection
	Raster   *raster.Raster
}

// Result readers; reconfigurable for testing.
var (
	readRasterResult = raster.ReadGeoTIFF
	readVectorResult = vector.ReadShapefile
)

// checkInputKind rejects image arguments that are neither a path string
// nor an in-memory raster, before anything is staged or run.
func checkInputKind(image interface{}) error {
	switch image.(type) {
	case string, *raster.Raster:
		return nil
	}
	return errors.Wrapf(ErrInvalidInputKind, "got %T", image)
}

// applyModeFlags sets the output-mode flag subtree on a Segmentation
// command and returns the allocated output path. In raster mode no
// mode.vector.* flag is set at all.
func applyModeFlags(
	ws *workspace.Workspace,
	cmd *otb.Command,
	mode Mode,
	opts VectorOptions,
	mask interface{},
) (string, error) {
	cmd.Set("mode", string(mode))
	if mode == ModeRaster {
		out, err := ws.TempFile(".tif")
		if err != nil {
			return "", err
		}
		cmd.Set("mode.raster.out", out)
		return out, nil
	}

	out, err := ws.TempFile(".shp")
	if err != nil {
		return "", err
	}
	cmd.Set("mode.vector.out", out)
	if mask != nil {
		maskPath, err := ws.Stage(mask)
		if err != nil {
			return "", errors.Wrap(err, "staging mask")
		}
		cmd.Set("mode.vector.inmask", maskPath)
	}
	cmd.SetBool("mode.vector.neighbor", opts.Neighbor)
	cmd.SetBool("mode.vector.stitch", opts.Stitch)
	cmd.SetInt("mode.vector.minsize", int(math.Round(opts.MinSize)))
	cmd.SetFloat("mode.vector.simplify", opts.Simplify)
	cmd.SetInt("mode.vector.tilesize", int(math.Round(opts.TileSize)))
	return out, nil
}

// collectResult reads the toolbox's output into memory so the workspace
// holding it can be released before returning.
func collectResult(mode Mode, outPath string) (*Result, error) {
	switch mode {
	case ModeVector:
		features, err := readVectorResult(outPath)
		if err != nil {
			return nil, errors.Wrap(err, "reading vector output")
		}
		return &Result{Mode: mode, Features: features}, nil
	case ModeRaster:
		labeled, err := readRasterResult(outPath)
		if err != nil {
			return nil, errors.Wrap(err, "reading raster output")
		}
		return &Result{Mode: mode, Raster: labeled}, nil
	default:
		return nil, mode.validate()
	}
}
