package segm

import (
	"context"

	"go.opencensus.io/trace"
	goutils "go.viam.com/utils"

	"github.com/geoscope/otbsegm/otb"
	"github.com/geoscope/otbsegm/workspace"
)

// Large-scale mean-shift defaults, matching the toolbox application
// defaults.
const (
	defaultLSMSSpatialR  = 5
	defaultLSMSRangeR    = 15
	defaultLSMSMinSize   = 50
	defaultLSMSTileSizeX = 500
	defaultLSMSTileSizeY = 500
	defaultLSMSRAM       = 256
)

// lsmsArtifactPattern matches the numbered tmp*.tif tile intermediates
// the large-scale application can leave in its working directory.
const lsmsArtifactPattern = "tmp*.tif"

// LSMSParams configure LSMS. The parameters pass through to the toolbox
// as integers and identifiers; there is no mask input.
type LSMSParams struct {
	// SpatialR is the spatial radius in pixels.
	SpatialR int `json:"spatialr"`
	// RangeR is the range radius in radiometry units.
	RangeR float64 `json:"ranger"`
	// MinSize is the minimum segment size in pixels.
	MinSize int `json:"minsize"`
	// TileSizeX and TileSizeY are the processing tile dimensions.
	TileSizeX int `json:"tilesizex"`
	TileSizeY int `json:"tilesizey"`
	// RAM is the processing memory budget in MB.
	RAM int `json:"ram"`

	// Mode selects vector or raster output.
	Mode Mode `json:"mode"`
}

// DefaultLSMSParams returns the toolbox defaults with vector output.
func DefaultLSMSParams() *LSMSParams {
	return &LSMSParams{
		SpatialR:  defaultLSMSSpatialR,
		RangeR:    defaultLSMSRangeR,
		MinSize:   defaultLSMSMinSize,
		TileSizeX: defaultLSMSTileSizeX,
		TileSizeY: defaultLSMSTileSizeY,
		RAM:       defaultLSMSRAM,
		Mode:      ModeVector,
	}
}

func (p *LSMSParams) normalize() error {
	if p.Mode == "" {
		p.Mode = ModeVector
	}
	if err := p.Mode.validate(); err != nil {
		return err
	}
	if p.SpatialR == 0 {
		p.SpatialR = defaultLSMSSpatialR
	}
	if p.RangeR == 0 {
		p.RangeR = defaultLSMSRangeR
	}
	if p.MinSize == 0 {
		p.MinSize = defaultLSMSMinSize
	}
	if p.TileSizeX == 0 {
		p.TileSizeX = defaultLSMSTileSizeX
	}
	if p.TileSizeY == 0 {
		p.TileSizeY = defaultLSMSTileSizeY
	}
	if p.RAM == 0 {
		p.RAM = defaultLSMSRAM
	}
	return nil
}

// LSMS runs the toolbox's tiled large-scale mean-shift segmentation on
// the image and returns the segment polygons or labeled raster it
// produced. Stray tile intermediates the toolbox leaves in the working
// directory are deleted afterwards, best effort; files matching the
// artifact pattern that existed before the run are preserved. The run's
// working directory is private to the invocation, so concurrent calls do
// not race on this cleanup.
func LSMS(ctx context.Context, conn *otb.Connection, image interface{}, params *LSMSParams) (*Result, error) {
	ctx, span := trace.StartSpan(ctx, "segm::LSMS")
	defer span.End()

	if params == nil {
		params = DefaultLSMSParams()
	}
	if err := checkInputKind(image); err != nil {
		return nil, err
	}
	if err := params.normalize(); err != nil {
		return nil, err
	}

	ws, err := workspace.New(conn.Logger())
	if err != nil {
		return nil, err
	}
	defer func() {
		goutils.UncheckedErrorFunc(ws.Close)
	}()

	inPath, err := ws.Stage(image)
	if err != nil {
		return nil, err
	}

	cmd := otb.NewCommand(lsmsApp)
	cmd.WorkDir = ws.Dir()
	cmd.Set("in", inPath)
	cmd.SetInt("spatialr", params.SpatialR)
	cmd.SetFloat("ranger", params.RangeR)
	cmd.SetInt("minsize", params.MinSize)
	cmd.SetInt("tilesizex", params.TileSizeX)
	cmd.SetInt("tilesizey", params.TileSizeY)
	cmd.SetInt("ram", params.RAM)

	// The large-scale application selects the output representation by
	// which output flag is present, not by a mode switch.
	var outPath string
	if params.Mode == ModeRaster {
		if outPath, err = ws.TempFile(".tif"); err != nil {
			return nil, err
		}
		cmd.Set("mode.raster.out", outPath)
	} else {
		if outPath, err = ws.TempFile(".shp"); err != nil {
			return nil, err
		}
		cmd.Set("mode.vector.out", outPath)
	}

	before, err := ws.Snapshot(lsmsArtifactPattern)
	if err != nil {
		return nil, err
	}

	if err := conn.Invoke(ctx, cmd); err != nil {
		return nil, err
	}

	result, err := collectResult(params.Mode, outPath)
	if err != nil {
		return nil, err
	}
	ws.RemoveNewMatches(lsmsArtifactPattern, before)
	return result, nil
}
