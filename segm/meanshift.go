package segm

import (
	"context"
	"math"

	"go.opencensus.io/trace"
	goutils "go.viam.com/utils"

	"github.com/geoscope/otbsegm/otb"
	"github.com/geoscope/otbsegm/workspace"
)

// Mean-shift defaults, matching the toolbox application defaults.
const (
	defaultMeanShiftSpatialR = 5
	defaultMeanShiftRangeR   = 15
	defaultMeanShiftThres    = 0.1
	defaultMeanShiftMaxIter  = 100
	defaultMeanShiftMinSize  = 100
)

// MeanShiftParams configure MeanShift. Build them with
// DefaultMeanShiftParams and adjust; zero numeric fields are filled with
// the toolbox defaults.
type MeanShiftParams struct {
	// SpatialR is the spatial radius of the neighborhood in pixels;
	// rounded to the nearest integer.
	SpatialR float64 `json:"spatialr"`
	// RangeR is the range radius in radiometry units.
	RangeR float64 `json:"ranger"`
	// Thres is the convergence threshold.
	Thres float64 `json:"thres"`
	// MaxIter bounds the iteration count.
	MaxIter int `json:"maxiter"`
	// MinSize is the minimum segment size in pixels.
	MinSize int `json:"minsize"`

	// Mode selects vector or raster output.
	Mode Mode `json:"mode"`
	// Mask optionally restricts segmentation to pixels where the mask is
	// strictly positive; a path string or an in-memory raster.
	Mask interface{} `json:"mask,omitempty"`
	// Vector configures the vector output; ignored in raster mode.
	Vector VectorOptions `json:"vector"`
}

// DefaultMeanShiftParams returns the toolbox defaults with vector output.
func DefaultMeanShiftParams() *MeanShiftParams {
	return &MeanShiftParams{
		SpatialR: defaultMeanShiftSpatialR,
		RangeR:   defaultMeanShiftRangeR,
		Thres:    defaultMeanShiftThres,
		MaxIter:  defaultMeanShiftMaxIter,
		MinSize:  defaultMeanShiftMinSize,
		Mode:     ModeVector,
		Vector:   DefaultVectorOptions(),
	}
}

// normalize fills unset fields and rounds the integer-valued radius.
// No bounds are enforced beyond type coercion.
func (p *MeanShiftParams) normalize() error {
	if p.Mode == "" {
		p.Mode = ModeVector
	}
	if err := p.Mode.validate(); err != nil {
		return err
	}
	if p.SpatialR == 0 {
		p.SpatialR = defaultMeanShiftSpatialR
	}
	if p.RangeR == 0 {
		p.RangeR = defaultMeanShiftRangeR
	}
	if p.Thres == 0 {
		p.Thres = defaultMeanShiftThres
	}
	if p.MaxIter == 0 {
		p.MaxIter = defaultMeanShiftMaxIter
	}
	if p.MinSize == 0 {
		p.MinSize = defaultMeanShiftMinSize
	}
	p.SpatialR = math.Round(p.SpatialR)
	p.Vector.normalize()
	return nil
}

// MeanShift runs the toolbox's mean-shift segmentation on the image and
// returns the segment polygons or labeled raster it produced. The image
// and optional mask are a path string or an in-memory raster; in-memory
// inputs are staged to temporary files that are released before return.
func MeanShift(ctx context.Context, conn *otb.Connection, image interface{}, params *MeanShiftParams) (*Result, error) {
	ctx, span := trace.StartSpan(ctx, "segm::MeanShift")
	defer span.End()

	if params == nil {
		params = DefaultMeanShiftParams()
	}
	if err := checkInputKind(image); err != nil {
		return nil, err
	}
	if params.Mask != nil {
		if err := checkInputKind(params.Mask); err != nil {
			return nil, err
		}
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

	cmd := otb.NewCommand(segmentationApp)
	cmd.WorkDir = ws.Dir()
	cmd.Set("in", inPath)
	cmd.Set("filter", "meanshift")
	cmd.SetInt("filter.meanshift.spatialr", int(params.SpatialR))
	cmd.SetFloat("filter.meanshift.ranger", params.RangeR)
	cmd.SetFloat("filter.meanshift.thres", params.Thres)
	cmd.SetInt("filter.meanshift.maxiter", params.MaxIter)
	cmd.SetInt("filter.meanshift.minsize", params.MinSize)

	outPath, err := applyModeFlags(ws, cmd, params.Mode, params.Vector, params.Mask)
	if err != nil {
		return nil, err
	}

	if err := conn.Invoke(ctx, cmd); err != nil {
		return nil, err
	}
	return collectResult(params.Mode, outPath)
}
