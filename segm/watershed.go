package segm

import (
	"context"

	"go.opencensus.io/trace"
	goutils "go.viam.com/utils"

	"github.com/geoscope/otbsegm/otb"
	"github.com/geoscope/otbsegm/workspace"
)

// Watershed defaults, matching the toolbox application defaults.
const (
	defaultWatershedThreshold = 0.01
	defaultWatershedLevel     = 0.1
)

// WatershedParams configure Watershed. Build them with
// DefaultWatershedParams and adjust; zero numeric fields are filled with
// the toolbox defaults.
type WatershedParams struct {
	// Threshold is the depth threshold under which a minimum is merged.
	Threshold float64 `json:"thresh"`
	// Level is the flood level, as a fraction of the maximum depth.
	// Must be within [0, 1].
	Level float64 `json:"level"`

	// Mode selects vector or raster output.
	Mode Mode `json:"mode"`
	// Mask optionally restricts segmentation to pixels where the mask is
	// strictly positive; a path string or an in-memory raster.
	Mask interface{} `json:"mask,omitempty"`
	// Vector configures the vector output; ignored in raster mode.
	Vector VectorOptions `json:"vector"`
}

// DefaultWatershedParams returns the toolbox defaults with vector output.
func DefaultWatershedParams() *WatershedParams {
	return &WatershedParams{
		Threshold: defaultWatershedThreshold,
		Level:     defaultWatershedLevel,
		Mode:      ModeVector,
		Vector:    DefaultVectorOptions(),
	}
}

// normalize fills unset fields and enforces the documented level range.
func (p *WatershedParams) normalize() error {
	if p.Mode == "" {
		p.Mode = ModeVector
	}
	if err := p.Mode.validate(); err != nil {
		return err
	}
	if p.Threshold == 0 {
		p.Threshold = defaultWatershedThreshold
	}
	if p.Level == 0 {
		p.Level = defaultWatershedLevel
	}
	if p.Level < 0 || p.Level > 1 {
		return NewParameterRangeError("level", p.Level, 0, 1)
	}
	p.Vector.normalize()
	return nil
}

// Watershed runs the toolbox's watershed segmentation on the image and
// returns the segment polygons or labeled raster it produced. A level
// outside [0, 1] fails before anything is staged or run.
func Watershed(ctx context.Context, conn *otb.Connection, image interface{}, params *WatershedParams) (*Result, error) {
	ctx, span := trace.StartSpan(ctx, "segm::Watershed")
	defer span.End()

	if params == nil {
		params = DefaultWatershedParams()
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
	cmd.Set("filter", "watershed")
	cmd.SetFloat("filter.watershed.threshold", params.Threshold)
	cmd.SetFloat("filter.watershed.level", params.Level)

	outPath, err := applyModeFlags(ws, cmd, params.Mode, params.Vector, params.Mask)
	if err != nil {
		return nil, err
	}

	if err := conn.Invoke(ctx, cmd); err != nil {
		return nil, err
	}
	return collectResult(params.Mode, outPath)
}
