package segm

import (
	"context"

	"go.opencensus.io/trace"
	goutils "go.viam.com/utils"

	"github.com/geoscope/otbsegm/otb"
	"github.com/geoscope/otbsegm/workspace"
)

// Morphological-profile defaults, matching the toolbox application
// defaults.
const (
	defaultMProfilesSize  = 5
	defaultMProfilesStart = 1
	defaultMProfilesSigma = 1
	defaultMProfilesStep  = 1
)

// MProfilesParams configure MorphologicalProfiles. The parameters pass
// through to the toolbox unchanged beyond default filling.
type MProfilesParams struct {
	// Size is the profile size.
	Size int `json:"size"`
	// Start is the initial structuring-element radius.
	Start int `json:"start"`
	// Sigma is the profile-comparison threshold.
	Sigma float64 `json:"sigma"`
	// Step is the radius step between profile levels.
	Step float64 `json:"step"`

	// Mode selects vector or raster output.
	Mode Mode `json:"mode"`
	// Mask optionally restricts segmentation to pixels where the mask is
	// strictly positive; a path string or an in-memory raster.
	Mask interface{} `json:"mask,omitempty"`
	// Vector configures the vector output; ignored in raster mode.
	Vector VectorOptions `json:"vector"`
}

// DefaultMProfilesParams returns the toolbox defaults with vector output.
func DefaultMProfilesParams() *MProfilesParams {
	return &MProfilesParams{
		Size:   defaultMProfilesSize,
		Start:  defaultMProfilesStart,
		Sigma:  defaultMProfilesSigma,
		Step:   defaultMProfilesStep,
		Mode:   ModeVector,
		Vector: DefaultVectorOptions(),
	}
}

func (p *MProfilesParams) normalize() error {
	if p.Mode == "" {
		p.Mode = ModeVector
	}
	if err := p.Mode.validate(); err != nil {
		return err
	}
	if p.Size == 0 {
		p.Size = defaultMProfilesSize
	}
	if p.Start == 0 {
		p.Start = defaultMProfilesStart
	}
	if p.Sigma == 0 {
		p.Sigma = defaultMProfilesSigma
	}
	if p.Step == 0 {
		p.Step = defaultMProfilesStep
	}
	p.Vector.normalize()
	return nil
}

// MorphologicalProfiles runs the toolbox's morphological-profile
// segmentation on the image and returns the segment polygons or labeled
// raster it produced.
func MorphologicalProfiles(ctx context.Context, conn *otb.Connection, image interface{}, params *MProfilesParams) (*Result, error) {
	ctx, span := trace.StartSpan(ctx, "segm::MorphologicalProfiles")
	defer span.End()

	if params == nil {
		params = DefaultMProfilesParams()
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
	cmd.Set("filter", "mprofiles")
	cmd.SetInt("filter.mprofiles.size", params.Size)
	cmd.SetInt("filter.mprofiles.start", params.Start)
	cmd.SetFloat("filter.mprofiles.sigma", params.Sigma)
	cmd.SetFloat("filter.mprofiles.step", params.Step)

	outPath, err := applyModeFlags(ws, cmd, params.Mode, params.Vector, params.Mask)
	if err != nil {
		return nil, err
	}

	if err := conn.Invoke(ctx, cmd); err != nil {
		return nil, err
	}
	return collectResult(params.Mode, outPath)
}
