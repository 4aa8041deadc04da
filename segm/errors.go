package segm

import (
	"github.com/pkg/errors"

	"github.com/geoscope/otbsegm/workspace"
)

// ErrInvalidInputKind is returned when an image or mask argument is
// neither a path string nor an in-memory raster. It is detected before
// any file is staged or any external process runs.
var ErrInvalidInputKind = workspace.ErrInvalidInputKind

// ErrParameterRange is wrapped around parameter values that violate a
// documented numeric range, detected before any external call.
var ErrParameterRange = errors.New("parameter outside documented range")

// NewParameterRangeError describes a parameter that violates its range.
func NewParameterRangeError(name string, value, min, max float64) error {
	return errors.Wrapf(ErrParameterRange, "%s=%v must be within [%v, %v]", name, value, min, max)
}
