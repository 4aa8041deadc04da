// Package inject provides injectable fakes for testing code that drives
// the external toolbox.
package inject

import (
	"context"

	"github.com/geoscope/otbsegm/otb"
)

// Invoker is an injectable otb.Invoker that records every command it is
// handed.
type Invoker struct {
	otb.Invoker
	InvokeFunc func(ctx context.Context, cmd *otb.Command) error

	// Invocations holds the commands passed to Invoke, in order.
	Invocations []*otb.Command
}

// Invoke records the command and calls the injected function, falling
// back to the embedded invoker.
func (i *Invoker) Invoke(ctx context.Context, cmd *otb.Command) error {
	i.Invocations = append(i.Invocations, cmd)
	if i.InvokeFunc == nil {
		return i.Invoker.Invoke(ctx, cmd)
	}
	return i.InvokeFunc(ctx, cmd)
}
