package otb

import (
	"context"
	"path/filepath"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils/pexec"
)

// processInvoker runs toolbox applications as one-shot child processes.
// The process blocks the calling goroutine until it exits; its stdout and
// stderr are forwarded to the logger.
type processInvoker struct {
	binDir string
	logger golog.Logger
}

func (pi *processInvoker) Invoke(ctx context.Context, cmd *Command) (err error) {
	launcher := filepath.Join(pi.binDir, launcherPrefix+cmd.App)

	pcfg := pexec.ProcessConfig{
		ID:      "otb_" + cmd.App,
		Name:    launcher,
		Args:    cmd.CLIArgs(),
		CWD:     cmd.WorkDir,
		OneShot: true,
		Log:     true,
	}

	pm := pexec.NewProcessManager(pi.logger)
	defer func() {
		err = multierr.Combine(err, pm.Stop())
	}()

	if _, err := pm.AddProcessFromConfig(ctx, pcfg); err != nil {
		return errors.Wrapf(err, "problem adding %s process", cmd.App)
	}

	pi.logger.Debugw("starting otb process", "app", cmd.App, "launcher", launcher)

	if err := pm.Start(ctx); err != nil {
		return errors.Wrapf(ErrToolFailed, "%s: %v", cmd.App, err)
	}
	return nil
}
