// Package otb manages the link to a locally installed Orfeo ToolBox and
// runs its command-line applications. Nothing in here implements any
// segmentation logic; the package only locates the pre-compiled launcher
// binaries and hands fully-built commands across the process boundary.
package otb

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// ErrToolFailed is wrapped around any failure reported by the external
// toolbox process. The external diagnostic is carried in the wrapping
// message; no retry or recovery is attempted here.
var ErrToolFailed = errors.New("otb application failed")

// launcherPrefix is the name prefix of OTB's per-application launchers,
// e.g. otbcli_Segmentation.
const launcherPrefix = "otbcli_"

// probeApp is the application whose launcher must exist for a bin
// directory to count as a toolbox installation.
const probeApp = "Segmentation"

// candidateBinDirs are probed, in order, when neither an explicit bin
// directory nor OTB_HOME identifies the installation.
var candidateBinDirs = []string{
	"/usr/local/otb/bin",
	"/opt/otb/bin",
	"/usr/lib/otb/bin",
}

// Connection is an opaque handle to a linked toolbox installation. It is
// produced by Link and consumed by the segm façade functions. A
// Connection holds no per-invocation state and may be shared between
// calls.
type Connection struct {
	binDir  string
	logger  golog.Logger
	invoker Invoker
}

// Invoker hands a fully-built command to the external toolbox and blocks
// until it completes. Implementations perform no retries and expose no
// timeout; the external execution is atomic from the caller's view.
type Invoker interface {
	Invoke(ctx context.Context, cmd *Command) error
}

type linkConfig struct {
	binDir  string
	invoker Invoker
}

// LinkOption configures Link.
type LinkOption func(*linkConfig)

// WithBinDir links against the toolbox launchers in the given directory
// instead of discovering an installation.
func WithBinDir(dir string) LinkOption {
	return func(cfg *linkConfig) {
		cfg.binDir = dir
	}
}

// WithInvoker substitutes the component that executes the external
// process. Used to inject fakes in tests.
func WithInvoker(inv Invoker) LinkOption {
	return func(cfg *linkConfig) {
		cfg.invoker = inv
	}
}

// Link locates a toolbox installation and returns a connection to it.
// Discovery order: explicit WithBinDir, then $OTB_HOME/bin, then a PATH
// lookup of the probe launcher, then a fixed set of conventional install
// directories. A directory only links if the probe launcher exists in it.
func Link(ctx context.Context, logger golog.Logger, opts ...LinkOption) (*Connection, error) {
	var cfg linkConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	binDir, err := resolveBinDir(cfg.binDir, logger)
	if err != nil {
		return nil, err
	}

	conn := &Connection{binDir: binDir, logger: logger}
	if cfg.invoker != nil {
		conn.invoker = cfg.invoker
	} else {
		conn.invoker = &processInvoker{binDir: binDir, logger: logger}
	}
	logger.Debugw("linked orfeo toolbox", "bin_dir", binDir)
	return conn, nil
}

func resolveBinDir(explicit string, logger golog.Logger) (string, error) {
	if explicit != "" {
		if !hasLauncher(explicit, probeApp) {
			return "", errors.Errorf("no %s%s launcher in %q", launcherPrefix, probeApp, explicit)
		}
		return explicit, nil
	}

	if home := os.Getenv("OTB_HOME"); home != "" {
		dir := filepath.Join(home, "bin")
		if hasLauncher(dir, probeApp) {
			return dir, nil
		}
		logger.Warnf("OTB_HOME set but %v has no launchers, continuing discovery", dir)
	}

	if path, err := exec.LookPath(launcherPrefix + probeApp); err == nil {
		return filepath.Dir(path), nil
	}

	for _, dir := range candidateBinDirs {
		if hasLauncher(dir, probeApp) {
			return dir, nil
		}
	}

	return "", errors.New("no orfeo toolbox installation found; set OTB_HOME or link with WithBinDir")
}

func hasLauncher(dir, app string) bool {
	info, err := os.Stat(filepath.Join(dir, launcherPrefix+app))
	return err == nil && !info.IsDir()
}

// BinDir returns the directory holding the linked launchers.
func (c *Connection) BinDir() string {
	return c.binDir
}

// LauncherPath returns the path of the launcher for the given application.
func (c *Connection) LauncherPath(app string) string {
	return filepath.Join(c.binDir, launcherPrefix+app)
}

// Logger returns the logger the connection was linked with.
func (c *Connection) Logger() golog.Logger {
	return c.logger
}

// Invoke runs the command against the linked toolbox, blocking until the
// external process exits. The command is passed through unchanged; any
// failure surfaces wrapped in ErrToolFailed.
func (c *Connection) Invoke(ctx context.Context, cmd *Command) error {
	return c.invoker.Invoke(ctx, cmd)
}
