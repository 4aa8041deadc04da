package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/geoscope/otbsegm/raster"
)

func TestStagePathPassthrough(t *testing.T) {
	ws, err := New(golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	defer func() {
		test.That(t, ws.Close(), test.ShouldBeNil)
	}()

	path, err := ws.Stage("/data/scene.tif")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldEqual, "/data/scene.tif")

	// nothing staged for a path input
	entries, err := os.ReadDir(ws.Dir())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, entries, test.ShouldHaveLength, 0)
}

func TestStageInMemoryRaster(t *testing.T) {
	origWrite := writeRaster
	var wrotePath string
	writeRaster = func(r *raster.Raster, path string) error {
		wrotePath = path
		return os.WriteFile(path, []byte("tif"), 0o644)
	}
	defer func() {
		writeRaster = origWrite
	}()

	ws, err := New(golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	defer func() {
		test.That(t, ws.Close(), test.ShouldBeNil)
	}()

	img := raster.New(4, 4, 1)
	path, err := ws.Stage(img)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldEqual, wrotePath)
	test.That(t, strings.HasPrefix(path, ws.Dir()), test.ShouldBeTrue)
	test.That(t, strings.HasSuffix(path, ".tif"), test.ShouldBeTrue)

	_, err = os.Stat(path)
	test.That(t, err, test.ShouldBeNil)
}

func TestStageInvalidKind(t *testing.T) {
	ws, err := New(golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	defer func() {
		test.That(t, ws.Close(), test.ShouldBeNil)
	}()

	_, err = ws.Stage(42)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrInvalidInputKind), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "int")

	// nothing staged before the failure was detected
	entries, err := os.ReadDir(ws.Dir())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, entries, test.ShouldHaveLength, 0)
}

func TestSnapshotDiffPreservesPreexisting(t *testing.T) {
	ws, err := New(golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	defer func() {
		test.That(t, ws.Close(), test.ShouldBeNil)
	}()

	preexisting := filepath.Join(ws.Dir(), "tmp_0001.tif")
	test.That(t, os.WriteFile(preexisting, []byte("keep"), 0o644), test.ShouldBeNil)

	before, err := ws.Snapshot("tmp*.tif")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, before, test.ShouldHaveLength, 1)

	stray := filepath.Join(ws.Dir(), "tmp_0002.tif")
	test.That(t, os.WriteFile(stray, []byte("stray"), 0o644), test.ShouldBeNil)
	unrelated := filepath.Join(ws.Dir(), "result.shp")
	test.That(t, os.WriteFile(unrelated, []byte("out"), 0o644), test.ShouldBeNil)

	ws.RemoveNewMatches("tmp*.tif", before)

	_, err = os.Stat(preexisting)
	test.That(t, err, test.ShouldBeNil)
	_, err = os.Stat(unrelated)
	test.That(t, err, test.ShouldBeNil)
	_, err = os.Stat(stray)
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)
}

func TestTempFileUniqueness(t *testing.T) {
	ws, err := New(golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	defer func() {
		test.That(t, ws.Close(), test.ShouldBeNil)
	}()

	a, err := ws.TempFile(".shp")
	test.That(t, err, test.ShouldBeNil)
	b, err := ws.TempFile(".shp")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a, test.ShouldNotEqual, b)
	test.That(t, strings.HasSuffix(a, ".shp"), test.ShouldBeTrue)
}

func TestCloseRemovesEverything(t *testing.T) {
	ws, err := New(golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	path, err := ws.TempFile(".tif")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ws.Close(), test.ShouldBeNil)

	_, err = os.Stat(path)
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)
	_, err = os.Stat(ws.Dir())
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)
}
