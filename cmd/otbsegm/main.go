// Package main provides the otbsegm CLI, a thin front end over the segm
// wrappers for running toolbox segmentation from the shell.
package main

import (
	"encoding/json"
	"os"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/geoscope/otbsegm/otb"
	"github.com/geoscope/otbsegm/raster"
	"github.com/geoscope/otbsegm/segm"
	"github.com/geoscope/otbsegm/vector"
)

func main() {
	logger := golog.NewLogger("otbsegm")
	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

var commonFlags = []cli.Flag{
	&cli.PathFlag{
		Name:     "in",
		Required: true,
		Usage:    "input raster to segment",
	},
	&cli.PathFlag{
		Name:     "out",
		Required: true,
		Usage:    "output path (GeoJSON in vector mode, GeoTIFF in raster mode)",
	},
	&cli.StringFlag{
		Name:  "mode",
		Value: string(segm.ModeVector),
		Usage: "output mode: vector or raster",
	},
	&cli.PathFlag{
		Name:  "params",
		Usage: "load algorithm parameters from a JSON `FILE`",
	},
}

var maskFlag = &cli.PathFlag{
	Name:  "mask",
	Usage: "only segment pixels where this raster is strictly positive",
}

var app = &cli.App{
	Name:            "otbsegm",
	Usage:           "run orfeo toolbox image segmentation",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.PathFlag{
			Name:  "bin-dir",
			Usage: "directory holding the otbcli_* launchers",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:   "meanshift",
			Usage:  "mean-shift segmentation",
			Flags:  append([]cli.Flag{maskFlag}, commonFlags...),
			Action: meanShiftAction,
		},
		{
			Name:  "watershed",
			Usage: "watershed segmentation",
			Flags: append([]cli.Flag{
				maskFlag,
				&cli.Float64Flag{Name: "level", Usage: "flood level within [0, 1]"},
			}, commonFlags...),
			Action: watershedAction,
		},
		{
			Name:   "mprofiles",
			Usage:  "morphological-profile segmentation",
			Flags:  append([]cli.Flag{maskFlag}, commonFlags...),
			Action: mprofilesAction,
		},
		{
			Name:   "lsms",
			Usage:  "tiled large-scale mean-shift segmentation",
			Flags:  commonFlags,
			Action: lsmsAction,
		},
	},
}

func newLogger(c *cli.Context) golog.Logger {
	if c.Bool("debug") {
		return golog.NewDebugLogger("otbsegm")
	}
	return golog.NewLogger("otbsegm")
}

func link(c *cli.Context, logger golog.Logger) (*otb.Connection, error) {
	var opts []otb.LinkOption
	if dir := c.String("bin-dir"); dir != "" {
		opts = append(opts, otb.WithBinDir(dir))
	}
	return otb.Link(c.Context, logger, opts...)
}

// loadAttrs merges the --params file with the flags every algorithm
// shares. Algorithm-specific flags are layered on by the actions.
func loadAttrs(c *cli.Context) (map[string]interface{}, error) {
	attrs := map[string]interface{}{}
	if path := c.String("params"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading params file %q", path)
		}
		if err := json.Unmarshal(data, &attrs); err != nil {
			return nil, errors.Wrapf(err, "parsing params file %q", path)
		}
	}
	if c.IsSet("mode") || attrs["mode"] == nil {
		attrs["mode"] = c.String("mode")
	}
	if c.IsSet("mask") {
		attrs["mask"] = c.String("mask")
	}
	return attrs, nil
}

func meanShiftAction(c *cli.Context) error {
	logger := newLogger(c)
	conn, err := link(c, logger)
	if err != nil {
		return err
	}
	attrs, err := loadAttrs(c)
	if err != nil {
		return err
	}
	params, err := segm.MeanShiftParamsFromAttributes(attrs)
	if err != nil {
		return err
	}
	result, err := segm.MeanShift(c.Context, conn, c.String("in"), params)
	if err != nil {
		return err
	}
	return writeResult(result, c.String("out"))
}

func watershedAction(c *cli.Context) error {
	logger := newLogger(c)
	conn, err := link(c, logger)
	if err != nil {
		return err
	}
	attrs, err := loadAttrs(c)
	if err != nil {
		return err
	}
	if c.IsSet("level") {
		attrs["level"] = c.Float64("level")
	}
	params, err := segm.WatershedParamsFromAttributes(attrs)
	if err != nil {
		return err
	}
	result, err := segm.Watershed(c.Context, conn, c.String("in"), params)
	if err != nil {
		return err
	}
	return writeResult(result, c.String("out"))
}

func mprofilesAction(c *cli.Context) error {
	logger := newLogger(c)
	conn, err := link(c, logger)
	if err != nil {
		return err
	}
	attrs, err := loadAttrs(c)
	if err != nil {
		return err
	}
	params, err := segm.MProfilesParamsFromAttributes(attrs)
	if err != nil {
		return err
	}
	result, err := segm.MorphologicalProfiles(c.Context, conn, c.String("in"), params)
	if err != nil {
		return err
	}
	return writeResult(result, c.String("out"))
}

func lsmsAction(c *cli.Context) error {
	logger := newLogger(c)
	conn, err := link(c, logger)
	if err != nil {
		return err
	}
	attrs, err := loadAttrs(c)
	if err != nil {
		return err
	}
	params, err := segm.LSMSParamsFromAttributes(attrs)
	if err != nil {
		return err
	}
	result, err := segm.LSMS(c.Context, conn, c.String("in"), params)
	if err != nil {
		return err
	}
	return writeResult(result, c.String("out"))
}

func writeResult(result *segm.Result, out string) error {
	switch result.Mode {
	case segm.ModeVector:
		return vector.WriteGeoJSON(result.Features, out)
	case segm.ModeRaster:
		return raster.WriteGeoTIFF(result.Raster, out)
	default:
		return errors.Errorf("unexpected result mode %q", result.Mode)
	}
}
