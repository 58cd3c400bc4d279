// Command roofmeasure measures a roof from an aerial image.
//
// It runs the full pipeline: segmentation of the image into facets and
// classified edges, then conversion into calibrated real-world
// measurements. The result is printed as JSON on stdout.
//
// Usage:
//
//	roofmeasure -image roof.png -gsd 0.15 [flags]
//
// Optional JSON side inputs refine the result: -hints takes a solar
// API building-insights response, -elevation a square grid of meter
// elevations, -footprint a pixel-coordinate building outline.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/roofscope/roofmeasure/internal/geometry"
	"github.com/roofscope/roofmeasure/internal/measure"
	"github.com/roofscope/roofmeasure/internal/segment"
	"github.com/roofscope/roofmeasure/internal/solar"
)

func main() {
	var (
		imagePath     = flag.String("image", "", "path to the aerial image (PNG, JPEG, or GIF; required)")
		gsd           = flag.Float64("gsd", 0, "ground sample distance in meters per pixel (required)")
		hintsPath     = flag.String("hints", "", "path to a solar API building-insights JSON file")
		elevationPath = flag.String("elevation", "", "path to an elevation grid JSON file ([][]float64, meters)")
		footprintPath = flag.String("footprint", "", "path to a building footprint JSON file ([{\"x\":..,\"y\":..}, ...])")
		noCalibration = flag.Bool("no-calibration", false, "disable the area calibration factor")
		segmentOnly   = flag.Bool("segment-only", false, "print the raw segmentation instead of measurements")
		debug         = flag.Bool("debug", false, "verbose logging to stderr")
	)
	flag.Parse()

	if *imagePath == "" || *gsd <= 0 {
		fmt.Fprintln(os.Stderr, "roofmeasure: -image and a positive -gsd are required")
		flag.Usage()
		os.Exit(2)
	}

	logger := newLogger(*debug)
	defer logger.Sync()
	log := logger.Sugar()

	if err := run(*imagePath, *gsd, *hintsPath, *elevationPath, *footprintPath,
		*noCalibration, *segmentOnly, log); err != nil {
		log.Errorw("measurement failed", "error", err)
		os.Exit(1)
	}
}

func run(imagePath string, gsd float64, hintsPath, elevationPath, footprintPath string,
	noCalibration, segmentOnly bool, log *zap.SugaredLogger) error {

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	var footprint geometry.Polygon
	if footprintPath != "" {
		if err := readJSON(footprintPath, &footprint); err != nil {
			return fmt.Errorf("read footprint: %w", err)
		}
	}

	seg, err := segment.New(segment.DefaultConfig(), log).Segment(imageData, gsd, footprint)
	if err != nil {
		return fmt.Errorf("segment image: %w", err)
	}

	if segmentOnly {
		return printJSON(seg)
	}

	var hints *solar.BuildingInsights
	if hintsPath != "" {
		hints = &solar.BuildingInsights{}
		if err := readJSON(hintsPath, hints); err != nil {
			return fmt.Errorf("read hints: %w", err)
		}
	}

	var elevation [][]float64
	if elevationPath != "" {
		if err := readJSON(elevationPath, &elevation); err != nil {
			return fmt.Errorf("read elevation grid: %w", err)
		}
	}

	cfg := measure.DefaultConfig()
	if noCalibration {
		cfg.ApplyCalibration = false
	}

	result, err := measure.New(gsd, cfg, log).Calculate(seg, hints, elevation)
	if err != nil {
		return fmt.Errorf("calculate measurements: %w", err)
	}

	return printJSON(result)
}

func newLogger(debug bool) *zap.Logger {
	if debug {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
