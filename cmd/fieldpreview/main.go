// Noise field preview tool - dumps a sampled grid as ASCII shades or CSV.
//
// Usage: go run ./cmd/fieldpreview [-format ascii|csv] [-out field.csv]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/stormglass/config"
	"github.com/pthm-cable/stormglass/noise"
)

// shades maps normalized field values to ASCII density ramps.
var shades = []byte(" .:-=+*#%@")

// cell is one sampled grid point for CSV export.
type cell struct {
	X     int     `csv:"x"`
	Y     int     `csv:"y"`
	Value float64 `csv:"value"`
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	format := flag.String("format", "ascii", "Output format: ascii or csv")
	out := flag.String("out", "", "Output file (empty = stdout)")
	width := flag.Int("width", 0, "Grid width (0 = screen width from config)")
	height := flag.Int("height", 0, "Grid height (0 = screen height from config)")
	seed := flag.Int64("seed", 0, "Noise seed (0 = use config)")
	phase := flag.Float64("phase", 0, "Animation phase offset added to sample coordinates")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *width == 0 {
		*width = cfg.Screen.Width
	}
	if *height == 0 {
		*height = cfg.Screen.Height
	}
	noiseSeed := *seed
	if noiseSeed == 0 {
		noiseSeed = cfg.Noise.Seed
	}

	field, err := buildField(cfg, noiseSeed)
	if err != nil {
		slog.Error("failed to build field", "error", err)
		os.Exit(1)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			slog.Error("failed to create output file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "ascii":
		err = writeASCII(w, field, *width, *height, cfg.Noise.SpatialScale, *phase)
	case "csv":
		err = writeCSV(w, field, *width, *height, cfg.Noise.SpatialScale, *phase)
	default:
		slog.Error("unknown format", "format", *format)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("failed to write output", "error", err)
		os.Exit(1)
	}
}

// buildField assembles the same noise stack the simulation uses: backend,
// fractal layering, optional domain warp.
func buildField(cfg *config.Config, seed int64) (noise.Field, error) {
	var base noise.Field
	switch cfg.Noise.Backend {
	case "simplex":
		base = noise.NewSimplex(seed)
	default:
		base = noise.NewPerlin(seed)
	}

	field, err := noise.NewFractal(base, noise.FractalConfig{
		Octaves:     cfg.Noise.Octaves,
		Persistence: cfg.Noise.Persistence,
		Lacunarity:  cfg.Noise.Lacunarity,
		Scale:       cfg.Noise.Scale,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Noise.WarpStrength > 0 {
		return noise.NewDomainWarp(field, cfg.Noise.WarpStrength)
	}
	return field, nil
}

// writeASCII renders the grid as shade characters, darkest for the lowest
// values.
func writeASCII(w *os.File, field noise.Field, width, height int, scale, phase float64) error {
	row := make([]byte, width+1)
	row[width] = '\n'
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := field.Sample(float64(x)*scale+phase, float64(y)*scale+phase)
			// Map [-1, 1] to a shade index.
			idx := int((v + 1) / 2 * float64(len(shades)))
			if idx < 0 {
				idx = 0
			}
			if idx >= len(shades) {
				idx = len(shades) - 1
			}
			row[x] = shades[idx]
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", y, err)
		}
	}
	return nil
}

// writeCSV dumps every sampled cell as an x,y,value row.
func writeCSV(w *os.File, field noise.Field, width, height int, scale, phase float64) error {
	cells := make([]cell, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells = append(cells, cell{
				X:     x,
				Y:     y,
				Value: field.Sample(float64(x)*scale+phase, float64(y)*scale+phase),
			})
		}
	}
	if err := gocsv.Marshal(cells, w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
