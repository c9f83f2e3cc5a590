// glyphsim renders emblem frames offline and writes them as PNGs, for
// eyeballing presets and stage sweeps without a panel or a browser.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cyberpunk042/glyphfield/internal/app"
	"github.com/cyberpunk042/glyphfield/internal/config"
	"github.com/cyberpunk042/glyphfield/internal/render"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config.yaml (defaults used if empty)")
		preset     = flag.String("preset", "", "preset to apply before rendering")
		outDir     = flag.String("out", "frames", "output directory for PNGs")
		frames     = flag.Int("frames", 60, "number of frames to render")
		fps        = flag.Float64("fps", 60, "simulated frames per second")
		w          = flag.Int("w", 0, "frame width (overrides config)")
		h          = flag.Int("h", 0, "frame height (overrides config)")
		spawn      = flag.Bool("spawn", false, "animate a spawn sweep across the frames")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
		}
		cfg = c
	}
	cfg.Driver = "sim"
	if *w > 0 {
		cfg.Frame.W = *w
	}
	if *h > 0 {
		cfg.Frame.H = *h
	}

	core, err := app.InitCore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}
	defer core.Close()

	if *preset != "" {
		core.Scene.ApplyPreset(*preset, core.Eng.UActive)
	}
	if *spawn {
		core.Anim.Spawn()
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("mkdir")
	}

	dt := 1.0 / *fps
	var totalMS float64
	for i := 0; i < *frames; i++ {
		stage, _ := core.Anim.Tick(dt)
		core.Eng.SetParam("Stage", stage)
		if err := core.Eng.RenderOnce(float64(i) * dt); err != nil {
			log.Fatal().Err(err).Int("frame", i).Msg("render")
		}
		totalMS += core.Eng.Last.RenderMS

		path := filepath.Join(*outDir, fmt.Sprintf("frame_%04d.png", i))
		if err := writePNG(path, core.Eng.Out, core.Eng.Dim); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("write")
		}
	}

	log.Info().Int("frames", *frames).Str("dir", *outDir).
		Float64("avg_ms", totalMS/float64(*frames)).Msg("done")
}

func writePNG(path string, buf []render.Color, dim render.Dimensions) error {
	img := image.NewNRGBA(image.Rect(0, 0, dim.W, dim.H))
	for y := 0; y < dim.H; y++ {
		for x := 0; x < dim.W; x++ {
			c := buf[y*dim.W+x]
			img.SetNRGBA(x, y, color.NRGBA{R: q8(c.R), G: q8(c.G), B: q8(c.B), A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func q8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
