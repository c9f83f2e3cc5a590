// glyphview opens a desktop preview window for the emblem. Keys: 1-4 pick a
// preset, S spawns, D despawns, M cycles the transition mode, up/down nudge
// the stage, Q/Esc quit.
package main

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cyberpunk042/glyphfield/internal/app"
	"github.com/cyberpunk042/glyphfield/internal/config"
	"github.com/cyberpunk042/glyphfield/internal/emblem"
)

const tickS = 1.0 / 60.0

type game struct {
	core   *app.Core
	pix    []byte // RGBA scratch for WritePixels
	mode   emblem.TransitionMode
	status string
}

func newGame(core *app.Core) *game {
	n := core.Layout.Count()
	return &game{
		core: core,
		pix:  make([]byte, n*4),
		mode: core.Scene.Base().Stage.Mode,
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	presets := g.core.Scene.Presets()
	for i, k := range []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4} {
		if inpututil.IsKeyJustPressed(k) && i < len(presets) {
			g.core.Scene.ApplyPreset(presets[i], g.core.Eng.UActive)
			g.status = presets[i]
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.core.Anim.Spawn()
		g.status = "spawn"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.core.Anim.Despawn()
		g.status = "despawn"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.mode = (g.mode + 1) % 4
		g.core.Eng.SetParam("TransitionMode", float64(g.mode))
		g.status = "mode " + g.mode.String()
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.core.Anim.SetStage(g.core.Anim.Stage() + 4*tickS)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.core.Anim.SetStage(g.core.Anim.Stage() - 4*tickS)
	}

	stage, _ := g.core.Anim.Tick(tickS)
	g.core.Eng.SetParam("Stage", stage)
	g.core.Player.Tick(tickS)
	if err := g.core.Eng.RenderOnce(-1); err != nil {
		return err
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	out := g.core.Eng.Out
	for i, c := range out {
		g.pix[i*4+0] = q8(c.R)
		g.pix[i*4+1] = q8(c.G)
		g.pix[i*4+2] = q8(c.B)
		g.pix[i*4+3] = 255
	}
	screen.WritePixels(g.pix)
	if g.status != "" {
		ebitenutil.DebugPrint(screen, g.status)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.core.Layout.W, g.core.Layout.H
}

func q8(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}

func main() {
	var (
		configPath = flag.String("config", "", "path to config.yaml (defaults used if empty)")
		preset     = flag.String("preset", "", "preset to apply at startup")
		showPath   = flag.String("show", "", "path to a yaml show to play")
		scale      = flag.Int("scale", 8, "window pixels per panel pixel")
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
	cfg.Power.BudgetMA = 0 // preview skips the power limiter

	core, err := app.InitCore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}
	defer core.Close()
	core.Eng.SetBool("PreviewMode", true)

	if *preset != "" {
		core.Scene.ApplyPreset(*preset, core.Eng.UActive)
	}
	if *showPath != "" {
		if err := core.LoadShow(*showPath); err != nil {
			log.Fatal().Err(err).Str("path", *showPath).Msg("show load failed")
		}
		core.Player.Start()
	}

	ebiten.SetWindowSize(core.Layout.W*(*scale), core.Layout.H*(*scale))
	ebiten.SetWindowTitle("glyphview")
	if err := ebiten.RunGame(newGame(core)); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal().Err(err).Msg("run")
	}
}
