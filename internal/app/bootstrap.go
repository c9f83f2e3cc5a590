// Package app assembles the daemon: config to layout, driver, engine,
// animator, show player and websocket state.
package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/cyberpunk042/glyphfield/internal/anim"
	"github.com/cyberpunk042/glyphfield/internal/config"
	"github.com/cyberpunk042/glyphfield/internal/layout"
	"github.com/cyberpunk042/glyphfield/internal/led"
	"github.com/cyberpunk042/glyphfield/internal/render"
	"github.com/cyberpunk042/glyphfield/internal/render/scenes/circle"
	"github.com/cyberpunk042/glyphfield/internal/render/scenes/grad"
	"github.com/cyberpunk042/glyphfield/internal/render/scenes/solid"
	"github.com/cyberpunk042/glyphfield/internal/sequence"
	"github.com/cyberpunk042/glyphfield/internal/ws"
)

// Core holds everything a front end (daemon, simulator, preview window)
// needs to run the emblem.
type Core struct {
	Cfg    *config.Config
	Layout layout.Layout

	Drv    led.Driver
	Sink   *led.FrameSink
	Eng    *render.Engine
	Reg    *render.Registry
	Scene  *circle.Scene
	Anim   *anim.Animator
	Player *sequence.Player
	State  *ws.State
}

// InitCore builds the full pipeline from cfg. The driver name in cfg picks
// the strip transport; "sim" needs no hardware.
func InitCore(cfg *config.Config) (*Core, error) {
	base, err := cfg.Emblem.ToEmblem()
	if err != nil {
		return nil, err
	}

	l := layout.Layout{
		W:     cfg.Frame.W,
		H:     cfg.Frame.H,
		Order: layout.Serpentine{XFlipEveryRow: cfg.XFlipEveryRow},
	}

	drv, err := openDriver(cfg, l)
	if err != nil {
		return nil, err
	}
	sink := led.NewFrameSink(l, drv)

	scene := circle.New()
	scene.SetBase(base)
	reg := render.NewRegistry()
	reg.Register(scene)
	reg.Register(solid.New("solid", render.Color{R: 1}))
	reg.Register(grad.New("grad"))

	u := render.NewUniforms()
	u.GlobalBrightness = cfg.Brightness
	scene.PushUniforms(u)

	eng, err := render.NewEngine(render.Dimensions{W: l.W, H: l.H}, sink, scene, u)
	if err != nil {
		drv.Close()
		return nil, err
	}
	eng.UseFilmicPost()
	applyPostDefaults(eng, cfg)

	an := anim.New(cfg.Emblem.Stage.Speed)
	an.SetAnimate(cfg.Emblem.Stage.AnimateOnSpawn)
	an.SetStage(cfg.Emblem.Stage.Value)

	player := sequence.NewPlayer(sequence.Hooks{
		SetRenderer:  func(name, preset string) { _ = eng.SetRenderer(name, preset, reg) },
		ArmNext:      func(name, preset string) { _ = eng.ArmNext(name, preset, reg) },
		SetCrossfade: eng.SetCrossfade,
		SetParam:     eng.SetParam,
		SetBool:      eng.SetBool,
		Spawn:        an.Spawn,
		Despawn:      an.Despawn,
	})

	st := ws.NewState(l, cfg.FPS, eng, reg, an, sink, drv)
	st.Player = player
	st.CurrentDriver = cfg.Driver

	return &Core{
		Cfg: cfg, Layout: l,
		Drv: drv, Sink: sink, Eng: eng, Reg: reg, Scene: scene,
		Anim: an, Player: player, State: st,
	}, nil
}

// LoadShow reads a yaml show file into the player. Playback still needs
// Start (a spawn control or the daemon's -show flag does that).
func (c *Core) LoadShow(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var show sequence.Show
	if err := yaml.Unmarshal(b, &show); err != nil {
		return fmt.Errorf("show %s: %w", path, err)
	}
	return c.Player.Load(show)
}

func (c *Core) Close() {
	if c.Drv != nil {
		if err := c.Drv.Close(); err != nil {
			log.Warn().Err(err).Msg("driver close")
		}
	}
}

func openDriver(cfg *config.Config, l layout.Layout) (led.Driver, error) {
	switch cfg.Driver {
	case "nrz":
		return led.NewNRZ(cfg.SPI.Dev, l.Count(), cfg.SPI.SpeedHz)
	case "term":
		return led.NewTerm(l.W, l.H), nil
	case "sim", "":
		return led.NewSim(l.Count()), nil
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

func applyPostDefaults(eng *render.Engine, cfg *config.Config) {
	for k, v := range map[string]float64{
		"Budget_mA":   cfg.Power.BudgetMA,
		"LEDChan_mA":  20,
		"LimiterKnee": 0.9,
		"WhiteCap":    cfg.Power.WhiteCap,
		"ExposureEV":  0,
		"OutputGamma": 2.2,
	} {
		eng.SetParam(k, v)
	}
}
