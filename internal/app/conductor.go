package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cyberpunk042/glyphfield/internal/sequence"
)

// RunHeadless drives the animator, show player and engine without the
// websocket surface, for show playback from the command line. It returns
// when the context is cancelled or, if stopWhenIdle is set, when the show
// finishes.
func (c *Core) RunHeadless(ctx context.Context, stopWhenIdle bool) {
	fps := c.Cfg.FPS
	if fps < 1 {
		fps = 1
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			stage, _ := c.Anim.Tick(dt)
			c.Eng.SetParam("Stage", stage)
			c.Player.Tick(dt)
			if err := c.Eng.RenderOnce(-1); err != nil {
				log.Warn().Err(err).Msg("render")
			}
			if stopWhenIdle && c.Player.State == sequence.Idle {
				return
			}
		}
	}
}
