// Package ws serves the daemon's websocket surface: frame previews, a
// control channel and structured diagnostics, plus a plain health endpoint.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/cyberpunk042/glyphfield/internal/anim"
	diag "github.com/cyberpunk042/glyphfield/internal/diagnostics"
	"github.com/cyberpunk042/glyphfield/internal/layout"
	"github.com/cyberpunk042/glyphfield/internal/led"
	"github.com/cyberpunk042/glyphfield/internal/render"
	"github.com/cyberpunk042/glyphfield/internal/sequence"
	"github.com/cyberpunk042/glyphfield/internal/tests"
)

// State owns the render loop and its websocket clients. The engine,
// animator and player are only touched under mu, from the loop or from
// control handlers.
type State struct {
	mu     sync.RWMutex
	Layout layout.Layout
	FPS    int

	Engine   *render.Engine
	Registry *render.Registry
	Animator *anim.Animator
	Player   *sequence.Player // optional
	Sink     *led.FrameSink
	Driver   led.Driver // raw strip access for test patterns

	CurrentDriver string

	frameID     uint64
	startTime   time.Time
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool

	testRunner *tests.Runner
	testBuf    []byte
}

func NewState(l layout.Layout, fps int, eng *render.Engine, reg *render.Registry, an *anim.Animator, sink *led.FrameSink, drv led.Driver) *State {
	return &State{
		Layout:      l,
		FPS:         fps,
		Engine:      eng,
		Registry:    reg,
		Animator:    an,
		Sink:        sink,
		Driver:      drv,
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		testBuf:     make([]byte, l.Count()*3),
	}
}

// RunRenderLoop ticks the animator, show player and engine at FPS until the
// context is cancelled, broadcasting each frame to preview clients.
func (s *State) RunRenderLoop(ctx context.Context) {
	fps := s.FPS
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
			s.step(dt)
		}
	}
}

func (s *State) step(dt float64) {
	s.mu.Lock()

	// test patterns preempt the renderer
	if s.testRunner != nil {
		if s.testRunner.Step(s.Layout, s.testBuf) {
			s.frameID++
			buf := append([]byte{}, s.testBuf...)
			drv := s.Driver
			s.mu.Unlock()
			if drv != nil {
				if err := drv.Write(buf); err != nil {
					log.Warn().Err(err).Msg("test pattern write")
				}
			}
			s.broadcastFrame(buf)
			return
		}
		s.testRunner = nil
		s.pushDiag(diag.Diagnostic{Severity: diag.Info, Code: "TEST.DONE", Summary: "Test complete"})
	}

	stage, done := s.Animator.Tick(dt)
	s.Engine.SetParam("Stage", stage)
	if s.Player != nil {
		s.Player.Tick(dt)
	}
	if err := s.Engine.RenderOnce(-1); err != nil {
		s.mu.Unlock()
		log.Warn().Err(err).Msg("render")
		return
	}
	s.frameID++
	buf := append([]byte{}, s.Sink.Bytes()...)
	s.mu.Unlock()

	if done {
		log.Info().Float64("stage", stage).Msg("stage sweep complete")
	}
	s.broadcastFrame(buf)
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	s.sendTopology(conn)

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.diagClients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		s.applyControl(msg)
		s.sendTopology(conn)
	}
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	renderer := ""
	brightness := 0.0
	if s.Engine.RActive != nil {
		renderer = s.Engine.RActive.Name()
	}
	if s.Engine.UActive != nil {
		brightness = s.Engine.UActive.GlobalBrightness
	}
	resp := map[string]any{
		"frame_id":   s.frameID,
		"uptime_s":   time.Since(s.startTime).Seconds(),
		"count":      s.Layout.Count(),
		"fps":        s.FPS,
		"brightness": brightness,
		"renderer":   renderer,
		"stage":      s.Animator.Stage(),
		"anim":       s.Animator.State().String(),
		"driver":     s.CurrentDriver,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *State) applyControl(msg map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := msg["renderer"].(string); ok {
		preset, _ := msg["preset"].(string)
		if err := s.Engine.SetRenderer(v, preset, s.Registry); err != nil {
			s.pushDiag(diag.Diagnostic{
				Severity: diag.Warn, Code: "RENDERER.UNKNOWN", Summary: "Unknown renderer",
				Evidence: map[string]any{"name": v},
			})
		}
	} else if v, ok := msg["preset"].(string); ok {
		if s.Engine.RActive != nil {
			s.Engine.RActive.ApplyPreset(v, s.Engine.UActive)
		}
	}

	if params, ok := msg["params"].(map[string]any); ok {
		for k, raw := range params {
			if v, ok := raw.(float64); ok {
				s.Engine.SetParam(k, v)
			}
		}
	}
	if bools, ok := msg["bools"].(map[string]any); ok {
		for k, raw := range bools {
			if v, ok := raw.(bool); ok {
				s.Engine.SetBool(k, v)
			}
		}
	}

	if v, ok := msg["spawn"].(bool); ok && v {
		s.Animator.Spawn()
	}
	if v, ok := msg["despawn"].(bool); ok && v {
		s.Animator.Despawn()
	}
	if v, ok := msg["stage"].(float64); ok {
		s.Animator.SetStage(v)
		s.Engine.SetParam("Stage", s.Animator.Stage())
	}
	if v, ok := msg["stageSpeed"].(float64); ok {
		s.Animator.SetStageSpeed(v)
	}
	if v, ok := msg["animateOnSpawn"].(bool); ok {
		s.Animator.SetAnimate(v)
	}

	if v, ok := msg["brightness"].(float64); ok && s.Engine.UActive != nil {
		s.Engine.UActive.GlobalBrightness = clamp(v, 0, 1)
	}

	if v, ok := msg["runTest"].(string); ok {
		switch tests.Kind(v) {
		case tests.IndexSweep, tests.RGBTest, tests.RowSweep:
			s.testRunner = tests.NewRunner(tests.Plan{Kind: tests.Kind(v)})
			s.pushDiag(diag.Diagnostic{Severity: diag.Info, Code: "TEST.RUNNING", Summary: "Running test", Detail: v})
		default:
			s.pushDiag(diag.Diagnostic{
				Severity: diag.Warn, Code: "TEST.UNKNOWN", Summary: "Unknown test name",
				Evidence: map[string]any{"name": v},
			})
		}
	}
}

func (s *State) sendTopology(conn *websocket.Conn) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var presets []string
	renderer := ""
	if s.Engine.RActive != nil {
		renderer = s.Engine.RActive.Name()
		presets = s.Engine.RActive.Presets()
	}
	top := map[string]any{
		"frame":     map[string]int{"w": s.Layout.W, "h": s.Layout.H},
		"order":     map[string]bool{"xFlipEveryRow": s.Layout.Order.XFlipEveryRow},
		"driver":    s.CurrentDriver,
		"fps":       s.FPS,
		"renderer":  renderer,
		"renderers": s.Registry.List(),
		"presets":   presets,
		"stage":     s.Animator.Stage(),
	}
	b, _ := json.Marshal(top)
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

func (s *State) broadcastFrame(rgb []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type frame struct {
		T       int64  `json:"t"`
		FrameID uint64 `json:"frame_id"`
		RGB     []byte `json:"rgb"`
	}
	b, _ := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: s.frameID, RGB: rgb})
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
}

func (s *State) pushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	for c := range s.diagClients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
