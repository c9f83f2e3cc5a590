package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cyberpunk042/glyphfield/internal/app"
	"github.com/cyberpunk042/glyphfield/internal/config"
)

func main() {
	var (
		addr       = flag.String("addr", "", "HTTP listen address (overrides config)")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		driver     = flag.String("driver", "", "driver: nrz | term | sim (overrides config)")
		fps        = flag.Int("fps", 0, "target frames per second (overrides config)")
		brightness = flag.Float64("brightness", -1, "global brightness 0..1 (overrides config)")
		showPath   = flag.String("show", "", "path to a yaml show to load")
		play       = flag.Bool("play", false, "start the loaded show immediately")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
		cfg = config.Default()
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *driver != "" {
		cfg.Driver = *driver
	}
	if *simOnly {
		cfg.Driver = "sim"
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if *brightness >= 0 {
		cfg.Brightness = *brightness
	}

	core, err := app.InitCore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}
	defer core.Close()

	if *showPath != "" {
		if err := core.LoadShow(*showPath); err != nil {
			log.Fatal().Err(err).Str("path", *showPath).Msg("show load failed")
		}
		if *play {
			core.Player.Start()
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", core.State.HandleFramesWS)
	mux.HandleFunc("/diag", core.State.HandleDiagWS)
	mux.HandleFunc("/control", core.State.HandleControlWS)
	mux.HandleFunc("/health", core.State.HandleHealth)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go core.State.RunRenderLoop(ctx)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("driver", cfg.Driver).
			Int("w", cfg.Frame.W).Int("h", cfg.Frame.H).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	cancel()
	_ = srv.Close()
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
