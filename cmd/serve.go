package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stayscan/bnbetl/internal/model"
)

var servePort int

// runState tracks the latest pipeline run triggered through the server.
type runState struct {
	mu       sync.Mutex
	running  bool
	manifest *model.Manifest
	lastErr  error
}

func (s *runState) tryStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *runState) finish(m *model.Manifest, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	if err != nil {
		s.lastErr = err
		return
	}
	s.manifest = m
	s.lastErr = nil
}

func (s *runState) snapshot() (bool, *model.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running, s.manifest, s.lastErr
}

func newServeMux(state *runState, trigger func()) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/runs", func(w http.ResponseWriter, _ *http.Request) {
		if !state.tryStart() {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "a run is already in progress"})
			return
		}
		trigger()
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	})

	r.Get("/runs/latest", func(w http.ResponseWriter, _ *http.Request) {
		running, manifest, lastErr := state.snapshot()
		if running {
			writeJSON(w, http.StatusOK, map[string]string{"status": "running"})
			return
		}
		if lastErr != nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "failed", "error": lastErr.Error()})
			return
		}
		if manifest == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no completed runs"})
			return
		}
		writeJSON(w, http.StatusOK, manifest)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an HTTP server that triggers pipeline runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		state := &runState{}
		trigger := func() {
			go func() {
				manifest, err := runAll(ctx, cfg, false)
				if err != nil {
					zap.L().Error("serve: triggered run failed", zap.Error(err))
				}
				state.finish(manifest, err)
			}()
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newServeMux(state, trigger),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
