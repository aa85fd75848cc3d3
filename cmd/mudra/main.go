package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		logrus.Fatalf("Failed to initialize logging: %v", err)
	}
	log.Info("mudra - hand sign captioning")

	model, err := gesture.LoadModel(cfg.Model)
	if err != nil {
		log.WithError(err).Fatal("Failed to load model")
	}
	log.WithField("labels", model.Labels()).Info("model loaded")

	det, err := detector.NewMediaPipeDetector(cfg.Detector, logrus.NewEntry(log))
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize detector")
	}
	defer det.Close()

	var st *store.Store
	if cfg.Store.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0755); err != nil {
			log.WithError(err).Fatal("Failed to create data directory")
		}
		st, err = store.New(cfg.Store.Path)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize store")
		}
		defer st.Close()
		log.WithField("path", st.Path()).Info("prediction history enabled")
	}

	a, err := app.New(app.Config{
		Model:    model,
		Detector: det,
		Source:   capture.NewSource(cfg.Capture, nil),
		Store:    st,
		Logger:   log,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize app")
	}

	staticDir := cfg.Server.StaticDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		log.WithField("dir", staticDir).Info("serving static files")
	}

	srv := server.New(server.Config{
		App:            a,
		StaticDir:      staticDir,
		Logger:         log,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
	})

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe(cfg.Server.Addr)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			log.WithError(err).Error("server failed")
		}
	case s := <-sig:
		log.WithField("signal", s.String()).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("graceful shutdown failed")
		}
	}
}

// findWebDir searches "web", "../web" and ~/.mudra/web for the frontend.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	candidates := []string{"web", filepath.Join("..", "web")}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".mudra", "web"))
	}

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}
	return ""
}
