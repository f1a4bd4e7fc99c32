package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/planewar/internal/config"
	loopconfig "github.com/tomz197/planewar/internal/loop/config"
	"github.com/tomz197/planewar/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

func main() {
	logger := config.NewLogger("web")
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	addr := net.JoinHostPort(host, port)

	srv := web.NewServer(web.Options{
		Seed:   config.GetEnvInt64("PLANEWAR_SEED", 0),
		Logger: logger,
	})
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting web server", "url", "http://"+addr)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Tell every browser first; their sockets are hijacked and not
	// covered by http.Server.Shutdown.
	if left := srv.Shutdown(loopconfig.ShutdownTimeout); left > 0 {
		logger.Warn("players still connected at shutdown", "count", left)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}
