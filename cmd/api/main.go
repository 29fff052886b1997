package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"printcart/internal/config"
	"printcart/internal/httpserver"
	cartrepo "printcart/internal/repository/cart"
	cartsvc "printcart/internal/service/cart"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Fatalf("prepare data dir: %v", err)
	}

	cartRepo := cartrepo.NewFile(cfg.DataDir)
	cartService := cartsvc.New(cartRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		CartSvc: cartService,
		DataDir: cfg.DataDir,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
