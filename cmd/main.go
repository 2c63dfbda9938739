package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/awsclient"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/config"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/server"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/pkg/logger"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/pkg/obs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("CRITICAL: Failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.NewSugared(cfg.App.LogLevel)
	if err != nil {
		os.Stderr.WriteString("CRITICAL: Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	shutdownTracer, err := obs.InitTracer(ctx, cfg.Tracing, cfg.App.Env)
	if err != nil {
		log.Fatal("Failed to initialize tracing: ", err)
	}

	clients, err := awsclient.New(ctx, cfg, log.Desugar())
	if err != nil {
		log.Fatal("Failed to create AWS clients: ", err)
	}

	srv := server.New(cfg, clients, log.Desugar())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Infof("Starting server on %s", cfg.Addr())
		if err := srv.Run(); err != nil {
			log.Fatal("Server failed: ", err)
		}
	}()
	sig := <-quit
	log.Infof("Received signal: %v. Shutting down gracefully...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Errorf("Tracer shutdown failed: %v", err)
	}

	log.Info("Server exited")
}
