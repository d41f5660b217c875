package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"video-metadata-api/config"
	"video-metadata-api/db"
	"video-metadata-api/pkg"
	"video-metadata-api/routes"
)

func main() {
	cfg := config.LoadConfig()
	log := pkg.NewLogger(cfg.LogLevel, cfg.Production)

	// Iniciar la base de datos
	conn, err := db.Open(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Error opening database")
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			log.WithError(err).Error("Error closing database")
		}
	}()

	app := routes.NewApp(cfg, log, db.NewVideoStore(conn))

	// Apagado ordenado con SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server is running on port %s", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("Server stopped")
		}
	case <-ctx.Done():
		log.Info("Shutting down")
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			log.WithError(err).Error("Error during shutdown")
		}
	}
}
