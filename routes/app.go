package routes

import (
	"video-metadata-api/config"
	"video-metadata-api/db"
	"video-metadata-api/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// NewApp construye la aplicación Fiber con middlewares y rutas
func NewApp(cfg config.Config, log *logrus.Logger, store *db.VideoStore) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "video-metadata-api",
		ErrorHandler:          middleware.ErrorHandler(log),
		DisableStartupMessage: cfg.Production,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID)
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin,Content-Type,Accept,Content-Length,Accept-Language,Accept-Encoding,Connection,X-Request-ID",
		AllowOrigins: cfg.CorsAllowOrigins,
		AllowMethods: "GET,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Status
	app.Get("/status", GetStatus(store))

	// Videos
	NewVideoHandler(store, log).Register(app)

	return app
}
