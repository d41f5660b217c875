package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger es cualquier dependencia que pueda comprobar su conexión
type Pinger interface {
	Ping(ctx context.Context) error
}

// GetStatus indica si el servicio está activo y si la base de datos responde
func GetStatus(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"active":   true,
				"database": "unreachable",
			})
		}

		return c.JSON(fiber.Map{
			"active":   true,
			"database": "ok",
		})
	}
}
