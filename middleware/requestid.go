package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	RequestIDKey    = "requestid"
)

// RequestID reutiliza el X-Request-ID entrante o genera uno nuevo, lo guarda en
// c.Locals y lo devuelve en la respuesta
func RequestID(c *fiber.Ctx) error {
	rid := c.Get(HeaderRequestID)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Locals(RequestIDKey, rid)
	c.Set(HeaderRequestID, rid)
	return c.Next()
}
