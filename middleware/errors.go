package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorHandler devuelve cualquier error no gestionado por los handlers como
// {"error": "..."}. Los errores que no son *fiber.Error se ocultan tras un 500.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
		})
	}
}
