package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"
)

func SetupMiddleware(router fiber.Router, origins string) {

	if origins == "" {
		origins = "*"
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST",
		AllowCredentials: origins != "*",
	}))
	router.Use(errorHandle)
	router.Use(logRequest)

}

// errorHandle maps handler errors to a plain-text response. *fiber.Error keeps its code, anything else is 400.
func errorHandle(c *fiber.Ctx) error {

	err := c.Next()
	if err != nil {
		log.Error().Err(err).Str("endpoint", c.Path()).Msg("Error in middleware")

		code := fiber.StatusBadRequest
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		return c.Status(code).SendString(err.Error())
	}
	return nil
}

func logRequest(c *fiber.Ctx) error {
	log.Info().Str("method", c.Method()).Str("endpoint", c.Path()).Msg("Request endpoint")
	if len(c.Body()) > 0 {
		log.Debug().Str("body", string(c.Body())).Msg("Request body")
	}
	return c.Next()
}
