package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const refreshTimeout = 30 * time.Second

type AdminHandler struct {
	r     Refresher
	guard fiber.Handler
}

func NewAdminHandler(r Refresher, guard fiber.Handler) *AdminHandler {
	return &AdminHandler{
		r:     r,
		guard: guard,
	}
}

func (h *AdminHandler) InitRoute(app *fiber.App) {

	router := app.Group("/admin", h.guard)
	router.Post("/refresh", h.Refresh)
}

func (h *AdminHandler) Refresh(c *fiber.Ctx) error {

	ctx, cancel := context.WithTimeout(c.UserContext(), refreshTimeout)
	defer cancel()

	err := h.r.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("Refresh 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).SendString("Refresh 성공")
}
