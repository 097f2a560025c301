package handler

import (
	"errors"
	"fmt"
	"icequeen"

	"github.com/gofiber/fiber/v2"
)

// EventHandler serves the scheduled jobs of the tracker: refresh, daily report and prune
type EventHandler struct {
	er    EventRetriever
	el    EventLauncher
	ec    EventStatusChanger
	guard fiber.Handler
}

// NewEventHandler exposes the scheduled jobs. switch and launch go through guard.
func NewEventHandler(er EventRetriever, el EventLauncher, ec EventStatusChanger, guard fiber.Handler) *EventHandler {
	return &EventHandler{
		er:    er,
		el:    el,
		ec:    ec,
		guard: guard,
	}
}

func (h *EventHandler) InitRoute(app *fiber.App) {

	router := app.Group("/events")
	router.Get("/", h.Events)
	router.Post("/switch", h.guard, h.SwitchEvent)
	router.Post("/launch", h.guard, h.LaunchEvent)
}

func (h *EventHandler) Events(c *fiber.Ctx) error {

	events := h.er.Events()

	rtn := make([]EventResponse, 0, len(events))
	for _, e := range events {
		rtn = append(rtn, EventResponse{
			Id:          e.Id,
			Title:       e.Title,
			Description: e.Description,
			Active:      e.IsActive,
		})
	}

	return c.Status(fiber.StatusOK).JSON(rtn)
}

// SwitchEvent turns a scheduled job on or off. The state survives restarts.
func (h *EventHandler) SwitchEvent(c *fiber.Ctx) error {

	param := EventStatusChangeRequest{}
	err := c.BodyParser(&param)
	if err != nil {
		return fmt.Errorf("파라미터 BodyParse 시 오류 발생. %w", err)
	}

	err = validCheck(&param)
	if err != nil {
		return fmt.Errorf("파라미터 유효성 검사 시 오류 발생. %w", err)
	}

	err = h.ec.SetEventStatus(param.Id, param.Active)
	if err != nil {
		return eventError("job 상태 변경 실패", err)
	}

	state := "중지"
	if param.Active {
		state = "재개"
	}
	return c.Status(fiber.StatusOK).SendString(fmt.Sprintf("job %d 스케줄 %s", param.Id, state))
}

// LaunchEvent runs an active job once, outside its schedule
func (h *EventHandler) LaunchEvent(c *fiber.Ctx) error {

	var param EventLaunchRequest
	err := c.BodyParser(&param)
	if err != nil {
		return fmt.Errorf("파라미터 BodyParse 시 오류 발생. %w", err)
	}

	err = validCheck(&param)
	if err != nil {
		return fmt.Errorf("파라미터 유효성 검사 시 오류 발생. %w", err)
	}

	err = h.el.LaunchEvent(param.Id)
	if err != nil {
		return eventError("job 수동 실행 실패", err)
	}

	return c.Status(fiber.StatusOK).SendString(fmt.Sprintf("job %d 수동 실행 완료", param.Id))
}

func eventError(msg string, err error) error {
	switch {
	case errors.Is(err, icequeen.ErrUnknownEvent):
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("%s. %s", msg, err))
	case errors.Is(err, icequeen.ErrEventInactive):
		return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("%s. %s", msg, err))
	default:
		return fmt.Errorf("%s. %w", msg, err)
	}
}
