package app

import (
	"fmt"
	"icequeen"
	"icequeen/app/handler"
	"icequeen/app/middleware"
	"icequeen/internal/db"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

type Config struct {
	Port    int
	JwtKey  string
	Origins string
}

// New builds the HTTP surface over the tracker. stg and metrics may be nil.
func New(conf Config, tracker *icequeen.Tracker, stg *db.Storage, metrics http.Handler) *fiber.App {

	app := fiber.New(fiber.Config{
		AppName:               "icequeen",
		DisableStartupMessage: true,
	})

	middleware.SetupMiddleware(app, conf.Origins)
	guard := middleware.JWTGuard(conf.JwtKey)

	var (
		cr handler.PositionCacheRetriever
		hr handler.HistoryRetriever
	)
	if stg != nil {
		cr, hr = stg, stg
	}

	handler.NewPositionHandler(tracker, cr, hr).InitRoute(app)
	handler.NewStakeHandler(tracker).InitRoute(app)
	handler.NewAdminHandler(tracker, guard).InitRoute(app)
	handler.NewEventHandler(tracker, tracker, tracker, guard).InitRoute(app)

	if metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics))
	}

	return app
}

func Run(conf Config, tracker *icequeen.Tracker, stg *db.Storage, metrics http.Handler) error {
	return New(conf, tracker, stg, metrics).Listen(fmt.Sprintf(":%d", conf.Port))
}
