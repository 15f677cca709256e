package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"countrydex/service"
)

// Handler carries the services the HTTP layer dispatches to
type Handler struct {
	Countries service.CountryService
	Refresh   service.RefreshService
	ImagePath string
}

// NewHandler creates a new HTTP handler
func NewHandler(countries service.CountryService, refresh service.RefreshService, imagePath string) *Handler {
	return &Handler{
		Countries: countries,
		Refresh:   refresh,
		ImagePath: imagePath,
	}
}

// NewApp builds the fiber application with all routes registered
func NewApp(h *Handler) *fiber.App {
	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())

	app.Post("/countries/refresh", h.RefreshCountries)
	app.Get("/countries", h.ListCountries)
	app.Get("/countries/:name", h.GetCountry)
	app.Delete("/countries/:name", h.DeleteCountry)
	app.Get("/status", h.GetStatus)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return app
}
