package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"countrydex/feeds"
	"countrydex/models"
)

// RefreshCountries runs the full fetch-aggregate-persist cycle
// POST /countries/refresh
func (h *Handler) RefreshCountries(c *fiber.Ctx) error {
	count, err := h.Refresh.Refresh(c.UserContext())
	if err != nil {
		var upstream *feeds.UpstreamError
		if errors.As(err, &upstream) {
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"error":   "External data source unavailable",
				"details": upstream.Error(),
			})
		}
		log.WithError(err).Error("Refresh failed")
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(fiber.Map{
		"message": "Countries refreshed successfully",
		"count":   count,
	})
}

// ListCountries returns all countries with optional filters and sorting
// GET /countries?region=&currency=&sort=
func (h *Handler) ListCountries(c *fiber.Ctx) error {
	filter := models.ListFilter{
		Region:   c.Query("region"),
		Currency: c.Query("currency"),
		Sort:     models.SortKey(c.Query("sort")),
	}

	countries, err := h.Countries.ListCountries(c.UserContext(), filter)
	if err != nil {
		log.WithError(err).Error("Failed to list countries")
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(countries)
}

func pathName(c *fiber.Ctx) string {
	name := c.Params("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return name
}

// GetCountry returns a single country by name. The reserved name "image"
// serves the rendered summary artifact instead.
// GET /countries/:name
func (h *Handler) GetCountry(c *fiber.Ctx) error {
	name := pathName(c)

	if strings.EqualFold(name, "image") {
		if _, err := os.Stat(h.ImagePath); err != nil {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Summary image not found"})
		}
		c.Type("png")
		return c.SendFile(h.ImagePath)
	}

	country, err := h.Countries.GetCountry(c.UserContext(), name)
	if err != nil {
		log.WithError(err).Error("Failed to get country")
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	if country == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Country not found"})
	}

	return c.JSON(country)
}

// DeleteCountry deletes a single country by name
// DELETE /countries/:name
func (h *Handler) DeleteCountry(c *fiber.Ctx) error {
	name := pathName(c)

	deleted, err := h.Countries.DeleteCountry(c.UserContext(), name)
	if err != nil {
		log.WithError(err).Error("Failed to delete country")
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	if !deleted {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Country not found"})
	}

	return c.JSON(fiber.Map{"message": fmt.Sprintf("Country '%s' deleted successfully", name)})
}

// GetStatus reports the total row count and the last refresh timestamp
// GET /status
func (h *Handler) GetStatus(c *fiber.Ctx) error {
	status, err := h.Countries.GetStatus(c.UserContext())
	if err != nil {
		log.WithError(err).Error("Failed to get status")
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(status)
}
