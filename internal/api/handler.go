package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/models"
	"github.com/bobby-s-dev/birth-timing/internal/services"
	"github.com/bobby-s-dev/birth-timing/internal/timing"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	service *services.TimingService
	cities  []string
	logger  *zap.Logger
}

func NewHandler(service *services.TimingService, cities []string, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		cities:  cities,
		logger:  logger,
	}
}

// parseLocation validates the lat/lon/date triple once at the boundary; the
// engine behind it assumes well-formed input.
func (h *Handler) parseLocation(c *fiber.Ctx) (models.LocationData, time.Time, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return models.LocationData{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "lat parameter is required and must be a number")
	}

	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return models.LocationData{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "lon parameter is required and must be a number")
	}

	location := models.LocationData{
		Latitude:  lat,
		Longitude: lon,
		City:      c.Query("city"),
		Country:   c.Query("country"),
	}

	if err := timing.ValidateLocation(location); err != nil {
		return models.LocationData{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		return location, time.Now(), nil
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		// Year-month granularity is enough for every scoring rule.
		date, err = time.Parse("2006-01", dateStr)
		if err != nil {
			return models.LocationData{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD or YYYY-MM")
		}
	}

	return location, date, nil
}

// GetScore handles GET /api/v1/timing/score
func (h *Handler) GetScore(c *fiber.Ctx) error {
	location, date, err := h.parseLocation(c)
	if err != nil {
		return err
	}

	h.logger.Info("Scoring timing",
		zap.Float64("lat", location.Latitude),
		zap.Float64("lon", location.Longitude),
		zap.String("date", date.Format("2006-01-02")))

	result := h.service.Score(location, date)
	return c.JSON(result)
}

// GetAnalysis handles GET /api/v1/timing/analysis
func (h *Handler) GetAnalysis(c *fiber.Ctx) error {
	location, date, err := h.parseLocation(c)
	if err != nil {
		return err
	}

	rangeMonths, err := strconv.Atoi(c.Query("range", "12"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "range must be an integer month count")
	}

	analysis, err := h.service.Analyze(location, date, rangeMonths)
	if err != nil {
		if errors.Is(err, timing.ErrInvalidInput) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(analysis)
}

// GetReport handles GET /api/v1/timing/report
func (h *Handler) GetReport(c *fiber.Ctx) error {
	location, date, err := h.parseLocation(c)
	if err != nil {
		return err
	}

	rangeMonths, err := strconv.Atoi(c.Query("range", "12"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "range must be an integer month count")
	}

	report := h.service.Report(location, date, rangeMonths)
	return c.JSON(report)
}

// Geocode handles GET /api/v1/geocode
func (h *Handler) Geocode(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "q parameter is required")
	}

	location, err := h.service.ResolveLocation(c.Context(), query)
	if err != nil {
		if errors.Is(err, timing.ErrInvalidInput) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error("Geocoding failed",
			zap.String("query", query),
			zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "failed to resolve location")
	}

	return c.JSON(location)
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "healthy",
		"timestamp":  time.Now(),
		"last_query": h.service.GetLastQueryTime(),
		"uptime":     time.Since(startTime).String(),
	})
}

// GetMetrics handles GET /api/v1/metrics
func (h *Handler) GetMetrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"metrics":   h.service.GetStats(),
		"timestamp": time.Now(),
	})
}

// GetLocations handles GET /api/v1/locations
func (h *Handler) GetLocations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"cities": h.cities,
	})
}

var startTime = time.Now()
