package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/road_hazard_system/internal/config"
	"github.com/shenikar/road_hazard_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	hazardService service.HazardService
	logger        *logrus.Logger
	validate      *validator.Validate
	cfg           *config.Config
}

func NewHandler(hazardService service.HazardService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		hazardService: hazardService,
		logger:        logger,
		validate:      validator.New(),
		cfg:           cfg,
	}
}

// @Summary Submit a road hazard report
// @Description Submit a voice or manual report. The aggregated event is delivered over the push channel. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body SubmitReportRequest true "Report submission request"
// @Success 200 {object} SubmitReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [post]
func (h *Handler) submitReport(c *gin.Context) {
	var input SubmitReportRequest
	log := h.logger.WithField("method", "submitReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reportID, err := h.hazardService.SubmitReport(c.Request.Context(), DTOToReportModel(input))
	if err != nil {
		log.WithError(err).Error("Failed to submit report in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, SubmitReportResponse{Message: "Report received", ReportID: reportID})
}

// @Summary Get active events
// @Description Get all currently active hazard events. Requires API key.
// @Tags Events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} EventResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /events [get]
func (h *Handler) listEvents(c *gin.Context) {
	log := h.logger.WithField("method", "listEvents")

	events, err := h.hazardService.ListActiveEvents(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list events from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToEventResponses(events))
}

// @Summary Get event by ID
// @Description Get a single hazard event by its ID. Requires API key.
// @Tags Events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Event ID"
// @Success 200 {object} EventResponse
// @Failure 400 {object} map[string]string "Invalid event ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Event not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /events/{id} [get]
func (h *Handler) getEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}
	log := h.logger.WithField("method", "getEvent").WithField("id", id)

	event, err := h.hazardService.GetEvent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			log.WithError(err).Warn("Event not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		log.WithError(err).Error("Failed to get event from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToEventResponse(event))
}

// @Summary Reconfirm an event
// @Description Signal that a hazard is still present. Extends the event lifetime. Requires API key.
// @Tags Events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Event ID"
// @Param reconfirm body ReconfirmRequest false "Optional distance to the event"
// @Success 202 "Accepted"
// @Failure 400 {object} map[string]string "Invalid event ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Event not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /events/{id}/reconfirm [post]
func (h *Handler) reconfirmEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}
	log := h.logger.WithField("method", "reconfirmEvent").WithField("id", id)

	var input ReconfirmRequest
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.hazardService.ReconfirmEvent(c.Request.Context(), id, input.DistanceMeters); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			log.WithError(err).Warn("Event not found for reconfirmation")
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		log.WithError(err).Error("Failed to reconfirm event in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusAccepted)
}

// @Summary Get event statistics
// @Description Get the count of active events and recent reconfirmations. Requires API key.
// @Tags Events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /events/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	stats, err := h.hazardService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		ActiveEvents:      stats.ActiveEvents,
		Reconfirmations:   stats.Reconfirmations,
		TimeWindowMinutes: h.cfg.StatsTimeWindowMinutes,
	})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
