package handlers

import (
	"errors"
	"net/http"

	"events-backend/models"
	"events-backend/services"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService     *services.EventService
	homeService      *services.HomeService
	duplicateService *services.DuplicateService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService, homeService *services.HomeService, duplicateService *services.DuplicateService) *EventHandler {
	return &EventHandler{
		eventService:     eventService,
		homeService:      homeService,
		duplicateService: duplicateService,
	}
}

// HomePage returns the three curated buckets for a region
// GET /api/v1/events/home?region=Vorarlberg
func (h *EventHandler) HomePage(c *gin.Context) {
	region := c.Query("region")
	if region == "" {
		respondMissingParam(c, "Region parameter")
		return
	}

	page, err := h.homeService.GetHomePage(c.Request.Context(), region, requestToday())
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, page)
}

// SubmitEvent stores a new submission, gated by the duplicate warning
// POST /api/v1/events
func (h *EventHandler) SubmitEvent(c *gin.Context) {
	var req models.SubmitEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	event, err := req.ToEvent()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	// The check is advisory: candidates only delay the submission until the
	// submitter confirms, they never reject it.
	if !req.Confirmed {
		duplicates := h.duplicateService.CheckDuplicates(c.Request.Context(), event.Name, event.Region, event.City)
		if len(duplicates) > 0 {
			c.JSON(http.StatusConflict, models.SubmitEventResponse{
				Warning:    true,
				Duplicates: duplicates,
			})
			return
		}
	}

	stored, err := h.eventService.SubmitEvent(c.Request.Context(), event)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, models.SubmitEventResponse{Event: stored})
}

// UpdateEvent applies a submitter edit
// PUT /api/v1/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req models.SubmitEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	event, err := req.ToEvent()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	updated, err := h.eventService.UpdateEvent(c.Request.Context(), c.Param("id"), event)
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondNotFound(c, err.Error())
	case errors.Is(err, services.ErrNotEditable):
		respondConflict(c, err.Error())
	case err != nil:
		respondBadRequest(c, err.Error())
	default:
		c.JSON(http.StatusOK, updated)
	}
}

// Moderate performs a moderation state transition
// PATCH /api/v1/events/:id/state
func (h *EventHandler) Moderate(c *gin.Context) {
	var req models.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.SetModerationState(c.Request.Context(), c.Param("id"), req.State)
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondNotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		respondConflict(c, err.Error())
	case err != nil:
		respondInternalError(c, err.Error())
	default:
		c.JSON(http.StatusOK, event)
	}
}

// ModerationList lists events by explicit state
// GET /api/v1/events/moderation?state=pending
func (h *EventHandler) ModerationList(c *gin.Context) {
	events, err := h.eventService.ListEventsForModeration(c.Request.Context(), c.Query("state"))
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// GetEventByID retrieves a single event by ID
// GET /api/v1/events/:id
func (h *EventHandler) GetEventByID(c *gin.Context) {
	event, err := h.eventService.GetEvent(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrNotFound) {
		respondNotFound(c, err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, event)
}

// CheckDuplicates scores a draft submission against stored events
// POST /api/v1/events/check-duplicates
func (h *EventHandler) CheckDuplicates(c *gin.Context) {
	var req models.CheckDuplicatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	duplicates := h.duplicateService.CheckDuplicates(c.Request.Context(), req.Name, req.Region, req.City)
	c.JSON(http.StatusOK, gin.H{
		"duplicates": duplicates,
		"count":      len(duplicates),
	})
}

// GetStats returns statistics about the event database
// GET /api/v1/events/stats
func (h *EventHandler) GetStats(c *gin.Context) {
	stats, err := h.eventService.GetEventStats(c.Request.Context())
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}

// HealthCheck is a simple health check endpoint
// GET /api/v1/health
func (h *EventHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "events-backend",
		"version": "1.0.0",
	})
}
