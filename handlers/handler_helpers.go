package handlers

import (
	"fmt"
	"net/http"
	"time"

	"events-backend/models"
	"events-backend/utils"

	"github.com/gin-gonic/gin"
)

// =============================================================================
// Response Helpers
// =============================================================================

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, code int, error, message string) {
	c.JSON(code, models.ErrorResponse{
		Error:   error,
		Message: message,
		Code:    code,
	})
}

// respondBadRequest sends a 400 error response
func respondBadRequest(c *gin.Context, message string) {
	respondWithError(c, http.StatusBadRequest, "Invalid request", message)
}

// respondMissingParam sends a 400 error for missing parameters
func respondMissingParam(c *gin.Context, param string) {
	respondWithError(c, http.StatusBadRequest, "Missing parameter", param+" is required")
}

// respondInternalError sends a 500 error response
func respondInternalError(c *gin.Context, message string) {
	respondWithError(c, http.StatusInternalServerError, "Internal error", message)
}

// respondNotFound sends a 404 error response
func respondNotFound(c *gin.Context, message string) {
	respondWithError(c, http.StatusNotFound, "Not found", message)
}

// respondConflict sends a 409 error response
func respondConflict(c *gin.Context, message string) {
	respondWithError(c, http.StatusConflict, "Conflict", message)
}

// =============================================================================
// Request Parsing Helpers
// =============================================================================

// requestToday derives the pipeline's "today" once at the request boundary.
// Everything below the handlers receives it as an explicit parameter.
func requestToday() time.Time {
	return utils.TruncateToDay(time.Now())
}

// parseFilterSpec builds a FilterSpec from browse/search query parameters:
// region (required), category, subcategory, and either date=YYYY-MM-DD or
// start=...&end=... for a range.
func parseFilterSpec(c *gin.Context) (models.FilterSpec, error) {
	spec := models.FilterSpec{
		Region:      c.Query("region"),
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
	}
	if spec.Region == "" {
		return spec, fmt.Errorf("region parameter is required")
	}

	single := c.Query("date")
	start := c.Query("start")
	end := c.Query("end")

	switch {
	case single != "":
		day, err := parseDay(single)
		if err != nil {
			return spec, err
		}
		spec.Date = models.SingleDate(day)
	case start != "" || end != "":
		if start == "" || end == "" {
			return spec, fmt.Errorf("date range needs both start and end")
		}
		from, err := parseDay(start)
		if err != nil {
			return spec, err
		}
		to, err := parseDay(end)
		if err != nil {
			return spec, err
		}
		if to.Before(from) {
			return spec, fmt.Errorf("date range end precedes start")
		}
		spec.Date = models.DateRange(from, to)
	}

	return spec, nil
}

func parseDay(value string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return day, nil
}
