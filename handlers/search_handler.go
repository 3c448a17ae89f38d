package handlers

import (
	"net/http"

	"events-backend/services"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService *services.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// Search returns the first page for a filter, served from cache when fresh
// GET /api/v1/events/search?region=...&category=...&date=...&refresh=true
func (h *SearchHandler) Search(c *gin.Context) {
	spec, err := parseFilterSpec(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	refresh := c.Query("refresh") == "true"

	state, err := h.searchService.Fetch(c.Request.Context(), spec, requestToday(), refresh)
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, state)
}

// LoadMore appends the next page for a filter
// GET /api/v1/events/search/more?region=...
func (h *SearchHandler) LoadMore(c *gin.Context) {
	spec, err := parseFilterSpec(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	state, err := h.searchService.LoadMore(c.Request.Context(), spec, requestToday())
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, state)
}
