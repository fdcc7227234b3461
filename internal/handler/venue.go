package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"partyplanner/internal/model"
	"partyplanner/internal/service"
)

// VenueProcessor runs the venue pipeline
type VenueProcessor interface {
	Process(ctx context.Context, rc model.RequestContext) *model.VenueResult
	ProcessStream(ctx context.Context, rc model.RequestContext, callback service.VenueEventCallback) (*model.VenueResult, error)
}

// VenueHandler handles venue-related HTTP requests
type VenueHandler struct {
	venues VenueProcessor
}

// NewVenueHandler creates a new venue handler
func NewVenueHandler(venues VenueProcessor) *VenueHandler {
	return &VenueHandler{venues: venues}
}

// Search handles POST /api/v1/venues
func (h *VenueHandler) Search(c *gin.Context) {
	var req model.VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.venues.Process(c.Request.Context(), req.Context()))
}

// Stream handles POST /api/v1/venues/stream - SSE progress of one venue request
func (h *VenueHandler) Stream(c *gin.Context) {
	var req model.VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Streaming not supported"})
		return
	}
	setSSEHeaders(c)
	c.Status(http.StatusOK)

	sendSSE(c, "start", map[string]any{"city": req.City, "venue_type": req.VenueType})
	flusher.Flush()

	ctx := c.Request.Context()
	result, err := h.venues.ProcessStream(ctx, req.Context(), func(event string, data any) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		sendSSE(c, event, data)
		flusher.Flush()
		return nil
	})
	if err != nil {
		sendSSE(c, "error", map[string]any{"error": err.Error()})
		flusher.Flush()
		return
	}

	sendSSE(c, "results", result)
	flusher.Flush()

	sendSSE(c, "done", nil)
	flusher.Flush()
}
