package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"partyplanner/internal/model"
	"partyplanner/internal/repository"
)

// FeedbackStore persists user actions on suggested venues
type FeedbackStore interface {
	SaveFeedback(ctx context.Context, planID, placeID, action string) error
	ListFeedback(ctx context.Context, planID string) ([]model.Feedback, error)
}

// FeedbackHandler handles feedback-related HTTP requests
type FeedbackHandler struct {
	store FeedbackStore
}

// NewFeedbackHandler creates a new feedback handler. store may be nil when
// no database is configured.
func NewFeedbackHandler(store FeedbackStore) *FeedbackHandler {
	return &FeedbackHandler{store: store}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Feedback storage is not configured"})
		return
	}

	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	err := h.store.SaveFeedback(c.Request.Context(), req.PlanID, req.PlaceID, req.Action)
	if errors.Is(err, repository.ErrUnknownPlan) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log feedback: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.FeedbackResponse{
		Success: true,
		Message: "Feedback logged successfully",
	})
}

// List handles GET /api/v1/plans/:id/feedback
func (h *FeedbackHandler) List(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Feedback storage is not configured"})
		return
	}

	planID := c.Param("id")
	if _, err := uuid.Parse(planID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	feedback, err := h.store.ListFeedback(c.Request.Context(), planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get feedback: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan_id": planID, "feedback": feedback})
}
