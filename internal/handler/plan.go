package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"

	"partyplanner/internal/export"
	"partyplanner/internal/model"
	"partyplanner/internal/service"
)

// PlanMaker produces full party plans
type PlanMaker interface {
	Plan(ctx context.Context, req model.PlanRequest) (*model.PlanResponse, error)
}

// PlanHandler handles party plan requests
type PlanHandler struct {
	planner PlanMaker
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planner PlanMaker) *PlanHandler {
	return &PlanHandler{planner: planner}
}

// Create handles POST /api/v1/plans. With ?format=pdf the plan is
// returned as a downloadable document instead of JSON.
func (h *PlanHandler) Create(c *gin.Context) {
	var req model.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format. Must be one of: json, pdf"})
		return
	}

	plan, err := h.planner.Plan(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Planning failed: " + err.Error()})
		return
	}

	if format == "json" {
		c.JSON(http.StatusOK, plan)
		return
	}

	pdf, err := export.RenderPlanPDF(export.Plan{
		Title: plan.Title,
		Meta: []export.MetaField{
			{Label: "City", Value: plan.City},
			{Label: "Date", Value: plan.Date},
			{Label: "Weather", Value: plan.Weather},
		},
		Sections: service.ExportSections(plan),
	})
	if err != nil {
		log.Error().Err(err).Str("plan_id", plan.PlanID).Msg("❌ PDF export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PDF export failed: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(plan.City, plan.Date)))
	c.Header("X-Plan-ID", plan.PlanID)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
