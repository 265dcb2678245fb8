// Package api provides the HTTP transport for the pipeline service.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"reelpipe/internal/core/domain"
)

// PipelineRunner defines the pipeline operation needed by the handler.
type PipelineRunner interface {
	Run(ctx context.Context, url string) (*domain.PipelineResult, error)
}

// PipelineHandler handles pipeline HTTP requests.
type PipelineHandler struct {
	svc PipelineRunner
}

// NewPipelineHandler creates a new pipeline handler.
func NewPipelineHandler(svc PipelineRunner) *PipelineHandler {
	return &PipelineHandler{svc: svc}
}

type pipelineRequest struct {
	URL string `json:"url"`
}

type pipelineResponse struct {
	Success    bool               `json:"success"`
	Shortcode  string             `json:"shortcode,omitempty"`
	Stage1     *domain.StageOne   `json:"stage1,omitempty"`
	Recipe     *domain.RecipeData `json:"recipe,omitempty"`
	RecipePath string             `json:"recipePath,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// RunPipeline handles POST /pipeline.
func (h *PipelineHandler) RunPipeline(c *gin.Context) {
	var req pipelineRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, pipelineResponse{
			Success: false,
			Error:   "invalid JSON in request body",
		})
		return
	}

	res, runErr := h.svc.Run(c.Request.Context(), req.URL)
	if runErr != nil {
		c.JSON(statusFor(domain.KindOf(runErr)), pipelineResponse{
			Success: false,
			Error:   runErr.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, pipelineResponse{
		Success:    true,
		Shortcode:  res.Shortcode,
		Stage1:     &res.Stage1,
		Recipe:     res.Recipe,
		RecipePath: res.RecipePath,
	})
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
