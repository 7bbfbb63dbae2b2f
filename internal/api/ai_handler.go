package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"capifit/internal/ai"
	"capifit/internal/domain"
)

// AIHandler exposes the plan-suggestion endpoint.
type AIHandler struct {
	suggester ai.Suggester
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(suggester ai.Suggester) *AIHandler {
	return &AIHandler{suggester: suggester}
}

type SuggestionRequest struct {
	Type   string `json:"type" binding:"required,oneof=workout diet"`
	Prompt string `json:"prompt" binding:"required"`
}

type SuggestionResponse struct {
	Suggestion string `json:"suggestion"`
}

// Suggest asks the generative-text provider for a plan draft.
func (h *AIHandler) Suggest(c *gin.Context) {
	var req SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	text, err := h.suggester.SuggestText(c.Request.Context(), domain.PlanKind(req.Type), req.Prompt)
	if err != nil {
		if errors.Is(err, ai.ErrUnavailable) {
			abortWithError(c, http.StatusServiceUnavailable, err.Error())
		} else {
			abortWithError(c, http.StatusBadGateway, "Error generating AI suggestion")
		}
		return
	}
	c.JSON(http.StatusOK, SuggestionResponse{Suggestion: text})
}
