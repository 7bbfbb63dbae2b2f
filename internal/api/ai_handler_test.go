package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"capifit/internal/ai"
	"capifit/internal/domain"
)

type stubSuggester struct {
	text string
	err  error
	kind domain.PlanKind
}

func (s *stubSuggester) SuggestText(ctx context.Context, kind domain.PlanKind, prompt string) (string, error) {
	s.kind = kind
	return s.text, s.err
}

func suggestionRouter(s ai.Suggester) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ai/suggestion", NewAIHandler(s).Suggest)
	return r
}

func TestSuggestReturnsText(t *testing.T) {
	stub := &stubSuggester{text: "Day 1: squats"}
	w := postJSON(suggestionRouter(stub), "/ai/suggestion", `{"type":"workout","prompt":"3 days, hypertrophy"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Day 1: squats")
	assert.Equal(t, domain.KindWorkout, stub.kind)
}

func TestSuggestStatusMapping(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		w := postJSON(suggestionRouter(ai.NoopSuggester{}), "/ai/suggestion", `{"type":"diet","prompt":"low carb"}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("provider failure", func(t *testing.T) {
		stub := &stubSuggester{err: ai.ErrProviderFailure}
		w := postJSON(suggestionRouter(stub), "/ai/suggestion", `{"type":"diet","prompt":"low carb"}`)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("bad type", func(t *testing.T) {
		stub := &stubSuggester{}
		w := postJSON(suggestionRouter(stub), "/ai/suggestion", `{"type":"cardio","prompt":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, stub.kind)
	})
}
