package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capifit/internal/config"
	"capifit/internal/domain"
)

func newTestSuggester(url string) Suggester {
	return NewSuggester(config.AIConfig{
		Endpoint: url,
		APIKey:   "test-key",
		Model:    "test-model",
		Timeout:  5 * time.Second,
	})
}

func TestSuggestTextParsesCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hypertrophy, 3 days a week", req.Contents[0].Parts[0].Text)
		require.NotNil(t, req.SystemInstruction)
		assert.Equal(t, instructionFor(domain.KindWorkout), req.SystemInstruction.Parts[0].Text)

		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []struct {
				Content geminiContent `json:"content"`
			}{
				{Content: geminiContent{Parts: []geminiPart{{Text: "Day 1: squats"}}}},
			},
		})
	}))
	defer srv.Close()

	text, err := newTestSuggester(srv.URL).SuggestText(context.Background(), domain.KindWorkout, "hypertrophy, 3 days a week")
	require.NoError(t, err)
	assert.Equal(t, "Day 1: squats", text)
}

func TestSuggestTextProviderStatusFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestSuggester(srv.URL).SuggestText(context.Background(), domain.KindDiet, "low carb")
	assert.ErrorIs(t, err, ErrProviderFailure)
}

func TestSuggestTextEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse{})
	}))
	defer srv.Close()

	_, err := newTestSuggester(srv.URL).SuggestText(context.Background(), domain.KindWorkout, "anything")
	assert.ErrorIs(t, err, ErrProviderFailure)
}

func TestNewSuggesterWithoutKeyIsNoop(t *testing.T) {
	s := NewSuggester(config.AIConfig{})
	_, err := s.SuggestText(context.Background(), domain.KindWorkout, "anything")
	assert.ErrorIs(t, err, ErrUnavailable)
}
