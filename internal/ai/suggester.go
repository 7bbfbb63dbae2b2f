// Package ai generates workout and diet plan drafts from a free-text
// prompt via an external generative-text provider. The provider is opaque
// behind the Suggester interface; callers only see text or an error.
package ai

import (
	"context"
	"errors"

	"capifit/internal/domain"
)

var (
	// ErrUnavailable means the provider is not configured (no API key).
	ErrUnavailable = errors.New("ai suggestions are not configured")
	// ErrProviderFailure means the provider rejected or could not serve
	// the request.
	ErrProviderFailure = errors.New("ai provider failure")
)

// Suggester produces a plan draft for the given kind and prompt.
type Suggester interface {
	SuggestText(ctx context.Context, kind domain.PlanKind, prompt string) (string, error)
}

// System instructions per plan kind. The provider answers in markdown with
// a short encouraging title.
const (
	workoutInstruction = "You are a professional fitness coach. Create a detailed workout plan " +
		"based on the user's request. The plan should be well-structured, easy to follow, and " +
		"formatted in markdown. Include exercises, sets, reps, and rest periods. Provide a brief " +
		"and encouraging title for the plan."
	dietInstruction = "You are a professional nutritionist. Create a detailed diet plan based on " +
		"the user's request. The plan should be nutritionally balanced and include meal suggestions " +
		"for breakfast, lunch, dinner, and snacks. Format the response in markdown. Provide a brief " +
		"and encouraging title for the plan."
)

func instructionFor(kind domain.PlanKind) string {
	if kind == domain.KindDiet {
		return dietInstruction
	}
	return workoutInstruction
}

// NoopSuggester always reports the feature as unavailable. Used when no
// API key is configured so the rest of the server runs normally.
type NoopSuggester struct{}

func (NoopSuggester) SuggestText(ctx context.Context, kind domain.PlanKind, prompt string) (string, error) {
	return "", ErrUnavailable
}
