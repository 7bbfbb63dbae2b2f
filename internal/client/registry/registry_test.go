package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"capifit/internal/client/gateway"
	"capifit/internal/domain"
)

// fakeGateway implements gateway.Gateway; only CreatePlan matters here.
type fakeGateway struct {
	gateway.Gateway

	createCalls int
	createErr   error
}

func (f *fakeGateway) CreatePlan(ctx context.Context, kind domain.PlanKind, draft gateway.PlanDraft) (*domain.PlanTemplate, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.PlanTemplate{
		ID:      primitive.NewObjectID(),
		Kind:    kind,
		Name:    draft.Name,
		Details: draft.Details,
	}, nil
}

func TestGetOrCreateIsIdempotentByName(t *testing.T) {
	fake := &fakeGateway{}
	r := New(fake)
	ctx := context.Background()

	draft := gateway.PlanDraft{Name: "Força Total", Details: "3x per week"}

	first, err := r.GetOrCreate(ctx, domain.KindWorkout, draft)
	require.NoError(t, err)
	require.True(t, first.Created)

	// Same name, different case: must reuse the cached template.
	second, err := r.GetOrCreate(ctx, domain.KindWorkout, gateway.PlanDraft{Name: "FORÇA TOTAL", Details: "ignored"})
	require.NoError(t, err)
	require.False(t, second.Created)
	require.Equal(t, first.Template.ID, second.Template.ID)
	require.Equal(t, 1, fake.createCalls)
}

func TestGetOrCreateKindsAreIndependent(t *testing.T) {
	fake := &fakeGateway{}
	r := New(fake)
	ctx := context.Background()

	w, err := r.GetOrCreate(ctx, domain.KindWorkout, gateway.PlanDraft{Name: "Cutting", Details: "w"})
	require.NoError(t, err)
	d, err := r.GetOrCreate(ctx, domain.KindDiet, gateway.PlanDraft{Name: "Cutting", Details: "d"})
	require.NoError(t, err)

	require.NotEqual(t, w.Template.ID, d.Template.ID)
	require.Equal(t, 2, fake.createCalls)
}

func TestGetOrCreatePropagatesCreateError(t *testing.T) {
	fake := &fakeGateway{createErr: &gateway.RemoteError{Status: 500, Message: "boom"}}
	r := New(fake)

	_, err := r.GetOrCreate(context.Background(), domain.KindWorkout, gateway.PlanDraft{Name: "X", Details: "y"})
	require.Error(t, err)
	require.Empty(t, r.List(domain.KindWorkout))
}

func TestFindByNameFirstMatchWins(t *testing.T) {
	r := New(&fakeGateway{})
	a := domain.PlanTemplate{ID: primitive.NewObjectID(), Kind: domain.KindDiet, Name: "Lean Bulk"}
	b := domain.PlanTemplate{ID: primitive.NewObjectID(), Kind: domain.KindDiet, Name: "lean bulk"}
	r.Replace(domain.KindDiet, []domain.PlanTemplate{a, b})

	got, ok := r.FindByName(domain.KindDiet, "LEAN BULK")
	require.True(t, ok)
	require.Equal(t, a.ID, got.ID)
}

func TestReplaceSwapsWholeList(t *testing.T) {
	r := New(&fakeGateway{})
	r.Replace(domain.KindWorkout, []domain.PlanTemplate{{ID: primitive.NewObjectID(), Name: "Old"}})
	fresh := []domain.PlanTemplate{{ID: primitive.NewObjectID(), Name: "New"}}
	r.Replace(domain.KindWorkout, fresh)

	got := r.List(domain.KindWorkout)
	require.Len(t, got, 1)
	require.Equal(t, "New", got[0].Name)

	_, ok := r.FindByName(domain.KindWorkout, "Old")
	require.False(t, ok)
}
