// Package registry keeps the in-memory collection of named workout and diet
// plan templates and resolves create-or-reuse-by-name semantics for the
// assignment workflow.
package registry

import (
	"context"
	"strings"
	"sync"

	"capifit/internal/client/gateway"
	"capifit/internal/domain"
)

// Resolution is the tagged result of GetOrCreate: the resolved template,
// and whether a create call was performed to obtain it.
type Resolution struct {
	Template domain.PlanTemplate
	Created  bool
}

// Registry caches the plan templates known to the client, one list per
// kind. The cache is seeded by the roster synchronizer's full refresh and
// grows only by appending freshly created templates, which are always
// valid because the server echoes back an authoritative id.
type Registry struct {
	mu    sync.Mutex
	gw    gateway.Gateway
	cache map[domain.PlanKind][]domain.PlanTemplate
}

func New(gw gateway.Gateway) *Registry {
	return &Registry{
		gw:    gw,
		cache: make(map[domain.PlanKind][]domain.PlanTemplate),
	}
}

// List returns a copy of the cached templates for kind.
func (r *Registry) List(kind domain.PlanKind) []domain.PlanTemplate {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.PlanTemplate, len(r.cache[kind]))
	copy(out, r.cache[kind])
	return out
}

// Replace swaps the whole cached list for kind. Called by the synchronizer
// after a full refresh.
func (r *Registry) Replace(kind domain.PlanKind, templates []domain.PlanTemplate) {
	cp := make([]domain.PlanTemplate, len(templates))
	copy(cp, templates)
	r.mu.Lock()
	r.cache[kind] = cp
	r.mu.Unlock()
}

// FindByName resolves a template by case-insensitive exact name match.
// First match wins when duplicates exist.
func (r *Registry) FindByName(kind domain.PlanKind, name string) (domain.PlanTemplate, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(kind, name)
}

func (r *Registry) findLocked(kind domain.PlanKind, name string) (domain.PlanTemplate, bool) {
	for _, t := range r.cache[kind] {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return domain.PlanTemplate{}, false
}

// GetOrCreate resolves draft.Name against the cache; a hit returns the
// cached template without any network call. On a miss it creates the
// template remotely and appends the result to the cache. The race window
// between two concurrent callers is accepted: usage is single-operator.
func (r *Registry) GetOrCreate(ctx context.Context, kind domain.PlanKind, draft gateway.PlanDraft) (Resolution, error) {
	r.mu.Lock()
	if t, ok := r.findLocked(kind, draft.Name); ok {
		r.mu.Unlock()
		return Resolution{Template: t}, nil
	}
	r.mu.Unlock()

	created, err := r.gw.CreatePlan(ctx, kind, draft)
	if err != nil {
		return Resolution{}, err
	}

	r.mu.Lock()
	r.cache[kind] = append(r.cache[kind], *created)
	r.mu.Unlock()

	return Resolution{Template: *created, Created: true}, nil
}
