// Package roster owns the authoritative-from-server student list and
// orchestrates synchronization between the local snapshot and the server.
// The strategy is full replace: after any write the whole snapshot is
// re-fetched, so the client never observes a mix of stale and fresh
// cross-references (e.g. a student pointing at a plan id it has not
// fetched yet).
package roster

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"capifit/internal/client/gateway"
	"capifit/internal/client/registry"
	"capifit/internal/domain"
)

// State of the current refresh cycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Snapshot is one consistent view of the three server collections. It is
// replaced atomically: either all three lists come from the same refresh,
// or none do.
type Snapshot struct {
	Students     []domain.Student
	WorkoutPlans []domain.PlanTemplate
	DietPlans    []domain.PlanTemplate
}

// Synchronizer drives full refreshes and the write workflows (add student,
// assign plan). Authorization failures from any call trigger the injected
// logout hook before the error is surfaced.
type Synchronizer struct {
	gw        gateway.Gateway
	templates *registry.Registry
	onAuthErr func()

	mu    sync.Mutex
	state State
	snap  Snapshot
}

// New creates a synchronizer. onAuthErr is invoked whenever a gateway call
// reports 401/403; the application controller passes its forced-logout
// hook here. It may be nil.
func New(gw gateway.Gateway, templates *registry.Registry, onAuthErr func()) *Synchronizer {
	if onAuthErr == nil {
		onAuthErr = func() {}
	}
	return &Synchronizer{gw: gw, templates: templates, onAuthErr: onAuthErr}
}

// State returns the state of the latest refresh cycle.
func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the current consistent snapshot.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// RefreshAll issues the three list calls concurrently, joins them, and
// replaces the snapshot atomically on success, seeding the template
// registry as a side effect. On any failure nothing is partially
// overwritten: the snapshot is cleared, the state moves to Failed, and the
// first error is returned. There is no ready-with-errors state.
func (s *Synchronizer) RefreshAll(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	var (
		students []domain.Student
		workouts []domain.PlanTemplate
		diets    []domain.PlanTemplate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		students, err = s.gw.ListStudents(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		workouts, err = s.gw.ListPlans(gctx, domain.KindWorkout)
		return err
	})
	g.Go(func() error {
		var err error
		diets, err = s.gw.ListPlans(gctx, domain.KindDiet)
		return err
	})

	if err := g.Wait(); err != nil {
		s.fail(err)
		return Snapshot{}, err
	}

	snap := Snapshot{Students: students, WorkoutPlans: workouts, DietPlans: diets}
	s.templates.Replace(domain.KindWorkout, workouts)
	s.templates.Replace(domain.KindDiet, diets)

	s.mu.Lock()
	s.snap = snap
	s.state = StateReady
	s.mu.Unlock()
	return snap, nil
}

// AddStudent creates the student remotely and then runs a full refresh.
// Local patching is deliberately avoided: the server owns derived fields
// (generated avatar URL, measurement seed) the client cannot reconstruct.
func (s *Synchronizer) AddStudent(ctx context.Context, draft gateway.StudentDraft) error {
	if _, err := s.gw.CreateStudent(ctx, draft); err != nil {
		s.interceptAuth(err)
		return err
	}
	_, err := s.RefreshAll(ctx)
	return err
}

// AssignPlan links a (possibly newly created) template to a student:
// resolve-or-create the template, call the link endpoint, then refresh.
// Each step's failure aborts the remaining steps without partial local
// mutation. A template created in the first step is kept in the registry
// even when the link call fails: the server echoed its id, so it is valid.
func (s *Synchronizer) AssignPlan(ctx context.Context, kind domain.PlanKind, studentID string, draft gateway.PlanDraft) error {
	res, err := s.templates.GetOrCreate(ctx, kind, draft)
	if err != nil {
		s.interceptAuth(err)
		return err
	}

	if err := s.gw.AssignPlan(ctx, kind, studentID, res.Template.ID.Hex()); err != nil {
		s.interceptAuth(err)
		return err
	}

	_, err = s.RefreshAll(ctx)
	return err
}

// fail transitions to Failed and clears the snapshot. A failed refresh
// leaves empty-with-error rather than a merge of old and new data.
func (s *Synchronizer) fail(err error) {
	s.interceptAuth(err)
	s.mu.Lock()
	s.snap = Snapshot{}
	s.state = StateFailed
	s.mu.Unlock()
}

func (s *Synchronizer) interceptAuth(err error) {
	if gateway.IsAuthError(err) {
		s.onAuthErr()
	}
}
