// Package app is the application controller: it maps user intents onto the
// session store, template registry and roster synchronizer, and owns the
// transient loading/error UI state. It is also the single place where the
// forced-logout policy lives: any remote failure with status 401 or 403
// tears the session down, regardless of which operation triggered it.
package app

import (
	"context"
	"sync"

	"capifit/internal/client/gateway"
	"capifit/internal/client/registry"
	"capifit/internal/client/roster"
	"capifit/internal/client/session"
	"capifit/internal/domain"
)

// Controller wires user actions to the client core components.
type Controller struct {
	gw        gateway.Gateway
	sessions  *session.Store
	templates *registry.Registry
	roster    *roster.Synchronizer

	mu        sync.Mutex
	isLoading bool
	errMsg    string
}

// New assembles a controller over an authenticated gateway and session
// store. The synchronizer is constructed here so its auth-failure hook
// points at this controller's forced logout.
func New(gw gateway.Gateway, sessions *session.Store) *Controller {
	c := &Controller{
		gw:       gw,
		sessions: sessions,
	}
	c.templates = registry.New(gw)
	c.roster = roster.New(gw, c.templates, c.ForceLogout)
	return c
}

// --- session intents ---

// Login authenticates and establishes the session.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	_, err := c.sessions.Login(ctx, email, password)
	return err
}

// Register creates a trainer account. It does not log in.
func (c *Controller) Register(ctx context.Context, name, email, password string) error {
	_, err := c.gw.Register(ctx, gateway.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     domain.RoleTrainer,
	})
	return c.intercept(err)
}

// Restore re-establishes a persisted session if one exists. The token is
// validated lazily by the first authenticated call.
func (c *Controller) Restore(ctx context.Context) (bool, error) {
	sess, err := c.sessions.Restore(ctx)
	if err != nil {
		return false, err
	}
	return sess != nil, nil
}

// LoggedIn reports whether a session is active.
func (c *Controller) LoggedIn() bool {
	return c.sessions.Current() != nil
}

// CurrentUser returns the identity of the active session, or nil.
func (c *Controller) CurrentUser() *session.Identity {
	sess := c.sessions.Current()
	if sess == nil {
		return nil
	}
	u := sess.User
	return &u
}

// ForceLogout unconditionally returns the client to the unauthenticated
// state. Invoked by the user or by the auth-failure policy.
func (c *Controller) ForceLogout() {
	c.sessions.Logout()
}

// --- data intents ---

// Refresh performs a full reload of students and both plan collections.
// On failure the error state is set and the stale/empty snapshot must be
// treated as unusable until the next successful refresh.
func (c *Controller) Refresh(ctx context.Context) error {
	c.setLoading(true)
	defer c.setLoading(false)

	_, err := c.roster.RefreshAll(ctx)
	if err != nil {
		c.setError(err.Error())
		return err
	}
	c.setError("")
	return nil
}

// AddStudent creates a student and reloads. A failure leaves prior state
// intact; the caller shows the returned error as a transient notice.
func (c *Controller) AddStudent(ctx context.Context, draft gateway.StudentDraft) error {
	c.setLoading(true)
	defer c.setLoading(false)
	return c.roster.AddStudent(ctx, draft)
}

// CreatePlan resolves-or-creates a named template without assigning it.
// Repeating the same name (any case) reuses the existing template rather
// than creating a duplicate.
func (c *Controller) CreatePlan(ctx context.Context, kind domain.PlanKind, draft gateway.PlanDraft) (registry.Resolution, error) {
	res, err := c.templates.GetOrCreate(ctx, kind, draft)
	if err != nil {
		return registry.Resolution{}, c.intercept(err)
	}
	return res, nil
}

// AssignPlan runs the dedupe-then-link-then-refresh workflow.
func (c *Controller) AssignPlan(ctx context.Context, kind domain.PlanKind, studentID string, draft gateway.PlanDraft) error {
	c.setLoading(true)
	defer c.setLoading(false)
	return c.roster.AssignPlan(ctx, kind, studentID, draft)
}

// Suggest requests an AI-generated plan draft.
func (c *Controller) Suggest(ctx context.Context, kind domain.PlanKind, prompt string) (string, error) {
	text, err := c.gw.RequestSuggestion(ctx, kind, prompt)
	if err != nil {
		return "", c.intercept(err)
	}
	return text, nil
}

// --- view state ---

// Snapshot returns the current consistent data snapshot.
func (c *Controller) Snapshot() roster.Snapshot {
	return c.roster.Snapshot()
}

// Templates exposes the registry for read-side lookups (e.g. resolving a
// student's plan id to a name; unknown ids render as "unknown plan").
func (c *Controller) Templates() *registry.Registry {
	return c.templates
}

// IsLoading reports whether a full refresh is in flight. While true, any
// displayed data is stale or incomplete.
func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isLoading
}

// Err returns the last refresh failure message, or "".
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.isLoading = v
	c.mu.Unlock()
}

func (c *Controller) setError(msg string) {
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}

// intercept applies the forced-logout policy to errors from intents that
// bypass the synchronizer.
func (c *Controller) intercept(err error) error {
	if gateway.IsAuthError(err) {
		c.ForceLogout()
	}
	return err
}
