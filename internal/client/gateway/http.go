package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"capifit/internal/domain"
)

// Default per-call deadline when the configuration does not set one.
const defaultRequestTimeout = 10 * time.Second

// HTTPGateway implements Gateway over the capifit REST API.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	tokens  TokenSource
}

// NewHTTPGateway creates a gateway for the API at baseURL (e.g.
// "http://localhost:8080/api/v1"). Every call gets a bounded deadline of
// timeout; pass 0 for the default. tokens may be nil for an always
// unauthenticated gateway.
func NewHTTPGateway(baseURL string, timeout time.Duration, tokens TokenSource) *HTTPGateway {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		timeout: timeout,
		tokens:  tokens,
	}
}

// errorBody is the best-effort shape of an error response. The API uses
// {"error": "..."}; older backends used {"message": "..."}. Both are
// accepted, and an unparseable body falls back to a generic message.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do performs one JSON round trip. A non-nil out is decoded from the
// response body; a decode failure is reported as a RemoteError, never as
// partially filled data.
func (g *HTTPGateway) do(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return &RemoteError{Message: fmt.Sprintf("encode request: %v", err)}
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return &RemoteError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if g.tokens != nil {
		if tok := g.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return normalizeTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{Status: resp.StatusCode, Message: parseErrorMessage(resp)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &RemoteError{
				Status:  resp.StatusCode,
				Message: fmt.Sprintf("malformed response body: %v", err),
			}
		}
	}
	return nil
}

func normalizeTransportError(err error) *RemoteError {
	var netErr net.Error
	timedOut := errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout())
	if timedOut {
		return &RemoteError{Message: "request deadline exceeded", Timeout: true}
	}
	return &RemoteError{Message: err.Error()}
}

func parseErrorMessage(resp *http.Response) string {
	var eb errorBody
	if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
		if eb.Error != "" {
			return eb.Error
		}
		if eb.Message != "" {
			return eb.Message
		}
	}
	return fmt.Sprintf("request failed with status %d", resp.StatusCode)
}

func requireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

func requireKind(kind domain.PlanKind) error {
	if !kind.Valid() {
		return &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown plan kind %q", kind)}
	}
	return nil
}

func (g *HTTPGateway) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := requireNonEmpty("email", email); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("password", password); err != nil {
		return nil, err
	}
	var res LoginResult
	payload := map[string]string{"email": email, "password": password}
	if err := g.do(ctx, http.MethodPost, "/auth/login", payload, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, &RemoteError{Status: http.StatusOK, Message: "login response missing token"}
	}
	return &res, nil
}

func (g *HTTPGateway) Register(ctx context.Context, in RegisterInput) (string, error) {
	if err := requireNonEmpty("name", in.Name); err != nil {
		return "", err
	}
	if err := requireNonEmpty("email", in.Email); err != nil {
		return "", err
	}
	if err := requireNonEmpty("password", in.Password); err != nil {
		return "", err
	}
	var res struct {
		UserID string `json:"userId"`
	}
	if err := g.do(ctx, http.MethodPost, "/auth/register", in, &res); err != nil {
		return "", err
	}
	return res.UserID, nil
}

func (g *HTTPGateway) ListStudents(ctx context.Context) ([]domain.Student, error) {
	var students []domain.Student
	if err := g.do(ctx, http.MethodGet, "/students", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (g *HTTPGateway) CreateStudent(ctx context.Context, draft StudentDraft) (*domain.Student, error) {
	if err := requireNonEmpty("name", draft.Name); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("email", draft.Email); err != nil {
		return nil, err
	}
	var student domain.Student
	if err := g.do(ctx, http.MethodPost, "/students", draft, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (g *HTTPGateway) ListPlans(ctx context.Context, kind domain.PlanKind) ([]domain.PlanTemplate, error) {
	if err := requireKind(kind); err != nil {
		return nil, err
	}
	var plans []domain.PlanTemplate
	if err := g.do(ctx, http.MethodGet, "/plans/"+string(kind), nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (g *HTTPGateway) CreatePlan(ctx context.Context, kind domain.PlanKind, draft PlanDraft) (*domain.PlanTemplate, error) {
	if err := requireKind(kind); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("name", draft.Name); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("details", draft.Details); err != nil {
		return nil, err
	}
	var plan domain.PlanTemplate
	if err := g.do(ctx, http.MethodPost, "/plans/"+string(kind), draft, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (g *HTTPGateway) AssignPlan(ctx context.Context, kind domain.PlanKind, studentID, planID string) error {
	if err := requireKind(kind); err != nil {
		return err
	}
	if err := requireNonEmpty("studentId", studentID); err != nil {
		return err
	}
	if err := requireNonEmpty("planId", planID); err != nil {
		return err
	}
	payload := map[string]string{"studentId": studentID, "planId": planID}
	return g.do(ctx, http.MethodPost, "/plans/"+string(kind)+"/assign", payload, nil)
}

func (g *HTTPGateway) RequestSuggestion(ctx context.Context, kind domain.PlanKind, prompt string) (string, error) {
	if err := requireKind(kind); err != nil {
		return "", err
	}
	if err := requireNonEmpty("prompt", prompt); err != nil {
		return "", err
	}
	var res struct {
		Suggestion string `json:"suggestion"`
	}
	payload := map[string]string{"type": string(kind), "prompt": prompt}
	if err := g.do(ctx, http.MethodPost, "/ai/suggestion", payload, &res); err != nil {
		return "", err
	}
	return res.Suggestion, nil
}
