// Package session holds the bearer credential and current user identity for
// one client instance. The session is an explicit, injectable object: it is
// created once at startup, passed to the gateway (as its token source) and
// to the controller, and torn down on logout or on any authorization
// failure. Durable state lives in a client-local sqlite database so a
// restart can restore the session without re-authenticating.
package session

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"capifit/internal/client/gateway"
	"capifit/internal/domain"
)

// Storage keys for the session table.
const (
	keyToken     = "token"
	keyUserID    = "user_id"
	keyUserName  = "user_name"
	keyUserEmail = "user_email"
	keyUserRole  = "user_role"
)

// Identity is the authenticated user as known to the client.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  domain.Role
}

// Session is an authenticated client session.
type Session struct {
	Token string
	User  Identity
}

// Store manages the single session of one client instance. It implements
// gateway.TokenSource so the gateway can attach the bearer token without
// reaching into session internals.
type Store struct {
	mu      sync.Mutex
	db      *sql.DB
	gw      gateway.Gateway
	current *Session
}

// NewStore creates a session store over the given database. The gateway is
// attached separately because the gateway itself needs the store as its
// token source.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// AttachGateway wires the remote gateway used by Login. Must be called
// before Login; Restore and Logout work without it.
func (s *Store) AttachGateway(gw gateway.Gateway) {
	s.gw = gw
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Current returns a copy of the active session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// Login authenticates against the server. On success the token and user
// identity are persisted durably and swapped into memory. On failure the
// existing session, if any, is left untouched.
func (s *Store) Login(ctx context.Context, email, password string) (*Session, error) {
	if s.gw == nil {
		return nil, errors.New("session: no gateway attached")
	}
	res, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		Token: res.Token,
		User: Identity{
			ID:    res.User.ID.Hex(),
			Name:  res.User.Name,
			Email: res.User.Email,
			Role:  res.User.Role,
		},
	}
	if err := s.persist(ctx, sess); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	cp := *sess
	return &cp, nil
}

// Restore loads a previously persisted session, if one exists. The token is
// not validated against the server; the first authenticated call does that,
// and a 401/403 there tears the session down. Returns (nil, nil) when no
// session is stored.
func (s *Store) Restore(ctx context.Context) (*Session, error) {
	token, err := getValue(ctx, s.db, keyToken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sess := &Session{Token: token}
	fields := []struct {
		key string
		dst *string
	}{
		{keyUserID, &sess.User.ID},
		{keyUserName, &sess.User.Name},
		{keyUserEmail, &sess.User.Email},
	}
	for _, f := range fields {
		if v, err := getValue(ctx, s.db, f.key); err == nil {
			*f.dst = v
		}
	}
	if v, err := getValue(ctx, s.db, keyUserRole); err == nil {
		sess.User.Role = domain.Role(v)
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	cp := *sess
	return &cp, nil
}

// Logout clears the in-memory session and the durable copy unconditionally.
// It never fails: a storage error still leaves the process logged out.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	// Best effort; the in-memory teardown above is authoritative.
	_, _ = s.db.Exec(`DELETE FROM session`)
}

func (s *Store) persist(ctx context.Context, sess *Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	pairs := map[string]string{
		keyToken:     sess.Token,
		keyUserID:    sess.User.ID,
		keyUserName:  sess.User.Name,
		keyUserEmail: sess.User.Email,
		keyUserRole:  string(sess.User.Role),
	}
	for k, v := range pairs {
		if err := setValue(ctx, tx, k, v); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
