package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/dbx"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// TokenKey is the metadata key the session token is persisted under.
const TokenKey = "token"

// SignOutReason tells listeners why a session ended.
type SignOutReason int

const (
	// SignOutRequested is an explicit logout.
	SignOutRequested SignOutReason = iota
	// SignOutExpired is a server-side rejection of the token.
	SignOutExpired
)

func (r SignOutReason) String() string {
	if r == SignOutExpired {
		return "expired"
	}
	return "logout"
}

// Session holds the active token and identity and persists the token in
// the local metadata table. It is safe for concurrent use.
type Session struct {
	db  *sql.DB
	log logging.Logger

	mu        sync.RWMutex
	token     string
	identity  models.Identity
	listeners []func(SignOutReason)
}

// NewSession returns an empty session backed by db.
func NewSession(db *sql.DB, log logging.Logger) *Session {
	return &Session{db: db, log: log}
}

func (s *Session) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Token returns the current token or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns the signed-in user.
func (s *Session) Identity() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return models.Identity{}, false
	}
	return s.identity, true
}

// OnSignedOut registers fn to be called after the session ends.
func (s *Session) OnSignedOut(fn func(SignOutReason)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Restore loads a previously persisted token. A token whose payload cannot
// be decoded is discarded.
func (s *Session) Restore(ctx context.Context) error {
	repo := s.getMetadataRepo(s.db)

	token, err := repo.Get(ctx, TokenKey)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	id, err := IdentityFromToken(token)
	if err != nil {
		s.log.Warn(ctx, "discarding unreadable session token", "error", err)
		if err := repo.Delete(ctx, TokenKey); err != nil {
			return fmt.Errorf("discard session: %w", err)
		}
		return nil
	}

	s.mu.Lock()
	s.token, s.identity = token, id
	s.mu.Unlock()
	return nil
}

// start persists token and makes it current. Local state left by a previous
// session is wiped in the same transaction.
func (s *Session) start(ctx context.Context, token string, user models.Identity) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.getMetadataRepo(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		return repo.Set(ctx, TokenKey, token)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if user.Username == "" {
		if id, err := IdentityFromToken(token); err == nil {
			user = id
		}
	}

	s.mu.Lock()
	s.token, s.identity = token, user
	s.mu.Unlock()
	return nil
}

// end clears the session in memory first, so no request can pick the token
// up while storage is updated.
func (s *Session) end(ctx context.Context, reason SignOutReason) error {
	s.mu.Lock()
	wasActive := s.token != ""
	s.token, s.identity = "", models.Identity{}
	listeners := append([]func(SignOutReason){}, s.listeners...)
	s.mu.Unlock()

	err := s.getMetadataRepo(s.db).Delete(ctx, TokenKey)

	if wasActive {
		for _, fn := range listeners {
			fn(reason)
		}
	}
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// HandleUnauthorized ends the session the rejected token belongs to. A
// rejection of a token that was already replaced is ignored.
func (s *Session) HandleUnauthorized(ctx context.Context, token string) {
	s.mu.RLock()
	current := s.token
	s.mu.RUnlock()

	if current == "" || current != token {
		return
	}

	s.log.Warn(ctx, "session rejected, signing out")
	if err := s.end(ctx, SignOutExpired); err != nil {
		s.log.Error(ctx, "failed to clear session", "error", err)
	}
}

// IdentityFromToken reads the username and userId claims of a JWT without
// verifying its signature. The result is for display only.
func IdentityFromToken(token string) (models.Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	var id models.Identity
	if v, ok := claims["username"].(string); ok {
		id.Username = v
	}
	switch v := claims["userId"].(type) {
	case string:
		id.UserID = v
	case float64:
		id.UserID = fmt.Sprintf("%.0f", v)
	}
	if id.Username == "" && id.UserID == "" {
		return models.Identity{}, common.ErrInvalidToken
	}
	return id, nil
}
