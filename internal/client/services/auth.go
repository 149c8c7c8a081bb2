package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stockkeeper/internal/client/client"
	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
)

// Fallback messages when the server gives no reason.
const (
	MsgLoginFailed        = "Login failed"
	MsgRegistrationFailed = "Registration failed"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login/Register: authenticate against the server and start a session.
//     A failure leaves the current session untouched.
//   - Logout: end the session. Calling it while signed out is a no-op.
//   - Restore: pick up a session persisted by an earlier run.
//   - CurrentIdentity: the signed-in user, for display only.
type AuthService interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, email, password string) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) error
	CurrentIdentity() (models.Identity, bool)
	OnSignedOut(fn func(SignOutReason))
}

type authService struct {
	client  client.Client
	session *Session
}

// NewAuthService binds the remote client to a session store.
func NewAuthService(c client.Client, session *Session) AuthService {
	return &authService{client: c, session: session}
}

// AuthError is a failed login or registration, carrying the message to show.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

func authFailure(err error, fallback string) error {
	msg := fallback
	var apiErr *client.APIError
	var verr *client.ValidationError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		msg = apiErr.Message
	case errors.As(err, &verr) && len(verr.Fields) > 0:
		msg = verr.Fields[0].Message
	}
	return &AuthError{Message: msg, Err: err}
}

func (a *authService) Login(ctx context.Context, username, password string) error {
	res, err := a.client.Login(ctx, username, password)
	if err != nil {
		return authFailure(err, MsgLoginFailed)
	}
	if err := a.session.start(ctx, res.Token, res.User); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func (a *authService) Register(ctx context.Context, username, email, password string) error {
	res, err := a.client.Register(ctx, username, email, password)
	if err != nil {
		return authFailure(err, MsgRegistrationFailed)
	}
	if err := a.session.start(ctx, res.Token, res.User); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.end(ctx, SignOutRequested)
}

func (a *authService) Restore(ctx context.Context) error {
	return a.session.Restore(ctx)
}

func (a *authService) CurrentIdentity() (models.Identity, bool) {
	return a.session.Identity()
}

func (a *authService) OnSignedOut(fn func(SignOutReason)) {
	a.session.OnSignedOut(fn)
}
