package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stockkeeper/internal/client/services"
	"github.com/dmitrijs2005/stockkeeper/internal/common"
)

var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
)

var errEmptyCredentials = errors.New("username and password are required")

func (a *App) readCredentials() (string, []byte, error) {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	if username == "" || len(password) == 0 {
		common.WipeByteArray(password)
		return "", nil, errEmptyCredentials
	}
	return username, password, nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	username, password, err := a.readCredentials()
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, username, string(password)); err != nil {
		fmt.Fprintln(a.out, authMessage(err, services.MsgLoginFailed))
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s\n", username)
	a.start(ctx)
	return nil
}

// Register prompts for a new account and starts a session with it.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if username == "" || len(password) == 0 {
		fmt.Fprintln(a.out, "Error:", errEmptyCredentials)
		return errEmptyCredentials
	}

	if err := a.authService.Register(ctx, username, email, string(password)); err != nil {
		fmt.Fprintln(a.out, authMessage(err, services.MsgRegistrationFailed))
		return err
	}

	fmt.Fprintf(a.out, "Account created. Welcome, %s\n", username)
	a.start(ctx)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout", "error", err)
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) Whoami(_ context.Context) error {
	id, ok := a.authService.CurrentIdentity()
	if !ok {
		fmt.Fprintln(a.out, "Not signed in")
		return common.ErrNotLoggedIn
	}
	if id.UserID != "" {
		fmt.Fprintf(a.out, "%s (id %s)\n", id.Username, id.UserID)
	} else {
		fmt.Fprintln(a.out, id.Username)
	}
	return nil
}

func authMessage(err error, fallback string) string {
	var ae *services.AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return fallback
}
