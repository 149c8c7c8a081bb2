package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/stockkeeper/internal/client/client"
	"github.com/dmitrijs2005/stockkeeper/internal/client/config"
	"github.com/dmitrijs2005/stockkeeper/internal/client/flows"
	"github.com/dmitrijs2005/stockkeeper/internal/client/listing"
	"github.com/dmitrijs2005/stockkeeper/internal/client/services"
	"github.com/dmitrijs2005/stockkeeper/internal/client/storage"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"golang.org/x/sync/errgroup"
)

// MsgSessionExpired is printed after the server rejected the session.
const MsgSessionExpired = "Session expired, please log in again"

type App struct {
	config      *config.Config
	authService services.AuthService
	api         client.Client
	log         logging.Logger

	list     *listing.Controller
	add      *flows.AddFlow
	edit     *flows.EditFlow
	del      *flows.DeleteFlow
	history  *flows.HistoryViewer
	transfer *flows.Transfer

	reader  *bufio.Reader
	out     io.Writer
	closers []func() error

	mu         sync.Mutex
	categories []string
	expired    bool
	gen        uint64
}

// NewApp opens the local database and builds the API client and services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(c.LogFormat, c.LogLevel, os.Stderr)

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	session := services.NewSession(db, log)
	api := client.NewHTTPClient(c.ServerBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithTokenSource(session),
		client.WithUnauthorizedHandler(session.HandleUnauthorized),
		client.WithLogger(log),
	)

	a := newApp(c, services.NewAuthService(api, session), api, log, bufio.NewReader(os.Stdin), os.Stdout)
	a.closers = append(a.closers, db.Close)
	return a, nil
}

func newApp(c *config.Config, auth services.AuthService, api client.Client, log logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	a := &App{
		config:      c,
		authService: auth,
		api:         api,
		log:         log,
		reader:      reader,
		out:         out,
	}
	a.list = listing.NewController(api, c.PageSize, log)
	a.add = flows.NewAddFlow(api, a.list.Refresh)
	a.edit = flows.NewEditFlow(api, a.list.Refresh)
	a.del = flows.NewDeleteFlow(api, a.list.Refresh)
	a.history = flows.NewHistoryViewer(api)
	a.transfer = flows.NewTransfer(api, a.list.Refresh, c.ExportDir)

	auth.OnSignedOut(a.onSignedOut)
	return a
}

// Run restores the previous session if any and blocks in the REPL until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to stockkeeper (type 'help' for commands)")

	if err := a.authService.Restore(ctx); err != nil {
		a.log.Error(ctx, "restore session", "error", err)
	}
	if a.isLoggedIn() {
		a.start(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close releases the local database.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.authService.CurrentIdentity()
	return ok
}

func (a *App) getStatus() string {
	if id, ok := a.authService.CurrentIdentity(); ok {
		return fmt.Sprintf("sk (%s)> ", id.Username)
	}
	return "sk> "
}

// onSignedOut drops every piece of product state. It runs synchronously
// inside the call that observed the rejection.
func (a *App) onSignedOut(reason services.SignOutReason) {
	a.list.Reset()
	a.add.Close()
	a.edit.Cancel()
	a.del.Cancel()
	a.history.Close()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	a.categories = nil
	if reason == services.SignOutExpired {
		a.expired = true
	}
}

// sessionExpired reports, once, that the server ended the session.
func (a *App) sessionExpired() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	expired := a.expired
	a.expired = false
	return expired
}

// loadInitial fetches the categories and the first page concurrently. Each
// goroutine keeps its own error and returns nil to the group, so a failure of
// one never cancels the other. Categories arriving after the session ended
// are dropped.
func (a *App) loadInitial(ctx context.Context) error {
	gen := a.generation()

	var (
		g       errgroup.Group
		catErr  error
		listErr error
	)
	g.Go(func() error {
		cats, err := a.api.Categories(ctx)
		if err != nil {
			catErr = fmt.Errorf("load categories: %w", err)
			return nil
		}
		a.setCategories(gen, cats)
		return nil
	})
	g.Go(func() error {
		if err := a.list.Load(ctx); err != nil {
			listErr = fmt.Errorf("load products: %w", err)
		}
		return nil
	})
	_ = g.Wait()

	return errors.Join(catErr, listErr)
}

// start runs after a session begins.
func (a *App) start(ctx context.Context) {
	if err := a.loadInitial(ctx); err != nil {
		a.log.Warn(ctx, "initial load", "error", err)
	}
	if a.isLoggedIn() {
		a.renderList()
	}
}

// generation changes on every sign-out.
func (a *App) generation() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen
}

// setCategories stores cats unless a sign-out happened since gen was taken.
func (a *App) setCategories(gen uint64, cats []string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		return false
	}
	a.categories = cats
	return true
}

func (a *App) knownCategories() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.categories...)
}
