package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/config"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fittrack/internal/client/services"
	"github.com/dmitrijs2005/fittrack/internal/client/session"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// HomePath is the location shown to signed-out users.
const HomePath = "/"

// sessionManager is the part of *session.Session the commands use.
type sessionManager interface {
	Init(ctx context.Context) error
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	User() *models.User
	Subject(ctx context.Context) (string, error)
	Close(ctx context.Context) error
}

// pinger checks backend reachability.
type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config      *config.Config
	authService services.AuthService
	session     sessionManager
	pinger      pinger
	logger      logging.Logger
	closers     []io.Closer

	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	mode     Mode
	location string
}

// NewApp opens the local store and wires the API client, services and
// session from c.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger, err := logging.New(os.Stderr, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	tokens := metadata.NewTokenStore(db)

	apiClient, err := client.NewHTTPClient(c.ServerURL, tokens, c.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:      c,
		authService: services.NewAuthService(apiClient),
		session:     session.New(apiClient, tokens, logger),
		pinger:      apiClient,
		logger:      logger,
		closers:     []io.Closer{apiClient, dbCloser{db}},
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		location:    HomePath,
	}, nil
}

type dbCloser struct{ db *sql.DB }

func (d dbCloser) Close() error { return d.db.Close() }

// Run restores the stored session, starts the connectivity watcher and
// serves the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.Close(ctx)

	if err := a.session.Init(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if u := a.session.User(); u != nil {
		a.navigate(dashboardPath)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to fittrack CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close tears down the session and releases the API client and database.
func (a *App) Close(ctx context.Context) error {
	errs := []error{a.session.Close(ctx)}
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session.User() != nil
}

func (a *App) getStatus() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Email + " "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf(" (%s)", s)
	}
	return s
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

// Location returns the current view path.
func (a *App) Location() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.location
}

// navigate moves the CLI to path. Entering the dashboard greets the user.
func (a *App) navigate(path string) {
	a.mu.Lock()
	a.location = path
	a.mu.Unlock()

	if path == dashboardPath {
		if u := a.session.User(); u != nil {
			printSuccess(a.out, "Welcome, %s!", u.DisplayName())
		}
	}
}

// StartOnlineStatusWatcher checks the backend immediately and then every
// interval, switching Mode between online and offline. It returns when ctx
// is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.pinger.Ping(pctx)
	cancel()

	if ctx.Err() != nil {
		return
	}
	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
