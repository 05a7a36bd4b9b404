package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/api"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/config"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/services"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/storage"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/logging"
)

// App is the interactive Vinobook client.
type App struct {
	config *config.Config
	app    *services.App
	client api.Client
	reader *bufio.Reader
	log    logging.Logger
}

// NewApp opens the local database, builds the API client, and wires the
// service layer.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	zl, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	log := logging.NewZapLogger(zl)

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening local database: %w", err)
	}

	client := api.NewHTTPClient(cfg.ServerURL)

	a := &App{
		config: cfg,
		client: client,
		reader: bufio.NewReader(os.Stdin),
		log:    log,
	}
	a.app = services.NewApp(client, db, log, a.confirmPrompt)
	return a, nil
}

func (a *App) confirmPrompt(prompt string) bool {
	ok, err := confirmFn(a.reader, prompt, os.Stdout)
	if err != nil {
		return false
	}
	return ok
}

func (a *App) isLoggedIn() bool {
	return a.app.Session.LoggedIn()
}

func (a *App) getStatus() string {
	s := ""
	if u := a.app.Session.User(); u.Email != "" {
		s = u.Email
	}
	if a.app.Form.Open() {
		if s != "" {
			s += " "
		}
		s += "editing"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run restores any persisted session and enters the REPL. It returns when
// the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	if err := a.app.Start(ctx); err != nil {
		a.log.Warn(ctx, "restoring previous session failed", "error", err)
	}
	if a.isLoggedIn() {
		printfFn("Welcome back, %s (%d tasting notes)\n", a.app.Session.User().Email, a.app.Records.Len())
	} else if term.IsTerminal(int(os.Stdin.Fd())) {
		printlnFn("Welcome to Vinobook (type 'help' for commands)")
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// commandErrText turns service and API errors into a line fit for the REPL.
func commandErrText(err error) string {
	switch {
	case errors.Is(err, services.ErrNotLoggedIn):
		return "Log in first"
	case errors.Is(err, services.ErrNoDraft):
		return "No open draft. Use 'new' or 'edit <id>' first"
	case errors.Is(err, services.ErrNotEditing):
		return "Photos need a saved note. Use 'edit <id>' first"
	case errors.Is(err, services.ErrUploadInProgress):
		return "An upload is already running"
	case errors.Is(err, services.ErrConfirmationDeclined):
		return "Cancelled"
	case errors.Is(err, api.ErrUnauthorized):
		return "Session expired, please log in again"
	case errors.Is(err, api.ErrUnavailable):
		return "Server unavailable, try again later"
	default:
		return err.Error()
	}
}
