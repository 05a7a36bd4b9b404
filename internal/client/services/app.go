package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/api"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/models"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/logging"
)

// App wires the client services together and hosts the operations that span
// more than one of them.
type App struct {
	Session  *Session
	Records  *Records
	Form     *Form
	Uploader *Uploader

	client  api.Client
	log     logging.Logger
	confirm ConfirmFunc
}

// NewApp builds the service graph. The record cache clears whenever the
// session ends, so records are never visible without a session.
func NewApp(client api.Client, db *sql.DB, log logging.Logger, confirm ConfirmFunc) *App {
	session := NewSession(client, db, log)
	records := NewRecords(client, session, log)
	session.OnReset(records.Clear)
	form := NewForm(client, session, records, log)
	uploader := NewUploader(client, session, form, records, log, confirm)

	return &App{
		Session:  session,
		Records:  records,
		Form:     form,
		Uploader: uploader,
		client:   client,
		log:      log,
		confirm:  confirm,
	}
}

// Start restores a persisted session and, when one exists, loads the record
// list. A failed initial refresh is logged and tolerated; the user still
// gets a working session and can refresh by hand.
func (a *App) Start(ctx context.Context) error {
	if err := a.Session.Restore(ctx); err != nil {
		return err
	}
	if !a.Session.LoggedIn() {
		return nil
	}
	if err := a.Records.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "initial record load failed", "error", err)
	}
	return nil
}

// Login signs in with email and loads the record list. The login itself
// succeeding is what Login reports; a failed follow-up refresh is logged
// only.
func (a *App) Login(ctx context.Context, email string) error {
	if err := a.Session.Login(ctx, email); err != nil {
		return err
	}
	if err := a.Records.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "record load after login failed", "error", err)
	}
	return nil
}

// Logout ends the session. Any open draft is discarded with it.
func (a *App) Logout(ctx context.Context) error {
	a.Form.Cancel()
	return a.Session.Logout(ctx)
}

// DeleteRecord removes a record after confirmation, then refreshes the
// cache. A record already gone server-side counts as deleted.
func (a *App) DeleteRecord(ctx context.Context, id int64) error {
	if a.confirm != nil && !a.confirm("Delete this tasting note?") {
		return ErrConfirmationDeclined
	}

	token, _ := a.Session.Snapshot()
	if token == "" {
		return ErrNotLoggedIn
	}

	err := a.client.DeleteRecord(ctx, token, id)
	switch {
	case err == nil:
	case errors.Is(err, api.ErrNotFound):
	case errors.Is(err, api.ErrUnauthorized):
		a.Session.Invalidate(ctx)
		return err
	default:
		a.log.Error(ctx, "deleting record failed", "id", id, "error", err)
		return err
	}

	if err := a.Records.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "refreshing records after delete failed", "error", err)
	}
	return nil
}

// Filtered returns the cached records matching term, in cache order.
func (a *App) Filtered(term string) []models.TastingRecord {
	return FilterRecords(a.Records.All(), term)
}
