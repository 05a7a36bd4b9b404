package services

import (
	"context"
	"errors"
	"sync"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/api"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/models"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/logging"
)

// Form holds the single open draft, if any. Field values stay raw strings
// while editing; conversion to typed wire values happens only at submit, so
// half-typed numbers never break editing and never reach the server.
type Form struct {
	client  api.Client
	session *Session
	records *Records
	log     logging.Logger

	mu    sync.Mutex
	draft models.Draft
	open  bool
}

// NewForm constructs the draft controller.
func NewForm(client api.Client, session *Session, records *Records, log logging.Logger) *Form {
	return &Form{client: client, session: session, records: records, log: log}
}

// OpenNew starts a fresh create draft, replacing any draft already open.
func (f *Form) OpenNew() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = models.NewDraft()
	f.open = true
}

// OpenEdit starts an edit draft prefilled from rec, replacing any draft
// already open.
func (f *Form) OpenEdit(rec models.TastingRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = models.DraftFromRecord(rec)
	f.open = true
}

// Open reports whether a draft is open.
func (f *Form) Open() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Draft returns a copy of the open draft, or false when none is open.
func (f *Form) Draft() (models.Draft, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft, f.open
}

// SetField stores a raw value into the named draft field. The value is kept
// verbatim; nothing is validated or converted here.
func (f *Form) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return ErrNoDraft
	}
	return f.draft.SetField(name, value)
}

// Cancel discards the open draft without any server call.
func (f *Form) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = models.Draft{}
	f.open = false
}

// Submit converts the draft to a wire record and sends it: a create for a
// new draft, an update for an edit draft. On success the form closes and the
// record cache refreshes; on failure the draft stays open and untouched so
// nothing typed is lost.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if !f.open {
		f.mu.Unlock()
		return ErrNoDraft
	}
	draft := f.draft
	f.mu.Unlock()

	token, _ := f.session.Snapshot()
	if token == "" {
		return ErrNotLoggedIn
	}

	payload := draft.Payload()

	var err error
	if draft.Editing() {
		_, err = f.client.UpdateRecord(ctx, token, draft.RecordID, payload)
	} else {
		_, err = f.client.CreateRecord(ctx, token, payload)
	}
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			f.session.Invalidate(ctx)
		}
		f.log.Error(ctx, "submitting draft failed", "error", err)
		return err
	}

	f.mu.Lock()
	f.draft = models.Draft{}
	f.open = false
	f.mu.Unlock()

	if err := f.records.Refresh(ctx); err != nil {
		f.log.Warn(ctx, "refreshing records after submit failed", "error", err)
	}
	return nil
}

// appendPhoto adds filename to the draft's photo list, provided the draft is
// still the edit of recordID. Returns false when the draft moved on, in
// which case the uploaded photo is left for the next refresh to surface.
func (f *Form) appendPhoto(recordID int64, filename string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open || f.draft.RecordID != recordID {
		return false
	}
	f.draft.Photos = append(f.draft.Photos, filename)
	return true
}

// removePhoto drops filename from the draft's photo list, provided the draft
// is still the edit of recordID.
func (f *Form) removePhoto(recordID int64, filename string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open || f.draft.RecordID != recordID {
		return false
	}
	f.draft.Photos = f.draft.Photos.Remove(filename)
	return true
}
