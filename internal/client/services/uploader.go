package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/api"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/logging"
)

// PhotoFile is one photo queued for upload.
type PhotoFile struct {
	Name string
	Data io.Reader
}

// UploadResult reports the outcome for one file of a batch. Filename is the
// server-assigned stored name on success; Err is the per-file failure.
type UploadResult struct {
	Name     string
	Filename string
	Err      error
}

// ConfirmFunc asks the user to confirm a destructive action.
type ConfirmFunc func(prompt string) bool

// Uploader sends photos for the record currently being edited. Files go up
// strictly one at a time, in the order given; a failed file does not stop
// the rest of the batch.
type Uploader struct {
	client  api.Client
	session *Session
	form    *Form
	records *Records
	log     logging.Logger
	confirm ConfirmFunc

	mu   sync.Mutex
	busy bool
}

// NewUploader constructs the photo uploader. confirm guards photo deletion
// and may be nil to skip the prompt.
func NewUploader(client api.Client, session *Session, form *Form, records *Records, log logging.Logger, confirm ConfirmFunc) *Uploader {
	return &Uploader{client: client, session: session, form: form, records: records, log: log, confirm: confirm}
}

// Busy reports whether an upload batch is in flight.
func (u *Uploader) Busy() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.busy
}

// UploadMany uploads files sequentially against the record the open draft is
// editing. Each success is appended to the draft's photo list immediately;
// each failure is recorded in the result and the batch moves on. After the
// last file the record cache refreshes once. The returned slice has one
// entry per input file, in order.
func (u *Uploader) UploadMany(ctx context.Context, files []PhotoFile) ([]UploadResult, error) {
	draft, ok := u.form.Draft()
	if !ok {
		return nil, ErrNoDraft
	}
	if !draft.Editing() {
		return nil, ErrNotEditing
	}

	u.mu.Lock()
	if u.busy {
		u.mu.Unlock()
		return nil, ErrUploadInProgress
	}
	u.busy = true
	u.mu.Unlock()
	defer func() {
		u.mu.Lock()
		u.busy = false
		u.mu.Unlock()
	}()

	token, _ := u.session.Snapshot()
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	log := u.log.With("batch", uuid.NewString(), "record_id", draft.RecordID)
	log.Info(ctx, "photo upload batch started", "files", len(files))

	results := make([]UploadResult, 0, len(files))
	for _, file := range files {
		filename, err := u.client.UploadPhoto(ctx, token, draft.RecordID, file.Name, file.Data)
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				u.session.Invalidate(ctx)
			}
			log.Error(ctx, "photo upload failed", "file", file.Name, "error", err)
			results = append(results, UploadResult{Name: file.Name, Err: err})
			continue
		}
		if !u.form.appendPhoto(draft.RecordID, filename) {
			log.Warn(ctx, "draft changed mid-batch, uploaded photo not shown until refresh", "file", filename)
		}
		results = append(results, UploadResult{Name: file.Name, Filename: filename})
	}

	if err := u.records.Refresh(ctx); err != nil {
		log.Warn(ctx, "refreshing records after upload batch failed", "error", err)
	}
	log.Info(ctx, "photo upload batch finished")
	return results, nil
}

// DeletePhoto removes a stored photo from the record being edited, after
// confirmation. The photo leaves the draft only when the server confirmed
// the delete or reported the photo already gone; on any other failure the
// draft keeps it.
func (u *Uploader) DeletePhoto(ctx context.Context, filename string) error {
	draft, ok := u.form.Draft()
	if !ok {
		return ErrNoDraft
	}
	if !draft.Editing() {
		return ErrNotEditing
	}

	if u.confirm != nil && !u.confirm(fmt.Sprintf("Delete photo %q?", filename)) {
		return ErrConfirmationDeclined
	}

	token, _ := u.session.Snapshot()
	if token == "" {
		return ErrNotLoggedIn
	}

	err := u.client.DeletePhoto(ctx, token, draft.RecordID, filename)
	switch {
	case err == nil:
	case errors.Is(err, api.ErrNotFound):
		// Already gone server-side; keeping it locally would be stale.
	case errors.Is(err, api.ErrUnauthorized):
		u.session.Invalidate(ctx)
		return err
	default:
		u.log.Error(ctx, "deleting photo failed", "file", filename, "error", err)
		return err
	}

	u.form.removePhoto(draft.RecordID, filename)
	if err := u.records.Refresh(ctx); err != nil {
		u.log.Warn(ctx, "refreshing records after photo delete failed", "error", err)
	}
	return nil
}
