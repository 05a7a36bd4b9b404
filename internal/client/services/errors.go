package services

import "errors"

var (
	// ErrNotLoggedIn is returned when an operation needs a session token and
	// none is present. No request is issued in that state.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrNoDraft is returned when a form operation runs with no open draft.
	ErrNoDraft = errors.New("no open draft")

	// ErrNotEditing is returned by photo operations when the draft is not
	// bound to an existing record; a photo cannot attach to a record that
	// does not exist server-side yet.
	ErrNotEditing = errors.New("draft is not editing an existing record")

	// ErrUploadInProgress rejects a second upload batch while one is running.
	ErrUploadInProgress = errors.New("photo upload already in progress")

	// ErrConfirmationDeclined is returned when the user answers no to a
	// destructive-action prompt.
	ErrConfirmationDeclined = errors.New("confirmation declined")
)
