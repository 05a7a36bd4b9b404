// Package api implements the Vinobook REST client: demo login, tasting note
// CRUD, and per-record photo upload/delete.
package api

import (
	"context"
	"io"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/models"
)

// User is the signed-in identity the server returns on login.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Auth is the demo-login response.
type Auth struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Client is the remote API surface the services depend on.
//
// Every method maps a 401 response to ErrUnauthorized and an unreachable
// server to ErrUnavailable so callers can branch on sentinel errors instead
// of transport detail.
type Client interface {
	DemoLogin(ctx context.Context, email string) (Auth, error)
	ListRecords(ctx context.Context, token string) ([]models.TastingRecord, error)
	CreateRecord(ctx context.Context, token string, rec models.TastingRecord) (models.TastingRecord, error)
	UpdateRecord(ctx context.Context, token string, id int64, rec models.TastingRecord) (models.TastingRecord, error)
	DeleteRecord(ctx context.Context, token string, id int64) error
	UploadPhoto(ctx context.Context, token string, recordID int64, filename string, data io.Reader) (string, error)
	DeletePhoto(ctx context.Context, token string, recordID int64, filename string) error
	PhotoURL(filename string) string
}
