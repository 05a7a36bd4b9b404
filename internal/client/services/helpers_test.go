package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/api"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/models"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/storage"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/logging"
)

// fakeClient implements api.Client with overridable per-method funcs.
type fakeClient struct {
	demoLoginFn    func(ctx context.Context, email string) (api.Auth, error)
	listRecordsFn  func(ctx context.Context, token string) ([]models.TastingRecord, error)
	createRecordFn func(ctx context.Context, token string, rec models.TastingRecord) (models.TastingRecord, error)
	updateRecordFn func(ctx context.Context, token string, id int64, rec models.TastingRecord) (models.TastingRecord, error)
	deleteRecordFn func(ctx context.Context, token string, id int64) error
	uploadPhotoFn  func(ctx context.Context, token string, recordID int64, filename string, data io.Reader) (string, error)
	deletePhotoFn  func(ctx context.Context, token string, recordID int64, filename string) error
}

func (f *fakeClient) DemoLogin(ctx context.Context, email string) (api.Auth, error) {
	if f.demoLoginFn != nil {
		return f.demoLoginFn(ctx, email)
	}
	return api.Auth{
		AccessToken: "test-token",
		TokenType:   "bearer",
		User:        api.User{ID: 1, Email: email, Name: "Demo"},
	}, nil
}

func (f *fakeClient) ListRecords(ctx context.Context, token string) ([]models.TastingRecord, error) {
	if f.listRecordsFn != nil {
		return f.listRecordsFn(ctx, token)
	}
	return []models.TastingRecord{}, nil
}

func (f *fakeClient) CreateRecord(ctx context.Context, token string, rec models.TastingRecord) (models.TastingRecord, error) {
	if f.createRecordFn != nil {
		return f.createRecordFn(ctx, token, rec)
	}
	rec.ID = 1
	return rec, nil
}

func (f *fakeClient) UpdateRecord(ctx context.Context, token string, id int64, rec models.TastingRecord) (models.TastingRecord, error) {
	if f.updateRecordFn != nil {
		return f.updateRecordFn(ctx, token, id, rec)
	}
	rec.ID = id
	return rec, nil
}

func (f *fakeClient) DeleteRecord(ctx context.Context, token string, id int64) error {
	if f.deleteRecordFn != nil {
		return f.deleteRecordFn(ctx, token, id)
	}
	return nil
}

func (f *fakeClient) UploadPhoto(ctx context.Context, token string, recordID int64, filename string, data io.Reader) (string, error) {
	if f.uploadPhotoFn != nil {
		return f.uploadPhotoFn(ctx, token, recordID, filename, data)
	}
	return filename, nil
}

func (f *fakeClient) DeletePhoto(ctx context.Context, token string, recordID int64, filename string) error {
	if f.deletePhotoFn != nil {
		return f.deletePhotoFn(ctx, token, recordID, filename)
	}
	return nil
}

func (f *fakeClient) PhotoURL(filename string) string {
	return "http://test/uploads/" + filename
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	// An in-memory sqlite database exists per connection; pin the pool to
	// one so every statement sees the migrated schema.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestApp(t *testing.T, client api.Client, confirm ConfirmFunc) *App {
	t.Helper()
	return NewApp(client, testDB(t), testLogger(), confirm)
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func fixtureRecords() []models.TastingRecord {
	return []models.TastingRecord{
		{
			ID:       2,
			WineName: "Château Margaux",
			Vintage:  intPtr(2015),
			Varietal: "Cabernet Sauvignon",
			Region:   "Bordeaux",
			Color:    models.ColorRed,
			Rating:   floatPtr(4.8),
			Photos:   models.PhotoList{"margaux.jpg"},
		},
		{
			ID:       1,
			WineName: "Domaine Laroche Chablis",
			Vintage:  intPtr(2020),
			Varietal: "Chardonnay",
			Region:   "Burgundy",
			Color:    models.ColorWhite,
			Photos:   models.PhotoList{},
		},
	}
}
