package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/api"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/config"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/models"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/services"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/storage"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/logging"
)

// stubClient implements api.Client for command tests.
type stubClient struct {
	records []models.TastingRecord
	created *models.TastingRecord
	deleted []int64
}

func (s *stubClient) DemoLogin(ctx context.Context, email string) (api.Auth, error) {
	return api.Auth{AccessToken: "tok", User: api.User{ID: 1, Email: email}}, nil
}

func (s *stubClient) ListRecords(ctx context.Context, token string) ([]models.TastingRecord, error) {
	return s.records, nil
}

func (s *stubClient) CreateRecord(ctx context.Context, token string, rec models.TastingRecord) (models.TastingRecord, error) {
	rec.ID = int64(len(s.records) + 1)
	s.created = &rec
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *stubClient) UpdateRecord(ctx context.Context, token string, id int64, rec models.TastingRecord) (models.TastingRecord, error) {
	rec.ID = id
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i] = rec
		}
	}
	return rec, nil
}

func (s *stubClient) DeleteRecord(ctx context.Context, token string, id int64) error {
	s.deleted = append(s.deleted, id)
	kept := s.records[:0]
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}

func (s *stubClient) UploadPhoto(ctx context.Context, token string, recordID int64, filename string, data io.Reader) (string, error) {
	return filename, nil
}

func (s *stubClient) DeletePhoto(ctx context.Context, token string, recordID int64, filename string) error {
	return nil
}

func (s *stubClient) PhotoURL(filename string) string {
	return "http://test/uploads/" + filename
}

// captureOutput redirects printlnFn and printfFn into a buffer for the test.
func captureOutput(t *testing.T) *strings.Builder {
	t.Helper()
	var buf strings.Builder
	origPrintln, origPrintf := printlnFn, printfFn
	printlnFn = func(args ...any) (int, error) { return fmt.Fprintln(&buf, args...) }
	printfFn = func(format string, args ...any) { fmt.Fprintf(&buf, format, args...) }
	t.Cleanup(func() { printlnFn, printfFn = origPrintln, origPrintf })
	return &buf
}

func stubSimpleText(t *testing.T, answer string) {
	t.Helper()
	orig := getSimpleText
	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		return answer, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
}

func stubConfirm(t *testing.T, answer bool) {
	t.Helper()
	orig := confirmFn
	confirmFn = func(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
		return answer, nil
	}
	t.Cleanup(func() { confirmFn = orig })
}

func newTestCLI(t *testing.T, client api.Client) *App {
	t.Helper()

	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	a := &App{
		config: &config.Config{},
		client: client,
		reader: bufio.NewReader(strings.NewReader("")),
		log:    log,
	}
	a.app = services.NewApp(client, db, log, a.confirmPrompt)
	return a
}

func TestApp_LoginCommand(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)
	stubSimpleText(t, "taster@example.com")

	stub := &stubClient{records: []models.TastingRecord{{ID: 1, WineName: "Rioja"}}}
	a := newTestCLI(t, stub)

	require.NoError(t, a.Login(ctx))

	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Logged in as taster@example.com")
	assert.Contains(t, out.String(), "1 tasting notes")
}

func TestApp_LoginCommandEmptyEmail(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)
	stubSimpleText(t, "")

	a := newTestCLI(t, &stubClient{})

	require.NoError(t, a.Login(ctx))
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Email must not be empty")
}

func TestApp_NewSetSubmitFlow(t *testing.T) {
	ctx := context.Background()
	captureOutput(t)
	stubSimpleText(t, "taster@example.com")

	stub := &stubClient{}
	a := newTestCLI(t, stub)
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.New(ctx))
	require.NoError(t, a.Set(ctx, []string{"wine_name", "Barolo", "Riserva"}))
	require.NoError(t, a.Set(ctx, []string{"vintage", "2019"}))
	require.NoError(t, a.Submit(ctx))

	require.NotNil(t, stub.created)
	assert.Equal(t, "Barolo Riserva", stub.created.WineName)
	require.NotNil(t, stub.created.Vintage)
	assert.Equal(t, 2019, *stub.created.Vintage)
	assert.False(t, a.app.Form.Open())
}

func TestApp_SetUnknownFieldListsFields(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)
	stubSimpleText(t, "taster@example.com")

	a := newTestCLI(t, &stubClient{})
	require.NoError(t, a.Login(ctx))
	require.NoError(t, a.New(ctx))

	err := a.Set(ctx, []string{"bottle_shape", "burgundy"})
	require.ErrorIs(t, err, models.ErrUnknownField)
	assert.Contains(t, out.String(), "wine_name")
}

func TestApp_DeleteDeclined(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)
	stubSimpleText(t, "taster@example.com")
	stubConfirm(t, false)

	stub := &stubClient{records: []models.TastingRecord{{ID: 5, WineName: "Chablis"}}}
	a := newTestCLI(t, stub)
	require.NoError(t, a.Login(ctx))

	err := a.Delete(ctx, []string{"5"})
	require.ErrorIs(t, err, services.ErrConfirmationDeclined)
	assert.Empty(t, stub.deleted)
	assert.Contains(t, out.String(), "Cancelled")
}

func TestApp_DeleteConfirmed(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)
	stubSimpleText(t, "taster@example.com")
	stubConfirm(t, true)

	stub := &stubClient{records: []models.TastingRecord{{ID: 5, WineName: "Chablis"}}}
	a := newTestCLI(t, stub)
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Delete(ctx, []string{"5"}))
	assert.Equal(t, []int64{5}, stub.deleted)
	assert.Contains(t, out.String(), "Deleted")
	assert.Zero(t, a.app.Records.Len())
}

func TestApp_ShowUnknownID(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)
	stubSimpleText(t, "taster@example.com")

	a := newTestCLI(t, &stubClient{})
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Show(ctx, []string{"42"}))
	assert.Contains(t, out.String(), "No tasting note with id 42")

	require.NoError(t, a.Show(ctx, nil))
	assert.Contains(t, out.String(), "Usage: show <id>")
}

func TestApp_ShowPrintsPhotoURLs(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)
	stubSimpleText(t, "taster@example.com")

	stub := &stubClient{records: []models.TastingRecord{{
		ID:       3,
		WineName: "Margaux",
		Photos:   models.PhotoList{"glass.jpg"},
	}}}
	a := newTestCLI(t, stub)
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Show(ctx, []string{"3"}))
	assert.Contains(t, out.String(), "http://test/uploads/glass.jpg")
}

func TestApp_SearchCommand(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)
	stubSimpleText(t, "taster@example.com")

	stub := &stubClient{records: []models.TastingRecord{
		{ID: 1, WineName: "Barolo"},
		{ID: 2, WineName: "Chablis"},
	}}
	a := newTestCLI(t, stub)
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Search(ctx, []string{"chablis"}))
	assert.Contains(t, out.String(), "Chablis")
	assert.NotContains(t, out.String(), "Barolo")
}

func TestApp_StatusLine(t *testing.T) {
	ctx := context.Background()
	captureOutput(t)
	stubSimpleText(t, "taster@example.com")

	a := newTestCLI(t, &stubClient{})
	assert.Equal(t, "", a.getStatus())

	require.NoError(t, a.Login(ctx))
	assert.Equal(t, "(taster@example.com)", a.getStatus())

	require.NoError(t, a.New(ctx))
	assert.Equal(t, "(taster@example.com editing)", a.getStatus())
}
