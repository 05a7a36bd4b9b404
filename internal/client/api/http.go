package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/models"
)

// HTTPClient talks to the Vinobook server over HTTP/JSON.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient constructs a client for the server at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

func (c *HTTPClient) DemoLogin(ctx context.Context, email string) (Auth, error) {
	q := url.Values{}
	q.Set("email", email)

	var auth Auth
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/demo-login?"+q.Encode(), "", nil, &auth); err != nil {
		return Auth{}, err
	}
	return auth, nil
}

func (c *HTTPClient) ListRecords(ctx context.Context, token string) ([]models.TastingRecord, error) {
	var recs []models.TastingRecord
	if err := c.doJSON(ctx, http.MethodGet, "/api/notes", token, nil, &recs); err != nil {
		return nil, err
	}
	// Normalize here so downstream consumers never see a nil photo sequence.
	for i := range recs {
		if recs[i].Photos == nil {
			recs[i].Photos = models.PhotoList{}
		}
	}
	return recs, nil
}

func (c *HTTPClient) CreateRecord(ctx context.Context, token string, rec models.TastingRecord) (models.TastingRecord, error) {
	var out models.TastingRecord
	if err := c.doJSON(ctx, http.MethodPost, "/api/notes", token, rec, &out); err != nil {
		return models.TastingRecord{}, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateRecord(ctx context.Context, token string, id int64, rec models.TastingRecord) (models.TastingRecord, error) {
	var out models.TastingRecord
	path := fmt.Sprintf("/api/notes/%d", id)
	if err := c.doJSON(ctx, http.MethodPut, path, token, rec, &out); err != nil {
		return models.TastingRecord{}, err
	}
	return out, nil
}

func (c *HTTPClient) DeleteRecord(ctx context.Context, token string, id int64) error {
	path := fmt.Sprintf("/api/notes/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, nil)
}

func (c *HTTPClient) UploadPhoto(ctx context.Context, token string, recordID int64, filename string, data io.Reader) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	path := fmt.Sprintf("%s/api/upload-photo/%d", c.baseURL, recordID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, body)
	if err != nil {
		return "", err
	}
	addAuthHeader(req, token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp struct {
		Filename string `json:"filename"`
		URL      string `json:"url"`
	}
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	return resp.Filename, nil
}

func (c *HTTPClient) DeletePhoto(ctx context.Context, token string, recordID int64, filename string) error {
	path := fmt.Sprintf("/api/upload-photo/%d/%s", recordID, url.PathEscape(filename))
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, nil)
}

// PhotoURL returns the static resource URL a photo is served from; the path
// is public and not proxied through auth.
func (c *HTTPClient) PhotoURL(filename string) string {
	return c.baseURL + "/uploads/" + url.PathEscape(filename)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	addAuthHeader(req, token)
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) mapError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}

	var errResp struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&errResp)
	msg := errResp.Detail
	if msg == "" {
		msg = errResp.Error
	}
	if msg == "" {
		msg = resp.Status
	}
	return &Error{Status: resp.StatusCode, Message: msg}
}

func addAuthHeader(req *http.Request, token string) {
	if strings.TrimSpace(token) == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}
