package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KingGimer44/VideoJuego/models"
)

// DefaultTimeout bounds every API call.
const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d message=%s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// APIClient talks to the storefront API.
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient returns a client for baseURL, e.g. "https://host/api".
// A zero timeout means DefaultTimeout.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *APIClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	body := models.LoginRequest{Email: email, Password: password}
	if err := a.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *APIClient) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	body := models.RegisterRequest{Name: name, Email: email, Password: password}
	if err := a.do(ctx, http.MethodPost, "/auth/register", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListGames fetches the catalog, letting the server filter and sort.
func (a *APIClient) ListGames(ctx context.Context, q models.ListGamesQuery) ([]models.Game, error) {
	query := url.Values{}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.FiltersGenre() {
		query.Set("genre", q.Genre)
	}
	if q.Sort != "" {
		query.Set("sort", q.Sort)
	}

	var out []models.Game
	if err := a.do(ctx, http.MethodGet, "/games", query, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Game{}
	}
	return out, nil
}

func (a *APIClient) GetGame(ctx context.Context, id string) (*models.Game, error) {
	var out models.Game
	if err := a.do(ctx, http.MethodGet, "/games/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *APIClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := a.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out)
}

func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var payload struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
			msg = payload.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
