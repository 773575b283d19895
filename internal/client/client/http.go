package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/favkeeper/internal/common"
)

// HTTPClient implements Client over the JSON HTTP API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the server at baseURL. A nil client
// falls back to http.DefaultClient.
func NewHTTPClient(baseURL string, c *http.Client) *HTTPClient {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if c == nil {
		c = http.DefaultClient
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: c}
}

type apiResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Error   string `json:"error"`
}

func (c *HTTPClient) Register(ctx context.Context, userName, password, password2 string) (string, error) {
	body := map[string]string{"userName": userName, "password": password, "password2": password2}
	var resp apiResponse
	if err := c.do(ctx, http.MethodPost, "/user/register", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) Login(ctx context.Context, userName, password string) (string, error) {
	body := map[string]string{"userName": userName, "password": password}
	var resp apiResponse
	if err := c.do(ctx, http.MethodPost, "/user/login", "", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login response carries no token")
	}
	return resp.Token, nil
}

func (c *HTTPClient) Favourites(ctx context.Context, token string) ([]string, error) {
	var favourites []string
	if err := c.do(ctx, http.MethodGet, "/user/favourites", token, nil, &favourites); err != nil {
		return nil, err
	}
	return favourites, nil
}

func (c *HTTPClient) AddFavourite(ctx context.Context, token, itemID string) ([]string, error) {
	var favourites []string
	if err := c.do(ctx, http.MethodPut, "/user/favourites/"+url.PathEscape(itemID), token, nil, &favourites); err != nil {
		return nil, err
	}
	return favourites, nil
}

func (c *HTTPClient) RemoveFavourite(ctx context.Context, token, itemID string) ([]string, error) {
	var favourites []string
	if err := c.do(ctx, http.MethodDelete, "/user/favourites/"+url.PathEscape(itemID), token, nil, &favourites); err != nil {
		return nil, err
	}
	return favourites, nil
}

// Health reports nil when the server and its store are reachable.
func (c *HTTPClient) Health(ctx context.Context) error {
	var out map[string]string
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, &out)
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusServiceUnavailable:
		return ErrUnavailable
	case resp.StatusCode >= http.StatusBadRequest:
		var e apiResponse
		_ = json.Unmarshal(data, &e)
		msg := e.Message
		if msg == "" {
			msg = e.Error
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
