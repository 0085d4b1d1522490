// Package api is the HTTP client for the users service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"userapp/internal/core/domain"
	"userapp/internal/core/model/response"
)

// ErrNetwork is returned when the service could not be reached or did not
// answer within the client timeout.
var ErrNetwork = errors.New("network error")

// StatusError is a non-2xx reply. Message carries the service's error text.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// UserPayload is the body sent on create and update.
type UserPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the collection at baseURL, for example
// http://localhost:5000/users.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *Client) List(ctx context.Context) ([]domain.User, error) {
	var body []response.UserResponse
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &body); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(body))
	for _, u := range body {
		users = append(users, domain.User{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone})
	}
	return users, nil
}

func (c *Client) Create(ctx context.Context, payload UserPayload) (int64, error) {
	var body response.CreateUserResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL, payload, &body); err != nil {
		return 0, err
	}
	return body.UserID, nil
}

func (c *Client) Update(ctx context.Context, id int64, payload UserPayload) error {
	return c.do(ctx, http.MethodPut, c.userURL(id), payload, nil)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.userURL(id), nil, nil)
}

func (c *Client) userURL(id int64) string {
	return c.baseURL + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	var reader io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var body response.ErrorResponse
		if json.Unmarshal(data, &body) == nil {
			statusErr.Message = body.Error
			statusErr.Code = body.Code
		}
		return statusErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
