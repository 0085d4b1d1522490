package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userapp/internal/core/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/users/", time.Second)
}

func TestClient_List(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Ann","email":"ann@x.io","phone":"0123456789"}]`))
	})

	users, err := client.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.User{{ID: 1, Name: "Ann", Email: "ann@x.io", Phone: "0123456789"}}, users)
}

func TestClient_Create(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload UserPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, UserPayload{Name: "Ann", Email: "ann@x.io", Password: "secret", Phone: "0123456789"}, payload)

		_, _ = w.Write([]byte(`{"message":"User created","userId":42}`))
	})

	id, err := client.Create(context.Background(), UserPayload{Name: "Ann", Email: "ann@x.io", Password: "secret", Phone: "0123456789"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestClient_UpdateAndDeleteUsePathID(t *testing.T) {
	var seen []string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})

	require.NoError(t, client.Update(context.Background(), 7, UserPayload{Name: "B"}))
	require.NoError(t, client.Delete(context.Background(), 7))

	assert.Equal(t, []string{"PUT /users/7", "DELETE /users/7"}, seen)
}

func TestClient_StatusErrorCarriesServerMessage(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Password must be between 3 and 8 characters","code":"VALIDATION_ERROR"}`))
	})

	err := client.Update(context.Background(), 1, UserPayload{})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", statusErr.Code)
	assert.Equal(t, "Password must be between 3 and 8 characters", err.Error())
}

func TestClient_StatusErrorWithoutBody(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.List(context.Background())

	require.Error(t, err)
	assert.Equal(t, "request failed with status code 502", err.Error())
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url+"/users", time.Second).List(context.Background())

	assert.ErrorIs(t, err, ErrNetwork)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	_, err := NewClient(srv.URL+"/users", 50*time.Millisecond).List(context.Background())

	assert.ErrorIs(t, err, ErrNetwork)
}
