package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poskit/pos-gateway/internal/config"
)

func newTestClient(url string) *Client {
	return NewClient(config.BackendConfig{BaseURL: url, TimeoutSeconds: 5})
}

func TestClient_NotConfigured(t *testing.T) {
	client := newTestClient("")
	assert.False(t, client.Configured())

	_, err := client.Login(context.Background(), Credentials{Email: "a", Password: "b"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.Forward(context.Background(), ForwardRequest{Method: http.MethodGet, Path: "orders"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "admin@mana.test", creds.Email)
		assert.Equal(t, "secret", creds.Password)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accessToken":"a1","refreshToken":"r1"}`))
	}))
	defer server.Close()

	pair, err := newTestClient(server.URL).Login(context.Background(), Credentials{Email: "admin@mana.test", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "a1", pair.AccessToken)
	assert.Equal(t, "r1", pair.RefreshToken)
	assert.True(t, pair.Complete())
}

func TestClient_LoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Credenciales incorrectas","statusCode":401}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Login(context.Background(), Credentials{})
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.Status)
	assert.Equal(t, "Credenciales incorrectas", upstream.Message)
}

func TestClient_RefreshSendsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/refresh", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "r-old", body["refreshToken"])
		_, _ = w.Write([]byte(`{"accessToken":"a2"}`))
	}))
	defer server.Close()

	pair, err := newTestClient(server.URL).Refresh(context.Background(), "r-old")
	require.NoError(t, err)
	assert.Equal(t, "a2", pair.AccessToken)
	assert.False(t, pair.Complete())
}

func TestClient_LogoutUsesBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer a1", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	require.NoError(t, newTestClient(server.URL).Logout(context.Background(), "a1"))
}

func TestClient_ForwardRelaysQueryBodyAndStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/orders/5/items/9", r.URL.Path)
		assert.Equal(t, "force=true", r.URL.RawQuery)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "*/*", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"qty":2}`, string(body))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Orden cerrada"}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).Forward(context.Background(), ForwardRequest{
		Method:      http.MethodPatch,
		Path:        "orders/5/items/9",
		RawQuery:    "force=true",
		Body:        []byte(`{"qty":2}`),
		AccessToken: "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.Status)
	assert.Equal(t, "application/json; charset=utf-8", resp.ContentType)
	assert.JSONEq(t, `{"message":"Orden cerrada"}`, string(resp.Body))
}

func TestClient_ForwardGetHasNoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		assert.Equal(t, int64(0), r.ContentLength)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).Forward(context.Background(), ForwardRequest{
		Method: http.MethodGet,
		Path:   "/categories",
		Body:   []byte(`ignored`),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "[]", string(resp.Body))
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).Forward(context.Background(), ForwardRequest{Method: http.MethodGet, Path: "orders"})
	var transport *TransportError
	require.True(t, errors.As(err, &transport))
	assert.Contains(t, err.Error(), "backend request failed")
}
