package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/poskit/pos-gateway/internal/backend"
)

func TestProxyService_Forward(t *testing.T) {
	fb := &fakeBackend{configured: true, forwardResp: &backend.Response{Status: 404, Body: []byte(`{"message":"no"}`)}}
	svc := NewProxyService(fb, zap.NewNop())

	resp, err := svc.Forward(context.Background(), ProxyCall{
		Method:      "PATCH",
		Path:        "/orders/5/send-to-kitchen",
		RawQuery:    "x=1",
		Body:        []byte(`{}`),
		AccessToken: "a1",
	})
	require.NoError(t, err)
	assert.Equal(t, 404, resp.Status)
	assert.Equal(t, "application/json", resp.ContentType)

	require.Len(t, fb.forwarded, 1)
	assert.Equal(t, "orders/5/send-to-kitchen", fb.forwarded[0].Path)
	assert.Equal(t, "x=1", fb.forwarded[0].RawQuery)
	assert.Equal(t, "a1", fb.forwarded[0].AccessToken)
}

func TestProxyService_Errors(t *testing.T) {
	tests := []struct {
		name    string
		backend *fakeBackend
		call    ProxyCall
		status  int
		message string
	}{
		{"empty path", &fakeBackend{configured: true}, ProxyCall{Method: "GET", Path: "/", AccessToken: "a"}, 400, MsgInvalidProxyPath},
		{"no token", &fakeBackend{configured: true}, ProxyCall{Method: "GET", Path: "orders"}, 401, MsgUnauthorized},
		{"not configured", &fakeBackend{}, ProxyCall{Method: "GET", Path: "orders", AccessToken: "a"}, 500, MsgBackendNotSetShort},
		{
			"transport",
			&fakeBackend{configured: true, forwardErr: &backend.TransportError{Err: errors.New("connection reset")}},
			ProxyCall{Method: "GET", Path: "orders", AccessToken: "a"},
			502,
			MsgProxyError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProxyService(tt.backend, zap.NewNop()).Forward(context.Background(), tt.call)
			de := requireDomainError(t, err, tt.status, tt.message)
			if tt.status == 502 {
				assert.Contains(t, de.Detail, "connection reset")
			}
		})
	}
}
