package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/poskit/pos-gateway/internal/backend"
	apperrors "github.com/poskit/pos-gateway/pkg/util/errorutil"
)

const defaultContentType = "application/json"

// ProxyCall is one relayed API call with the caller's access token.
type ProxyCall struct {
	Method      string
	Path        string
	RawQuery    string
	Body        []byte
	AccessToken string
}

// ProxyService relays authenticated calls to the backend API.
type ProxyService struct {
	backend Backend
	logger  *zap.Logger
}

// NewProxyService builds the relay.
func NewProxyService(b Backend, logger *zap.Logger) *ProxyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProxyService{backend: b, logger: logger}
}

// Forward relays call and returns the backend answer unchanged, except that
// a missing content type is reported as JSON. Backend statuses are never
// turned into errors.
func (s *ProxyService) Forward(ctx context.Context, call ProxyCall) (*backend.Response, error) {
	path := strings.Trim(call.Path, "/")
	if path == "" {
		return nil, apperrors.NewBadRequest(MsgInvalidProxyPath, "path: "+call.Path)
	}
	if call.AccessToken == "" {
		return nil, apperrors.NewUnauthorized(MsgUnauthorized)
	}
	if !s.backend.Configured() {
		return nil, apperrors.NewConfigError(MsgBackendNotSetShort)
	}

	resp, err := s.backend.Forward(ctx, backend.ForwardRequest{
		Method:      call.Method,
		Path:        path,
		RawQuery:    call.RawQuery,
		Body:        call.Body,
		AccessToken: call.AccessToken,
	})
	if err != nil {
		if errors.Is(err, backend.ErrNotConfigured) {
			return nil, apperrors.NewConfigError(MsgBackendNotSetShort)
		}
		s.logger.Error("proxy request failed",
			zap.String("method", call.Method),
			zap.String("path", path),
			zap.Error(err))
		return nil, apperrors.NewBadGateway(MsgProxyError, err)
	}

	if resp.ContentType == "" {
		resp.ContentType = defaultContentType
	}
	return resp, nil
}
