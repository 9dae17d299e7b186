package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/poskit/pos-gateway/internal/auth"
	"github.com/poskit/pos-gateway/internal/backend"
	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/events"
	"github.com/poskit/pos-gateway/internal/observability"
	"github.com/poskit/pos-gateway/pkg/util/apierror"
	apperrors "github.com/poskit/pos-gateway/pkg/util/errorutil"
)

// Wire messages returned to the browser.
const (
	MsgUnauthorized       = "No autorizado"
	MsgNoRefreshToken     = "No refresh token"
	MsgRefreshInvalid     = "Refresh inválido"
	MsgBadCredentials     = "Credenciales inválidas"
	MsgBadAuthResponse    = "Respuesta inválida del servidor de auth"
	MsgBadRefreshResponse = "Respuesta inválida del servidor de refresh"
	MsgBackendNotSet      = "NEST_API_URL no está configurado"
	MsgBackendNotSetShort = "NEST_API_URL no configurado"
	MsgProxyError         = "Proxy error"
	MsgInvalidProxyPath   = "Ruta inválida en proxy"
	MsgInvalidRequestBody = "Cuerpo de la petición inválido"
)

// Refresh origins used for metrics and audit.
const (
	OriginRoute = "route"
	OriginGuard = "guard"
)

// Backend is the upstream API the gateway fronts.
type Backend interface {
	Configured() bool
	Login(ctx context.Context, creds backend.Credentials) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
	Me(ctx context.Context, accessToken string) (*backend.Response, error)
	Forward(ctx context.Context, req backend.ForwardRequest) (*backend.Response, error)
}

// SessionService coordinates the login, refresh, logout and me flows.
type SessionService struct {
	backend    Backend
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	refreshes  singleflight.Group
	now        func() time.Time
}

// NewSessionService builds the service. dispatcher and metrics may be nil.
func NewSessionService(b Backend, dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		backend:    b,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Login exchanges credentials for a complete token pair.
func (s *SessionService) Login(ctx context.Context, creds backend.Credentials) (*domain.TokenPair, error) {
	if !s.backend.Configured() {
		return nil, apperrors.NewConfigError(MsgBackendNotSet)
	}

	pair, err := s.backend.Login(ctx, creds)
	if err != nil {
		var upstream *backend.UpstreamError
		if errors.As(err, &upstream) {
			message := upstream.Message
			if message == "" {
				message = MsgBadCredentials
			}
			s.publish(ctx, events.EventLoginFailed, events.Actor{Email: creds.Email}, OriginRoute,
				events.FailurePayload{Status: upstream.Status, Message: message})
			return nil, apperrors.NewUpstreamError(upstream.Status, message)
		}
		return nil, s.transportError(err)
	}

	if !pair.Complete() {
		s.logger.Warn("login response without tokens")
		return nil, apperrors.NewBadGateway(MsgBadAuthResponse, nil)
	}

	actor := s.actorFor(pair.AccessToken)
	if actor.Email == "" {
		actor.Email = creds.Email
	}
	s.publish(ctx, events.EventLoginSucceeded, actor, OriginRoute, nil)
	return pair, nil
}

// Refresh rotates refreshToken. Concurrent calls for the same token share
// one backend round trip. A backend rejection yields a REFRESH_REJECTED error.
func (s *SessionService) Refresh(ctx context.Context, origin, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, apperrors.NewUnauthorized(MsgNoRefreshToken)
	}
	if !s.backend.Configured() {
		return nil, apperrors.NewConfigError(MsgBackendNotSet)
	}

	// the shared call must outlive any single waiter's cancellation
	shared := context.WithoutCancel(ctx)
	v, err, joined := s.refreshes.Do(refreshToken, func() (interface{}, error) {
		return s.refresh(shared, origin, refreshToken)
	})
	if joined {
		s.logger.Debug("joined in-flight refresh", zap.String("origin", origin))
	}
	if err != nil {
		return nil, err
	}
	pair := v.(*domain.TokenPair)
	return &domain.TokenPair{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (s *SessionService) refresh(ctx context.Context, origin, refreshToken string) (*domain.TokenPair, error) {
	pair, err := s.backend.Refresh(ctx, refreshToken)
	if err != nil {
		s.metrics.RecordRefresh(origin, false)
		var upstream *backend.UpstreamError
		if errors.As(err, &upstream) {
			message := upstream.Message
			if message == "" {
				message = MsgRefreshInvalid
			}
			s.publish(ctx, events.EventRefreshFailed, events.Actor{}, origin,
				events.FailurePayload{Status: upstream.Status, Message: message})
			return nil, apperrors.NewRefreshRejected(message)
		}
		return nil, s.transportError(err)
	}

	if !pair.Complete() {
		s.metrics.RecordRefresh(origin, false)
		s.logger.Warn("refresh response without tokens", zap.String("origin", origin))
		return nil, apperrors.NewBadGateway(MsgBadRefreshResponse, nil)
	}

	s.metrics.RecordRefresh(origin, true)
	s.publish(ctx, events.EventTokenRefreshed, s.actorFor(pair.AccessToken), origin, nil)
	return pair, nil
}

// Logout notifies the backend on a best-effort basis. The caller clears
// cookies whatever the outcome; only a missing backend is reported.
func (s *SessionService) Logout(ctx context.Context, accessToken string) error {
	if !s.backend.Configured() {
		return apperrors.NewConfigError(MsgBackendNotSet)
	}
	if accessToken == "" {
		return nil
	}

	if err := s.backend.Logout(ctx, accessToken); err != nil {
		s.logger.Warn("backend logout failed", zap.Error(err))
	}
	s.publish(ctx, events.EventLoggedOut, s.actorFor(accessToken), OriginRoute, nil)
	return nil
}

// Me returns the backend's identity response for accessToken.
func (s *SessionService) Me(ctx context.Context, accessToken string) (*backend.Response, error) {
	if accessToken == "" {
		return nil, apperrors.NewUnauthorized(MsgUnauthorized)
	}
	if !s.backend.Configured() {
		return nil, apperrors.NewConfigError(MsgBackendNotSetShort)
	}

	resp, err := s.backend.Me(ctx, accessToken)
	if err != nil {
		return nil, s.transportError(err)
	}
	return resp, nil
}

// meIdentity is the backend's /api/auth/me answer.
type meIdentity struct {
	UserID json.RawMessage `json:"userId"`
	Email  string          `json:"email"`
	Role   domain.Role     `json:"role"`
}

// Verify asks the backend who accessToken belongs to. Unlike DecodeToken the
// result is backed by the backend's signature check and may gate access.
func (s *SessionService) Verify(ctx context.Context, accessToken string) (*domain.Identity, error) {
	resp, err := s.Me(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.Status == http.StatusUnauthorized:
		return nil, apperrors.NewUnauthorized(MsgUnauthorized)
	case resp.Status < 200 || resp.Status >= 300:
		return nil, apperrors.NewUpstreamError(resp.Status, apierror.MessageOr(resp.Body, MsgUnauthorized))
	}

	var me meIdentity
	if err := json.Unmarshal(resp.Body, &me); err != nil {
		return nil, apperrors.NewBadGateway(MsgBadAuthResponse, err)
	}
	subject := strings.Trim(string(me.UserID), `"`)
	if subject == "null" {
		subject = ""
	}
	if subject == "" && me.Email == "" {
		return nil, apperrors.NewUnauthorized(MsgUnauthorized)
	}
	return &domain.Identity{SubjectID: subject, Email: me.Email, Role: me.Role}, nil
}

func (s *SessionService) transportError(err error) error {
	if errors.Is(err, backend.ErrNotConfigured) {
		return apperrors.NewConfigError(MsgBackendNotSet)
	}
	s.logger.Error("backend unreachable", zap.Error(err))
	return apperrors.NewBadGateway(MsgProxyError, err)
}

func (s *SessionService) actorFor(accessToken string) events.Actor {
	identity, _ := auth.DecodeToken(accessToken)
	return events.ActorFromIdentity(identity)
}

func (s *SessionService) publish(ctx context.Context, eventType events.EventType, actor events.Actor, origin string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Origin:    origin,
		Timestamp: s.now().UTC(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
