package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/golang-jwt/jwt/v5"

	"github.com/poskit/pos-gateway/internal/backend"
	"github.com/poskit/pos-gateway/internal/domain"
)

type fakeBackend struct {
	configured bool

	loginPair *domain.TokenPair
	loginErr  error

	refreshPair    *domain.TokenPair
	refreshErr     error
	refreshRelease chan struct{}
	refreshCalls   atomic.Int32

	logoutErr    error
	logoutTokens []string

	meResp *backend.Response
	meErr  error

	forwardResp *backend.Response
	forwardErr  error
	forwarded   []backend.ForwardRequest

	mu sync.Mutex
}

func (f *fakeBackend) Configured() bool { return f.configured }

func (f *fakeBackend) Login(context.Context, backend.Credentials) (*domain.TokenPair, error) {
	return f.loginPair, f.loginErr
}

func (f *fakeBackend) Refresh(context.Context, string) (*domain.TokenPair, error) {
	f.refreshCalls.Add(1)
	if f.refreshRelease != nil {
		<-f.refreshRelease
	}
	return f.refreshPair, f.refreshErr
}

func (f *fakeBackend) Logout(_ context.Context, accessToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutTokens = append(f.logoutTokens, accessToken)
	return f.logoutErr
}

func (f *fakeBackend) Me(context.Context, string) (*backend.Response, error) {
	return f.meResp, f.meErr
}

func (f *fakeBackend) Forward(_ context.Context, req backend.ForwardRequest) (*backend.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forwarded = append(f.forwarded, req)
	return f.forwardResp, f.forwardErr
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuthAudit
	err     error
	listErr error
	limit   int
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domain.AuthAudit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return r.err
}

func (r *fakeAuditRepo) ListRecent(_ context.Context, limit int) ([]domain.AuthAudit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limit = limit
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.AuthAudit(nil), r.entries...), nil
}

func mintToken(sub, email string, role domain.Role) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"role":  string(role),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		panic(err)
	}
	return token
}
