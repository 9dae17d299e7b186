package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/session"
	apperrors "github.com/poskit/pos-gateway/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// Redirect targets of the edge guard.
const (
	LoginPath        = "/auth/login"
	UnauthorizedPath = "/unauthorized"
)

const guardOrigin = "guard"

var publicPrefixes = []string{
	LoginPath,
	UnauthorizedPath,
	"/static",
	"/_next",
	"/favicon",
	"/api",
	"/health",
}

// Refresher rotates a refresh token into a new pair.
type Refresher interface {
	Refresh(ctx context.Context, origin, refreshToken string) (*domain.TokenPair, error)
}

// EdgeGuard gates page navigation by the role claimed in the access cookie.
// It only drives redirects; the backend still authorizes every API call.
type EdgeGuard struct {
	cookies   *session.Cookies
	refresher Refresher
	logger    *zap.Logger
}

// NewEdgeGuard constructs the guard.
func NewEdgeGuard(cookies *session.Cookies, refresher Refresher, logger *zap.Logger) *EdgeGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EdgeGuard{cookies: cookies, refresher: refresher, logger: logger}
}

// IsPublicPath reports whether path skips the guard.
func IsPublicPath(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Handle redirects to login or to the unauthorized page, or continues with
// the decoded identity stored in the request locals.
func (g *EdgeGuard) Handle(c *fiber.Ctx) error {
	path := c.Path()
	if IsPublicPath(path) {
		return c.Next()
	}

	identity, ok := g.resolveIdentity(c)
	if !ok || identity.Role == "" {
		return c.Redirect(LoginPath, fiber.StatusTemporaryRedirect)
	}

	if !CanAccessPath(path, identity.Role) {
		return c.Redirect(UnauthorizedPath, fiber.StatusTemporaryRedirect)
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

func (g *EdgeGuard) resolveIdentity(c *fiber.Ctx) (*domain.Identity, bool) {
	if access := g.cookies.Access(c); access != "" {
		return DecodeToken(access)
	}

	refresh := g.cookies.Refresh(c)
	if refresh == "" {
		return nil, false
	}

	pair, err := g.refresher.Refresh(c.UserContext(), guardOrigin, refresh)
	if err != nil {
		if apperrors.IsRefreshRejected(err) {
			g.cookies.Clear(c)
		}
		g.logger.Info("silent refresh failed", zap.String("path", c.Path()), zap.Error(err))
		return nil, false
	}

	g.cookies.Write(c, pair)
	return DecodeToken(pair.AccessToken)
}

// Verifier resolves an access token into the identity the backend vouches for.
type Verifier interface {
	Verify(ctx context.Context, accessToken string) (*domain.Identity, error)
}

// RequireVerifiedIdentity stores the backend-confirmed identity of the access
// cookie. Routes exposing other users' data or gated by role must use it.
func RequireVerifiedIdentity(cookies *session.Cookies, verifier Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		access := cookies.Access(c)
		if access == "" {
			return apperrors.NewUnauthorized("No autorizado")
		}
		identity, err := verifier.Verify(c.UserContext(), access)
		if err != nil {
			return err
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// RequireIdentity rejects API calls whose access cookie does not decode to an
// identity. The result is unverified and only fit for display.
func RequireIdentity(cookies *session.Cookies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := DecodeToken(cookies.Access(c))
		if !ok {
			return apperrors.NewUnauthorized("No autorizado")
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// RequireRole lets through identities holding one of roles. It runs after
// RequireVerifiedIdentity.
func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("No autorizado")
		}
		for _, role := range roles {
			if identity.Role == role {
				return c.Next()
			}
		}
		return apperrors.NewForbidden("Acceso denegado")
	}
}

// IdentityFromContext retrieves the identity stored by the guard.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}
