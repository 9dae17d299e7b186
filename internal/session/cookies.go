package session

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/poskit/pos-gateway/internal/config"
	"github.com/poskit/pos-gateway/internal/domain"
)

// Cookie names shared with the browser.
const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

var expiredAt = time.Unix(0, 0).UTC()

// Cookies writes and reads the HTTP-only session cookies.
type Cookies struct {
	accessTTL  time.Duration
	refreshTTL time.Duration
	secure     bool
}

// NewCookies builds the cookie writer from configuration.
func NewCookies(cfg config.CookieConfig) *Cookies {
	return &Cookies{
		accessTTL:  cfg.AccessTTL(),
		refreshTTL: cfg.RefreshTTL(),
		secure:     cfg.Secure,
	}
}

// Write stores both tokens with their fixed lifetimes.
func (s *Cookies) Write(c *fiber.Ctx, pair *domain.TokenPair) {
	c.Cookie(s.cookie(AccessCookie, pair.AccessToken, s.accessTTL))
	c.Cookie(s.cookie(RefreshCookie, pair.RefreshToken, s.refreshTTL))
}

// Clear expires both cookies.
func (s *Cookies) Clear(c *fiber.Ctx) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  expiredAt,
			HTTPOnly: true,
			Secure:   s.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}

// Access returns the access token sent by the browser, if any.
func (s *Cookies) Access(c *fiber.Ctx) string {
	return c.Cookies(AccessCookie)
}

// Refresh returns the refresh token sent by the browser, if any.
func (s *Cookies) Refresh(c *fiber.Ctx) string {
	return c.Cookies(RefreshCookie)
}

func (s *Cookies) cookie(name, value string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
