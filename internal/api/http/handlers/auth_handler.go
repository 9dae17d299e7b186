package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poskit/pos-gateway/internal/api/dto"
	"github.com/poskit/pos-gateway/internal/backend"
	"github.com/poskit/pos-gateway/internal/service"
	"github.com/poskit/pos-gateway/internal/session"
	apperrors "github.com/poskit/pos-gateway/pkg/util/errorutil"
)

// AuthHandler exposes the session routes under /api/auth.
type AuthHandler struct {
	sessions *service.SessionService
	cookies  *session.Cookies
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions *service.SessionService, cookies *session.Cookies) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookies: cookies}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest(service.MsgInvalidRequestBody, err.Error())
	}

	pair, err := h.sessions.Login(c.UserContext(), backend.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}

	h.cookies.Write(c, pair)
	return c.JSON(dto.OKResponse{OK: true})
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	pair, err := h.sessions.Refresh(c.UserContext(), service.OriginRoute, h.cookies.Refresh(c))
	if err != nil {
		if apperrors.IsRefreshRejected(err) {
			h.cookies.Clear(c)
		}
		return err
	}

	h.cookies.Write(c, pair)
	return c.JSON(dto.OKResponse{OK: true})
}

// Logout handles POST /api/auth/logout. Cookies are cleared even when the
// backend cannot be notified.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	err := h.sessions.Logout(c.UserContext(), h.cookies.Access(c))
	h.cookies.Clear(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// Me handles GET /api/auth/me by relaying the backend answer.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	resp, err := h.sessions.Me(c.UserContext(), h.cookies.Access(c))
	if err != nil {
		return err
	}
	return relayResponse(c, resp)
}

func relayResponse(c *fiber.Ctx, resp *backend.Response) error {
	contentType := resp.ContentType
	if contentType == "" {
		contentType = fiber.MIMEApplicationJSON
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Status(resp.Status).Send(resp.Body)
}
