package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poskit/pos-gateway/internal/service"
	"github.com/poskit/pos-gateway/internal/session"
)

// ProxyHandler relays /api/proxy/* to the backend API.
type ProxyHandler struct {
	proxy   *service.ProxyService
	cookies *session.Cookies
}

// NewProxyHandler constructs handler.
func NewProxyHandler(proxy *service.ProxyService, cookies *session.Cookies) *ProxyHandler {
	return &ProxyHandler{proxy: proxy, cookies: cookies}
}

// Forward handles every method on /api/proxy/*.
func (h *ProxyHandler) Forward(c *fiber.Ctx) error {
	resp, err := h.proxy.Forward(c.UserContext(), service.ProxyCall{
		Method:      c.Method(),
		Path:        c.Params("*"),
		RawQuery:    string(c.Request().URI().QueryString()),
		Body:        append([]byte(nil), c.Body()...),
		AccessToken: h.cookies.Access(c),
	})
	if err != nil {
		return err
	}
	return relayResponse(c, resp)
}
