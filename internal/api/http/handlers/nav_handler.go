package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poskit/pos-gateway/internal/api/dto"
	"github.com/poskit/pos-gateway/internal/auth"
	apperrors "github.com/poskit/pos-gateway/pkg/util/errorutil"
)

// NavHandler serves the navigation of the calling role.
type NavHandler struct{}

// NewNavHandler constructs handler.
func NewNavHandler() *NavHandler {
	return &NavHandler{}
}

// Get handles GET /api/nav.
func (h *NavHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No autorizado")
	}
	return c.JSON(dto.NavResponse{
		Role:     identity.Role,
		Email:    identity.Email,
		Home:     auth.HomePath(identity.Role),
		Sections: auth.NavForRole(identity.Role),
	})
}
