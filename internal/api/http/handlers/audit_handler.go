package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poskit/pos-gateway/internal/api/dto"
	"github.com/poskit/pos-gateway/internal/service"
	apperrors "github.com/poskit/pos-gateway/pkg/util/errorutil"
)

// AuditHandler exposes the session audit trail to admins.
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List handles GET /api/audit?limit=N.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", service.DefaultAuditLimit)
	if limit < 1 {
		return apperrors.NewValidationError("limit must be a positive integer")
	}
	entries, err := h.audit.Recent(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.AuditResponse{
		Enabled: h.audit.Enabled(),
		Entries: dto.NewAuditEntries(entries),
	})
}
