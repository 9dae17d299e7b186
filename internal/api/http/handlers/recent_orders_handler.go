package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/poskit/pos-gateway/internal/api/dto"
	"github.com/poskit/pos-gateway/internal/auth"
	"github.com/poskit/pos-gateway/internal/recent"
	apperrors "github.com/poskit/pos-gateway/pkg/util/errorutil"
)

// RecentOrdersHandler keeps the per-user list of recently opened orders.
type RecentOrdersHandler struct {
	repo recent.Repository
}

// NewRecentOrdersHandler constructs handler.
func NewRecentOrdersHandler(repo recent.Repository) *RecentOrdersHandler {
	return &RecentOrdersHandler{repo: repo}
}

// List handles GET /api/recent-orders.
func (h *RecentOrdersHandler) List(c *fiber.Ctx) error {
	owner, err := ownerOf(c)
	if err != nil {
		return err
	}
	ids, err := h.repo.List(c.UserContext(), owner)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.RecentOrdersResponse{IDs: ids})
}

// Add handles POST /api/recent-orders.
func (h *RecentOrdersHandler) Add(c *fiber.Ctx) error {
	owner, err := ownerOf(c)
	if err != nil {
		return err
	}

	var req dto.RecentOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Cuerpo de la petición inválido", err.Error())
	}

	ids, err := h.repo.Add(c.UserContext(), owner, req.ID)
	if err != nil {
		// non-positive ids are ignored
		if errors.Is(err, recent.ErrInvalidID) {
			return h.List(c)
		}
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.RecentOrdersResponse{IDs: ids})
}

// Remove handles DELETE /api/recent-orders/:id.
func (h *RecentOrdersHandler) Remove(c *fiber.Ctx) error {
	owner, err := ownerOf(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("id must be an integer")
	}

	ids, err := h.repo.Remove(c.UserContext(), owner, id)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.RecentOrdersResponse{IDs: ids})
}

// Clear handles DELETE /api/recent-orders.
func (h *RecentOrdersHandler) Clear(c *fiber.Ctx) error {
	owner, err := ownerOf(c)
	if err != nil {
		return err
	}
	if err := h.repo.Clear(c.UserContext(), owner); err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.RecentOrdersResponse{IDs: []int64{}})
}

func ownerOf(c *fiber.Ctx) (string, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return "", apperrors.NewUnauthorized("No autorizado")
	}
	switch {
	case identity.SubjectID != "":
		return identity.SubjectID, nil
	case identity.Email != "":
		return identity.Email, nil
	}
	return "", apperrors.NewUnauthorized("No autorizado")
}
