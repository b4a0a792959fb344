package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/middleware"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/repository"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/service"
)

type ContestantHandler struct {
	svc *service.ContestantService
}

func NewContestantHandler(svc *service.ContestantService) *ContestantHandler {
	return &ContestantHandler{svc: svc}
}

// List handles GET /api/contestants?page=&limit=&province=
func (h *ContestantHandler) List(c fiber.Ctx) error {
	page, limit, errMsg := middleware.ValidatePagination(
		fiber.Query[string](c, "page"), fiber.Query[string](c, "limit"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	province, errMsg := middleware.ValidateProvince(fiber.Query[string](c, "province"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	resp, err := h.svc.List(c.Context(), page, limit, province)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch contestants")
	}

	return c.JSON(resp)
}

// Get handles GET /api/contestants/:id
func (h *ContestantHandler) Get(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"), "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	contestant, err := h.svc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrContestantNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Contestant not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch contestant")
	}

	return c.JSON(contestant)
}
