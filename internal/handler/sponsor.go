package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/middleware"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/repository"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/service"
)

type SponsorHandler struct {
	svc *service.SponsorService
}

func NewSponsorHandler(svc *service.SponsorService) *SponsorHandler {
	return &SponsorHandler{svc: svc}
}

// List handles GET /api/sponsors
func (h *SponsorHandler) List(c fiber.Ctx) error {
	sponsors, err := h.svc.List(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch sponsors")
	}
	return c.JSON(fiber.Map{"sponsors": sponsors})
}

// Get handles GET /api/sponsors/:id
func (h *SponsorHandler) Get(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"), "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	sponsor, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "Failed to fetch sponsor")
	}
	return c.JSON(sponsor)
}

// Create handles POST /api/sponsors
func (h *SponsorHandler) Create(c fiber.Ctx) error {
	var req model.SponsorRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	sponsor, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return h.mapError(c, err, "Failed to create sponsor")
	}
	return c.Status(fiber.StatusCreated).JSON(sponsor)
}

// Update handles PUT /api/sponsors/:id
func (h *SponsorHandler) Update(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"), "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.SponsorRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	sponsor, err := h.svc.Update(c.Context(), id, req)
	if err != nil {
		return h.mapError(c, err, "Failed to update sponsor")
	}
	return c.JSON(sponsor)
}

// Delete handles DELETE /api/sponsors/:id
func (h *SponsorHandler) Delete(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"), "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return h.mapError(c, err, "Failed to delete sponsor")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SponsorHandler) mapError(c fiber.Ctx, err error, fallback string) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION", verr.Error())
	case errors.Is(err, repository.ErrSponsorNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Sponsor not found")
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
