package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/middleware"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/repository"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/service"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/pkg/hash"
)

type VoteHandler struct {
	svc    *service.VoteService
	ipSalt string
}

func NewVoteHandler(svc *service.VoteService, ipSalt string) *VoteHandler {
	return &VoteHandler{svc: svc, ipSalt: ipSalt}
}

// Submit handles POST /api/votes
func (h *VoteHandler) Submit(c fiber.Ctx) error {
	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	contestantID, errMsg := middleware.ValidateID(req.ContestantID, "contestantId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.ContestantID = contestantID

	userID, errMsg := middleware.ValidateID(req.UserID, "userId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.UserID = userID

	// Hashed for abuse auditing; raw IP is never stored
	ipHash := hash.HashIP(c.IP(), h.ipSalt)

	resp, err := h.svc.Record(c.Context(), req, ipHash)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION", verr.Error())
		case errors.Is(err, service.ErrDuplicateVote):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "DUPLICATE_VOTE",
				"An identical vote was just submitted. Please wait before retrying.")
		case errors.Is(err, repository.ErrContestantNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Contestant not found")
		case errors.Is(err, repository.ErrUserNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, repository.ErrContestantIneligible):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "CONTESTANT_INELIGIBLE",
				"Contestant is no longer accepting votes")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit vote")
		}
	}

	paid := "free"
	if req.IsPaid {
		paid = "paid"
	}
	Metrics.VotesTotal.WithLabelValues(paid).Inc()

	return c.JSON(resp)
}

// Delete handles DELETE /api/votes/:id (admin moderation)
func (h *VoteHandler) Delete(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"), "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, repository.ErrVoteNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Vote not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete vote")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
