package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/service"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats handles GET /api/dashboard/stats. Sub-query failures degrade to a
// partial response, never a 500.
func (h *DashboardHandler) Stats(c fiber.Ctx) error {
	return c.JSON(h.svc.Stats(c.Context()))
}
