package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/heraclion-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats GET /api/dashboard/stats
//
// Las fuentes caídas no hacen fallar la petición: aportan cero y aparecen como
// "degraded" en data.sources.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, stats)
}

// GetRecentActivities GET /api/dashboard/recent-activities
func (h *DashboardHandler) GetRecentActivities(c *fiber.Ctx) error {
	acts, sources, err := h.uc.GetRecentActivities(c.UserContext())
	if err != nil {
		return err
	}
	return list(c, acts, len(acts), sources)
}

// GetAlerts GET /api/dashboard/alerts
func (h *DashboardHandler) GetAlerts(c *fiber.Ctx) error {
	alerts, sources, err := h.uc.GetAlerts(c.UserContext())
	if err != nil {
		return err
	}
	return list(c, alerts, len(alerts), sources)
}
