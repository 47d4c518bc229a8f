package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-portal/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/jwt"
)

type DashboardHandler interface {
	// GetDashboard returns the dashboard variant of the signed-in user
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sessionID, err := jwt.SessionIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
