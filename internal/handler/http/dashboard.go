package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetAdminDashboard(w http.ResponseWriter, r *http.Request)
	GetEmployeeDashboard(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// GetAdminDashboard implements DashboardHandler.
func (h *dashboardHandlerImpl) GetAdminDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.dashboardService.AdminSnapshot(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, snapshot)
}

// GetEmployeeDashboard implements DashboardHandler.
func (h *dashboardHandlerImpl) GetEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.dashboardService.EmployeeSnapshot(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, snapshot)
}

// CheckIn implements DashboardHandler. It is idempotent for the day and
// returns the fresh snapshot.
func (h *dashboardHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := middleware.PrincipalFromContext(ctx)

	if _, err := h.dashboardService.EnsureCheckedIn(ctx, principal); err != nil {
		response.HandleError(w, err)
		return
	}

	snapshot, err := h.dashboardService.EmployeeSnapshot(ctx, principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, snapshot)
}
