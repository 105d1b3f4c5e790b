package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
)

type PayrollHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// List implements PayrollHandler.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.payrollService.List(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// Upsert implements PayrollHandler.
func (h *payrollHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertPayrollRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Upsert payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.payrollService.Upsert(r.Context(), middleware.PrincipalFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll saved successfully", record)
}
