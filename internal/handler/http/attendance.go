package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	// Get returns today's record, or the caller's history with ?history=true.
	Get(w http.ResponseWriter, r *http.Request)
	Record(w http.ResponseWriter, r *http.Request)

	ListByDay(w http.ResponseWriter, r *http.Request)
	Roster(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := middleware.PrincipalFromContext(ctx)

	history, _ := strconv.ParseBool(r.URL.Query().Get("history"))
	if !history {
		result, err := h.attendanceService.GetToday(ctx, principal)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
		return
	}

	var filter attendance.HistoryFilter
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil {
			response.BadRequest(w, "Invalid limit", map[string]string{"limit": "limit must be a number"})
			return
		}
		filter.Limit = limit
	}
	filter.Normalize()

	result, err := h.attendanceService.GetHistory(ctx, principal, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result, &response.Meta{Limit: filter.Limit, Count: len(result)})
}

// Record implements AttendanceHandler.
func (h *attendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Record attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Record(r.Context(), middleware.PrincipalFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.Action == attendance.ActionCheckIn {
		response.Created(w, "Check in successful", result)
		return
	}
	response.SuccessWithMessage(w, "Check out successful", result)
}

func dayFilter(r *http.Request) attendance.DayFilter {
	return attendance.DayFilter{Date: r.URL.Query().Get("date")}
}

// ListByDay implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByDay(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListByDay(r.Context(), middleware.PrincipalFromContext(r.Context()), dayFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Roster implements AttendanceHandler.
func (h *attendanceHandlerImpl) Roster(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Roster(r.Context(), middleware.PrincipalFromContext(r.Context()), dayFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	file, err := h.attendanceService.ExportDay(r.Context(), middleware.PrincipalFromContext(r.Context()), dayFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, file.Filename, file.ContentType, file.Content)
}
