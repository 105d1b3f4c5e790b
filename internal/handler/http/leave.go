package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ReviewRequest(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.List(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	request, err := l.leaveService.Get(r.Context(), middleware.PrincipalFromContext(r.Context()), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, request)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitLeaveRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := l.leaveService.Submit(r.Context(), middleware.PrincipalFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted successfully", created)
}

// ReviewRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ReviewRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	var req leave.ReviewLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ReviewRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	reviewed, err := l.leaveService.Review(r.Context(), middleware.PrincipalFromContext(r.Context()), requestID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request reviewed successfully", reviewed)
}

// GetBalance implements LeaveHandler. ?user_id selects another user (admin only).
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := l.leaveService.ComputeBalance(r.Context(), middleware.PrincipalFromContext(r.Context()), r.URL.Query().Get("user_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balance)
}
