package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)

	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	userService user.UserService
}

func NewAuthHandler(userService user.UserService) AuthHandler {
	return &AuthHandlerImpl{
		userService: userService,
	}
}

// Register implements AuthHandler.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq user.RegisterRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service
	created, err := a.userService.Register(r.Context(), registerReq)
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Registration successful", created)
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq user.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service
	tokenResponse, err := a.userService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Login successful", tokenResponse)
}

// GetProfile implements AuthHandler.
func (a *AuthHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := a.userService.GetProfile(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profile)
}

// UpdateProfile implements AuthHandler.
func (a *AuthHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateProfileRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profile, err := a.userService.UpdateProfile(r.Context(), middleware.PrincipalFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile updated successfully", profile)
}

// ListEmployees implements AuthHandler.
func (a *AuthHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := a.userService.ListEmployees(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employees)
}

// CreateEmployee implements AuthHandler.
func (a *AuthHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := a.userService.CreateEmployee(r.Context(), middleware.PrincipalFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created successfully", created)
}
