package user

import "context"

type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	GetProfile(ctx context.Context, principal Principal) (UserResponse, error)
	UpdateProfile(ctx context.Context, principal Principal, req UpdateProfileRequest) (UserResponse, error)

	// CreateEmployee registers a user with any role. Admin only.
	CreateEmployee(ctx context.Context, principal Principal, req RegisterRequest) (UserResponse, error)

	// ListEmployees is admin only.
	ListEmployees(ctx context.Context, principal Principal) ([]UserResponse, error)
}
