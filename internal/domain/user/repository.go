package user

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmailOrEmployeeID(ctx context.Context, email, employeeID string) (emailTaken bool, employeeIDTaken bool, err error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	CountByRole(ctx context.Context, role Role) (int, error)
}
