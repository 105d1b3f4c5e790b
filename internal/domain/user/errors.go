package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailExists            = errors.New("email already registered")
	ErrEmployeeIDExists       = errors.New("employee id already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrUnauthenticated        = errors.New("authentication required")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
