package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	jwt.Service
}

func NewUserService(userRepository user.UserRepository, jwtService jwt.Service) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
	}
}

func (s *UserServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements user.UserService.
// Self-registration always creates an EMPLOYEE.
func (s *UserServiceImpl) Register(ctx context.Context, req user.RegisterRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if req.RoleOrDefault() != user.RoleEmployee {
		return user.UserResponse{}, validator.ValidationErrors{
			{Field: "role", Message: "role can only be assigned by an administrator"},
		}
	}
	return s.create(ctx, req, user.RoleEmployee)
}

// CreateEmployee implements user.UserService.
func (s *UserServiceImpl) CreateEmployee(ctx context.Context, principal user.Principal, req user.RegisterRequest) (user.UserResponse, error) {
	if err := principal.AuthorizeAdmin(); err != nil {
		return user.UserResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	created, err := s.create(ctx, req, req.RoleOrDefault())
	if err != nil {
		return user.UserResponse{}, err
	}
	slog.Info("user created by admin", "admin_id", principal.UserID, "user_id", created.ID)
	return created, nil
}

func (s *UserServiceImpl) create(ctx context.Context, req user.RegisterRequest, role user.Role) (user.UserResponse, error) {
	emailTaken, employeeIDTaken, err := s.UserRepository.ExistsByEmailOrEmployeeID(ctx, req.Email, req.EmployeeID)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to check existing user: %w", err)
	}
	if emailTaken {
		return user.UserResponse{}, user.ErrEmailExists
	}
	if employeeIDTaken {
		return user.UserResponse{}, user.ErrEmployeeIDExists
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.UserRepository.Create(ctx, user.User{
		EmployeeID:   req.EmployeeID,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Name:         req.Name,
		Role:         role,
		JobTitle:     req.JobTitle,
		Department:   req.Department,
		JoiningDate:  req.ParsedJoiningDate(),
	})
	if err != nil {
		// The unique constraints still win a race with the check above.
		if errors.Is(err, user.ErrEmailExists) || errors.Is(err, user.ErrEmployeeIDExists) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", newUser.ID, "employee_id", newUser.EmployeeID, "role", newUser.Role)
	return user.ToResponse(newUser), nil
}

// Login implements user.UserService.
func (s *UserServiceImpl) Login(ctx context.Context, req user.LoginRequest) (user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return user.LoginResponse{}, err
	}

	userData, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.LoginResponse{}, user.ErrInvalidCredentials
		}
		return user.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return user.LoginResponse{}, user.ErrInvalidCredentials
	}

	token, expiresAt, err := s.Service.GenerateAccessToken(userData.ID, userData.Role)
	if err != nil {
		return user.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return user.LoginResponse{
		AccessToken:          token,
		AccessTokenExpiresAt: expiresAt,
		User:                 user.ToResponse(userData),
	}, nil
}

// GetProfile implements user.UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context, principal user.Principal) (user.UserResponse, error) {
	if err := principal.Authorize(); err != nil {
		return user.UserResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user.ToResponse(userData), nil
}

// UpdateProfile implements user.UserService.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, principal user.Principal, req user.UpdateProfileRequest) (user.UserResponse, error) {
	if err := principal.Authorize(); err != nil {
		return user.UserResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.UserRepository.UpdateProfile(ctx, principal.UserID, req)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return user.ToResponse(updated), nil
}

// ListEmployees implements user.UserService.
func (s *UserServiceImpl) ListEmployees(ctx context.Context, principal user.Principal) ([]user.UserResponse, error) {
	if err := principal.AuthorizeAdmin(); err != nil {
		return nil, err
	}

	users, err := s.UserRepository.ListByRole(ctx, user.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, user.ToResponse(u))
	}
	return resp, nil
}
