package user

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	EmployeeID  string  `json:"employee_id"`
	Name        string  `json:"name"`
	Role        *string `json:"role,omitempty"`
	JobTitle    *string `json:"job_title,omitempty"`
	Department  *string `json:"department,omitempty"`
	JoiningDate *string `json:"joining_date,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.Name = strings.TrimSpace(r.Name)

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	} else if validator.ExceedsLength(r.EmployeeID, 50) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must not exceed 50 characters"})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if validator.ExceedsLength(r.Name, 255) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
	}

	if r.Role != nil && !Role(*r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of EMPLOYEE, ADMIN"})
	}

	if r.JoiningDate != nil {
		if _, ok := validator.IsValidDate(*r.JoiningDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "joining_date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RoleOrDefault returns the requested role, EMPLOYEE when none was given.
func (r *RegisterRequest) RoleOrDefault() Role {
	if r.Role == nil {
		return RoleEmployee
	}
	return Role(*r.Role)
}

func (r *RegisterRequest) ParsedJoiningDate() *time.Time {
	if r.JoiningDate == nil {
		return nil
	}
	d, ok := validator.IsValidDate(*r.JoiningDate)
	if !ok {
		return nil
	}
	return &d
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken          string       `json:"access_token"`
	AccessTokenExpiresAt int64        `json:"access_token_expires_at"`
	User                 UserResponse `json:"user"`
}

// UpdateProfileRequest only carries the fields an employee may edit on their own profile.
type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	ProfilePic *string `json:"profile_pic,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
		} else if validator.ExceedsLength(*r.Name, 255) {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
		}
	}
	if r.Phone != nil && !validator.IsEmpty(*r.Phone) && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "phone must be a valid phone number"})
	}
	if r.Address != nil && validator.ExceedsLength(*r.Address, 500) {
		errs = append(errs, validator.ValidationError{Field: "address", Message: "address must not exceed 500 characters"})
	}
	if r.ProfilePic != nil && validator.ExceedsLength(*r.ProfilePic, 1024) {
		errs = append(errs, validator.ValidationError{Field: "profile_pic", Message: "profile_pic must not exceed 1024 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Role        Role    `json:"role"`
	JobTitle    *string `json:"job_title"`
	Department  *string `json:"department"`
	JoiningDate *string `json:"joining_date"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	ProfilePic  *string `json:"profile_pic"`
	CreatedAt   string  `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		EmployeeID: u.EmployeeID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		JobTitle:   u.JobTitle,
		Department: u.Department,
		Phone:      u.Phone,
		Address:    u.Address,
		ProfilePic: u.ProfilePic,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
	if u.JoiningDate != nil {
		d := u.JoiningDate.Format("2006-01-02")
		resp.JoiningDate = &d
	}
	return resp
}
