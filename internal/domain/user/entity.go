package user

import "time"

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

type User struct {
	ID           string
	EmployeeID   string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	JobTitle     *string
	Department   *string
	JoiningDate  *time.Time
	Phone        *string
	Address      *string
	ProfilePic   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the authenticated caller of a core operation.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsAuthenticated() bool {
	return p.UserID != "" && p.Role.IsValid()
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Authorize returns ErrUnauthenticated for an empty principal.
func (p Principal) Authorize() error {
	if !p.IsAuthenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// AuthorizeAdmin additionally requires the ADMIN role.
func (p Principal) AuthorizeAdmin() error {
	if err := p.Authorize(); err != nil {
		return err
	}
	if !p.IsAdmin() {
		return ErrAdminPrivilegeRequired
	}
	return nil
}

// CanAccess reports whether p may read data owned by ownerID.
func (p Principal) CanAccess(ownerID string) bool {
	return p.IsAdmin() || p.UserID == ownerID
}
