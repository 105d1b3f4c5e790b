package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, employee_id, email, password_hash, name, role, job_title, department,
		joining_date, phone, address, profile_pic, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.EmployeeID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Role,
		&u.JobTitle,
		&u.Department,
		&u.JoiningDate,
		&u.Phone,
		&u.Address,
		&u.ProfilePic,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	if newUser.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return user.User{}, fmt.Errorf("failed to generate user id: %w", err)
		}
		newUser.ID = id.String()
	}

	query := `
		INSERT INTO users (id, employee_id, email, password_hash, name, role, job_title, department, joining_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.ID,
		newUser.EmployeeID,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Name,
		newUser.Role,
		newUser.JobTitle,
		newUser.Department,
		newUser.JoiningDate,
	))
	if err != nil {
		switch {
		case database.IsUniqueViolation(err, "users_email_key"):
			return user.User{}, user.ErrEmailExists
		case database.IsUniqueViolation(err, "users_employee_id_key"):
			return user.User{}, user.ErrEmployeeIDExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// ExistsByEmailOrEmployeeID implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmailOrEmployeeID(ctx context.Context, email, employeeID string) (bool, bool, error) {
	q := GetQuerier(ctx, r.db)

	var emailTaken, employeeIDTaken bool
	err := q.QueryRow(ctx, `
		SELECT
			EXISTS(SELECT 1 FROM users WHERE email = $1),
			EXISTS(SELECT 1 FROM users WHERE employee_id = $2)
	`, email, employeeID).Scan(&emailTaken, &employeeIDTaken)
	if err != nil {
		return false, false, fmt.Errorf("failed to check user uniqueness: %w", err)
	}
	return emailTaken, employeeIDTaken, nil
}

// UpdateProfile implements user.UserRepository.
func (r *userRepositoryImpl) UpdateProfile(ctx context.Context, id string, req user.UpdateProfileRequest) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			address = COALESCE($4, address),
			profile_pic = COALESCE($5, profile_pic),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	updated, err := scanUser(q.QueryRow(ctx, query, id, req.Name, req.Phone, req.Address, req.ProfilePic))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return updated, nil
}

// ListByRole implements user.UserRepository.
func (r *userRepositoryImpl) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at DESC, id DESC`, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountByRole implements user.UserRepository.
func (r *userRepositoryImpl) CountByRole(ctx context.Context, role user.Role) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
