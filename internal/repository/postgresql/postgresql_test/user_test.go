package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	dept := "Engineering"
	created, err := repo.Create(ctx, user.User{
		EmployeeID:   "EMP-001",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		Name:         "Alice",
		Role:         user.RoleEmployee,
		Department:   &dept,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.Name)
	require.NotNil(t, byID.Department)
	assert.Equal(t, dept, *byID.Department)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	base := user.User{EmployeeID: "EMP-001", Email: "alice@example.com", PasswordHash: "x", Name: "Alice", Role: user.RoleEmployee}
	_, err := repo.Create(ctx, base)
	require.NoError(t, err)

	dupEmail := base
	dupEmail.EmployeeID = "EMP-002"
	_, err = repo.Create(ctx, dupEmail)
	assert.ErrorIs(t, err, user.ErrEmailExists)

	dupEmployeeID := base
	dupEmployeeID.Email = "other@example.com"
	_, err = repo.Create(ctx, dupEmployeeID)
	assert.ErrorIs(t, err, user.ErrEmployeeIDExists)

	emailTaken, employeeIDTaken, err := repo.ExistsByEmailOrEmployeeID(ctx, "alice@example.com", "EMP-999")
	require.NoError(t, err)
	assert.True(t, emailTaken)
	assert.False(t, employeeIDTaken)
}

func TestUserRepository_RoleQueries(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "bob", user.RoleEmployee)
	createTestUser(t, db, "carol", user.RoleEmployee)
	createTestUser(t, db, "admin", user.RoleAdmin)

	count, err := repo.CountByRole(ctx, user.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	employees, err := repo.ListByRole(ctx, user.RoleEmployee)
	require.NoError(t, err)
	assert.Len(t, employees, 2)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	u := createTestUser(t, db, "dave", user.RoleEmployee)
	phone := "+62 812 0000"
	updated, err := repo.UpdateProfile(ctx, u.ID, user.UpdateProfileRequest{Phone: &phone})
	require.NoError(t, err)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
	assert.Equal(t, u.Name, updated.Name)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := postgresql.WithTransaction(ctx, db, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, user.User{EmployeeID: "EMP-TX", Email: "tx@example.com", PasswordHash: "x", Name: "Tx", Role: user.RoleEmployee}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetByEmail(ctx, "tx@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
