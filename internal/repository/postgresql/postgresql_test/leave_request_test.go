package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createLeave(t *testing.T, repo leave.LeaveRequestRepository, userID string, start, end time.Time, status leave.LeaveRequestStatus) leave.LeaveRequest {
	t.Helper()
	created, err := repo.Create(context.Background(), leave.LeaveRequest{
		UserID:    userID,
		LeaveType: "Annual",
		StartDate: start,
		EndDate:   end,
		Status:    status,
	})
	require.NoError(t, err)
	return created
}

func TestLeaveRequestRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewLeaveRequestRepository(db)
	ctx := context.Background()
	u := createTestUser(t, db, "ivan", user.RoleEmployee)

	created := createLeave(t, repo, u.ID, date(2025, 3, 10), date(2025, 3, 12), leave.LeaveRequestStatusPending)
	assert.Equal(t, 3, created.TotalDays())
	assert.True(t, created.StartDate.Equal(date(2025, 3, 10)))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ivan", got.UserName)
	assert.Equal(t, u.EmployeeID, got.EmployeeID)

	_, err = repo.GetByID(ctx, "0190a1b2-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveRequestRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewLeaveRequestRepository(db)
	ctx := context.Background()
	u := createTestUser(t, db, "judy", user.RoleEmployee)
	req := createLeave(t, repo, u.ID, date(2025, 3, 10), date(2025, 3, 12), leave.LeaveRequestStatusPending)

	comment := "Enjoy"
	approved, err := repo.UpdateStatus(ctx, req.ID, leave.LeaveRequestStatusApproved, &comment, true)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, approved.Status)
	require.NotNil(t, approved.AdminComment)
	assert.Equal(t, comment, *approved.AdminComment)

	t.Run("decided request is rejected when pending only", func(t *testing.T) {
		_, err := repo.UpdateStatus(ctx, req.ID, leave.LeaveRequestStatusRejected, nil, true)
		assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
	})

	t.Run("decided request can be overwritten otherwise", func(t *testing.T) {
		rejected, err := repo.UpdateStatus(ctx, req.ID, leave.LeaveRequestStatusRejected, nil, false)
		require.NoError(t, err)
		assert.Equal(t, leave.LeaveRequestStatusRejected, rejected.Status)
		assert.Nil(t, rejected.AdminComment)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.UpdateStatus(ctx, "0190a1b2-0000-7000-8000-000000000000", leave.LeaveRequestStatusApproved, nil, true)
		assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	})
}

func TestLeaveRequestRepository_Queries(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewLeaveRequestRepository(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice", user.RoleEmployee)
	bob := createTestUser(t, db, "bob", user.RoleEmployee)

	createLeave(t, repo, alice.ID, date(2025, 5, 30), date(2025, 6, 3), leave.LeaveRequestStatusApproved)
	createLeave(t, repo, alice.ID, date(2025, 6, 10), date(2025, 6, 10), leave.LeaveRequestStatusApproved)
	createLeave(t, repo, alice.ID, date(2025, 7, 1), date(2025, 7, 2), leave.LeaveRequestStatusPending)
	createLeave(t, repo, bob.ID, date(2025, 6, 10), date(2025, 6, 11), leave.LeaveRequestStatusRejected)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	own, err := repo.List(ctx, &alice.ID)
	require.NoError(t, err)
	assert.Len(t, own, 3)

	approved, err := repo.ListApprovedByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, approved, 2)

	overlapping, err := repo.ListApprovedOverlapping(ctx, alice.ID, date(2025, 6, 1), date(2025, 6, 30))
	require.NoError(t, err)
	assert.Len(t, overlapping, 2)

	pending, err := repo.CountByStatus(ctx, nil, leave.LeaveRequestStatusPending)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	bobPending, err := repo.CountByStatus(ctx, &bob.ID, leave.LeaveRequestStatusPending)
	require.NoError(t, err)
	assert.Zero(t, bobPending)

	onLeave, err := repo.CountOnLeave(ctx, date(2025, 6, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, onLeave, "rejected requests do not count")

	pendingList, err := repo.ListPending(ctx, 5)
	require.NoError(t, err)
	require.Len(t, pendingList, 1)
	assert.Equal(t, "alice", pendingList[0].UserName)

	recent, err := repo.ListRecentlyUpdated(ctx, alice.ID, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}
