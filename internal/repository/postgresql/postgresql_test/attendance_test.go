package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-core-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-core-go/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()
	u := createTestUser(t, db, "erin", user.RoleEmployee)

	dayStart := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := calendar.EndOfDay(dayStart, time.UTC)
	checkIn := dayStart.Add(9 * time.Hour)

	rec, err := repo.GetByUserAndDay(ctx, u.ID, dayStart, dayEnd)
	require.NoError(t, err)
	assert.Nil(t, rec)

	created, err := repo.Create(ctx, attendance.Attendance{
		UserID:  u.ID,
		Date:    dayStart,
		CheckIn: &checkIn,
		Status:  attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedIn, created.State())

	_, err = repo.Create(ctx, attendance.Attendance{UserID: u.ID, Date: dayStart, CheckIn: &checkIn, Status: attendance.StatusPresent})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	_, err = repo.SetCheckIn(ctx, created.ID, checkIn.Add(time.Minute))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	out, err := repo.SetCheckOut(ctx, created.ID, checkIn.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedOut, out.State())

	_, err = repo.SetCheckOut(ctx, created.ID, checkIn.Add(9*time.Hour))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	rec, err = repo.GetByUserAndDay(ctx, u.ID, dayStart, dayEnd)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, created.ID, rec.ID)
}

func TestAttendanceRepository_DayQueries(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	present := createTestUser(t, db, "frank", user.RoleEmployee)
	createTestUser(t, db, "grace", user.RoleEmployee)
	createTestUser(t, db, "root", user.RoleAdmin)

	dayStart := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := calendar.EndOfDay(dayStart, time.UTC)
	checkIn := dayStart.Add(8 * time.Hour)
	_, err := repo.Create(ctx, attendance.Attendance{UserID: present.ID, Date: dayStart, CheckIn: &checkIn, Status: attendance.StatusPresent})
	require.NoError(t, err)

	count, err := repo.CountCheckedIn(ctx, dayStart, dayEnd)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	records, err := repo.ListByDay(ctx, dayStart, dayEnd, 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "frank", records[0].UserName)

	roster, err := repo.Roster(ctx, dayStart, dayEnd)
	require.NoError(t, err)
	require.Len(t, roster, 2, "admins are not on the roster")
	assert.Equal(t, "frank", roster[0].UserName)
	assert.NotNil(t, roster[0].Attendance)
	assert.Equal(t, "grace", roster[1].UserName)
	assert.Nil(t, roster[1].Attendance)

	monthStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	days, err := repo.CountPresentDays(ctx, present.ID, monthStart, monthStart.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, days)
}

func TestAttendanceService_ConcurrentCheckIn(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db, "heidi", user.RoleEmployee)
	svc := attendanceService.NewAttendanceService(postgresql.NewAttendanceRepository(db), calendar.New(time.UTC))
	principal := user.Principal{UserID: u.ID, Role: user.RoleEmployee}

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CheckIn(context.Background(), principal)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
}
