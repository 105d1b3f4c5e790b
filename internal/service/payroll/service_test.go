package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	e1ID      = "0190f3a1-0000-7000-8000-0000000000e1"
	e2ID      = "0190f3a1-0000-7000-8000-0000000000e2"
	a1ID      = "0190f3a1-0000-7000-8000-0000000000a1"
	unknownID = "0190f3a1-0000-7000-8000-00000000dead"
)

var (
	employeeE1 = user.Principal{UserID: e1ID, Role: user.RoleEmployee}
	adminA1    = user.Principal{UserID: a1ID, Role: user.RoleAdmin}
)

type fakePayrollRepo struct {
	records map[string]payroll.PayrollRecord
	seq     int
}

func periodKey(userID string, month, year int) string {
	return userID + "/" + time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (f *fakePayrollRepo) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	key := periodKey(record.UserID, record.Month, record.Year)
	if existing, ok := f.records[key]; ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		f.seq++
		record.ID = fmt.Sprintf("pay-%d", f.seq)
		record.CreatedAt = time.Now()
	}
	record.UpdatedAt = time.Now()
	f.records[key] = record
	return record, nil
}

func (f *fakePayrollRepo) List(ctx context.Context, userID *string) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for _, r := range f.records {
		if userID == nil || r.UserID == *userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubUserRepo struct {
	user.UserRepository
	ids map[string]bool
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if !s.ids[id] {
		return user.User{}, user.ErrUserNotFound
	}
	return user.User{ID: id}, nil
}

type stubAttendanceRepo struct {
	attendance.AttendanceRepository
	present  int
	from, to time.Time
}

func (s *stubAttendanceRepo) CountPresentDays(ctx context.Context, userID string, from, to time.Time) (int, error) {
	s.from, s.to = from, to
	return s.present, nil
}

type stubLeaveRepo struct {
	leave.LeaveRequestRepository
	approved []leave.LeaveRequest
}

func (s *stubLeaveRepo) ListApprovedOverlapping(ctx context.Context, userID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range s.approved {
		if r.UserID == userID && calendar.Overlaps(r.StartDate, r.EndDate, from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	payroll    *fakePayrollRepo
	attendance *stubAttendanceRepo
	leave      *stubLeaveRepo
	svc        payroll.PayrollService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		payroll:    &fakePayrollRepo{records: map[string]payroll.PayrollRecord{}},
		attendance: &stubAttendanceRepo{},
		leave:      &stubLeaveRepo{},
	}
	users := &stubUserRepo{ids: map[string]bool{e1ID: true, e2ID: true}}
	f.svc = NewPayrollService(f.payroll, users, f.attendance, f.leave, calendar.New(time.UTC))
	return f
}

func TestPayrollService_Upsert(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.attendance.present = 18
	f.leave.approved = []leave.LeaveRequest{
		// Straddles the month start: only 3 days fall in March.
		{UserID: e1ID, StartDate: day(2025, 2, 27), EndDate: day(2025, 3, 3), Status: leave.LeaveRequestStatusApproved},
		{UserID: e1ID, StartDate: day(2025, 3, 10), EndDate: day(2025, 3, 11), Status: leave.LeaveRequestStatusApproved},
		{UserID: e1ID, StartDate: day(2025, 4, 1), EndDate: day(2025, 4, 2), Status: leave.LeaveRequestStatusApproved},
		{UserID: e2ID, StartDate: day(2025, 3, 5), EndDate: day(2025, 3, 5), Status: leave.LeaveRequestStatusApproved},
	}

	resp, err := f.svc.Upsert(ctx, adminA1, payroll.UpsertPayrollRequest{
		UserID:     e1ID,
		Month:      3,
		Year:       2025,
		BaseSalary: decimal.RequireFromString("5000000.00"),
		Deductions: decimal.RequireFromString("250000.50"),
	})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("4749999.50").Equal(resp.NetSalary), "net salary %s", resp.NetSalary)
	assert.Equal(t, payroll.PayrollStatusPaid, resp.Status)
	assert.Equal(t, 18, resp.PresentDays)
	assert.Equal(t, 5, resp.LeaveDays)
	assert.Equal(t, day(2025, 3, 1), f.attendance.from)
	assert.Equal(t, day(2025, 4, 1), f.attendance.to)
}

func TestPayrollService_Upsert_OverwritesPeriod(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	req := payroll.UpsertPayrollRequest{UserID: e1ID, Month: 6, Year: 2025, BaseSalary: decimal.NewFromInt(1000), Deductions: decimal.NewFromInt(100)}

	first, err := f.svc.Upsert(ctx, adminA1, req)
	require.NoError(t, err)

	req.Deductions = decimal.NewFromInt(300)
	second, err := f.svc.Upsert(ctx, adminA1, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.payroll.records, 1)
	assert.True(t, decimal.NewFromInt(700).Equal(second.NetSalary))
}

func TestPayrollService_Upsert_Errors(t *testing.T) {
	ctx := context.Background()
	valid := payroll.UpsertPayrollRequest{UserID: e1ID, Month: 1, Year: 2025, BaseSalary: decimal.NewFromInt(10)}

	t.Run("employee forbidden", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Upsert(ctx, employeeE1, valid)
		assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
		assert.Empty(t, f.payroll.records)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)
		req := valid
		req.UserID = unknownID
		_, err := f.svc.Upsert(ctx, adminA1, req)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("invalid period and amounts", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Upsert(ctx, adminA1, payroll.UpsertPayrollRequest{
			UserID:     e1ID,
			Month:      13,
			Year:       1999,
			BaseSalary: decimal.NewFromInt(-1),
		})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		fields := verrs.ToMap()
		assert.Contains(t, fields, "month")
		assert.Contains(t, fields, "year")
		assert.Contains(t, fields, "base_salary")
	})

	t.Run("malformed user id", func(t *testing.T) {
		f := newFixture(t)
		req := valid
		req.UserID = "abc"
		_, err := f.svc.Upsert(ctx, adminA1, req)
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "user_id must be a valid UUID", verrs.ToMap()["user_id"])
		assert.Empty(t, f.payroll.records)
	})
}

func TestPayrollService_List_Scoping(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, id := range []string{e1ID, e2ID} {
		_, err := f.svc.Upsert(ctx, adminA1, payroll.UpsertPayrollRequest{UserID: id, Month: 5, Year: 2025, BaseSalary: decimal.NewFromInt(100)})
		require.NoError(t, err)
	}

	own, err := f.svc.List(ctx, employeeE1)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, e1ID, own[0].UserID)

	all, err := f.svc.List(ctx, adminA1)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.List(ctx, user.Principal{})
	assert.ErrorIs(t, err, user.ErrUnauthenticated)
}
