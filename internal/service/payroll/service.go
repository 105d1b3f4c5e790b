package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/calendar"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	calendar       *calendar.Calendar
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	userRepo user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	cal *calendar.Calendar,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		calendar:       cal,
	}
}

// Upsert implements payroll.PayrollService.
func (s *PayrollServiceImpl) Upsert(ctx context.Context, principal user.Principal, req payroll.UpsertPayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := principal.AuthorizeAdmin(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return payroll.PayrollRecordResponse{}, err
		}
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	presentDays, leaveDays, err := s.periodSummary(ctx, req.UserID, req.Year, time.Month(req.Month))
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	saved, err := s.payrollRepo.Upsert(ctx, payroll.PayrollRecord{
		UserID:      req.UserID,
		Month:       req.Month,
		Year:        req.Year,
		BaseSalary:  req.BaseSalary,
		Deductions:  req.Deductions,
		NetSalary:   payroll.NetSalary(req.BaseSalary, req.Deductions),
		Status:      payroll.PayrollStatusPaid,
		PresentDays: presentDays,
		LeaveDays:   leaveDays,
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to upsert payroll: %w", err)
	}

	slog.Info("payroll upserted",
		"payroll_id", saved.ID,
		"user_id", saved.UserID,
		"period", fmt.Sprintf("%04d-%02d", saved.Year, saved.Month),
		"net_salary", saved.NetSalary.StringFixed(2),
	)
	return payroll.ToResponse(saved), nil
}

// periodSummary counts days with a check-in and APPROVED leave days inside the month.
func (s *PayrollServiceImpl) periodSummary(ctx context.Context, userID string, year int, month time.Month) (int, int, error) {
	var presentDays, leaveDays int

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		from, to := s.calendar.MonthBounds(year, month)
		n, err := s.attendanceRepo.CountPresentDays(gCtx, userID, from, to)
		if err != nil {
			return fmt.Errorf("failed to count present days: %w", err)
		}
		presentDays = n
		return nil
	})

	g.Go(func() error {
		// Leave ranges are plain dates, so the month is too.
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		requests, err := s.leaveRepo.ListApprovedOverlapping(gCtx, userID, first, last)
		if err != nil {
			return fmt.Errorf("failed to list approved leave: %w", err)
		}
		for _, r := range requests {
			if start, end, ok := calendar.Clip(r.StartDate, r.EndDate, first, last); ok {
				leaveDays += calendar.InclusiveDays(start, end)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	return presentDays, leaveDays, nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, principal user.Principal) ([]payroll.PayrollRecordResponse, error) {
	if err := principal.Authorize(); err != nil {
		return nil, err
	}

	var owner *string
	if !principal.IsAdmin() {
		owner = &principal.UserID
	}

	records, err := s.payrollRepo.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll: %w", err)
	}

	resp := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, payroll.ToResponse(r))
	}
	return resp, nil
}
