package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/calendar"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	userRepo          user.UserRepository
	attendanceRepo    attendance.AttendanceRepository
	leaveRepo         leave.LeaveRequestRepository
	attendanceService attendance.AttendanceService
	leaveService      leave.LeaveService
	calendar          *calendar.Calendar
}

func NewDashboardService(
	userRepo user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	attendanceService attendance.AttendanceService,
	leaveService leave.LeaveService,
	cal *calendar.Calendar,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		userRepo:          userRepo,
		attendanceRepo:    attendanceRepo,
		leaveRepo:         leaveRepo,
		attendanceService: attendanceService,
		leaveService:      leaveService,
		calendar:          cal,
	}
}

// AdminSnapshot returns company-wide figures for today. Each figure is one
// query; all of them run in parallel.
func (s *DashboardServiceImpl) AdminSnapshot(ctx context.Context, principal user.Principal) (dashboard.AdminSnapshot, error) {
	if err := principal.AuthorizeAdmin(); err != nil {
		return dashboard.AdminSnapshot{}, err
	}

	now := s.calendar.Now()
	dayStart, dayEnd := s.calendar.DayBounds(now)

	var (
		totalEmployees   int
		pendingApprovals int
		onLeaveToday     int
		checkedInToday   int
		recentAttendance []attendance.AttendanceWithUser
		pendingReviews   []leave.LeaveRequestWithUser
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.userRepo.CountByRole(gCtx, user.RoleEmployee)
		if err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}
		totalEmployees = n
		return nil
	})

	g.Go(func() error {
		n, err := s.leaveRepo.CountByStatus(gCtx, nil, leave.LeaveRequestStatusPending)
		if err != nil {
			return fmt.Errorf("failed to count pending leave: %w", err)
		}
		pendingApprovals = n
		return nil
	})

	g.Go(func() error {
		n, err := s.leaveRepo.CountOnLeave(gCtx, dayStart)
		if err != nil {
			return fmt.Errorf("failed to count employees on leave: %w", err)
		}
		onLeaveToday = n
		return nil
	})

	g.Go(func() error {
		n, err := s.attendanceRepo.CountCheckedIn(gCtx, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("failed to count check-ins: %w", err)
		}
		checkedInToday = n
		return nil
	})

	g.Go(func() error {
		records, err := s.attendanceRepo.ListByDay(gCtx, dayStart, dayEnd, dashboard.RecentAttendanceLimit)
		if err != nil {
			return fmt.Errorf("failed to list recent attendance: %w", err)
		}
		recentAttendance = records
		return nil
	})

	g.Go(func() error {
		requests, err := s.leaveRepo.ListPending(gCtx, dashboard.PendingReviewsLimit)
		if err != nil {
			return fmt.Errorf("failed to list pending leave: %w", err)
		}
		pendingReviews = requests
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.AdminSnapshot{}, err
	}

	snapshot := dashboard.AdminSnapshot{
		Date:             dayStart.Format(calendar.DayLayout),
		TotalEmployees:   totalEmployees,
		PendingApprovals: pendingApprovals,
		OnLeaveToday:     onLeaveToday,
		CheckedInToday:   checkedInToday,
		AttendanceRate:   dashboard.AttendanceRate(checkedInToday, totalEmployees),
		RecentAttendance: make([]attendance.AttendanceWithUserResponse, 0, len(recentAttendance)),
		PendingReviews:   make([]leave.LeaveRequestResponse, 0, len(pendingReviews)),
	}
	for _, rec := range recentAttendance {
		rec.Attendance = rec.Attendance.In(s.calendar.Location())
		snapshot.RecentAttendance = append(snapshot.RecentAttendance, attendance.ToWithUserResponse(rec))
	}
	for _, req := range pendingReviews {
		snapshot.PendingReviews = append(snapshot.PendingReviews, leave.ToWithUserResponse(req))
	}
	return snapshot, nil
}

// EmployeeSnapshot returns the caller's own figures. It never writes.
func (s *DashboardServiceImpl) EmployeeSnapshot(ctx context.Context, principal user.Principal) (dashboard.EmployeeSnapshot, error) {
	if err := principal.Authorize(); err != nil {
		return dashboard.EmployeeSnapshot{}, err
	}

	dayStart, dayEnd := s.calendar.DayBounds(s.calendar.Now())
	userID := principal.UserID

	var (
		today         *attendance.Attendance
		balance       leave.BalanceResponse
		recentUpdates []leave.LeaveRequest
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rec, err := s.attendanceRepo.GetByUserAndDay(gCtx, userID, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		today = rec
		return nil
	})

	g.Go(func() error {
		b, err := s.leaveService.ComputeBalance(gCtx, principal, userID)
		if err != nil {
			return err
		}
		balance = b
		return nil
	})

	g.Go(func() error {
		requests, err := s.leaveRepo.ListRecentlyUpdated(gCtx, userID, dashboard.RecentUpdatesLimit)
		if err != nil {
			return fmt.Errorf("failed to list recent leave updates: %w", err)
		}
		recentUpdates = requests
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.EmployeeSnapshot{}, err
	}

	snapshot := dashboard.EmployeeSnapshot{
		Date:            dayStart.Format(calendar.DayLayout),
		LeaveBalance:    balance,
		PendingRequests: balance.Pending,
		RecentUpdates:   make([]leave.LeaveRequestResponse, 0, len(recentUpdates)),
	}
	if today != nil {
		local := today.In(s.calendar.Location())
		resp := attendance.ToResponse(&local)
		snapshot.Attendance = &resp
	}
	for _, req := range recentUpdates {
		snapshot.RecentUpdates = append(snapshot.RecentUpdates, leave.ToResponse(req))
	}
	return snapshot, nil
}

// EnsureCheckedIn checks the caller in. An existing check-in is not an error;
// today's record is returned as is.
func (s *DashboardServiceImpl) EnsureCheckedIn(ctx context.Context, principal user.Principal) (attendance.AttendanceResponse, error) {
	resp, err := s.attendanceService.CheckIn(ctx, principal)
	if err == nil {
		return resp, nil
	}
	if !errors.Is(err, attendance.ErrAlreadyCheckedIn) {
		return attendance.AttendanceResponse{}, err
	}

	slog.Debug("dashboard check-in skipped, already checked in", "user_id", principal.UserID)
	return s.attendanceService.GetToday(ctx, principal)
}
