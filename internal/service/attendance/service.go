package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/export"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/metrics"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	calendar *calendar.Calendar
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, cal *calendar.Calendar) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		calendar:             cal,
	}
}

func (s *AttendanceServiceImpl) respond(a attendance.Attendance) attendance.AttendanceResponse {
	local := a.In(s.calendar.Location())
	return attendance.ToResponse(&local)
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, principal user.Principal) (attendance.AttendanceResponse, error) {
	if err := principal.Authorize(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.calendar.Now()
	dayStart, dayEnd := s.calendar.DayBounds(now)

	existing, err := s.AttendanceRepository.GetByUserAndDay(ctx, principal.UserID, dayStart, dayEnd)
	if err != nil {
		recordEvent(attendance.ActionCheckIn, err)
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	var saved attendance.Attendance
	switch {
	case existing == nil:
		saved, err = s.AttendanceRepository.Create(ctx, attendance.Attendance{
			UserID:  principal.UserID,
			Date:    dayStart,
			CheckIn: &now,
			Status:  attendance.StatusPresent,
		})
	case existing.CheckIn != nil:
		err = attendance.ErrAlreadyCheckedIn
	default:
		// A record without check-in, e.g. one seeded for a leave day.
		saved, err = s.AttendanceRepository.SetCheckIn(ctx, existing.ID, now)
	}
	recordEvent(attendance.ActionCheckIn, err)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			slog.Info("check-in rejected, already checked in", "user_id", principal.UserID, "date", dayStart.Format(calendar.DayLayout))
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check in: %w", err)
	}

	slog.Info("checked in", "user_id", principal.UserID, "attendance_id", saved.ID, "at", now)
	return s.respond(saved), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, principal user.Principal) (attendance.AttendanceResponse, error) {
	if err := principal.Authorize(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.calendar.Now()
	dayStart, dayEnd := s.calendar.DayBounds(now)

	existing, err := s.AttendanceRepository.GetByUserAndDay(ctx, principal.UserID, dayStart, dayEnd)
	if err != nil {
		recordEvent(attendance.ActionCheckOut, err)
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	var saved attendance.Attendance
	switch existing.State() {
	case attendance.StateNoRecord:
		err = attendance.ErrNotCheckedIn
	case attendance.StateCheckedOut:
		err = attendance.ErrAlreadyCheckedOut
	default:
		saved, err = s.AttendanceRepository.SetCheckOut(ctx, existing.ID, now)
	}
	recordEvent(attendance.ActionCheckOut, err)
	if err != nil {
		if isStateConflict(err) {
			slog.Info("check-out rejected", "user_id", principal.UserID, "reason", err.Error())
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	slog.Info("checked out", "user_id", principal.UserID, "attendance_id", saved.ID, "at", now)
	return s.respond(saved), nil
}

// Record implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Record(ctx context.Context, principal user.Principal, req attendance.RecordRequest) (attendance.AttendanceResponse, error) {
	if err := principal.Authorize(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	switch req.Action {
	case attendance.ActionCheckIn:
		return s.CheckIn(ctx, principal)
	case attendance.ActionCheckOut:
		return s.CheckOut(ctx, principal)
	default:
		return attendance.AttendanceResponse{}, attendance.ErrInvalidAction
	}
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, principal user.Principal) (attendance.AttendanceResponse, error) {
	if err := principal.Authorize(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	dayStart, dayEnd := s.calendar.DayBounds(s.calendar.Now())
	existing, err := s.AttendanceRepository.GetByUserAndDay(ctx, principal.UserID, dayStart, dayEnd)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing == nil {
		return attendance.ToResponse(nil), nil
	}
	return s.respond(*existing), nil
}

// GetHistory implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetHistory(ctx context.Context, principal user.Principal, filter attendance.HistoryFilter) ([]attendance.AttendanceResponse, error) {
	if err := principal.Authorize(); err != nil {
		return nil, err
	}
	filter.Normalize()

	records, err := s.AttendanceRepository.ListByUser(ctx, principal.UserID, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance history: %w", err)
	}

	resp := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, s.respond(rec))
	}
	return resp, nil
}

// ListByDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByDay(ctx context.Context, principal user.Principal, filter attendance.DayFilter) (attendance.DayAttendanceResponse, error) {
	if err := principal.AuthorizeAdmin(); err != nil {
		return attendance.DayAttendanceResponse{}, err
	}
	day, err := s.parseDay(filter)
	if err != nil {
		return attendance.DayAttendanceResponse{}, err
	}

	dayStart, dayEnd := s.calendar.DayBounds(day)
	records, err := s.AttendanceRepository.ListByDay(ctx, dayStart, dayEnd, 0)
	if err != nil {
		return attendance.DayAttendanceResponse{}, fmt.Errorf("failed to list attendance by day: %w", err)
	}

	resp := attendance.DayAttendanceResponse{
		Date:    dayStart.Format(calendar.DayLayout),
		Records: make([]attendance.AttendanceWithUserResponse, 0, len(records)),
	}
	for _, rec := range records {
		rec.Attendance = rec.Attendance.In(s.calendar.Location())
		resp.Records = append(resp.Records, attendance.ToWithUserResponse(rec))
	}
	return resp, nil
}

// Roster implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Roster(ctx context.Context, principal user.Principal, filter attendance.DayFilter) (attendance.RosterResponse, error) {
	if err := principal.AuthorizeAdmin(); err != nil {
		return attendance.RosterResponse{}, err
	}
	day, err := s.parseDay(filter)
	if err != nil {
		return attendance.RosterResponse{}, err
	}

	dayStart, dayEnd := s.calendar.DayBounds(day)
	entries, err := s.AttendanceRepository.Roster(ctx, dayStart, dayEnd)
	if err != nil {
		return attendance.RosterResponse{}, fmt.Errorf("failed to get attendance roster: %w", err)
	}

	resp := attendance.RosterResponse{
		Date:    dayStart.Format(calendar.DayLayout),
		Entries: make([]attendance.RosterEntryResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		if entry.Attendance != nil {
			local := entry.Attendance.In(s.calendar.Location())
			entry.Attendance = &local
		}
		switch entry.EffectiveStatus() {
		case attendance.StatusLeave:
			resp.OnLeave++
		case attendance.StatusAbsent:
			resp.Absent++
		default:
			resp.Present++
		}
		resp.Entries = append(resp.Entries, attendance.ToRosterEntryResponse(entry))
	}
	return resp, nil
}

// ExportDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportDay(ctx context.Context, principal user.Principal, filter attendance.DayFilter) (attendance.ExportFile, error) {
	roster, err := s.Roster(ctx, principal, filter)
	if err != nil {
		return attendance.ExportFile{}, err
	}

	rows := make([]export.RegisterRow, 0, len(roster.Entries))
	for _, e := range roster.Entries {
		rows = append(rows, export.RegisterRow{
			EmployeeID: e.EmployeeID,
			Name:       e.UserName,
			JobTitle:   deref(e.JobTitle),
			Department: deref(e.Department),
			CheckIn:    deref(e.CheckIn),
			CheckOut:   deref(e.CheckOut),
			Status:     string(e.Status),
		})
	}

	content, err := export.AttendanceRegister(roster.Date, rows)
	if err != nil {
		return attendance.ExportFile{}, fmt.Errorf("failed to export attendance register: %w", err)
	}

	slog.Info("attendance register exported", "user_id", principal.UserID, "date", roster.Date, "rows", len(rows))
	return attendance.ExportFile{
		Filename:    fmt.Sprintf("attendance-%s.xlsx", roster.Date),
		ContentType: export.XLSXContentType,
		Content:     content,
	}, nil
}

func (s *AttendanceServiceImpl) parseDay(filter attendance.DayFilter) (time.Time, error) {
	if err := filter.Validate(); err != nil {
		return time.Time{}, err
	}
	return s.calendar.ParseDay(filter.Date)
}

func isStateConflict(err error) bool {
	return errors.Is(err, attendance.ErrAlreadyCheckedIn) ||
		errors.Is(err, attendance.ErrAlreadyCheckedOut) ||
		errors.Is(err, attendance.ErrNotCheckedIn)
}

func recordEvent(action string, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case isStateConflict(err):
		outcome = metrics.OutcomeConflict
	default:
		outcome = metrics.OutcomeError
	}
	metrics.AttendanceEvents.WithLabelValues(action, outcome).Inc()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
