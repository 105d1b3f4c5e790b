package attendance

import (
	"context"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens the caller's record for today.
	CheckIn(ctx context.Context, principal user.Principal) (AttendanceResponse, error)

	// CheckOut closes the caller's record for today. Status is left unchanged.
	CheckOut(ctx context.Context, principal user.Principal) (AttendanceResponse, error)

	// Record dispatches a check-in or check-out action.
	Record(ctx context.Context, principal user.Principal, req RecordRequest) (AttendanceResponse, error)

	// GetToday returns today's record or the empty shape.
	GetToday(ctx context.Context, principal user.Principal) (AttendanceResponse, error)

	// GetHistory returns the caller's own records, newest first.
	GetHistory(ctx context.Context, principal user.Principal, filter HistoryFilter) ([]AttendanceResponse, error)

	// ListByDay is admin only.
	ListByDay(ctx context.Context, principal user.Principal, filter DayFilter) (DayAttendanceResponse, error)

	// Roster is admin only.
	Roster(ctx context.Context, principal user.Principal, filter DayFilter) (RosterResponse, error)

	// ExportDay renders the day's roster as an xlsx register. Admin only.
	ExportDay(ctx context.Context, principal user.Principal, filter DayFilter) (ExportFile, error)
}
