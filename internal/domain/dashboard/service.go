package dashboard

import (
	"context"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
)

// DashboardService builds read-only snapshots. EnsureCheckedIn is the one
// write, kept separate so callers sequence it explicitly before a snapshot.
type DashboardService interface {
	AdminSnapshot(ctx context.Context, principal user.Principal) (AdminSnapshot, error)
	EmployeeSnapshot(ctx context.Context, principal user.Principal) (EmployeeSnapshot, error)

	// EnsureCheckedIn checks the caller in unless they already are.
	EnsureCheckedIn(ctx context.Context, principal user.Principal) (attendance.AttendanceResponse, error)
}
