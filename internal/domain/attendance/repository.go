package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// GetByUserAndDay returns the user's record inside [dayStart, dayEnd], or nil when there is none.
	GetByUserAndDay(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*Attendance, error)

	// Create inserts a new record. A duplicate (user, date) returns ErrAlreadyCheckedIn.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// SetCheckIn fills check_in on a record that has none; otherwise ErrAlreadyCheckedIn.
	SetCheckIn(ctx context.Context, id string, at time.Time) (Attendance, error)

	// SetCheckOut fills check_out on a record that has none; otherwise ErrAlreadyCheckedOut.
	SetCheckOut(ctx context.Context, id string, at time.Time) (Attendance, error)

	// ListByUser returns the user's most recent records, newest date first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Attendance, error)

	// ListByDay returns every record of the day ordered by check-in descending. limit <= 0 means all.
	ListByDay(ctx context.Context, dayStart, dayEnd time.Time, limit int) ([]AttendanceWithUser, error)

	// Roster returns every employee joined with their record for the day, if any.
	Roster(ctx context.Context, dayStart, dayEnd time.Time) ([]RosterEntry, error)

	CountCheckedIn(ctx context.Context, dayStart, dayEnd time.Time) (int, error)

	// CountPresentDays counts the user's days with a check-in in [from, to).
	CountPresentDays(ctx context.Context, userID string, from, to time.Time) (int, error)
}
