package dashboard

import (
	"math"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
)

const (
	RecentAttendanceLimit = 5
	PendingReviewsLimit   = 5
	RecentUpdatesLimit    = 3
)

// AdminSnapshot is the admin dashboard for the current day.
type AdminSnapshot struct {
	Date             string                                  `json:"date"`
	TotalEmployees   int                                     `json:"total_employees"`
	PendingApprovals int                                     `json:"pending_approvals"`
	OnLeaveToday     int                                     `json:"on_leave_today"`
	CheckedInToday   int                                     `json:"checked_in_today"`
	AttendanceRate   int                                     `json:"attendance_rate"`
	RecentAttendance []attendance.AttendanceWithUserResponse `json:"recent_attendance"`
	PendingReviews   []leave.LeaveRequestResponse            `json:"pending_reviews"`
}

// EmployeeSnapshot is the caller's own dashboard. Attendance is nil when
// there is no record today.
type EmployeeSnapshot struct {
	Date            string                         `json:"date"`
	Attendance      *attendance.AttendanceResponse `json:"attendance"`
	LeaveBalance    leave.BalanceResponse          `json:"leave_balance"`
	PendingRequests int                            `json:"pending_requests"`
	RecentUpdates   []leave.LeaveRequestResponse   `json:"recent_updates"`
}

// AttendanceRate is checkedIn/total as a rounded whole percentage, 0 when total is 0.
func AttendanceRate(checkedIn, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(checkedIn) / float64(total) * 100))
}
