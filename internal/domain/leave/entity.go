package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/calendar"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "PENDING"
	LeaveRequestStatusApproved LeaveRequestStatus = "APPROVED"
	LeaveRequestStatusRejected LeaveRequestStatus = "REJECTED"
)

func (s LeaveRequestStatus) IsDecision() bool {
	return s == LeaveRequestStatusApproved || s == LeaveRequestStatusRejected
}

// Well-known leave types. Admins may use any other non-empty type name.
const (
	LeaveTypePaid   = "PAID"
	LeaveTypeSick   = "SICK"
	LeaveTypeUnpaid = "UNPAID"
)

// ReviewPolicy decides whether an already decided request may be reviewed again.
type ReviewPolicy string

const (
	// ReviewPolicyStrict only lets PENDING requests be reviewed.
	ReviewPolicyStrict ReviewPolicy = "strict"
	// ReviewPolicyPermissive overwrites any previous decision.
	ReviewPolicyPermissive ReviewPolicy = "permissive"
)

func (p ReviewPolicy) IsValid() bool {
	return p == ReviewPolicyStrict || p == ReviewPolicyPermissive
}

const DefaultYearlyAllowance = 24

// LeaveRequest is a requested absence span. StartDate and EndDate are calendar
// dates, both inclusive.
type LeaveRequest struct {
	ID           string
	UserID       string
	LeaveType    string
	StartDate    time.Time
	EndDate      time.Time
	Remarks      *string
	Status       LeaveRequestStatus
	AdminComment *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TotalDays is the inclusive day count of the request.
func (l LeaveRequest) TotalDays() int {
	return calendar.InclusiveDays(l.StartDate, l.EndDate)
}

// Covers reports whether day falls inside the request.
func (l LeaveRequest) Covers(day time.Time) bool {
	return calendar.Contains(day, l.StartDate, l.EndDate)
}

// LeaveRequestWithUser joins a request with the minimal identity of its requester.
type LeaveRequestWithUser struct {
	LeaveRequest
	UserName   string
	EmployeeID string
}

// Balance is derived on every read from the full set of APPROVED requests.
type Balance struct {
	UserID    string
	Allowance int
	Used      int
	Remaining int
	Pending   int
}

// ComputeBalance applies allowance - sum(inclusive days of approved).
func ComputeBalance(userID string, allowance int, approved []LeaveRequest, pending int) Balance {
	used := 0
	for _, l := range approved {
		used += l.TotalDays()
	}
	return Balance{
		UserID:    userID,
		Allowance: allowance,
		Used:      used,
		Remaining: allowance - used,
		Pending:   pending,
	}
}
