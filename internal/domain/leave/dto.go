package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type SubmitLeaveRequest struct {
	LeaveType string  `json:"type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Remarks   *string `json:"remarks,omitempty"`

	startDate time.Time
	endDate   time.Time
}

// Validate checks required fields and that start_date <= end_date.
func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	r.LeaveType = strings.ToUpper(strings.TrimSpace(r.LeaveType))
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type is required"})
	} else if validator.ExceedsLength(r.LeaveType, 50) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must not exceed 50 characters"})
	}

	var startOK, endOK bool
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date is required"})
	} else if r.startDate, startOK = validator.IsValidDate(r.StartDate); !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date is required"})
	} else if r.endDate, endOK = validator.IsValidDate(r.EndDate); !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}

	if startOK && endOK && r.startDate.After(r.endDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: ErrInvalidDateRange.Error()})
	}

	if r.Remarks != nil && validator.ExceedsLength(*r.Remarks, 1000) {
		errs = append(errs, validator.ValidationError{Field: "remarks", Message: "remarks must not exceed 1000 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Dates returns the parsed range. Only meaningful after Validate succeeded.
func (r *SubmitLeaveRequest) Dates() (time.Time, time.Time) {
	return r.startDate, r.endDate
}

type ReviewLeaveRequest struct {
	Status       string  `json:"status"`
	AdminComment *string `json:"admin_comment,omitempty"`
}

func (r *ReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status is required"})
	} else if !LeaveRequestStatus(r.Status).IsDecision() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of APPROVED, REJECTED"})
	}

	if r.AdminComment != nil && validator.ExceedsLength(*r.AdminComment, 1000) {
		errs = append(errs, validator.ValidationError{Field: "admin_comment", Message: "admin_comment must not exceed 1000 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	UserName     string             `json:"user_name,omitempty"`
	EmployeeID   string             `json:"employee_id,omitempty"`
	LeaveType    string             `json:"type"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	TotalDays    int                `json:"total_days"`
	Remarks      *string            `json:"remarks"`
	Status       LeaveRequestStatus `json:"status"`
	AdminComment *string            `json:"admin_comment"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
}

type BalanceResponse struct {
	UserID    string `json:"user_id"`
	Allowance int    `json:"allowance"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
	Pending   int    `json:"pending_requests"`
}

func ToResponse(l LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		LeaveType:    l.LeaveType,
		StartDate:    l.StartDate.Format(dateLayout),
		EndDate:      l.EndDate.Format(dateLayout),
		TotalDays:    l.TotalDays(),
		Remarks:      l.Remarks,
		Status:       l.Status,
		AdminComment: l.AdminComment,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    l.UpdatedAt.Format(time.RFC3339),
	}
}

func ToWithUserResponse(l LeaveRequestWithUser) LeaveRequestResponse {
	resp := ToResponse(l.LeaveRequest)
	resp.UserName = l.UserName
	resp.EmployeeID = l.EmployeeID
	return resp
}

func ToBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		UserID:    b.UserID,
		Allowance: b.Allowance,
		Used:      b.Used,
		Remaining: b.Remaining,
		Pending:   b.Pending,
	}
}
