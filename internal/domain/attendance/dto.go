package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

const (
	ActionCheckIn  = "check-in"
	ActionCheckOut = "check-out"

	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

type RecordRequest struct {
	Action string `json:"action"`
}

func (r *RecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Action) {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "action is required"})
	} else if !validator.IsInSlice(r.Action, []string{ActionCheckIn, ActionCheckOut}) {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "action must be one of check-in, check-out"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HistoryFilter struct {
	Limit int
}

// Normalize applies the default limit and caps it.
func (f *HistoryFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultHistoryLimit
	}
	if f.Limit > MaxHistoryLimit {
		f.Limit = MaxHistoryLimit
	}
}

// DayFilter selects a calendar day as YYYY-MM-DD. Empty means today.
type DayFilter struct {
	Date string
}

func (f *DayFilter) Validate() error {
	if f.Date == "" {
		return nil
	}
	if _, ok := validator.IsValidDate(f.Date); !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return nil
}

// AttendanceResponse is the record as seen by callers. The zero value, with
// check_in and check_out null, is the "not checked in yet" shape.
type AttendanceResponse struct {
	ID       string  `json:"id,omitempty"`
	UserID   string  `json:"user_id,omitempty"`
	Date     string  `json:"date,omitempty"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Status   Status  `json:"status,omitempty"`
	State    State   `json:"state"`
}

type AttendanceWithUserResponse struct {
	AttendanceResponse
	UserName   string  `json:"user_name"`
	EmployeeID string  `json:"employee_id"`
	JobTitle   *string `json:"job_title"`
	Department *string `json:"department"`
}

type DayAttendanceResponse struct {
	Date    string                       `json:"date"`
	Records []AttendanceWithUserResponse `json:"records"`
}

type RosterEntryResponse struct {
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	EmployeeID string  `json:"employee_id"`
	JobTitle   *string `json:"job_title"`
	Department *string `json:"department"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	Status     Status  `json:"status"`
}

type RosterResponse struct {
	Date    string                `json:"date"`
	Present int                   `json:"present"`
	Absent  int                   `json:"absent"`
	OnLeave int                   `json:"on_leave"`
	Entries []RosterEntryResponse `json:"entries"`
}

type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// ToResponse renders a record. A nil record yields the empty shape.
func ToResponse(a *Attendance) AttendanceResponse {
	if a == nil {
		return AttendanceResponse{State: StateNoRecord}
	}
	return AttendanceResponse{
		ID:       a.ID,
		UserID:   a.UserID,
		Date:     a.Date.Format("2006-01-02"),
		CheckIn:  formatTime(a.CheckIn),
		CheckOut: formatTime(a.CheckOut),
		Status:   a.Status,
		State:    a.State(),
	}
}

func ToWithUserResponse(a AttendanceWithUser) AttendanceWithUserResponse {
	return AttendanceWithUserResponse{
		AttendanceResponse: ToResponse(&a.Attendance),
		UserName:           a.UserName,
		EmployeeID:         a.EmployeeID,
		JobTitle:           a.JobTitle,
		Department:         a.Department,
	}
}

func ToRosterEntryResponse(e RosterEntry) RosterEntryResponse {
	resp := RosterEntryResponse{
		UserID:     e.UserID,
		UserName:   e.UserName,
		EmployeeID: e.EmployeeID,
		JobTitle:   e.JobTitle,
		Department: e.Department,
		Status:     e.EffectiveStatus(),
	}
	if e.Attendance != nil {
		resp.CheckIn = formatTime(e.Attendance.CheckIn)
		resp.CheckOut = formatTime(e.Attendance.CheckOut)
	}
	return resp
}
