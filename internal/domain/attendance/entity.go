package attendance

import "time"

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLeave   Status = "LEAVE"
)

// State is the position of one (user, day) in the check-in/check-out lifecycle.
type State string

const (
	StateNoRecord   State = "NO_RECORD"
	StateCheckedIn  State = "CHECKED_IN"
	StateCheckedOut State = "CHECKED_OUT"
)

// Attendance is one user's presence for one calendar day.
// Date is the local start of that day; (UserID, Date) is unique.
type Attendance struct {
	ID        string
	UserID    string
	Date      time.Time
	CheckIn   *time.Time
	CheckOut  *time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// State derives the lifecycle state. A nil record is NO_RECORD.
func (a *Attendance) State() State {
	switch {
	case a == nil || a.CheckIn == nil:
		return StateNoRecord
	case a.CheckOut == nil:
		return StateCheckedIn
	default:
		return StateCheckedOut
	}
}

// AttendanceWithUser joins a record with the minimal identity fields of its owner.
type AttendanceWithUser struct {
	Attendance
	UserName   string
	EmployeeID string
	JobTitle   *string
	Department *string
}

// RosterEntry is one employee for one day, with their record if they have one.
type RosterEntry struct {
	UserID     string
	UserName   string
	EmployeeID string
	JobTitle   *string
	Department *string
	Attendance *Attendance
}

// EffectiveStatus reports ABSENT for an employee with no record that day.
// ABSENT is never persisted.
func (e RosterEntry) EffectiveStatus() Status {
	if e.Attendance == nil {
		return StatusAbsent
	}
	return e.Attendance.Status
}

// In returns a copy with every timestamp expressed in loc.
func (a Attendance) In(loc *time.Location) Attendance {
	a.Date = a.Date.In(loc)
	if a.CheckIn != nil {
		t := a.CheckIn.In(loc)
		a.CheckIn = &t
	}
	if a.CheckOut != nil {
		t := a.CheckOut.In(loc)
		a.CheckOut = &t
	}
	return a
}
