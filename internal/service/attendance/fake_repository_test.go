package attendance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
)

type fakeUser struct {
	ID         string
	Name       string
	EmployeeID string
	Employee   bool
}

// fakeAttendanceRepository enforces the (user, date) uniqueness the real table does.
type fakeAttendanceRepository struct {
	mu      sync.Mutex
	seq     int
	records map[string]*attendance.Attendance
	users   []fakeUser
	writes  int
}

func newFakeAttendanceRepository(users ...fakeUser) *fakeAttendanceRepository {
	return &fakeAttendanceRepository{records: map[string]*attendance.Attendance{}, users: users}
}

func (f *fakeAttendanceRepository) userName(id string) (string, string) {
	for _, u := range f.users {
		if u.ID == id {
			return u.Name, u.EmployeeID
		}
	}
	return "", ""
}

func (f *fakeAttendanceRepository) all() []attendance.Attendance {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]attendance.Attendance, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out
}

func (f *fakeAttendanceRepository) seed(a attendance.Attendance) attendance.Attendance {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	a.ID = fmt.Sprintf("att-%d", f.seq)
	f.records[a.ID] = &a
	return a
}

func (f *fakeAttendanceRepository) GetByUserAndDay(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.UserID == userID && !r.Date.Before(dayStart) && !r.Date.After(dayEnd) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.UserID == a.UserID && r.Date.Equal(a.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}
	f.seq++
	f.writes++
	a.ID = fmt.Sprintf("att-%d", f.seq)
	a.CreatedAt = a.Date
	a.UpdatedAt = a.Date
	f.records[a.ID] = &a
	return a, nil
}

func (f *fakeAttendanceRepository) SetCheckIn(ctx context.Context, id string, at time.Time) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok || r.CheckIn != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	f.writes++
	r.CheckIn = &at
	return *r, nil
}

func (f *fakeAttendanceRepository) SetCheckOut(ctx context.Context, id string, at time.Time) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok || r.CheckIn == nil || r.CheckOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}
	f.writes++
	r.CheckOut = &at
	return *r, nil
}

func (f *fakeAttendanceRepository) ListByUser(ctx context.Context, userID string, limit int) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.all() {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAttendanceRepository) ListByDay(ctx context.Context, dayStart, dayEnd time.Time, limit int) ([]attendance.AttendanceWithUser, error) {
	var out []attendance.AttendanceWithUser
	for _, r := range f.all() {
		if r.Date.Before(dayStart) || r.Date.After(dayEnd) {
			continue
		}
		name, empID := f.userName(r.UserID)
		out = append(out, attendance.AttendanceWithUser{Attendance: r, UserName: name, EmployeeID: empID})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CheckIn == nil || out[j].CheckIn == nil {
			return out[i].CheckIn != nil
		}
		return out[i].CheckIn.After(*out[j].CheckIn)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAttendanceRepository) Roster(ctx context.Context, dayStart, dayEnd time.Time) ([]attendance.RosterEntry, error) {
	var out []attendance.RosterEntry
	for _, u := range f.users {
		if !u.Employee {
			continue
		}
		entry := attendance.RosterEntry{UserID: u.ID, UserName: u.Name, EmployeeID: u.EmployeeID}
		rec, _ := f.GetByUserAndDay(ctx, u.ID, dayStart, dayEnd)
		entry.Attendance = rec
		out = append(out, entry)
	}
	return out, nil
}

func (f *fakeAttendanceRepository) CountCheckedIn(ctx context.Context, dayStart, dayEnd time.Time) (int, error) {
	count := 0
	for _, r := range f.all() {
		if r.CheckIn != nil && !r.Date.Before(dayStart) && !r.Date.After(dayEnd) {
			count++
		}
	}
	return count, nil
}

func (f *fakeAttendanceRepository) CountPresentDays(ctx context.Context, userID string, from, to time.Time) (int, error) {
	count := 0
	for _, r := range f.all() {
		if r.UserID == userID && r.CheckIn != nil && !r.Date.Before(from) && r.Date.Before(to) {
			count++
		}
	}
	return count, nil
}
