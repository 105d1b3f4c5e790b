package leave

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/calendar"
)

type fakeLeaveRepository struct {
	mu       sync.Mutex
	seq      int
	clock    time.Time
	requests map[string]*leave.LeaveRequest
	names    map[string]string
	writes   int
}

func newFakeLeaveRepository() *fakeLeaveRepository {
	return &fakeLeaveRepository{
		clock:    time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		requests: map[string]*leave.LeaveRequest{},
		names:    map[string]string{},
	}
}

// tick advances the fake's clock so created_at / updated_at are strictly ordered.
func (f *fakeLeaveRepository) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeLeaveRepository) withUser(lr leave.LeaveRequest) leave.LeaveRequestWithUser {
	return leave.LeaveRequestWithUser{LeaveRequest: lr, UserName: f.names[lr.UserID], EmployeeID: "EMP-" + lr.UserID}
}

func (f *fakeLeaveRepository) snapshot() []leave.LeaveRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]leave.LeaveRequest, 0, len(f.requests))
	for _, r := range f.requests {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeLeaveRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.writes++
	req.ID = fmt.Sprintf("00000000-0000-7000-8000-%012d", f.seq)
	req.CreatedAt = f.tick()
	req.UpdatedAt = req.CreatedAt
	f.requests[req.ID] = &req
	return req, nil
}

func (f *fakeLeaveRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequestWithUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequestWithUser{}, leave.ErrLeaveRequestNotFound
	}
	return f.withUser(*r), nil
}

func (f *fakeLeaveRepository) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, adminComment *string, pendingOnly bool) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if pendingOnly && r.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	f.writes++
	r.Status = status
	r.AdminComment = adminComment
	r.UpdatedAt = f.tick()
	return *r, nil
}

func (f *fakeLeaveRepository) List(ctx context.Context, userID *string) ([]leave.LeaveRequestWithUser, error) {
	var out []leave.LeaveRequestWithUser
	for _, r := range f.snapshot() {
		if userID == nil || r.UserID == *userID {
			out = append(out, f.withUser(r))
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) ListApprovedByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.snapshot() {
		if r.UserID == userID && r.Status == leave.LeaveRequestStatusApproved {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) ListApprovedOverlapping(ctx context.Context, userID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.snapshot() {
		if r.UserID == userID && r.Status == leave.LeaveRequestStatusApproved && calendar.Overlaps(r.StartDate, r.EndDate, from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) CountByStatus(ctx context.Context, userID *string, status leave.LeaveRequestStatus) (int, error) {
	count := 0
	for _, r := range f.snapshot() {
		if r.Status == status && (userID == nil || r.UserID == *userID) {
			count++
		}
	}
	return count, nil
}

func (f *fakeLeaveRepository) CountOnLeave(ctx context.Context, day time.Time) (int, error) {
	count := 0
	for _, r := range f.snapshot() {
		if r.Status == leave.LeaveRequestStatusApproved && r.Covers(day) {
			count++
		}
	}
	return count, nil
}

func (f *fakeLeaveRepository) ListPending(ctx context.Context, limit int) ([]leave.LeaveRequestWithUser, error) {
	var out []leave.LeaveRequestWithUser
	for _, r := range f.snapshot() {
		if r.Status == leave.LeaveRequestStatusPending && len(out) < limit {
			out = append(out, f.withUser(r))
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) ListRecentlyUpdated(ctx context.Context, userID string, limit int) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.snapshot() {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeUserRepository struct {
	users map[string]user.User
}

func (f *fakeUserRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepository) ExistsByEmailOrEmployeeID(ctx context.Context, email, employeeID string) (bool, bool, error) {
	return false, false, nil
}

func (f *fakeUserRepository) UpdateProfile(ctx context.Context, id string, req user.UpdateProfileRequest) (user.User, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeUserRepository) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepository) CountByRole(ctx context.Context, role user.Role) (int, error) {
	return 0, nil
}
