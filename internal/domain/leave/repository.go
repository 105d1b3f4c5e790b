package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequestWithUser, error)

	// UpdateStatus writes the review decision. With pendingOnly it only matches
	// a PENDING request and returns ErrLeaveRequestAlreadyProcessed otherwise.
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, adminComment *string, pendingOnly bool) (LeaveRequest, error)

	// List returns requests newest first; userID nil means every user.
	List(ctx context.Context, userID *string) ([]LeaveRequestWithUser, error)

	ListApprovedByUser(ctx context.Context, userID string) ([]LeaveRequest, error)

	// ListApprovedOverlapping returns the user's APPROVED requests touching [from, to].
	ListApprovedOverlapping(ctx context.Context, userID string, from, to time.Time) ([]LeaveRequest, error)

	CountByStatus(ctx context.Context, userID *string, status LeaveRequestStatus) (int, error)

	// CountOnLeave counts APPROVED requests whose range contains day.
	CountOnLeave(ctx context.Context, day time.Time) (int, error)

	// ListPending returns the newest PENDING requests across all users.
	ListPending(ctx context.Context, limit int) ([]LeaveRequestWithUser, error)

	// ListRecentlyUpdated returns the user's requests by last update, newest first.
	ListRecentlyUpdated(ctx context.Context, userID string, limit int) ([]LeaveRequest, error)
}
