package leave

import (
	"context"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
)

type LeaveService interface {
	Submit(ctx context.Context, principal user.Principal, req SubmitLeaveRequest) (LeaveRequestResponse, error)

	// Review is admin only.
	Review(ctx context.Context, principal user.Principal, id string, req ReviewLeaveRequest) (LeaveRequestResponse, error)

	Get(ctx context.Context, principal user.Principal, id string) (LeaveRequestResponse, error)

	// List returns every request for admins and the caller's own otherwise.
	List(ctx context.Context, principal user.Principal) ([]LeaveRequestResponse, error)

	// ComputeBalance reads a balance. Employees may only read their own.
	ComputeBalance(ctx context.Context, principal user.Principal, userID string) (BalanceResponse, error)
}
