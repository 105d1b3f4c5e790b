package payroll

import (
	"context"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
)

type PayrollService interface {
	// Upsert is admin only.
	Upsert(ctx context.Context, principal user.Principal, req UpsertPayrollRequest) (PayrollRecordResponse, error)

	// List returns every record for admins and the caller's own otherwise.
	List(ctx context.Context, principal user.Principal) ([]PayrollRecordResponse, error)
}
