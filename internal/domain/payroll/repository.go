package payroll

import "context"

type PayrollRepository interface {
	// Upsert inserts or overwrites the record for (UserID, Month, Year).
	Upsert(ctx context.Context, record PayrollRecord) (PayrollRecord, error)

	// List returns records ordered year desc, month desc; userID nil means every user.
	List(ctx context.Context, userID *string) ([]PayrollRecord, error)
}
