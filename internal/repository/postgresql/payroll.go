package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/google/uuid"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// Upsert implements payroll.PayrollRepository.
func (r *payrollRepository) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to generate payroll id: %w", err)
	}

	query := `
		INSERT INTO payrolls (
			id, user_id, month, year, base_salary, deductions, net_salary, status, present_days, leave_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, month, year) DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			deductions = EXCLUDED.deductions,
			net_salary = EXCLUDED.net_salary,
			status = EXCLUDED.status,
			present_days = EXCLUDED.present_days,
			leave_days = EXCLUDED.leave_days,
			updated_at = NOW()
		RETURNING id, user_id, month, year, base_salary, deductions, net_salary, status,
			present_days, leave_days, created_at, updated_at
	`

	var p payroll.PayrollRecord
	err = q.QueryRow(ctx, query,
		id.String(), record.UserID, record.Month, record.Year,
		record.BaseSalary, record.Deductions, record.NetSalary, record.Status,
		record.PresentDays, record.LeaveDays,
	).Scan(
		&p.ID, &p.UserID, &p.Month, &p.Year, &p.BaseSalary, &p.Deductions, &p.NetSalary, &p.Status,
		&p.PresentDays, &p.LeaveDays, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return p, nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepository) List(ctx context.Context, userID *string) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.user_id, p.month, p.year, p.base_salary, p.deductions, p.net_salary, p.status,
			   p.present_days, p.leave_days, p.created_at, p.updated_at,
			   u.name, u.employee_id
		FROM payrolls p
		JOIN users u ON u.id = p.user_id
		WHERE ($1::uuid IS NULL OR p.user_id = $1::uuid)
		ORDER BY p.year DESC, p.month DESC, u.name ASC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	records := make([]payroll.PayrollRecord, 0)
	for rows.Next() {
		var p payroll.PayrollRecord
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Month, &p.Year, &p.BaseSalary, &p.Deductions, &p.NetSalary, &p.Status,
			&p.PresentDays, &p.LeaveDays, &p.CreatedAt, &p.UpdatedAt,
			&p.UserName, &p.EmployeeID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, p)
	}
	return records, rows.Err()
}
