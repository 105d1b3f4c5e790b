package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpsertPayrollRequest struct {
	UserID     string          `json:"user_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Deductions decimal.Decimal `json:"deductions"`
}

func (r *UpsertPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	} else if !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id must be a valid UUID"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 2000 and 2100"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary must be non-negative"})
	}
	if r.Deductions.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deductions", Message: "deductions must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRecordResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	UserName    *string         `json:"user_name,omitempty"`
	EmployeeID  *string         `json:"employee_id,omitempty"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetSalary   decimal.Decimal `json:"net_salary"`
	Status      PayrollStatus   `json:"status"`
	PresentDays int             `json:"present_days"`
	LeaveDays   int             `json:"leave_days"`
	UpdatedAt   string          `json:"updated_at"`
}

func ToResponse(r PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		UserName:    r.UserName,
		EmployeeID:  r.EmployeeID,
		Month:       r.Month,
		Year:        r.Year,
		BaseSalary:  r.BaseSalary,
		Deductions:  r.Deductions,
		NetSalary:   r.NetSalary,
		Status:      r.Status,
		PresentDays: r.PresentDays,
		LeaveDays:   r.LeaveDays,
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}
}
