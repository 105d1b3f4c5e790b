package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft PayrollStatus = "DRAFT"
	PayrollStatusPaid  PayrollStatus = "PAID"
)

// PayrollRecord is unique per (UserID, Month, Year); recomputing a period overwrites it.
type PayrollRecord struct {
	ID         string
	UserID     string
	Month      int
	Year       int
	BaseSalary decimal.Decimal
	Deductions decimal.Decimal
	NetSalary  decimal.Decimal
	Status     PayrollStatus

	// Attendance and leave summary for the period at the time of the upsert
	PresentDays int
	LeaveDays   int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	UserName   *string
	EmployeeID *string
}

// NetSalary is base minus deductions.
func NetSalary(base, deductions decimal.Decimal) decimal.Decimal {
	return base.Sub(deductions)
}
