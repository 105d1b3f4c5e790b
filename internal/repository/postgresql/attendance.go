package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const attendanceUniqueConstraint = "attendances_user_id_date_key"

const attendanceColumns = `a.id, a.user_id, a.date, a.check_in, a.check_out, a.status, a.created_at, a.updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.CheckIn, &att.CheckOut, &att.Status, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// GetByUserAndDay implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByUserAndDay(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1 AND a.date BETWEEN $2 AND $3
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, dayStart, dayEnd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by user and day: %w", err)
	}
	return &att, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if newAttendance.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
		}
		newAttendance.ID = id.String()
	}

	query := `
		INSERT INTO attendances AS a (id, user_id, date, check_in, check_out, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.UserID,
		newAttendance.Date,
		newAttendance.CheckIn,
		newAttendance.CheckOut,
		newAttendance.Status,
	))
	if err != nil {
		if database.IsUniqueViolation(err, attendanceUniqueConstraint) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// SetCheckIn implements attendance.AttendanceRepository.
func (r *attendanceRepository) SetCheckIn(ctx context.Context, id string, at time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances AS a
		SET check_in = $2, updated_at = NOW()
		WHERE a.id = $1 AND a.check_in IS NULL
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query, id, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to set check in: %w", err)
	}
	return updated, nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) SetCheckOut(ctx context.Context, id string, at time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances AS a
		SET check_out = $2, updated_at = NOW()
		WHERE a.id = $1 AND a.check_in IS NOT NULL AND a.check_out IS NULL
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query, id, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Attendance{}, fmt.Errorf("failed to set check out: %w", err)
	}
	return updated, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByUser(ctx context.Context, userID string, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1
		ORDER BY a.date DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	return records, rows.Err()
}

// ListByDay implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDay(ctx context.Context, dayStart, dayEnd time.Time, limit int) ([]attendance.AttendanceWithUser, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, u.name, u.employee_id, u.job_title, u.department
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.date BETWEEN $1 AND $2
		ORDER BY a.check_in DESC NULLS LAST, u.name ASC
	`
	args := []interface{}{dayStart, dayEnd}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by day: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.AttendanceWithUser, 0)
	for rows.Next() {
		var rec attendance.AttendanceWithUser
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.UserName, &rec.EmployeeID, &rec.JobTitle, &rec.Department,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Roster implements attendance.AttendanceRepository.
func (r *attendanceRepository) Roster(ctx context.Context, dayStart, dayEnd time.Time) ([]attendance.RosterEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.name, u.employee_id, u.job_title, u.department,
			   a.id, a.date, a.check_in, a.check_out, a.status, a.created_at, a.updated_at
		FROM users u
		LEFT JOIN attendances a ON a.user_id = u.id AND a.date BETWEEN $1 AND $2
		WHERE u.role = 'EMPLOYEE'
		ORDER BY u.name ASC, u.employee_id ASC
	`

	rows, err := q.Query(ctx, query, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance roster: %w", err)
	}
	defer rows.Close()

	entries := make([]attendance.RosterEntry, 0)
	for rows.Next() {
		var (
			entry     attendance.RosterEntry
			id        *string
			date      *time.Time
			checkIn   *time.Time
			checkOut  *time.Time
			status    *string
			createdAt *time.Time
			updatedAt *time.Time
		)
		err := rows.Scan(
			&entry.UserID, &entry.UserName, &entry.EmployeeID, &entry.JobTitle, &entry.Department,
			&id, &date, &checkIn, &checkOut, &status, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		if id != nil {
			entry.Attendance = &attendance.Attendance{
				ID:        *id,
				UserID:    entry.UserID,
				Date:      *date,
				CheckIn:   checkIn,
				CheckOut:  checkOut,
				Status:    attendance.Status(*status),
				CreatedAt: *createdAt,
				UpdatedAt: *updatedAt,
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// CountCheckedIn implements attendance.AttendanceRepository.
func (r *attendanceRepository) CountCheckedIn(ctx context.Context, dayStart, dayEnd time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM attendances
		WHERE date BETWEEN $1 AND $2 AND check_in IS NOT NULL
	`, dayStart, dayEnd).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count checked in: %w", err)
	}
	return count, nil
}

// CountPresentDays implements attendance.AttendanceRepository.
func (r *attendanceRepository) CountPresentDays(ctx context.Context, userID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM attendances
		WHERE user_id = $1 AND date >= $2 AND date < $3 AND check_in IS NOT NULL
	`, userID, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count present days: %w", err)
	}
	return count, nil
}
