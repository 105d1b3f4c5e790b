package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const leaveRequestColumns = `lr.id, lr.user_id, lr.leave_type, lr.start_date, lr.end_date, lr.remarks,
		lr.status, lr.admin_comment, lr.created_at, lr.updated_at`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row, extra ...interface{}) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	dest := []interface{}{
		&lr.ID, &lr.UserID, &lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.Remarks,
		&lr.Status, &lr.AdminComment, &lr.CreatedAt, &lr.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) queryLeaveRequests(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) queryWithUser(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequestWithUser, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequestWithUser, 0)
	for rows.Next() {
		var item leave.LeaveRequestWithUser
		lr, err := scanLeaveRequest(rows, &item.UserName, &item.EmployeeID)
		if err != nil {
			return nil, err
		}
		item.LeaveRequest = lr
		requests = append(requests, item)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
		}
		req.ID = id.String()
	}

	query := `
		INSERT INTO leave_requests AS lr (id, user_id, leave_type, start_date, end_date, remarks, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		req.ID, req.UserID, req.LeaveType, req.StartDate, req.EndDate, req.Remarks, req.Status,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequestWithUser, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, u.name, u.employee_id
		FROM leave_requests lr
		JOIN users u ON u.id = lr.user_id
		WHERE lr.id = $1
	`

	var item leave.LeaveRequestWithUser
	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id), &item.UserName, &item.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequestWithUser{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequestWithUser{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	item.LeaveRequest = lr
	return item, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, adminComment *string, pendingOnly bool) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests AS lr
		SET status = $2, admin_comment = $3, updated_at = NOW()
		WHERE lr.id = $1 AND ($4 = FALSE OR lr.status = 'PENDING')
		RETURNING ` + leaveRequestColumns

	updated, err := scanLeaveRequest(q.QueryRow(ctx, query, id, status, adminComment, pendingOnly))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	// No row matched: either the id is unknown or the request was already decided.
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM leave_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to check leave request: %w", err)
	}
	if !exists {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, userID *string) ([]leave.LeaveRequestWithUser, error) {
	query := `
		SELECT ` + leaveRequestColumns + `, u.name, u.employee_id
		FROM leave_requests lr
		JOIN users u ON u.id = lr.user_id
		WHERE ($1::uuid IS NULL OR lr.user_id = $1::uuid)
		ORDER BY lr.created_at DESC, lr.id DESC
	`
	requests, err := r.queryWithUser(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}

// ListApprovedByUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.user_id = $1 AND lr.status = 'APPROVED'
		ORDER BY lr.start_date ASC
	`
	requests, err := r.queryLeaveRequests(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}
	return requests, nil
}

// ListApprovedOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedOverlapping(ctx context.Context, userID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.user_id = $1 AND lr.status = 'APPROVED'
		  AND lr.start_date <= $3::date AND lr.end_date >= $2::date
		ORDER BY lr.start_date ASC
	`
	requests, err := r.queryLeaveRequests(ctx, query, userID, dateParam(from), dateParam(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping leave: %w", err)
	}
	return requests, nil
}

// CountByStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CountByStatus(ctx context.Context, userID *string, status leave.LeaveRequestStatus) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE status = $1 AND ($2::uuid IS NULL OR user_id = $2::uuid)
	`, status, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leave requests: %w", err)
	}
	return count, nil
}

// CountOnLeave implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CountOnLeave(ctx context.Context, day time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE status = 'APPROVED' AND $1::date BETWEEN start_date AND end_date
	`, dateParam(day)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count on leave: %w", err)
	}
	return count, nil
}

// ListPending implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListPending(ctx context.Context, limit int) ([]leave.LeaveRequestWithUser, error) {
	query := `
		SELECT ` + leaveRequestColumns + `, u.name, u.employee_id
		FROM leave_requests lr
		JOIN users u ON u.id = lr.user_id
		WHERE lr.status = 'PENDING'
		ORDER BY lr.created_at DESC, lr.id DESC
		LIMIT $1
	`
	requests, err := r.queryWithUser(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave: %w", err)
	}
	return requests, nil
}

// ListRecentlyUpdated implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListRecentlyUpdated(ctx context.Context, userID string, limit int) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.user_id = $1
		ORDER BY lr.updated_at DESC, lr.id DESC
		LIMIT $2
	`
	requests, err := r.queryLeaveRequests(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recently updated leave: %w", err)
	}
	return requests, nil
}

// dateParam passes a calendar date as text so the session timezone cannot shift it.
func dateParam(t time.Time) string {
	return t.Format("2006-01-02")
}
