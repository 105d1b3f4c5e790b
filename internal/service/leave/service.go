package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

// Config holds the policy knobs of the leave workflow.
type Config struct {
	YearlyAllowance int
	ReviewPolicy    leave.ReviewPolicy
}

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	user.UserRepository
	cfg Config
}

func NewLeaveService(leaveRequestRepository leave.LeaveRequestRepository, userRepository user.UserRepository, cfg Config) leave.LeaveService {
	if cfg.YearlyAllowance <= 0 {
		cfg.YearlyAllowance = leave.DefaultYearlyAllowance
	}
	if !cfg.ReviewPolicy.IsValid() {
		cfg.ReviewPolicy = leave.ReviewPolicyStrict
	}
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		UserRepository:         userRepository,
		cfg:                    cfg,
	}
}

// Submit implements leave.LeaveService. Overlapping requests are accepted.
func (s *LeaveServiceImpl) Submit(ctx context.Context, principal user.Principal, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := principal.Authorize(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, endDate := req.Dates()
	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		UserID:    principal.UserID,
		LeaveType: req.LeaveType,
		StartDate: startDate,
		EndDate:   endDate,
		Remarks:   req.Remarks,
		Status:    leave.LeaveRequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	metrics.LeaveEvents.WithLabelValues("submit", string(created.Status)).Inc()
	slog.Info("leave request submitted",
		"leave_id", created.ID,
		"user_id", principal.UserID,
		"type", created.LeaveType,
		"total_days", created.TotalDays(),
	)
	return leave.ToResponse(created), nil
}

// Review implements leave.LeaveService.
func (s *LeaveServiceImpl) Review(ctx context.Context, principal user.Principal, id string, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := principal.AuthorizeAdmin(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !validator.IsValidUUID(id) {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}

	pendingOnly := s.cfg.ReviewPolicy == leave.ReviewPolicyStrict
	updated, err := s.LeaveRequestRepository.UpdateStatus(ctx, id, leave.LeaveRequestStatus(req.Status), req.AdminComment, pendingOnly)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) || errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed) {
			slog.Warn("leave review rejected", "leave_id", id, "admin_id", principal.UserID, "reason", err.Error())
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to review leave request: %w", err)
	}

	metrics.LeaveEvents.WithLabelValues("review", string(updated.Status)).Inc()
	slog.Info("leave request reviewed",
		"leave_id", updated.ID,
		"admin_id", principal.UserID,
		"status", updated.Status,
		"policy", s.cfg.ReviewPolicy,
	)
	return leave.ToResponse(updated), nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, principal user.Principal, id string) (leave.LeaveRequestResponse, error) {
	if err := principal.Authorize(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !validator.IsValidUUID(id) {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	// Someone else's request is reported as missing rather than forbidden.
	if !principal.CanAccess(request.UserID) {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}
	return leave.ToWithUserResponse(request), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, principal user.Principal) ([]leave.LeaveRequestResponse, error) {
	if err := principal.Authorize(); err != nil {
		return nil, err
	}

	var owner *string
	if !principal.IsAdmin() {
		owner = &principal.UserID
	}

	requests, err := s.LeaveRequestRepository.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	resp := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		resp = append(resp, leave.ToWithUserResponse(r))
	}
	return resp, nil
}

// ComputeBalance implements leave.LeaveService.
func (s *LeaveServiceImpl) ComputeBalance(ctx context.Context, principal user.Principal, userID string) (leave.BalanceResponse, error) {
	if err := principal.Authorize(); err != nil {
		return leave.BalanceResponse{}, err
	}
	if userID == "" {
		userID = principal.UserID
	}
	if !principal.CanAccess(userID) {
		return leave.BalanceResponse{}, user.ErrAdminPrivilegeRequired
	}
	if userID != principal.UserID {
		if !validator.IsValidUUID(userID) {
			return leave.BalanceResponse{}, user.ErrUserNotFound
		}
		if _, err := s.UserRepository.GetByID(ctx, userID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return leave.BalanceResponse{}, err
			}
			return leave.BalanceResponse{}, fmt.Errorf("failed to get user: %w", err)
		}
	}

	balance, err := s.balance(ctx, userID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.ToBalanceResponse(balance), nil
}

// balance recomputes from the full APPROVED set on every call.
func (s *LeaveServiceImpl) balance(ctx context.Context, userID string) (leave.Balance, error) {
	approved, err := s.LeaveRequestRepository.ListApprovedByUser(ctx, userID)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to list approved leave: %w", err)
	}
	pending, err := s.LeaveRequestRepository.CountByStatus(ctx, &userID, leave.LeaveRequestStatusPending)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to count pending leave: %w", err)
	}
	return leave.ComputeBalance(userID, s.cfg.YearlyAllowance, approved, pending), nil
}
