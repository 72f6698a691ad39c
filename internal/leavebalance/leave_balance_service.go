package leavebalance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"leavedesk/internal/authz"
	"leavedesk/internal/employee"
	leavebalanceerrors "leavedesk/internal/leavebalance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_balance_service.go -destination=mock/leave_balance_service_mock.go -package=mock
type Service interface {
	GetMine(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)
	GetForEmployee(ctx context.Context, viewerID string, viewerRole authz.Role, employeeID string, year int) ([]BalanceResponse, error)
	Adjust(ctx context.Context, req AdjustBalanceRequest) (BalanceResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{db: db, repo: repo, employeeRepo: employeeRepo, logger: l}
}

func (s *service) GetMine(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error) {
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	balances, err := s.repo.FindByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(balances), nil
}

// GetForEmployee allows an employee to read their own balances, a manager
// to read a direct report's, and hr/admin to read anyone's.
func (s *service) GetForEmployee(ctx context.Context, viewerID string, viewerRole authz.Role, employeeID string, year int) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leavebalanceerrors.ErrInvalidEmployeeID
	}

	if employeeID != viewerID && viewerRole != authz.RoleHR && viewerRole != authz.RoleAdmin {
		allowed := false
		if viewerRole == authz.RoleManager {
			target, err := s.employeeRepo.FindByID(ctx, employeeID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			if err == nil && target.ManagerID != nil && target.ManagerID.String() == viewerID {
				allowed = true
			}
		}
		if !allowed {
			return nil, leavebalanceerrors.ErrBalanceNotVisible
		}
	}

	return s.GetMine(ctx, employeeID, year)
}

func (s *service) Adjust(ctx context.Context, req AdjustBalanceRequest) (BalanceResponse, error) {
	s.logger.Debug("adjust balance requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("year", req.Year),
		zap.Int("allowance_days", req.AllowanceDays),
	)

	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidEmployeeID
	}
	if _, err := uuid.Parse(req.LeaveTypeID); err != nil {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidLeaveTypeID
	}

	if _, err := s.employeeRepo.FindByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, leavebalanceerrors.ErrInvalidEmployeeID
		}
		return BalanceResponse{}, err
	}

	b, err := s.repo.Upsert(ctx, req.EmployeeID, req.LeaveTypeID, req.Year, req.AllowanceDays)
	if err != nil {
		s.logger.Error("adjust balance persist failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	s.logger.Info("adjust balance success",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("allowance_days", req.AllowanceDays),
	)

	return mapToResponse(*b), nil
}

func mapToResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		ID:            b.ID.String(),
		EmployeeID:    b.EmployeeID.String(),
		LeaveTypeID:   b.LeaveTypeID.String(),
		Year:          b.Year,
		AllowanceDays: b.AllowanceDays,
		UsedDays:      b.UsedDays,
		RemainingDays: b.AllowanceDays - b.UsedDays,
	}
}

func mapToListResponse(balances []Balance) []BalanceResponse {
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp
}
