package employee

import (
	"context"
	"database/sql"

	"leavedesk/internal/authz"
	employeeerrors "leavedesk/internal/employee/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("create employee requested",
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	if _, ok := authz.ParseRole(req.Role); !ok {
		return EmployeeResponse{}, employeeerrors.ErrUnknownRole
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	managerID, err := s.resolveManager(ctx, qtx, req.ManagerID, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e := &Employee{
		ID:         uuid.New(),
		FullName:   req.FullName,
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
		ManagerID:  managerID,
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("create employee success", zap.String("employee_id", e.ID.String()))

	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if _, ok := authz.ParseRole(req.Role); !ok {
		return EmployeeResponse{}, employeeerrors.ErrUnknownRole
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	managerID, err := s.resolveManager(ctx, qtx, req.ManagerID, &id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e.FullName = req.FullName
	e.Role = req.Role
	e.Department = req.Department
	e.ManagerID = managerID

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// resolveManager validates an optional manager reference. selfID guards
// against an employee managing themselves on update.
func (s *service) resolveManager(ctx context.Context, repo Repository, managerID *string, selfID *string) (*uuid.UUID, error) {
	if managerID == nil || *managerID == "" {
		return nil, nil
	}

	parsed, err := uuid.Parse(*managerID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidManagerID
	}
	if selfID != nil && *managerID == *selfID {
		return nil, employeeerrors.ErrSelfManager
	}

	if _, err := repo.FindByID(ctx, *managerID); err != nil {
		return nil, employeeerrors.ErrManagerNotFound
	}

	return &parsed, nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         e.ID.String(),
		FullName:   e.FullName,
		Email:      e.Email,
		Role:       e.Role,
		Department: e.Department,
	}
	if e.ManagerID != nil {
		v := e.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}
