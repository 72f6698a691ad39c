package leavetype

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	leavetypeerrors "leavedesk/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const leaveTypeAllKey = "leave-types:all"

//go:generate mockgen -source=leave_type_service.go -destination=mock/leave_type_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt := &LeaveType{
		ID:                   uuid.New(),
		Name:                 req.Name,
		Description:          req.Description,
		DefaultAllowanceDays: req.DefaultAllowanceDays,
		IsPaid:               true,
	}
	if req.IsPaid != nil {
		lt.IsPaid = *req.IsPaid
	}

	if err := qtx.Create(ctx, lt); err != nil {
		return LeaveTypeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}
	s.invalidateCache(ctx)
	s.logger.Info("create leave type success", zap.String("leave_type_id", lt.ID.String()), zap.String("name", lt.Name))

	return mapToResponse(*lt), nil
}

// GetAll serves the catalog from redis when possible; singleflight keeps a
// cold cache from fanning out into one query per caller.
func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, leaveTypeAllKey).Result()
		if err == nil {
			var resp []LeaveTypeResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(leaveTypeAllKey, func() (interface{}, error) {
		types, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(types)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, leaveTypeAllKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]LeaveTypeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	lt.Name = req.Name
	lt.Description = req.Description
	lt.DefaultAllowanceDays = req.DefaultAllowanceDays
	if req.IsPaid != nil {
		lt.IsPaid = *req.IsPaid
	}

	if err := qtx.Update(ctx, lt); err != nil {
		return LeaveTypeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}
	s.invalidateCache(ctx)
	s.logger.Info("update leave type success", zap.String("leave_type_id", id))

	return mapToResponse(*lt), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leavetypeerrors.ErrInvalidLeaveTypeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavetypeerrors.ErrLeaveTypeNotFound
		}
		return err
	}

	inUse, err := qtx.IsReferencedByLeaves(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return leavetypeerrors.ErrLeaveTypeInUse
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	s.logger.Info("delete leave type success", zap.String("leave_type_id", id))

	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, leaveTypeAllKey).Err(); err != nil {
		s.logger.Error("failed to invalidate leave type cache", zap.String("key", leaveTypeAllKey), zap.Error(err))
	}
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	resp := LeaveTypeResponse{
		ID:                   lt.ID.String(),
		Name:                 lt.Name,
		Description:          lt.Description,
		DefaultAllowanceDays: lt.DefaultAllowanceDays,
		IsPaid:               lt.IsPaid,
	}
	if !lt.CreatedAt.IsZero() {
		resp.CreatedAt = lt.CreatedAt.Format(time.RFC3339)
	}
	if !lt.UpdatedAt.IsZero() {
		resp.UpdatedAt = lt.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp
}
