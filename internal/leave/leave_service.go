package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"leavedesk/internal/authz"
	"leavedesk/internal/events"
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/leavebalance"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor Actor, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actor Actor) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	Update(ctx context.Context, actor Actor, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, actor Actor, id string, comment *string) (LeaveResponse, error)
	Reject(ctx context.Context, actor Actor, id string, comment *string) (LeaveResponse, error)
	Cancel(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	balanceRepo leavebalance.Repository
	outboxRepo  kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balanceRepo leavebalance.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		balanceRepo: balanceRepo,
		outboxRepo:  outboxRepo,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("actor_id", actor.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	requesterUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveTypeID
	}
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, actor.EmployeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("requester_id", actor.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &Leave{
		ID:          uuid.New(),
		RequesterID: requesterUUID,
		LeaveTypeID: leaveTypeUUID,
		StartDate:   startDate,
		EndDate:     endDate,
		DaysCount:   inclusiveDays(startDate, endDate),
		Reason:      req.Reason,
		Status:      StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueueEvent(ctx, tx, events.EventTypeLeaveRequested, l, actor.EmployeeID); err != nil {
		s.logger.Error("create leave enqueue event failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("requester_id", actor.EmployeeID),
		zap.Int("days_count", l.DaysCount),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, actor Actor) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAllVisible(ctx, actor)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	// An out-of-scope leave reads as absent so existence is not leaked.
	l, err := s.repo.FindByIDVisible(ctx, id, actor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

// Update edits the submitted details of a still-pending request. Only the
// requester may edit, and the conditional write keeps a concurrently
// approved request from being rewritten afterwards.
func (s *service) Update(ctx context.Context, actor Actor, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("update leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.EmployeeID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveTypeID
	}
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.RequesterID.String() != actor.EmployeeID {
		return LeaveResponse{}, leaveerrors.ErrNotRequester
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, actor.EmployeeID, startDate, endDate, &id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l.LeaveTypeID = leaveTypeUUID
	l.StartDate = startDate
	l.EndDate = endDate
	l.DaysCount = inclusiveDays(startDate, endDate)
	l.Reason = req.Reason

	rows, err := qtx.UpdateDetailsIfPending(ctx, l)
	if err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if rows == 0 {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("update leave success", zap.String("leave_id", id))

	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actor Actor, id string, comment *string) (LeaveResponse, error) {
	return s.review(ctx, actor, id, StatusApproved, comment)
}

func (s *service) Reject(ctx context.Context, actor Actor, id string, comment *string) (LeaveResponse, error) {
	return s.review(ctx, actor, id, StatusRejected, comment)
}

func (s *service) review(ctx context.Context, actor Actor, id, targetStatus string, comment *string) (LeaveResponse, error) {
	s.logger.Debug("review leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.EmployeeID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	actorUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if !authz.HasPermission(actor.Role, authz.PermLeavesApprove) {
		return LeaveResponse{}, leaveerrors.ErrApprovalNotAllowed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	// Holding leaves.approve never allows reviewing your own request.
	if l.RequesterID == actorUUID {
		return LeaveResponse{}, leaveerrors.ErrSelfReview
	}

	now := time.Now().UTC()
	rows, err := qtx.ReviewIfPending(ctx, id, targetStatus, actorUUID, now, comment)
	if err != nil {
		s.logger.Error("review leave persist failed",
			zap.String("leave_id", id),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if rows == 0 {
		s.logger.Warn("review leave transition rejected",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", targetStatus),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	if targetStatus == StatusApproved {
		balanceQtx := s.balanceRepo.WithTx(tx)
		if err := balanceQtx.Debit(ctx, l.RequesterID.String(), l.LeaveTypeID.String(), l.StartDate.Year(), l.DaysCount); err != nil {
			s.logger.Warn("review leave balance debit failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	eventType := events.EventTypeLeaveApproved
	if targetStatus == StatusRejected {
		eventType = events.EventTypeLeaveRejected
	}
	l.Status = targetStatus
	l.ApproverID = &actorUUID
	l.ApprovedAt = &now
	l.ReviewerComment = comment

	if err := s.enqueueEvent(ctx, tx, eventType, l, actor.EmployeeID); err != nil {
		s.logger.Error("review leave enqueue event failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("review leave success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
		zap.String("approver_id", actor.EmployeeID),
	)

	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	s.logger.Debug("cancel leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.EmployeeID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.RequesterID.String() != actor.EmployeeID {
		return LeaveResponse{}, leaveerrors.ErrNotRequester
	}

	rows, err := qtx.CancelIfPending(ctx, id)
	if err != nil {
		s.logger.Error("cancel leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if rows == 0 {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = StatusCancelled
	if err := s.enqueueEvent(ctx, tx, events.EventTypeLeaveCancelled, l, actor.EmployeeID); err != nil {
		s.logger.Error("cancel leave enqueue event failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("cancel leave success", zap.String("leave_id", id))

	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}

	switch {
	case authz.HasPermission(actor.Role, authz.PermLeavesDelete):
		// hr/admin may remove any request.
	case l.RequesterID.String() == actor.EmployeeID:
		if l.Status != StatusPending {
			return leaveerrors.ErrInvalidStatusTransition
		}
	default:
		return leaveerrors.ErrDeleteNotAllowed
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, eventType string, l *Leave, actorID string) error {
	evt := events.LeaveLifecycleEvent{
		EventType:   eventType,
		LeaveID:     l.ID.String(),
		RequesterID: l.RequesterID.String(),
		ActorID:     actorID,
		NewStatus:   l.Status,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

// inclusiveDays counts both endpoints, so a single-day leave is 1.
func inclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:          l.ID.String(),
		RequesterID: l.RequesterID.String(),
		LeaveTypeID: l.LeaveTypeID.String(),
		StartDate:   l.StartDate.Format("2006-01-02"),
		EndDate:     l.EndDate.Format("2006-01-02"),
		DaysCount:   l.DaysCount,
		Reason:      l.Reason,
		Status:      l.Status,
	}
	if l.ApproverID != nil {
		v := l.ApproverID.String()
		resp.ApproverID = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.ReviewerComment = l.ReviewerComment
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
