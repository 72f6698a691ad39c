package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leavedesk/internal/employee"
	"leavedesk/internal/events"
	notificationerrors "leavedesk/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	CreateFromEvent(ctx context.Context, event events.LeaveLifecycleEvent) error
	ListMine(ctx context.Context, recipientID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, recipientID, id string) error
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, employeeRepo: employeeRepo, logger: l}
}

// CreateFromEvent fans a lifecycle event out to the right inbox: a new
// request lands with the requester's manager, everything else lands with
// the requester. An event with nobody to notify is dropped, not failed,
// so the consumer can commit it.
func (s *service) CreateFromEvent(ctx context.Context, event events.LeaveLifecycleEvent) error {
	recipientID, message, err := s.resolveRecipient(ctx, event)
	if err != nil {
		return err
	}
	if recipientID == uuid.Nil {
		s.logger.Debug("lifecycle event has no recipient, skipping",
			zap.String("event_type", event.EventType),
			zap.String("leave_id", event.LeaveID),
		)
		return nil
	}

	leaveID, err := uuid.Parse(event.LeaveID)
	if err != nil {
		return fmt.Errorf("parse leave id from event: %w", err)
	}

	n := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		LeaveID:     leaveID,
		EventType:   event.EventType,
		Message:     message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	s.logger.Info("notification created",
		zap.String("notification_id", n.ID.String()),
		zap.String("recipient_id", recipientID.String()),
		zap.String("event_type", event.EventType),
	)
	return nil
}

func (s *service) resolveRecipient(ctx context.Context, event events.LeaveLifecycleEvent) (uuid.UUID, string, error) {
	switch event.EventType {
	case events.EventTypeLeaveRequested, events.EventTypeLeaveCancelled:
		requester, err := s.employeeRepo.FindByID(ctx, event.RequesterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, "", nil
			}
			return uuid.Nil, "", err
		}
		if requester.ManagerID == nil {
			return uuid.Nil, "", nil
		}

		verb := "submitted"
		if event.EventType == events.EventTypeLeaveCancelled {
			verb = "cancelled"
		}
		return *requester.ManagerID, fmt.Sprintf("%s has %s a leave request", requester.FullName, verb), nil

	case events.EventTypeLeaveApproved:
		requesterID, err := uuid.Parse(event.RequesterID)
		if err != nil {
			return uuid.Nil, "", fmt.Errorf("parse requester id from event: %w", err)
		}
		return requesterID, "Your leave request has been approved", nil

	case events.EventTypeLeaveRejected:
		requesterID, err := uuid.Parse(event.RequesterID)
		if err != nil {
			return uuid.Nil, "", fmt.Errorf("parse requester id from event: %w", err)
		}
		return requesterID, "Your leave request has been rejected", nil
	}

	return uuid.Nil, "", nil
}

func (s *service) ListMine(ctx context.Context, recipientID string, unreadOnly bool) ([]NotificationResponse, error) {
	notifications, err := s.repo.FindByRecipient(ctx, recipientID, unreadOnly)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(notifications), nil
}

func (s *service) MarkRead(ctx context.Context, recipientID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}

	rows, err := s.repo.MarkRead(ctx, id, recipientID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func (s *service) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		LeaveID:   n.LeaveID.String(),
		EventType: n.EventType,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(notifications []Notification) []NotificationResponse {
	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n)
	}
	return resp
}
