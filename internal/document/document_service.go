package document

import (
	"context"
	"errors"
	"time"

	documenterrors "leavedesk/internal/document/errors"
	"leavedesk/internal/leave"
	leaveerrors "leavedesk/internal/leave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Attach(ctx context.Context, actor leave.Actor, leaveID string, req AttachDocumentRequest) (DocumentResponse, error)
	ListForLeave(ctx context.Context, actor leave.Actor, leaveID string) ([]DocumentResponse, error)
	Delete(ctx context.Context, actor leave.Actor, leaveID, id string) error
}

type service struct {
	repo      Repository
	leaveRepo leave.Repository
	logger    *zap.Logger
}

func NewService(repo Repository, leaveRepo leave.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{repo: repo, leaveRepo: leaveRepo, logger: l}
}

// Attach records metadata for a supporting file. Only the requester of
// the parent leave may attach to it.
func (s *service) Attach(ctx context.Context, actor leave.Actor, leaveID string, req AttachDocumentRequest) (DocumentResponse, error) {
	if _, err := uuid.Parse(leaveID); err != nil {
		return DocumentResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	uploaderID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return DocumentResponse{}, leaveerrors.ErrInvalidActorID
	}

	l, err := s.visibleLeave(ctx, actor, leaveID)
	if err != nil {
		return DocumentResponse{}, err
	}
	if l.RequesterID != uploaderID {
		return DocumentResponse{}, documenterrors.ErrAttachNotAllowed
	}

	d := &Document{
		ID:          uuid.New(),
		LeaveID:     l.ID,
		UploaderID:  uploaderID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		StorageKey:  req.StorageKey,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return DocumentResponse{}, err
	}

	s.logger.Info("document attached",
		zap.String("document_id", d.ID.String()),
		zap.String("leave_id", leaveID),
	)
	return mapToResponse(*d), nil
}

// ListForLeave shows attachments to whoever can see the parent leave.
func (s *service) ListForLeave(ctx context.Context, actor leave.Actor, leaveID string) ([]DocumentResponse, error) {
	if _, err := uuid.Parse(leaveID); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}

	if _, err := s.visibleLeave(ctx, actor, leaveID); err != nil {
		return nil, err
	}

	documents, err := s.repo.FindByLeave(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(documents), nil
}

func (s *service) Delete(ctx context.Context, actor leave.Actor, leaveID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return documenterrors.ErrInvalidDocumentID
	}

	l, err := s.visibleLeave(ctx, actor, leaveID)
	if err != nil {
		return err
	}
	if l.RequesterID.String() != actor.EmployeeID {
		return documenterrors.ErrAttachNotAllowed
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return documenterrors.ErrDocumentNotFound
		}
		return err
	}
	if d.LeaveID != l.ID {
		return documenterrors.ErrDocumentNotFound
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) visibleLeave(ctx context.Context, actor leave.Actor, leaveID string) (*leave.Leave, error) {
	l, err := s.leaveRepo.FindByIDVisible(ctx, leaveID, actor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}

func mapToResponse(d Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID.String(),
		LeaveID:     d.LeaveID.String(),
		UploaderID:  d.UploaderID.String(),
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		StorageKey:  d.StorageKey,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(documents []Document) []DocumentResponse {
	resp := make([]DocumentResponse, len(documents))
	for i, d := range documents {
		resp[i] = mapToResponse(d)
	}
	return resp
}
