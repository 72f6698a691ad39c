package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByIDVisible(ctx context.Context, id string, actor Actor) (*Leave, error)
	FindAllVisible(ctx context.Context, actor Actor) ([]Leave, error)
	UpdateDetailsIfPending(ctx context.Context, l *Leave) (int64, error)
	ReviewIfPending(ctx context.Context, id, status string, approverID uuid.UUID, approvedAt time.Time, comment *string) (int64, error)
	CancelIfPending(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id string) error
	HasOverlappingPeriod(ctx context.Context, requesterID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByIDVisible(ctx context.Context, id string, actor Actor) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Scopes(visibleTo(actor)).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllVisible(ctx context.Context, actor Actor) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Scopes(visibleTo(actor)).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

// UpdateDetailsIfPending rewrites the editable fields in a single
// conditional statement; a request that left PENDING in the meantime
// yields zero affected rows.
func (r *repository) UpdateDetailsIfPending(ctx context.Context, l *Leave) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("id = ? AND status = ?", l.ID, StatusPending).
		Updates(map[string]interface{}{
			"leave_type_id": l.LeaveTypeID,
			"start_date":    l.StartDate,
			"end_date":      l.EndDate,
			"days_count":    l.DaysCount,
			"reason":        l.Reason,
		})
	return res.RowsAffected, res.Error
}

// ReviewIfPending is the approve/reject race guard: the status predicate
// and the write happen in one statement, so of two concurrent reviewers
// only the first sees an affected row.
func (r *repository) ReviewIfPending(ctx context.Context, id, status string, approverID uuid.UUID, approvedAt time.Time, comment *string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]interface{}{
			"status":           status,
			"approver_id":      approverID,
			"approved_at":      approvedAt,
			"reviewer_comment": comment,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) CancelIfPending(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Update("status", StatusCancelled)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Leave{}, "id = ?", id).Error
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, requesterID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("requester_id = ?", requesterID).
		Where("status NOT IN ?", []string{StatusCancelled, StatusRejected}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
