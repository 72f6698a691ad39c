package notification

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) (int64, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error) {
	db := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(100)

	if unreadOnly {
		db = db.Where("is_read = false")
	}

	var notifications []Notification
	err := db.Find(&notifications).Error
	return notifications, err
}

// MarkRead is scoped to the recipient so one user cannot touch another's feed.
func (r *repository) MarkRead(ctx context.Context, id, recipientID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *repository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Count(&count).Error
	return count, err
}
