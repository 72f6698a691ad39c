package document

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, d *Document) error
	FindByLeave(ctx context.Context, leaveID string) ([]Document, error)
	FindByID(ctx context.Context, id string) (*Document, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByLeave(ctx context.Context, leaveID string) ([]Document, error) {
	var documents []Document
	err := r.db.WithContext(ctx).
		Where("leave_id = ?", leaveID).
		Order("created_at ASC").
		Find(&documents).Error
	return documents, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Document, error) {
	var d Document
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Document{}, "id = ?", id).Error
}
