package leavetype

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	leavetypeerrors "leavedesk/internal/leavetype/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_type_repo.go -destination=mock/leave_type_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lt *LeaveType) error
	FindAll(ctx context.Context) ([]LeaveType, error)
	FindByID(ctx context.Context, id string) (*LeaveType, error)
	Update(ctx context.Context, lt *LeaveType) error
	Delete(ctx context.Context, id string) error
	IsReferencedByLeaves(ctx context.Context, id string) (bool, error)
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

func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(lt).Error)
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).First(&lt, "id = ?", id).Error
	return &lt, err
}

func (r *repository) Update(ctx context.Context, lt *LeaveType) error {
	return mapRepositoryError(r.db.WithContext(ctx).Save(lt).Error)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&LeaveType{}, "id = ?", id).Error
}

func (r *repository) IsReferencedByLeaves(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leaves").
		Where("leave_type_id = ? AND deleted_at IS NULL", id).
		Count(&count).Error
	return count > 0, err
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_types_name" {
			return leavetypeerrors.ErrLeaveTypeNameExists
		}
	}

	// Fallback for drivers that surface the violation as plain text.
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_leave_types_name") {
		return leavetypeerrors.ErrLeaveTypeNameExists
	}

	return err
}
