package leavebalance

import (
	"context"
	"database/sql"

	leavebalanceerrors "leavedesk/internal/leavebalance/errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_balance_repo.go -destination=mock/leave_balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByEmployeeYear(ctx context.Context, employeeID string, year int) ([]Balance, error)
	Upsert(ctx context.Context, employeeID, leaveTypeID string, year, allowanceDays int) (*Balance, error)
	Debit(ctx context.Context, employeeID, leaveTypeID string, year, days int) error
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

func (r *repository) FindByEmployeeYear(ctx context.Context, employeeID string, year int) ([]Balance, error) {
	var balances []Balance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		Order("leave_type_id ASC").
		Find(&balances).Error
	return balances, err
}

// Upsert creates or resets the allowance row atomically so concurrent
// adjustments for the same employee/type/year cannot collide.
func (r *repository) Upsert(ctx context.Context, employeeID, leaveTypeID string, year, allowanceDays int) (*Balance, error) {
	var b Balance
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO leave_balances (id, employee_id, leave_type_id, year, allowance_days, used_days, created_at, updated_at)
		VALUES (gen_random_uuid(), ?, ?, ?, ?, 0, now(), now())
		ON CONFLICT (employee_id, leave_type_id, year) DO UPDATE
		SET allowance_days = EXCLUDED.allowance_days, updated_at = now()
		RETURNING id, employee_id, leave_type_id, year, allowance_days, used_days, created_at, updated_at
	`, employeeID, leaveTypeID, year, allowanceDays).Scan(&b).Error

	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Debit consumes days from the balance in one conditional statement; the
// remaining-days predicate makes overdrawing impossible under concurrency.
func (r *repository) Debit(ctx context.Context, employeeID, leaveTypeID string, year, days int) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE leave_balances
		SET used_days = used_days + ?, updated_at = now()
		WHERE employee_id = ? AND leave_type_id = ? AND year = ?
			AND allowance_days - used_days >= ?
	`, days, employeeID, leaveTypeID, year, days)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return leavebalanceerrors.ErrInsufficientBalance
	}
	return nil
}
