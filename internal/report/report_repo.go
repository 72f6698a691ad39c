package report

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	LeaveUsageByYear(ctx context.Context, year int, managerID *string) ([]LeaveUsageRow, error)
	StatusBreakdownByYear(ctx context.Context, year int, managerID *string) ([]StatusBreakdownRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// LeaveUsageByYear aggregates approved days per employee and leave type.
// A non-nil managerID narrows the result to that manager's direct reports.
func (r *repository) LeaveUsageByYear(ctx context.Context, year int, managerID *string) ([]LeaveUsageRow, error) {
	query := `
		SELECT
			e.id AS employee_id,
			e.full_name,
			lt.id AS leave_type_id,
			lt.name AS leave_type_name,
			COALESCE(SUM(l.days_count) FILTER (WHERE l.status = 'APPROVED'), 0) AS approved_days,
			COUNT(l.id) AS request_count
		FROM leaves l
		JOIN employees e ON e.id = l.requester_id
		JOIN leave_types lt ON lt.id = l.leave_type_id
		WHERE EXTRACT(YEAR FROM l.start_date) = ?
			AND l.deleted_at IS NULL
			AND e.deleted_at IS NULL
	`
	args := []interface{}{year}
	if managerID != nil {
		query += " AND e.manager_id = ?"
		args = append(args, *managerID)
	}
	query += `
		GROUP BY e.id, e.full_name, lt.id, lt.name
		ORDER BY e.full_name ASC, lt.name ASC
	`

	var rows []LeaveUsageRow
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	return rows, err
}

func (r *repository) StatusBreakdownByYear(ctx context.Context, year int, managerID *string) ([]StatusBreakdownRow, error) {
	query := `
		SELECT l.status, COUNT(*) AS count
		FROM leaves l
		JOIN employees e ON e.id = l.requester_id
		WHERE EXTRACT(YEAR FROM l.start_date) = ?
			AND l.deleted_at IS NULL
			AND e.deleted_at IS NULL
	`
	args := []interface{}{year}
	if managerID != nil {
		query += " AND e.manager_id = ?"
		args = append(args, *managerID)
	}
	query += " GROUP BY l.status ORDER BY l.status ASC"

	var rows []StatusBreakdownRow
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	return rows, err
}
