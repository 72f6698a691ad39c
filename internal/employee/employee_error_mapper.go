package employee

import (
	"errors"
	"strings"

	employeeerrors "leavedesk/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employees_email" {
			return employeeerrors.ErrEmailAlreadyExists
		}
	}

	// Fallback for drivers that surface the violation as plain text.
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employees_email") {
		return employeeerrors.ErrEmailAlreadyExists
	}

	return err
}
