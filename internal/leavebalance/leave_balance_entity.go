package leavebalance

import (
	"time"

	"github.com/google/uuid"
)

type Balance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balance_employee_type_year"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balance_employee_type_year"`
	Year        int       `gorm:"type:int;not null;uniqueIndex:uq_balance_employee_type_year"`

	AllowanceDays int `gorm:"type:int;not null;default:0"`
	UsedDays      int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Balance) TableName() string {
	return "leave_balances"
}
