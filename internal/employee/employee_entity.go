package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName   string     `gorm:"type:varchar(255);not null"`
	Email      string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_employees_email"`
	Role       string     `gorm:"type:varchar(20);not null;default:'employee'"`
	Department string     `gorm:"type:varchar(100)"`
	ManagerID  *uuid.UUID `gorm:"type:uuid;index:idx_employees_manager"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
