package auth

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_users_employee"`
	Email      string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password   string    `gorm:"type:varchar(255);not null"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
