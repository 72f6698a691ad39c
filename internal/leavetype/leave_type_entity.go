package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveType struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name                 string         `gorm:"type:varchar(100);not null;uniqueIndex:uq_leave_types_name"`
	Description          string         `gorm:"type:text"`
	DefaultAllowanceDays int            `gorm:"not null;default:0"`
	IsPaid               bool           `gorm:"not null;default:true"`
	CreatedAt            time.Time      `gorm:"autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime"`
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}
