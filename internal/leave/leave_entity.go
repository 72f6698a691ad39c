package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Leave struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_requester_dates"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_requester_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_requester_dates"`
	DaysCount int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leaves_status"`
	ApproverID      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	ReviewerComment *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`
}
