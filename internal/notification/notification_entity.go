package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_recipient"`
	LeaveID     uuid.UUID `gorm:"type:uuid;not null"`
	EventType   string    `gorm:"type:varchar(50);not null"`
	Message     string    `gorm:"type:text;not null"`
	IsRead      bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
