package notification

import (
	"time"

	"gorm.io/datatypes"
)

// Type tags recognized by the frontend inbox.
const (
	TypeStatusChanged   = "request_status_changed"
	TypeApprovalPending = "approval_pending"
	TypeTaskAssigned    = "task_assigned"
)

// Notification is a fire-and-forget inbox record. Purely additive; writing
// one never mutates request state.
type Notification struct {
	ID          uint64         `gorm:"primaryKey;column:id" json:"-"`
	RecipientID string         `gorm:"size:32;index:idx_notifications_recipient" json:"recipient_id"`
	SenderID    string         `gorm:"size:32" json:"sender_id"`
	RequestID   string         `gorm:"size:32;index:idx_notifications_request" json:"request_id"`
	Type        string         `gorm:"size:40" json:"type"`
	Title       string         `gorm:"size:200" json:"title"`
	Message     string         `gorm:"type:text" json:"message"`
	Data        datatypes.JSON `gorm:"column:data" json:"data,omitempty"`
	Read        bool           `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
