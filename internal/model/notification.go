package model

import "time"

// NotificationRead per-(user, request) read marker; absence means unread
type NotificationRead struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false"     json:"user_id"`
	RequestID int64     `gorm:"primaryKey;autoIncrement:false"     json:"request_id"`
	ReadAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"read_at"`
}

// TableName table name
func (NotificationRead) TableName() string { return "notification_reads" }
