package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/model"
)

// NotificationReadRepository per-(user, request) read cursor
type NotificationReadRepository interface {
	MarkRead(ctx context.Context, userID, requestID int64, at time.Time) error
	IsRead(ctx context.Context, userID, requestID int64) (bool, error)
}

type notificationReadRepo struct {
	db *gorm.DB
}

// NewNotificationReadRepo creates a NotificationReadRepository
func NewNotificationReadRepo(db *gorm.DB) NotificationReadRepository {
	return &notificationReadRepo{db: db}
}

// MarkRead is idempotent; the first read time is kept
func (r *notificationReadRepo) MarkRead(ctx context.Context, userID, requestID int64, at time.Time) error {
	row := model.NotificationRead{UserID: userID, RequestID: requestID, ReadAt: at}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

func (r *notificationReadRepo) IsRead(ctx context.Context, userID, requestID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.NotificationRead{}).
		Where("user_id = ? AND request_id = ?", userID, requestID).
		Count(&count).Error
	return count > 0, err
}
