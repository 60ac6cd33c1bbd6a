package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/model"
)

// RoomRepository the fixed room lookup table
type RoomRepository interface {
	List(ctx context.Context) ([]model.Room, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type roomRepo struct {
	db *gorm.DB
}

// NewRoomRepo creates a RoomRepository
func NewRoomRepo(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) List(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Order("room_id ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Room{}).
		Where("room_id = ?", id).
		Count(&count).Error
	return count > 0, err
}
