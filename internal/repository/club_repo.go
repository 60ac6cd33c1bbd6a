package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/model"
)

// ClubRepository club reference data
type ClubRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Club, error)
	List(ctx context.Context) ([]model.Club, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Totals(ctx context.Context) (*ClubTotals, error)
}

// ClubTotals figures summed over every club
type ClubTotals struct {
	Clubs   int64
	Members int64
}

// clubRepo GORM implementation of ClubRepository
type clubRepo struct {
	db *gorm.DB
}

// NewClubRepo creates a ClubRepository
func NewClubRepo(db *gorm.DB) ClubRepository {
	return &clubRepo{db: db}
}

func (r *clubRepo) GetByID(ctx context.Context, id int64) (*model.Club, error) {
	var club model.Club
	err := r.db.WithContext(ctx).
		Where("club_id = ?", id).
		First(&club).Error
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *clubRepo) List(ctx context.Context) ([]model.Club, error) {
	var clubs []model.Club
	err := r.db.WithContext(ctx).
		Order("club_name ASC").
		Find(&clubs).Error
	return clubs, err
}

func (r *clubRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Club{}).
		Where("club_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *clubRepo) Totals(ctx context.Context) (*ClubTotals, error) {
	var totals ClubTotals
	err := r.db.WithContext(ctx).
		Model(&model.Club{}).
		Select("COUNT(*) AS clubs, COALESCE(SUM(total_members), 0) AS members").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
