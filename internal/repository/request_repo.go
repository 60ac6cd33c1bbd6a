package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/model"
	pkgerrors "github.com/FarahAbdullah11/NU-CLUBS/pkg/errors"
)

// RequestFilter listing filter; nil ClubID means every club, empty Status any status
type RequestFilter struct {
	ClubID *int64
	Status model.RequestStatus
}

// RequestRepository request store. Status leaves PENDING only through
// TransitionFromPending.
type RequestRepository interface {
	Create(ctx context.Context, req *model.Request) error
	GetByID(ctx context.Context, id int64) (*model.Request, error)
	List(ctx context.Context, filter RequestFilter) ([]model.Request, error)
	CountByStatus(ctx context.Context, clubID *int64, status model.RequestStatus) (int64, error)
	CountUpcoming(ctx context.Context, clubID *int64, today time.Time) (int64, error)
	Latest(ctx context.Context, clubID *int64) (*model.Request, error)
	ListApprovedEvents(ctx context.Context, clubID *int64) ([]model.Request, error)
	TransitionFromPending(ctx context.Context, id int64, to model.RequestStatus, decidedBy int64, at time.Time) error
}

type requestRepo struct {
	db *gorm.DB
}

// NewRequestRepo creates a RequestRepository
func NewRequestRepo(db *gorm.DB) RequestRepository {
	return &requestRepo{db: db}
}

// ────── Create ──────

func (r *requestRepo) Create(ctx context.Context, req *model.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// ────── Read ──────

func (r *requestRepo) GetByID(ctx context.Context, id int64) (*model.Request, error) {
	var req model.Request
	err := r.db.WithContext(ctx).
		Joins("Club").
		Preload("Room").
		Where("requests.request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List newest first, joined with the owning club
func (r *requestRepo) List(ctx context.Context, filter RequestFilter) ([]model.Request, error) {
	var list []model.Request
	db := r.db.WithContext(ctx).
		Joins("Club").
		Preload("Room")
	if filter.ClubID != nil {
		db = db.Where("requests.club_id = ?", *filter.ClubID)
	}
	if filter.Status != "" {
		db = db.Where("requests.status = ?", filter.Status)
	}
	err := db.
		Order("requests.created_at DESC").
		Order("requests.request_id DESC").
		Find(&list).Error
	return list, err
}

func (r *requestRepo) CountByStatus(ctx context.Context, clubID *int64, status model.RequestStatus) (int64, error) {
	var count int64
	db := scopeClub(r.db.WithContext(ctx).Model(&model.Request{}), clubID)
	err := db.Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountUpcoming approved requests dated today or later; today is compared as a calendar date
func (r *requestRepo) CountUpcoming(ctx context.Context, clubID *int64, today time.Time) (int64, error) {
	var count int64
	db := scopeClub(r.db.WithContext(ctx).Model(&model.Request{}), clubID)
	err := db.
		Where("status = ?", model.StatusApproved).
		Where("event_date >= ?", today.Format(time.DateOnly)).
		Count(&count).Error
	return count, err
}

// Latest most recently created request in scope
func (r *requestRepo) Latest(ctx context.Context, clubID *int64) (*model.Request, error) {
	var req model.Request
	db := r.db.WithContext(ctx).Joins("Club")
	if clubID != nil {
		db = db.Where("requests.club_id = ?", *clubID)
	}
	err := db.
		Order("requests.created_at DESC").
		Order("requests.request_id DESC").
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepo) ListApprovedEvents(ctx context.Context, clubID *int64) ([]model.Request, error) {
	var list []model.Request
	db := r.db.WithContext(ctx).
		Joins("Club").
		Preload("Room").
		Where("requests.status = ?", model.StatusApproved).
		Where("requests.event_date IS NOT NULL")
	if clubID != nil {
		db = db.Where("requests.club_id = ?", *clubID)
	}
	err := db.
		Order("requests.event_date ASC").
		Order("requests.start_time ASC").
		Find(&list).Error
	return list, err
}

// ────── Transition ──────

// TransitionFromPending moves a PENDING request to a decided status.
// The status guard lives in the WHERE clause so concurrent deciders are
// serialized by the database: exactly one sees a row affected.
func (r *requestRepo) TransitionFromPending(ctx context.Context, id int64, to model.RequestStatus, decidedBy int64, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("request_id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]interface{}{
			"status":     to,
			"decided_by": decidedBy,
			"decided_at": at,
			"updated_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrStatusConflict
	}
	return nil
}

func scopeClub(db *gorm.DB, clubID *int64) *gorm.DB {
	if clubID == nil {
		return db
	}
	return db.Where("club_id = ?", *clubID)
}
