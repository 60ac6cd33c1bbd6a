package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/dto"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/model"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/policy"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/repository"
)

// DashboardService metric cards and the latest-request notification
type DashboardService interface {
	ClubMetrics(ctx context.Context, session policy.Session, clubID int64) (*dto.ClubMetricsResponse, error)
	AdminMetrics(ctx context.Context, session policy.Session) (*dto.AdminMetricsResponse, error)
	LatestNotification(ctx context.Context, session policy.Session, ownerID int64) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, session policy.Session, ownerID, requestID int64) error
}

type dashboardService struct {
	policy policy.Policy
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time // server-local; "today" for upcoming events
}

// NewDashboardService creates a DashboardService
func NewDashboardService(pol policy.Policy, repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{
		policy: pol,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ── metrics ──

func (s *dashboardService) ClubMetrics(ctx context.Context, session policy.Session, clubID int64) (*dto.ClubMetricsResponse, error) {
	if err := s.policy.CanViewClub(session, clubID); err != nil {
		return nil, err
	}

	club, err := s.repo.Club.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, storeError(s.logger, "get club failed", err)
	}

	pending, upcoming, err := s.requestCounts(ctx, &clubID)
	if err != nil {
		return nil, err
	}

	return &dto.ClubMetricsResponse{
		TotalMembers:    club.TotalMembers,
		PendingRequests: pending,
		UpcomingEvents:  upcoming,
		CurrentBudget:   budgetNumber(club.Budget),
	}, nil
}

func (s *dashboardService) AdminMetrics(ctx context.Context, session policy.Session) (*dto.AdminMetricsResponse, error) {
	if err := s.policy.CanViewAllRequests(session); err != nil {
		return nil, err
	}

	totals, err := s.repo.Club.Totals(ctx)
	if err != nil {
		return nil, storeError(s.logger, "sum clubs failed", err)
	}

	pending, upcoming, err := s.requestCounts(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &dto.AdminMetricsResponse{
		TotalClubs:      totals.Clubs,
		TotalMembers:    totals.Members,
		PendingRequests: pending,
		UpcomingEvents:  upcoming,
	}, nil
}

func (s *dashboardService) requestCounts(ctx context.Context, clubID *int64) (pending, upcoming int64, err error) {
	pending, err = s.repo.Request.CountByStatus(ctx, clubID, model.StatusPending)
	if err != nil {
		return 0, 0, storeError(s.logger, "count pending requests failed", err)
	}
	upcoming, err = s.repo.Request.CountUpcoming(ctx, clubID, s.now())
	if err != nil {
		return 0, 0, storeError(s.logger, "count upcoming events failed", err)
	}
	return pending, upcoming, nil
}

// ── notifications ──

// LatestNotification wraps the newest request in scope; at most one entry.
// ownerID is the user whose notifications are read; only the session's own.
func (s *dashboardService) LatestNotification(ctx context.Context, session policy.Session, ownerID int64) ([]dto.NotificationResponse, error) {
	if err := s.policy.CanReadNotifications(session, ownerID); err != nil {
		return nil, err
	}

	scope, err := s.policy.ScopeClub(session)
	if err != nil {
		return nil, err
	}

	latest, err := s.repo.Request.Latest(ctx, scope)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.NotificationResponse{}, nil
		}
		return nil, storeError(s.logger, "get latest request failed", err)
	}

	isRead := latest.Status != model.StatusPending
	if !isRead {
		isRead, err = s.repo.NotificationRead.IsRead(ctx, ownerID, latest.RequestID)
		if err != nil {
			return nil, storeError(s.logger, "get read marker failed", err)
		}
	}

	n := dto.NotificationResponse{
		NotificationID: latest.RequestID,
		ClubID:         latest.ClubID,
		Title:          latest.Title,
		Type:           string(latest.Type),
		Status:         string(latest.Status),
		CreatedAt:      latest.CreatedAt.Format(time.RFC3339),
		IsRead:         isRead,
	}
	if latest.Club != nil {
		n.ClubName = latest.Club.Name
	}
	return []dto.NotificationResponse{n}, nil
}

// MarkRead records that ownerID, who must be the session user, has seen the
// request's notification
func (s *dashboardService) MarkRead(ctx context.Context, session policy.Session, ownerID, requestID int64) error {
	if err := s.policy.CanReadNotifications(session, ownerID); err != nil {
		return err
	}

	record, err := s.repo.Request.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return storeError(s.logger, "get request failed", err)
	}

	if err := s.policy.CanViewClub(session, record.ClubID); err != nil {
		return err
	}

	if err := s.repo.NotificationRead.MarkRead(ctx, ownerID, requestID, s.now().UTC()); err != nil {
		return storeError(s.logger, "mark notification read failed", err)
	}
	return nil
}
