package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/dto"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/model"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/policy"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/repository"
)

var ErrClubNotFound = errors.New("club not found")

// ClubService club reference data
type ClubService interface {
	Get(ctx context.Context, session policy.Session, clubID int64) (*dto.ClubResponse, error)
	List(ctx context.Context, session policy.Session) ([]dto.ClubResponse, error)
	ListRooms(ctx context.Context) ([]dto.RoomResponse, error)
}

type clubService struct {
	policy policy.Policy
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClubService creates a ClubService
func NewClubService(pol policy.Policy, repo *repository.Repository, logger *zap.Logger) ClubService {
	return &clubService{policy: pol, repo: repo, logger: logger}
}

func (s *clubService) Get(ctx context.Context, session policy.Session, clubID int64) (*dto.ClubResponse, error) {
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

	resp := toClubResponse(club)
	return &resp, nil
}

func (s *clubService) List(ctx context.Context, session policy.Session) ([]dto.ClubResponse, error) {
	if err := s.policy.CanListClubs(session); err != nil {
		return nil, err
	}

	clubs, err := s.repo.Club.List(ctx)
	if err != nil {
		return nil, storeError(s.logger, "list clubs failed", err)
	}

	result := make([]dto.ClubResponse, 0, len(clubs))
	for i := range clubs {
		result = append(result, toClubResponse(&clubs[i]))
	}
	return result, nil
}

func (s *clubService) ListRooms(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := s.repo.Room.List(ctx)
	if err != nil {
		return nil, storeError(s.logger, "list rooms failed", err)
	}

	result := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		result = append(result, dto.RoomResponse{
			RoomID:   r.RoomID,
			RoomName: r.Name,
			Purpose:  r.Purpose,
			Capacity: r.Capacity,
		})
	}
	return result, nil
}

func toClubResponse(c *model.Club) dto.ClubResponse {
	return dto.ClubResponse{
		ClubID:       c.ClubID,
		ClubName:     c.Name,
		Description:  c.Description,
		LogoURL:      c.LogoURL,
		Budget:       budgetNumber(c.Budget),
		TotalMembers: c.TotalMembers,
	}
}

// budgetNumber renders a NUMERIC(10,2) amount with exactly two decimals
func budgetNumber(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
