package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/dto"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/model"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/policy"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/repository"
	pkgerrors "github.com/FarahAbdullah11/NU-CLUBS/pkg/errors"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/metrics"
)

// ── request validation errors ──

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title must be at most 255 characters")
	ErrInvalidRequestType  = errors.New("type must be one of ROOM_BOOKING, EVENT, FUNDING")
	ErrInvalidEventDate    = errors.New("event_date must be formatted YYYY-MM-DD")
	ErrInvalidTime         = errors.New("start_time and end_time must be formatted HH:MM")
	ErrInvalidTimeRange    = errors.New("end_time must be after start_time")
	ErrRoomNotFound        = errors.New("room_id is not a recognized room")
	ErrInvalidStatus       = errors.New("status must be APPROVED or REJECTED")
	ErrInvalidStatusFilter = errors.New("status filter must be PENDING, APPROVED, REJECTED or CANCELLED")
)

// ── lifecycle errors ──

var (
	ErrRequestNotFound   = errors.New("request not found")
	ErrInvalidTransition = errors.New("request has already been decided")
)

const maxTitleLength = 255

// RequestService request lifecycle: PENDING -> APPROVED | REJECTED, both terminal
type RequestService interface {
	Create(ctx context.Context, session policy.Session, req *dto.CreateRequestRequest) (*dto.RequestResponse, error)
	Get(ctx context.Context, session policy.Session, requestID int64) (*dto.RequestResponse, error)
	ListForClub(ctx context.Context, session policy.Session, clubID int64, status string) ([]dto.RequestResponse, error)
	ListAll(ctx context.Context, session policy.Session, status string) (*dto.AdminRequestListResponse, error)
	Transition(ctx context.Context, session policy.Session, requestID int64, status string) (*dto.RequestResponse, error)
}

type requestService struct {
	policy  policy.Policy
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewRequestService creates a RequestService. m may be nil.
func NewRequestService(pol policy.Policy, repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) RequestService {
	return &requestService{
		policy:  pol,
		repo:    repo,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// ═══════════════════════════════════════════════════════════
// Create
// ═══════════════════════════════════════════════════════════

func (s *requestService) Create(ctx context.Context, session policy.Session, req *dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	// 1. the owning club defaults to the session's club; authorize before
	// any validation touches the store
	var clubID int64
	if req.ClubID != nil {
		clubID = *req.ClubID
	} else if session.ClubID != nil {
		clubID = *session.ClubID
	}
	if err := s.policy.CanCreateRequest(session, clubID); err != nil {
		return nil, err
	}

	// 2. validate input
	record, err := s.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	record.ClubID = clubID

	// 3. persist as PENDING
	now := s.now().UTC()
	record.Status = model.StatusPending
	record.SubmittedBy = session.UserID
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := s.repo.Request.Create(ctx, record); err != nil {
		return nil, storeError(s.logger, "create request failed", err)
	}

	s.metrics.RequestCreated(string(record.Type))
	s.logger.Info("request submitted",
		zap.Int64("request_id", record.RequestID),
		zap.Int64("club_id", record.ClubID),
		zap.String("type", string(record.Type)),
		zap.Int64("user_id", session.UserID),
	)

	resp := toRequestResponse(record)
	return &resp, nil
}

// buildRequest validates the submission and maps it onto a model
func (s *requestService) buildRequest(ctx context.Context, req *dto.CreateRequestRequest) (*model.Request, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}

	reqType := model.RequestType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if !reqType.IsValid() {
		return nil, ErrInvalidRequestType
	}

	record := &model.Request{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Type:        reqType,
	}

	if v := strings.TrimSpace(req.EventDate); v != "" {
		date, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return nil, ErrInvalidEventDate
		}
		record.EventDate = &date
	}

	start, err := parseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(req.EndTime)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil {
		if *end <= *start {
			return nil, ErrInvalidTimeRange
		}
	}
	record.StartTime = start
	record.EndTime = end

	if v := strings.TrimSpace(req.Location); v != "" {
		record.Location = &v
	}

	if req.RoomID != nil {
		exists, err := s.repo.Room.Exists(ctx, *req.RoomID)
		if err != nil {
			return nil, storeError(s.logger, "check room failed", err)
		}
		if !exists {
			return nil, ErrRoomNotFound
		}
		roomID := *req.RoomID
		record.RoomID = &roomID
	}

	return record, nil
}

// parseClock validates an HH:MM value; empty means unset
func parseClock(v string) (*string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		return nil, ErrInvalidTime
	}
	normalized := t.Format("15:04")
	return &normalized, nil
}

// ═══════════════════════════════════════════════════════════
// Read
// ═══════════════════════════════════════════════════════════

func (s *requestService) Get(ctx context.Context, session policy.Session, requestID int64) (*dto.RequestResponse, error) {
	record, err := s.repo.Request.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, storeError(s.logger, "get request failed", err)
	}

	if err := s.policy.CanViewClub(session, record.ClubID); err != nil {
		return nil, err
	}

	resp := toRequestResponse(record)
	return &resp, nil
}

func (s *requestService) ListForClub(ctx context.Context, session policy.Session, clubID int64, status string) ([]dto.RequestResponse, error) {
	if err := s.policy.CanViewClub(session, clubID); err != nil {
		return nil, err
	}

	filterStatus, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.Club.Exists(ctx, clubID)
	if err != nil {
		return nil, storeError(s.logger, "check club failed", err)
	}
	if !exists {
		return nil, ErrClubNotFound
	}

	list, err := s.repo.Request.List(ctx, repository.RequestFilter{ClubID: &clubID, Status: filterStatus})
	if err != nil {
		return nil, storeError(s.logger, "list club requests failed", err)
	}
	return toRequestResponses(list), nil
}

// ListAll serves both the decision surface and its read-only projection;
// CanMutate tells them apart
func (s *requestService) ListAll(ctx context.Context, session policy.Session, status string) (*dto.AdminRequestListResponse, error) {
	if err := s.policy.CanViewAllRequests(session); err != nil {
		return nil, err
	}

	filterStatus, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.Request.List(ctx, repository.RequestFilter{Status: filterStatus})
	if err != nil {
		return nil, storeError(s.logger, "list requests failed", err)
	}

	return &dto.AdminRequestListResponse{
		CanMutate: s.policy.CanMutateRequests(session) == nil,
		List:      toRequestResponses(list),
	}, nil
}

func parseStatusFilter(v string) (model.RequestStatus, error) {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return "", nil
	}
	status := model.RequestStatus(v)
	if !status.IsValid() {
		return "", ErrInvalidStatusFilter
	}
	return status, nil
}

// ═══════════════════════════════════════════════════════════
// Transition
// ═══════════════════════════════════════════════════════════

func (s *requestService) Transition(ctx context.Context, session policy.Session, requestID int64, status string) (*dto.RequestResponse, error) {
	to := model.RequestStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !to.IsDecision() {
		return nil, ErrInvalidStatus
	}

	if err := s.policy.CanMutateRequests(session); err != nil {
		s.metrics.Transition(string(to), "forbidden")
		return nil, err
	}

	record, err := s.repo.Request.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.Transition(string(to), "not_found")
			return nil, ErrRequestNotFound
		}
		return nil, storeError(s.logger, "get request failed", err)
	}

	if record.Status != model.StatusPending {
		s.metrics.Transition(string(to), "conflict")
		return nil, ErrInvalidTransition
	}

	decidedAt := s.now().UTC()
	if err := s.repo.Request.TransitionFromPending(ctx, requestID, to, session.UserID, decidedAt); err != nil {
		if errors.Is(err, pkgerrors.ErrStatusConflict) {
			// another decider won between the read and the write
			s.metrics.Transition(string(to), "conflict")
			return nil, ErrInvalidTransition
		}
		return nil, storeError(s.logger, "transition request failed", err)
	}

	s.metrics.Transition(string(to), "ok")
	s.logger.Info("request decided",
		zap.Int64("request_id", requestID),
		zap.String("status", string(to)),
		zap.Int64("decided_by", session.UserID),
	)

	record.Status = to
	record.DecidedBy = &session.UserID
	record.DecidedAt = &decidedAt
	record.UpdatedAt = decidedAt

	resp := toRequestResponse(record)
	return &resp, nil
}

// ── conversion ──

func toRequestResponses(list []model.Request) []dto.RequestResponse {
	result := make([]dto.RequestResponse, 0, len(list))
	for i := range list {
		result = append(result, toRequestResponse(&list[i]))
	}
	return result
}

func toRequestResponse(r *model.Request) dto.RequestResponse {
	resp := dto.RequestResponse{
		RequestID:   r.RequestID,
		ClubID:      r.ClubID,
		Title:       r.Title,
		Description: r.Description,
		Type:        string(r.Type),
		Status:      string(r.Status),
		StartTime:   trimClock(r.StartTime),
		EndTime:     trimClock(r.EndTime),
		Location:    r.Location,
		RoomID:      r.RoomID,
		SubmittedBy: r.SubmittedBy,
		DecidedBy:   r.DecidedBy,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
	if r.Club != nil {
		resp.ClubName = r.Club.Name
	}
	if r.Room != nil {
		resp.RoomName = r.Room.Name
	}
	if r.EventDate != nil {
		d := r.EventDate.Format(time.DateOnly)
		resp.EventDate = &d
	}
	if r.DecidedAt != nil {
		d := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &d
	}
	return resp
}

// trimClock drops the seconds PostgreSQL appends to TIME values
func trimClock(v *string) *string {
	if v == nil {
		return nil
	}
	t := *v
	if len(t) > 5 {
		t = t[:5]
	}
	return &t
}
