package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/FarahAbdullah11/NU-CLUBS/config"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/dto"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/model"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/policy"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/repository"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/jwt"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/metrics"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied: only club leaders and administrators can access the dashboard")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordMismatch   = errors.New("current password is incorrect")
)

// AuthService authentication
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, session policy.Session) (*dto.UserResponse, error)
	Logout(ctx context.Context, session policy.Session) error
	ChangePassword(ctx context.Context, session policy.Session, req *dto.ChangePasswordRequest) error
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	rdb       *redis.Client
	metrics   *metrics.Metrics
	logger    *zap.Logger
	cost      int
	dummyHash []byte
}

// NewAuthService creates an AuthService. rdb and m may be nil.
func NewAuthService(
	cfg *config.AuthConfig,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	m *metrics.Metrics,
	logger *zap.Logger,
) (AuthService, error) {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}

	// unknown identifiers are verified against this hash so that both
	// failure paths spend one bcrypt comparison
	dummy, err := bcrypt.GenerateFromPassword([]byte("nu-clubs/unknown-identifier"), cost)
	if err != nil {
		return nil, err
	}

	return &authService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		rdb:       rdb,
		metrics:   m,
		logger:    logger,
		cost:      cost,
		dummyHash: dummy,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)

	// 1. lookup by university id or email
	user, err := s.repo.User.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			s.metrics.Login("invalid")
			return nil, ErrInvalidCredentials
		}
		s.metrics.Login("error")
		return nil, storeError(s.logger, "lookup user failed", err)
	}

	// 2. verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.metrics.Login("invalid")
		return nil, ErrInvalidCredentials
	}
	s.rehashIfStale(ctx, user, req.Password)

	// 3. portal roles only; a leader must belong to a club
	if !user.Role.IsPortalRole() || (user.Role == model.RoleClubLeader && user.ClubID == nil) {
		s.metrics.Login("denied")
		return nil, ErrAccessDenied
	}

	// 4. issue session
	token, _, err := s.jwtMgr.Issue(user.UserID, string(user.Role), user.ClubID, user.Email)
	if err != nil {
		s.logger.Error("sign session token failed", zap.Error(err))
		s.metrics.Login("error")
		return nil, err
	}

	s.metrics.Login("ok")
	s.logger.Info("user signed in",
		zap.Int64("user_id", user.UserID),
		zap.String("role", string(user.Role)),
	)

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int(s.jwtMgr.TTL().Seconds()),
		User:      toUserResponse(user),
	}, nil
}

// rehashIfStale rotates a verified hash onto the configured cost, keeping
// wrong-password and unknown-identifier checks at the same bcrypt cost.
// Failures are logged only; the login itself already succeeded.
func (s *authService) rehashIfStale(ctx context.Context, user *model.User, password string) {
	cost, err := bcrypt.Cost([]byte(user.PasswordHash))
	if err != nil || cost == s.cost {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		s.logger.Warn("rehash password failed", zap.Int64("user_id", user.UserID), zap.Error(err))
		return
	}
	if err := s.repo.User.UpdatePasswordHash(ctx, user.UserID, string(hash)); err != nil {
		s.logger.Warn("store rehashed password failed", zap.Int64("user_id", user.UserID), zap.Error(err))
		return
	}

	s.logger.Info("password hash cost rotated",
		zap.Int64("user_id", user.UserID),
		zap.Int("from", cost),
		zap.Int("to", s.cost),
	)
}

func (s *authService) Me(ctx context.Context, session policy.Session) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeError(s.logger, "get user failed", err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// Logout revokes the session token until its natural expiry.
// Without Redis sessions cannot be revoked early and this is a no-op.
func (s *authService) Logout(ctx context.Context, session policy.Session) error {
	if session.TokenID == "" {
		return nil
	}
	if err := s.rdb.RevokeSession(ctx, session.TokenID, time.Until(session.ExpiresAt)); err != nil {
		s.logger.Warn("revoke session failed", zap.Int64("user_id", session.UserID), zap.Error(err))
		return ErrUnavailable
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, session policy.Session, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return storeError(s.logger, "get user failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return err
	}

	if err := s.repo.User.UpdatePasswordHash(ctx, user.UserID, string(hash)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return storeError(s.logger, "update password failed", err)
	}

	s.logger.Info("password changed", zap.Int64("user_id", user.UserID))
	return nil
}

func toUserResponse(user *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		UserID:       user.UserID,
		UniversityID: user.UniversityID,
		FullName:     user.FullName,
		Email:        user.Email,
		Role:         string(user.Role),
		ClubID:       user.ClubID,
	}
	if user.Club != nil {
		resp.ClubName = user.Club.Name
		resp.LogoURL = user.Club.LogoURL
	}
	return resp
}
