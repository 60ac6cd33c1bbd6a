package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/FarahAbdullah11/NU-CLUBS/config"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/policy"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/repository"
	pkgerrors "github.com/FarahAbdullah11/NU-CLUBS/pkg/errors"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/jwt"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/metrics"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/redis"
)

// ErrUnavailable the store could not be reached; the caller decides whether to retry
var ErrUnavailable = errors.New("service temporarily unavailable")

// Service aggregate of every service
type Service struct {
	Auth      AuthService
	Club      ClubService
	Request   RequestService
	Dashboard DashboardService
	Export    ExportService
	Calendar  CalendarService
}

// NewService creates the Service aggregate
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	m *metrics.Metrics,
	logger *zap.Logger,
) (*Service, error) {
	pol := policy.New(cfg.Feature.StudentLifeCanDecide)

	auth, err := NewAuthService(&cfg.Auth, repo, jwtMgr, rdb, m, logger)
	if err != nil {
		return nil, err
	}

	return &Service{
		Auth:      auth,
		Club:      NewClubService(pol, repo, logger),
		Request:   NewRequestService(pol, repo, m, logger),
		Dashboard: NewDashboardService(pol, repo, logger),
		Export:    NewExportService(pol, repo, logger),
		Calendar:  NewCalendarService(pol, repo, logger),
	}, nil
}

// storeError logs a repository failure and classifies it; an unreachable
// store becomes ErrUnavailable, anything else stays an internal error
func storeError(logger *zap.Logger, msg string, err error) error {
	if pkgerrors.IsUnavailable(err) {
		logger.Warn(msg, zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	logger.Error(msg, zap.Error(err))
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
