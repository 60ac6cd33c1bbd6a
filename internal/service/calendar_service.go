package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/model"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/policy"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/repository"
)

// CalendarService iCalendar feeds of approved, dated requests
type CalendarService interface {
	ClubCalendar(ctx context.Context, session policy.Session, clubID int64) (string, error)
	AllCalendar(ctx context.Context, session policy.Session) (string, error)
}

type calendarService struct {
	policy policy.Policy
	repo   *repository.Repository
	logger *zap.Logger
	loc    *time.Location // event dates and times are server-local
	now    func() time.Time
}

// NewCalendarService creates a CalendarService
func NewCalendarService(pol policy.Policy, repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{
		policy: pol,
		repo:   repo,
		logger: logger,
		loc:    time.Local,
		now:    time.Now,
	}
}

func (s *calendarService) ClubCalendar(ctx context.Context, session policy.Session, clubID int64) (string, error) {
	if err := s.policy.CanViewClub(session, clubID); err != nil {
		return "", err
	}

	club, err := s.repo.Club.GetByID(ctx, clubID)
	if err != nil {
		if isNotFound(err) {
			return "", ErrClubNotFound
		}
		return "", storeError(s.logger, "get club failed", err)
	}

	list, err := s.repo.Request.ListApprovedEvents(ctx, &clubID)
	if err != nil {
		return "", storeError(s.logger, "list approved events failed", err)
	}
	return s.render(club.Name+" Events", list), nil
}

func (s *calendarService) AllCalendar(ctx context.Context, session policy.Session) (string, error) {
	if err := s.policy.CanViewAllRequests(session); err != nil {
		return "", err
	}

	list, err := s.repo.Request.ListApprovedEvents(ctx, nil)
	if err != nil {
		return "", storeError(s.logger, "list approved events failed", err)
	}
	return s.render("NU Club Events", list), nil
}

func (s *calendarService) render(name string, list []model.Request) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//NU Clubs//Approved Requests//EN")
	cal.SetXWRCalName(name)

	stamp := s.now().UTC()
	for i := range list {
		r := &list[i]
		if r.EventDate == nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("request-%d@nu-clubs", r.RequestID))
		event.SetDtStampTime(stamp)
		event.SetSummary(r.Title)
		event.SetProperty(ics.ComponentPropertyStatus, "CONFIRMED")
		event.SetProperty(ics.ComponentPropertyCategories, string(r.Type))
		if r.Description != "" {
			event.SetDescription(r.Description)
		}
		if where := eventLocation(r); where != "" {
			event.SetLocation(where)
		}

		start, okStart := s.clockOn(*r.EventDate, r.StartTime)
		end, okEnd := s.clockOn(*r.EventDate, r.EndTime)
		switch {
		case okStart && okEnd:
			event.SetStartAt(start)
			event.SetEndAt(end)
		case okStart:
			event.SetStartAt(start)
			event.SetEndAt(start.Add(time.Hour))
		default:
			day := time.Date(r.EventDate.Year(), r.EventDate.Month(), r.EventDate.Day(), 0, 0, 0, 0, s.loc)
			event.SetAllDayStartAt(day)
			event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}
	}

	return cal.Serialize()
}

// clockOn combines a calendar date with an HH:MM[:SS] clock value
func (s *calendarService) clockOn(date time.Time, clock *string) (time.Time, bool) {
	hm := trimClock(clock)
	if hm == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("15:04", *hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, s.loc), true
}

func eventLocation(r *model.Request) string {
	var parts []string
	if r.Room != nil {
		parts = append(parts, r.Room.Name)
	}
	if r.Location != nil && *r.Location != "" {
		parts = append(parts, *r.Location)
	}
	return strings.Join(parts, ", ")
}
