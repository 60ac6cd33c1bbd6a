package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/dto"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/service"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/response"
)

const calendarContentType = "text/calendar; charset=utf-8"

// ClubHandler club-scoped endpoints
type ClubHandler struct {
	clubSvc      service.ClubService
	requestSvc   service.RequestService
	dashboardSvc service.DashboardService
	calendarSvc  service.CalendarService
}

// NewClubHandler creates a ClubHandler
func NewClubHandler(
	clubSvc service.ClubService,
	requestSvc service.RequestService,
	dashboardSvc service.DashboardService,
	calendarSvc service.CalendarService,
) *ClubHandler {
	return &ClubHandler{
		clubSvc:      clubSvc,
		requestSvc:   requestSvc,
		dashboardSvc: dashboardSvc,
		calendarSvc:  calendarSvc,
	}
}

// List all clubs (admins)
// GET /api/clubs
func (h *ClubHandler) List(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	clubs, err := h.clubSvc.List(c.Request.Context(), session)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, clubs)
}

// Get one club
// GET /api/clubs/:id
func (h *ClubHandler) Get(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}
	clubID, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	club, err := h.clubSvc.Get(c.Request.Context(), session, clubID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, club)
}

// Metrics dashboard cards of one club
// GET /api/clubs/:id/metrics
func (h *ClubHandler) Metrics(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}
	clubID, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	metrics, err := h.dashboardSvc.ClubMetrics(c.Request.Context(), session, clubID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, metrics)
}

// Requests of one club, newest first
// GET /api/clubs/:id/requests?status=
func (h *ClubHandler) Requests(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}
	clubID, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	var query dto.RequestListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "invalid query")
		return
	}

	list, err := h.requestSvc.ListForClub(c.Request.Context(), session, clubID, query.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, list)
}

// Calendar iCalendar feed of the club's approved events
// GET /api/clubs/:id/calendar.ics
func (h *ClubHandler) Calendar(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}
	clubID, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	body, err := h.calendarSvc.ClubCalendar(c.Request.Context(), session, clubID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=club-%d.ics", clubID))
	c.Data(http.StatusOK, calendarContentType, []byte(body))
}

// Rooms the bookable room lookup table
// GET /api/rooms
func (h *ClubHandler) Rooms(c *gin.Context) {
	if _, ok := MustGetSession(c); !ok {
		return
	}

	rooms, err := h.clubSvc.ListRooms(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, rooms)
}
