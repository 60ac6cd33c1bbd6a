package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/dto"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/service"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler the review surface shared by both administrator roles
type AdminHandler struct {
	requestSvc   service.RequestService
	dashboardSvc service.DashboardService
	exportSvc    service.ExportService
	calendarSvc  service.CalendarService
}

// NewAdminHandler creates an AdminHandler
func NewAdminHandler(
	requestSvc service.RequestService,
	dashboardSvc service.DashboardService,
	exportSvc service.ExportService,
	calendarSvc service.CalendarService,
) *AdminHandler {
	return &AdminHandler{
		requestSvc:   requestSvc,
		dashboardSvc: dashboardSvc,
		exportSvc:    exportSvc,
		calendarSvc:  calendarSvc,
	}
}

// ListRequests every club's requests with club names, newest first.
// The legacy user_id query parameter is ignored.
// GET /api/admin/requests?status=
func (h *AdminHandler) ListRequests(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	var query dto.RequestListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "invalid query")
		return
	}

	result, err := h.requestSvc.ListAll(c.Request.Context(), session, query.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateStatus approves or rejects a pending request
// PUT /api/admin/requests/:id/status
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}
	requestID, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.requestSvc.Transition(c.Request.Context(), session, requestID, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Metrics admin dashboard cards
// GET /api/admin/metrics
func (h *AdminHandler) Metrics(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	result, err := h.dashboardSvc.AdminMetrics(c.Request.Context(), session)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Export the admin listing as a spreadsheet
// GET /api/admin/requests/export?status=
func (h *AdminHandler) Export(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportRequests(c.Request.Context(), session, c.Query("status"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Calendar iCalendar feed of every approved event
// GET /api/admin/calendar.ics
func (h *AdminHandler) Calendar(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	body, err := h.calendarSvc.AllCalendar(c.Request.Context(), session)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=club-events.ics")
	c.Data(http.StatusOK, calendarContentType, []byte(body))
}
