package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/dto"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/policy"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/service"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/response"
)

// NotificationHandler latest-request notifications
type NotificationHandler struct {
	dashboardSvc service.DashboardService
}

// NewNotificationHandler creates a NotificationHandler
func NewNotificationHandler(dashboardSvc service.DashboardService) *NotificationHandler {
	return &NotificationHandler{dashboardSvc: dashboardSvc}
}

// List at most one notification: the newest request in the caller's scope
// GET /api/notifications?user_id=
func (h *NotificationHandler) List(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}
	ownerID, ok := notificationOwner(c, session)
	if !ok {
		return
	}

	list, err := h.dashboardSvc.LatestNotification(c.Request.Context(), session, ownerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, list)
}

// MarkRead
// PATCH /api/notifications/:id/read?user_id=
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}
	requestID, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}
	ownerID, ok := notificationOwner(c, session)
	if !ok {
		return
	}

	if err := h.dashboardSvc.MarkRead(c.Request.Context(), session, ownerID, requestID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "notification marked as read"})
}

// notificationOwner the user_id a client names, defaulting to the session user
func notificationOwner(c *gin.Context, session policy.Session) (int64, bool) {
	var query dto.NotificationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "invalid user_id")
		return 0, false
	}
	if query.UserID == nil {
		return session.UserID, true
	}
	return *query.UserID, true
}
