package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/policy"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/service"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/response"
)

// handleServiceError maps service errors to status codes and stable error codes
func handleServiceError(c *gin.Context, err error) {
	switch {
	// ── authorization ──
	case errors.Is(err, policy.ErrForbidden):
		response.Forbidden(c, 10003, "forbidden")

	// ── auth ──
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 11001, "invalid credentials")
	case errors.Is(err, service.ErrAccessDenied):
		response.Forbidden(c, 11002, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11003, "user not found")
	case errors.Is(err, service.ErrPasswordMismatch):
		response.BadRequest(c, 11004, "current password is incorrect")

	// ── clubs ──
	case errors.Is(err, service.ErrClubNotFound):
		response.NotFound(c, 12001, "club not found")

	// ── requests ──
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, 13001, "request not found")
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrTitleTooLong),
		errors.Is(err, service.ErrInvalidRequestType),
		errors.Is(err, service.ErrInvalidEventDate),
		errors.Is(err, service.ErrInvalidTime),
		errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 13002, err.Error())
	case errors.Is(err, service.ErrRoomNotFound):
		response.BadRequest(c, 13003, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, 13004, err.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 13005, err.Error())
	case errors.Is(err, service.ErrInvalidStatusFilter):
		response.BadRequest(c, 13006, err.Error())

	// ── infrastructure ──
	case errors.Is(err, service.ErrUnavailable):
		response.Unavailable(c)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
