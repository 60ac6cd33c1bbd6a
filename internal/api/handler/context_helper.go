package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/policy"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/response"
)

// sessionKey set by middleware.SessionAuth
const sessionKey = "session"

// MustGetSession returns the verified session. If the auth middleware did
// not run it writes 401 and returns false; callers return immediately.
func MustGetSession(c *gin.Context) (policy.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return policy.Session{}, false
	}
	s, ok := v.(policy.Session)
	if !ok || s.UserID == 0 {
		response.Unauthorized(c, 10002, "not authenticated")
		return policy.Session{}, false
	}
	return s, true
}

// MustGetIDParam parses a positive integer path parameter; writes 400 otherwise
func MustGetIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "invalid "+name)
		return 0, false
	}
	return id, true
}

// bindError reports a body that failed to bind
func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid request body", err.Error())
}
