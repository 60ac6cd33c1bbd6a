package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/dto"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/service"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/response"
)

// RequestHandler request submission and lookup
type RequestHandler struct {
	requestSvc service.RequestService
}

// NewRequestHandler creates a RequestHandler
func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

// Create submits a request for the leader's club
// POST /api/requests
func (h *RequestHandler) Create(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.requestSvc.Create(c.Request.Context(), session, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// Get one request
// GET /api/requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}
	requestID, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.requestSvc.Get(c.Request.Context(), session, requestID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}
