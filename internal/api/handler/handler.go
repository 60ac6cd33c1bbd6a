package handler

import "github.com/FarahAbdullah11/NU-CLUBS/internal/service"

// Handler aggregate of every handler
type Handler struct {
	Auth         *AuthHandler
	Club         *ClubHandler
	Request      *RequestHandler
	Admin        *AdminHandler
	Notification *NotificationHandler
}

// NewHandler creates the Handler aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Club:         NewClubHandler(svc.Club, svc.Request, svc.Dashboard, svc.Calendar),
		Request:      NewRequestHandler(svc.Request),
		Admin:        NewAdminHandler(svc.Request, svc.Dashboard, svc.Export, svc.Calendar),
		Notification: NewNotificationHandler(svc.Dashboard),
	}
}
