package dto

// ── Request DTO ──

// CreateRequestRequest submission body. ClubID defaults to the session's club.
// Field validation beyond presence happens in the service so that every
// transport sees the same rules.
type CreateRequestRequest struct {
	ClubID      *int64 `json:"club_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"        binding:"required"`
	EventDate   string `json:"event_date"` // YYYY-MM-DD
	StartTime   string `json:"start_time"` // HH:MM
	EndTime     string `json:"end_time"`   // HH:MM
	Location    string `json:"location"`
	RoomID      *int64 `json:"room_id"`
}

// UpdateStatusRequest decision body. A user_id field sent by older clients
// is accepted and ignored; the decider is always the session user.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	UserID *int64 `json:"user_id"`
}

// RequestListQuery listing filter
type RequestListQuery struct {
	Status string `form:"status"`
	UserID *int64 `form:"user_id"` // ignored
}

// NotificationQuery notification routes. user_id names the notification
// owner; it defaults to the session user and any other value is refused.
type NotificationQuery struct {
	UserID *int64 `form:"user_id"`
}
