package dto

import "encoding/json"

// ── Auth responses ──

// LoginResponse issued session
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // seconds
	User      UserResponse `json:"user"`
}

// UserResponse redacted user profile
type UserResponse struct {
	UserID       int64   `json:"user_id"`
	UniversityID *string `json:"university_id,omitempty"`
	FullName     string  `json:"fullname"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	ClubID       *int64  `json:"club_id"`
	ClubName     string  `json:"club_name,omitempty"`
	LogoURL      string  `json:"logo_url,omitempty"`
}

// ── Club responses ──

// ClubResponse club record
type ClubResponse struct {
	ClubID       int64       `json:"club_id"`
	ClubName     string      `json:"club_name"`
	Description  string      `json:"description,omitempty"`
	LogoURL      string      `json:"logo_url,omitempty"`
	Budget       json.Number `json:"budget"` // NUMERIC(10,2), rendered unquoted without float rounding
	TotalMembers int         `json:"total_members"`
}

// RoomResponse room lookup entry
type RoomResponse struct {
	RoomID   int64  `json:"room_id"`
	RoomName string `json:"room_name"`
	Purpose  string `json:"purpose,omitempty"`
	Capacity int    `json:"capacity"`
}

// ── Request responses ──

// RequestResponse request record with its club name
type RequestResponse struct {
	RequestID   int64   `json:"request_id"`
	ClubID      int64   `json:"club_id"`
	ClubName    string  `json:"club_name,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	EventDate   *string `json:"event_date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Location    *string `json:"location"`
	RoomID      *int64  `json:"room_id"`
	RoomName    string  `json:"room_name,omitempty"`
	SubmittedBy int64   `json:"submitted_by"`
	DecidedBy   *int64  `json:"decided_by"`
	DecidedAt   *string `json:"decided_at"`
	CreatedAt   string  `json:"created_at"`
}

// AdminRequestListResponse the shared admin listing; CanMutate tells the
// client whether to render the decision controls
type AdminRequestListResponse struct {
	CanMutate bool              `json:"can_mutate"`
	List      []RequestResponse `json:"list"`
}

// ── Dashboard responses ──

// ClubMetricsResponse club dashboard cards
type ClubMetricsResponse struct {
	TotalMembers    int         `json:"total_members"`
	PendingRequests int64       `json:"pending_requests"`
	UpcomingEvents  int64       `json:"upcoming_events"`
	CurrentBudget   json.Number `json:"current_budget"`
}

// AdminMetricsResponse admin dashboard cards
type AdminMetricsResponse struct {
	TotalClubs      int64 `json:"total_clubs"`
	TotalMembers    int64 `json:"total_members"`
	PendingRequests int64 `json:"pending_requests"`
	UpcomingEvents  int64 `json:"upcoming_events"`
}

// NotificationResponse synthetic notification over the latest request
type NotificationResponse struct {
	NotificationID int64  `json:"notification_id"` // the request id
	ClubID         int64  `json:"club_id"`
	ClubName       string `json:"club_name,omitempty"`
	Title          string `json:"title"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	IsRead         bool   `json:"is_read"`
}
