package model

import "time"

// RequestType kind of resource a club asks for
type RequestType string

const (
	RequestTypeRoomBooking RequestType = "ROOM_BOOKING"
	RequestTypeEvent       RequestType = "EVENT"
	RequestTypeFunding     RequestType = "FUNDING"
)

// IsValid reports whether t is one of the enumerated kinds
func (t RequestType) IsValid() bool {
	switch t {
	case RequestTypeRoomBooking, RequestTypeEvent, RequestTypeFunding:
		return true
	default:
		return false
	}
}

// Scheduled room bookings and events carry a date and time window
func (t RequestType) Scheduled() bool {
	return t == RequestTypeRoomBooking || t == RequestTypeEvent
}

// RequestStatus lifecycle status.
// PENDING -> APPROVED | REJECTED; every non-PENDING status is terminal.
type RequestStatus string

const (
	StatusPending   RequestStatus = "PENDING"
	StatusApproved  RequestStatus = "APPROVED"
	StatusRejected  RequestStatus = "REJECTED"
	StatusCancelled RequestStatus = "CANCELLED"
)

// IsValid reports whether s is a known status
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsDecision reports whether s is a status an administrator may set
func (s RequestStatus) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

// Request requests table
type Request struct {
	RequestID   int64         `gorm:"primaryKey;autoIncrement"                      json:"request_id"`
	ClubID      int64         `gorm:"not null;index"                                json:"club_id"`
	Title       string        `gorm:"type:varchar(255);not null"                    json:"title"`
	Description string        `gorm:"type:text"                                     json:"description,omitempty"`
	Type        RequestType   `gorm:"column:request_type;type:varchar(20);not null" json:"type"`
	Status      RequestStatus `gorm:"type:varchar(20);not null;default:'PENDING'"   json:"status"`
	EventDate   *time.Time    `gorm:"type:date"                                     json:"event_date,omitempty"`
	StartTime   *string       `gorm:"type:time"                                     json:"start_time,omitempty"`
	EndTime     *string       `gorm:"type:time"                                     json:"end_time,omitempty"`
	Location    *string       `gorm:"type:varchar(255)"                             json:"location,omitempty"`
	RoomID      *int64        `json:"room_id,omitempty"`
	SubmittedBy int64         `gorm:"not null"                                      json:"submitted_by"`
	DecidedBy   *int64        `json:"decided_by,omitempty"`
	DecidedAt   *time.Time    `json:"decided_at,omitempty"`
	Timestamps

	Club *Club `gorm:"foreignKey:ClubID;references:ClubID" json:"club,omitempty"`
	Room *Room `gorm:"foreignKey:RoomID;references:RoomID" json:"room,omitempty"`
}

// TableName table name
func (Request) TableName() string { return "requests" }
