package model

import "time"

// Room bookable room; the fixed lookup table referenced by room_id
type Room struct {
	RoomID    int64     `gorm:"primaryKey;autoIncrement"                    json:"room_id"`
	Name      string    `gorm:"column:room_name;type:varchar(100);not null" json:"room_name"`
	Purpose   string    `gorm:"type:text"                                   json:"purpose,omitempty"`
	Capacity  int       `gorm:"not null;default:0"                          json:"capacity"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"          json:"created_at"`
}

// TableName table name
func (Room) TableName() string { return "rooms" }
