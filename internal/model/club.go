package model

import "github.com/shopspring/decimal"

// Club clubs table; reference data, read-mostly
type Club struct {
	ClubID       int64           `gorm:"primaryKey;autoIncrement"                                json:"club_id"`
	Name         string          `gorm:"column:club_name;type:varchar(255);not null;uniqueIndex" json:"club_name"`
	Description  string          `gorm:"type:text"                                               json:"description,omitempty"`
	LogoURL      string          `gorm:"type:varchar(255)"                                       json:"logo_url,omitempty"`
	Budget       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"                   json:"budget"`
	TotalMembers int             `gorm:"not null;default:0"                                      json:"total_members"`
	Timestamps
}

// TableName table name
func (Club) TableName() string { return "clubs" }
