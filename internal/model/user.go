package model

// Role portal role of a user
type Role string

const (
	RoleClubLeader       Role = "CLUB_LEADER"
	RoleSUAdmin          Role = "SU_ADMIN"
	RoleStudentLifeAdmin Role = "STUDENT_LIFE_ADMIN"
)

// IsPortalRole reports whether r may sign in to the portal
func (r Role) IsPortalRole() bool {
	switch r {
	case RoleClubLeader, RoleSUAdmin, RoleStudentLifeAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin SU or Student Life administrator
func (r Role) IsAdmin() bool {
	return r == RoleSUAdmin || r == RoleStudentLifeAdmin
}

// User users table. ClubID is set iff Role is CLUB_LEADER.
type User struct {
	UserID       int64   `gorm:"primaryKey;autoIncrement"                   json:"user_id"`
	UniversityID *string `gorm:"type:varchar(50);uniqueIndex"               json:"university_id,omitempty"`
	FullName     string  `gorm:"column:fullname;type:varchar(255);not null" json:"fullname"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"     json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                 json:"-"`
	Role         Role    `gorm:"type:varchar(20);not null"                  json:"role"`
	ClubID       *int64  `gorm:"index"                                      json:"club_id,omitempty"`
	Timestamps

	Club *Club `gorm:"foreignKey:ClubID;references:ClubID" json:"club,omitempty"`
}

// TableName table name
func (User) TableName() string { return "users" }
