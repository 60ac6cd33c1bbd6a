package repository

import "gorm.io/gorm"

// Repository aggregate of every repository
type Repository struct {
	User             UserRepository
	Club             ClubRepository
	Room             RoomRepository
	Request          RequestRepository
	NotificationRead NotificationReadRepository
}

// NewRepository creates the Repository aggregate
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:             NewUserRepo(db),
		Club:             NewClubRepo(db),
		Room:             NewRoomRepo(db),
		Request:          NewRequestRepo(db),
		NotificationRead: NewNotificationReadRepo(db),
	}
}
