// Package policy decides which actor may see or change which club data.
//
// Every check is a pure function of the verified session and the target;
// it returns nil to allow and ErrForbidden to deny. Callers must surface
// ErrForbidden as such and never translate a denial into an empty result.
package policy

import (
	"errors"
	"time"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/model"
)

// ErrForbidden the actor is authenticated but not allowed to do this
var ErrForbidden = errors.New("forbidden")

// Session verified identity of the caller, re-derived from the signed
// token on every request
type Session struct {
	UserID    int64
	Role      model.Role
	ClubID    *int64
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// OwnsClub reports whether the session is a leader of clubID
func (s Session) OwnsClub(clubID int64) bool {
	return s.Role == model.RoleClubLeader && s.ClubID != nil && *s.ClubID == clubID
}

// Policy role-based rules. StudentLifeCanDecide is the single switch for
// whether STUDENT_LIFE_ADMIN holds the approve/reject capability.
type Policy struct {
	StudentLifeCanDecide bool
}

// New creates a Policy
func New(studentLifeCanDecide bool) Policy {
	return Policy{StudentLifeCanDecide: studentLifeCanDecide}
}

// CanViewClub admins see every club, leaders only their own
func (p Policy) CanViewClub(s Session, clubID int64) error {
	if s.Role.IsAdmin() || s.OwnsClub(clubID) {
		return nil
	}
	return ErrForbidden
}

// CanListClubs admins only
func (p Policy) CanListClubs(s Session) error {
	if s.Role.IsAdmin() {
		return nil
	}
	return ErrForbidden
}

// CanCreateRequest a leader submits for their own club only; admins do not submit
func (p Policy) CanCreateRequest(s Session, clubID int64) error {
	if s.OwnsClub(clubID) {
		return nil
	}
	return ErrForbidden
}

// CanViewAllRequests the cross-club listing, admins only
func (p Policy) CanViewAllRequests(s Session) error {
	if s.Role.IsAdmin() {
		return nil
	}
	return ErrForbidden
}

// CanMutateRequests approve/reject capability
func (p Policy) CanMutateRequests(s Session) error {
	switch s.Role {
	case model.RoleSUAdmin:
		return nil
	case model.RoleStudentLifeAdmin:
		if p.StudentLifeCanDecide {
			return nil
		}
	}
	return ErrForbidden
}

// CanReadNotifications notifications are private to their owner
func (p Policy) CanReadNotifications(s Session, userID int64) error {
	if s.UserID != 0 && s.UserID == userID {
		return nil
	}
	return ErrForbidden
}

// ScopeClub the club a session's club-scoped views are restricted to;
// nil means global scope (administrators)
func (p Policy) ScopeClub(s Session) (*int64, error) {
	if s.Role.IsAdmin() {
		return nil, nil
	}
	if s.Role == model.RoleClubLeader && s.ClubID != nil {
		id := *s.ClubID
		return &id, nil
	}
	return nil, ErrForbidden
}
