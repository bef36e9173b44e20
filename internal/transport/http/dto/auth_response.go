package dto

import "github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"

// UserView is the composed profile as clients see it: identity fields plus
// the extension fields for the user's role, flattened.
type UserView struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`

	School       string `json:"school,omitempty"`
	Subjects     string `json:"subjects,omitempty"`
	Grade        string `json:"grade,omitempty"`
	Points       *int   `json:"points,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

type AuthData struct {
	Token     string   `json:"token"`
	ExpiresIn int64    `json:"expires_in"`
	User      UserView `json:"user"`
}

type ProfileData struct {
	User UserView `json:"user"`
}

type UsersData struct {
	Users []UserView `json:"users"`
}

func NewUserView(p domain.Profile) UserView {
	v := UserView{
		ID:     p.ID,
		Email:  p.Email,
		Name:   p.Name,
		Role:   string(p.Role),
		Status: string(p.Status),
	}
	switch {
	case p.Teacher != nil:
		v.School = p.Teacher.School
		v.Subjects = p.Teacher.Subjects
	case p.Tutor != nil:
		v.Relationship = p.Tutor.Relationship
		v.Phone = p.Tutor.Phone
	case p.Student != nil:
		v.School = p.Student.School
		v.Grade = p.Student.Grade
		points := p.Student.Points
		v.Points = &points
	}
	return v
}

// NewIdentityView renders a bare user without extension data (admin list).
func NewIdentityView(u domain.User) UserView {
	return UserView{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
		Status: string(u.Status),
	}
}
