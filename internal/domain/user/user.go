package user

import "loan-portal/internal/domain/document"

const Doctype = "User"

type Type string

const (
	TypeSystem  Type = "System User"
	TypeWebsite Type = "Website User"
)

type Role struct {
	Role string `json:"role"`
}

// User is a login identity. Users are disabled, never deleted.
type User struct {
	document.Document
	Email           string        `json:"email"`
	FirstName       string        `json:"first_name"`
	LastName        string        `json:"last_name,omitempty"`
	FullName        string        `json:"full_name,omitempty"`
	Username        string        `json:"username,omitempty"`
	Phone           string        `json:"phone,omitempty"`
	MobileNo        string        `json:"mobile_no,omitempty"`
	Gender          string        `json:"gender,omitempty"`
	BirthDate       string        `json:"birth_date,omitempty"`
	Location        string        `json:"location,omitempty"`
	Bio             string        `json:"bio,omitempty"`
	UserImage       string        `json:"user_image,omitempty"`
	Enabled         document.Flag `json:"enabled"`
	UserType        Type          `json:"user_type"`
	RoleProfileName string        `json:"role_profile_name,omitempty"`
	Roles           []Role        `json:"roles,omitempty"`
}
