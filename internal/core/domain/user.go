package domain

import "strings"

type User struct {
	ID                int64
	Name              string
	Email             string
	Password          string
	EncryptedPassword string
	Phone             string
}

// Matches reports whether any of name, email, password or phone contains
// term, ignoring case. An empty term matches every user.
func (u *User) Matches(term string) bool {
	term = strings.ToLower(term)

	for _, field := range []string{u.Name, u.Email, u.Password, u.Phone} {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}

	return term == ""
}

// NewUser is a create submission. A nil field is written as NULL, so the
// store's NOT NULL constraints decide whether the record is accepted.
type NewUser struct {
	Name              *string
	Email             *string
	Password          *string
	EncryptedPassword *string
	Phone             *string
}

// Submission returns u as a create submission with every field present.
func (u User) Submission() NewUser {
	return NewUser{
		Name:              &u.Name,
		Email:             &u.Email,
		Password:          &u.Password,
		EncryptedPassword: &u.EncryptedPassword,
		Phone:             &u.Phone,
	}
}

// Missing returns the column name of the first absent field, or "" when
// every stored field is present.
func (n NewUser) Missing() string {
	switch {
	case n.Name == nil:
		return "name"
	case n.Email == nil:
		return "email"
	case n.EncryptedPassword == nil:
		return "encrypted_password"
	case n.Phone == nil:
		return "phone"
	}

	return ""
}

type ListFilter struct {
	Name  string
	Email string
}
