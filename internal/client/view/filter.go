// Package view holds the client's derived state: the search filter, the
// row selection and the add/update form.
package view

import "userapp/internal/core/domain"

// Filter returns the users matching term in name, email, password or phone,
// ignoring case. An empty term returns every user.
func Filter(users []domain.User, term string) []domain.User {
	out := make([]domain.User, 0, len(users))
	for i := range users {
		if users[i].Matches(term) {
			out = append(out, users[i])
		}
	}
	return out
}
