package request

import "encoding/json"

// UserRequest is the body of POST /users and PUT /users/:id. Pointer fields
// distinguish an absent key from an empty string.
type UserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
}

// UpdateUserRequest is the validated form of a PUT body. Field order is the
// order rules are checked in.
type UpdateUserRequest struct {
	Name     string `validate:"required,notblank"`
	Email    string `validate:"required,contains=@"`
	Password string `validate:"required,min=3,max=8"`
	Phone    string `validate:"required,notblank,phone10"`
}

type BatchDeleteRequest struct {
	IDs json.RawMessage `json:"ids"`
}

type ListUsersQuery struct {
	Name  string `form:"name"`
	Email string `form:"email"`
}
