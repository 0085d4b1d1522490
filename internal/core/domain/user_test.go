package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_Matches(t *testing.T) {
	user := User{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "abc",
		Phone:    "1234567890",
	}

	t.Run("should match on any field ignoring case", func(t *testing.T) {
		assert.True(t, user.Matches("SMITH"))
		assert.True(t, user.Matches("Example.COM"))
		assert.True(t, user.Matches("ab"))
		assert.True(t, user.Matches("4567"))
	})

	t.Run("should not match unrelated terms", func(t *testing.T) {
		assert.False(t, user.Matches("bob"))
	})

	t.Run("should match everything with an empty term", func(t *testing.T) {
		assert.True(t, user.Matches(""))
		assert.True(t, (&User{}).Matches(""))
	})

	t.Run("should skip empty fields", func(t *testing.T) {
		u := User{Name: "Bob"}
		assert.False(t, u.Matches("x"))
	})
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("password", "Password must not exceed 8 characters")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "Password must not exceed 8 characters", err.Error())

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "password", ve.Field)
}

func TestInternal(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed")
	err := Internal("create user", cause)

	assert.True(t, errors.Is(err, ErrInternal))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrValidation))
}
