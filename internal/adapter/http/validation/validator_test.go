package http

import (
	"errors"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"userapp/internal/core/domain"
	"userapp/internal/core/model/request"
)

func validRequest() request.UpdateUserRequest {
	return request.UpdateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "abc",
		Phone:    "1234567890",
	}
}

func messageFor(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return ""
}

func TestValidateStruct_Valid(t *testing.T) {
	RegisterTestingT(t)

	Expect(NewStructValidator().ValidateStruct(validRequest())).To(Succeed())
}

func TestValidateStruct_Messages(t *testing.T) {
	RegisterTestingT(t)

	cases := []struct {
		name    string
		mutate  func(r *request.UpdateUserRequest)
		field   string
		message string
	}{
		{"empty name", func(r *request.UpdateUserRequest) { r.Name = "" }, "name", "Name is required and must be a non-empty string"},
		{"blank name", func(r *request.UpdateUserRequest) { r.Name = "   " }, "name", "Name is required and must be a non-empty string"},
		{"email without at", func(r *request.UpdateUserRequest) { r.Email = "alice.example.com" }, "email", "Valid email is required"},
		{"empty email", func(r *request.UpdateUserRequest) { r.Email = "" }, "email", "Valid email is required"},
		{"empty password", func(r *request.UpdateUserRequest) { r.Password = "" }, "password", "Password is required and must be at least 3 characters long"},
		{"short password", func(r *request.UpdateUserRequest) { r.Password = "ab" }, "password", "Password is required and must be at least 3 characters long"},
		{"long password", func(r *request.UpdateUserRequest) { r.Password = "abcdefghi" }, "password", "Password must not exceed 8 characters"},
		{"blank phone", func(r *request.UpdateUserRequest) { r.Phone = " " }, "phone", "Phone is required and must be a non-empty string"},
		{"short phone", func(r *request.UpdateUserRequest) { r.Phone = "12345" }, "phone", "Phone number must be exactly 10 digits"},
		{"phone with letters", func(r *request.UpdateUserRequest) { r.Phone = "12345abcde" }, "phone", "Phone number must be exactly 10 digits"},
	}

	for _, tc := range cases {
		req := validRequest()
		tc.mutate(&req)

		err := NewStructValidator().ValidateStruct(req)

		Expect(errors.Is(err, domain.ErrValidation)).To(BeTrue(), tc.name)
		Expect(messageFor(err)).To(Equal(tc.message), tc.name)

		var ve *domain.ValidationError
		Expect(errors.As(err, &ve)).To(BeTrue())
		Expect(ve.Field).To(Equal(tc.field), tc.name)
	}
}

func TestValidateStruct_ReportsFirstFailingField(t *testing.T) {
	RegisterTestingT(t)

	req := request.UpdateUserRequest{
		Name:     "",
		Email:    "nope",
		Password: strings.Repeat("x", 20),
		Phone:    "1",
	}

	err := NewStructValidator().ValidateStruct(req)
	Expect(messageFor(err)).To(Equal("Name is required and must be a non-empty string"))
}

func TestValidateStruct_PasswordBoundaries(t *testing.T) {
	RegisterTestingT(t)

	for _, pw := range []string{"abc", "abcdefgh"} {
		req := validRequest()
		req.Password = pw
		Expect(NewStructValidator().ValidateStruct(req)).To(Succeed(), pw)
	}
}
