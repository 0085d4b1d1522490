package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"userapp/internal/adapter/database/memory"
	validation "userapp/internal/adapter/http/validation"
	"userapp/internal/core/domain"
	"userapp/internal/core/service"
)

type UserServiceTestSuite struct {
	suite.Suite
	svc  *service.UserService
	repo *memory.UserRepository
}

func (s *UserServiceTestSuite) SetupTest() {
	s.repo = memory.NewUserRepository()
	s.svc = service.NewUserService(s.repo, validation.NewStructValidator(), nil)
}

func TestUserServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(UserServiceTestSuite))
}

func rawIDs(payload string) []json.RawMessage {
	var values []json.RawMessage
	Expect(json.Unmarshal([]byte(payload), &values)).To(Succeed())

	return values
}

func validationMessage(err error) string {
	var validationErr *domain.ValidationError
	Expect(errors.As(err, &validationErr)).To(BeTrue())

	return validationErr.Message
}

func (s *UserServiceTestSuite) TestCreate_HashesPassword() {
	id, err := s.svc.Create(context.Background(), domain.User{
		Name:     "A",
		Email:    "a@x.com",
		Password: "abc",
		Phone:    "1234567890",
	}.Submission())

	Expect(err).To(BeNil())
	Expect(id).To(BeNumerically(">", 0))

	hash, ok := s.repo.EncryptedPassword(id)
	Expect(ok).To(BeTrue())
	Expect(hash).NotTo(Equal("abc"))
	Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("abc"))).To(Succeed())
}

func (s *UserServiceTestSuite) TestCreate_NoFieldRules() {
	_, err := s.svc.Create(context.Background(), domain.User{Name: "", Email: "nope", Password: "waytoolong", Phone: "1"}.Submission())

	Expect(err).To(BeNil())
}

func (s *UserServiceTestSuite) TestCreate_AbsentPasswordIsNotHashed() {
	name, email, phone := "A", "a@x.com", "1234567890"

	_, err := s.svc.Create(context.Background(), domain.NewUser{Name: &name, Email: &email, Phone: &phone})

	Expect(err).To(MatchError(ContainSubstring("users.encrypted_password")))

	users, _ := s.svc.List(context.Background(), domain.ListFilter{})
	Expect(users).To(BeEmpty())
}

func (s *UserServiceTestSuite) TestList_ReturnsFiltered() {
	ctx := context.Background()
	s.svc.Create(ctx, domain.User{Name: "Alice", Email: "alice@x.io", Password: "abc", Phone: "1234567890"}.Submission())
	s.svc.Create(ctx, domain.User{Name: "Bob", Email: "bob@x.io", Password: "abc", Phone: "1234567890"}.Submission())

	users, err := s.svc.List(ctx, domain.ListFilter{Name: "Ali"})

	Expect(err).To(BeNil())
	Expect(users).To(HaveLen(1))
	Expect(users[0].Name).To(Equal("Alice"))
}

func (s *UserServiceTestSuite) TestUpdate_Success() {
	ctx := context.Background()
	id, _ := s.svc.Create(ctx, domain.User{Name: "Alice", Email: "alice@x.io", Password: "abc", Phone: "1234567890"}.Submission())

	err := s.svc.Update(ctx, domain.User{ID: id, Name: "Alicia", Email: "alicia@x.io", Password: "abcdefgh", Phone: "0987654321"})

	Expect(err).To(BeNil())

	users, _ := s.svc.List(ctx, domain.ListFilter{})
	Expect(users[0].Name).To(Equal("Alicia"))
	Expect(users[0].Phone).To(Equal("0987654321"))

	hash, _ := s.repo.EncryptedPassword(id)
	Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("abcdefgh"))).To(Succeed())
}

func (s *UserServiceTestSuite) TestUpdate_FirstFailingFieldOnly() {
	err := s.svc.Update(context.Background(), domain.User{ID: 1, Name: "", Email: "bad", Password: "x", Phone: "1"})

	Expect(errors.Is(err, domain.ErrValidation)).To(BeTrue())
	Expect(validationMessage(err)).To(Equal("Name is required and must be a non-empty string"))
}

func (s *UserServiceTestSuite) TestUpdate_PasswordBounds() {
	base := domain.User{ID: 1, Name: "A", Email: "a@x", Phone: "1234567890"}

	for password, message := range map[string]string{
		"ab":        "Password is required and must be at least 3 characters long",
		"":          "Password is required and must be at least 3 characters long",
		"abcdefghi": "Password must not exceed 8 characters",
	} {
		user := base
		user.Password = password

		Expect(validationMessage(s.svc.Update(context.Background(), user))).To(Equal(message))
	}

	for _, password := range []string{"abc", "abcdefgh"} {
		user := base
		user.Password = password

		Expect(s.svc.Update(context.Background(), user)).To(Succeed())
	}
}

func (s *UserServiceTestSuite) TestUpdate_Phone() {
	base := domain.User{ID: 1, Name: "A", Email: "a@x", Password: "abc"}

	for _, phone := range []string{"123456789", "12345678901", "12345-6789", "abcdefghij"} {
		user := base
		user.Phone = phone

		Expect(validationMessage(s.svc.Update(context.Background(), user))).To(Equal("Phone number must be exactly 10 digits"))
	}

	user := base
	user.Phone = "1234567890"
	Expect(s.svc.Update(context.Background(), user)).To(Succeed())
}

func (s *UserServiceTestSuite) TestDeleteMany_Empty() {
	err := s.svc.DeleteMany(context.Background(), nil)

	Expect(validationMessage(err)).To(Equal(service.MsgEmptyIDs))
}

func (s *UserServiceTestSuite) TestDeleteMany_NoValidIDs() {
	err := s.svc.DeleteMany(context.Background(), rawIDs(`["1", 0, -4, 2.5, null, true]`))

	Expect(validationMessage(err)).To(Equal(service.MsgNoValidIDs))
}

func (s *UserServiceTestSuite) TestDeleteMany_DropsInvalidAndDeletes() {
	ctx := context.Background()
	a, _ := s.svc.Create(ctx, domain.User{Name: "A", Email: "a@x", Password: "abc", Phone: "1234567890"}.Submission())
	b, _ := s.svc.Create(ctx, domain.User{Name: "B", Email: "b@x", Password: "abc", Phone: "1234567890"}.Submission())
	s.svc.Create(ctx, domain.User{Name: "C", Email: "c@x", Password: "abc", Phone: "1234567890"}.Submission())

	err := s.svc.DeleteMany(ctx, rawIDs(`[1, "2", 3.0, -1]`))

	Expect(err).To(BeNil())

	users, _ := s.svc.List(ctx, domain.ListFilter{})
	Expect(users).To(HaveLen(1))
	Expect(users[0].ID).To(Equal(b))
	Expect(a).To(Equal(int64(1)))
}

func (s *UserServiceTestSuite) TestDelete() {
	ctx := context.Background()
	id, _ := s.svc.Create(ctx, domain.User{Name: "A", Email: "a@x", Password: "abc", Phone: "1234567890"}.Submission())

	Expect(s.svc.Delete(ctx, id)).To(Succeed())
	Expect(s.svc.Delete(ctx, id)).To(Succeed())

	users, _ := s.svc.List(ctx, domain.ListFilter{})
	Expect(users).To(BeEmpty())
}
