package repository_test

import (
	"context"
	"testing"

	. "userapp/pkg/test"
	"userapp/pkg/test/factory"

	"userapp/internal/adapter/database/sqlite"
	"userapp/internal/adapter/database/sqlite/repository"
	"userapp/internal/core/domain"
	"userapp/internal/core/port"
	"userapp/internal/core/telemetry"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	db   *sqlite.DB
	repo port.UserRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	s.db = InitTestDB()
	s.repo = repository.NewUserRepository(s.db, telemetry.NewNoOpProbe())
}

func (s *UserRepositoryTestSuite) TearDownTest() {
	s.db.Close()
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) create(overrides map[string]any) int64 {
	id, err := s.repo.Create(context.Background(), factory.NewUser[domain.User](overrides).Submission())
	s.Require().NoError(err)

	return id
}

func (s *UserRepositoryTestSuite) TestRepository_CreateUser_Success() {
	id := s.create(map[string]any{"Name": "Alice", "Email": "alice@x.io", "Phone": "5551234567"})

	assert.NotZero(s.T(), id)

	users, err := s.repo.List(context.Background(), domain.ListFilter{})

	Expect(err).To(BeNil())
	Expect(users).To(HaveLen(1))
	Expect(users[0].ID).To(Equal(id))
	Expect(users[0].Name).To(Equal("Alice"))
	Expect(users[0].Email).To(Equal("alice@x.io"))
	Expect(users[0].Phone).To(Equal("5551234567"))
	Expect(users[0].EncryptedPassword).To(BeEmpty())
}

func (s *UserRepositoryTestSuite) TestRepository_ListUsers_EmptyTable() {
	users, err := s.repo.List(context.Background(), domain.ListFilter{})

	Expect(err).To(BeNil())
	Expect(users).NotTo(BeNil())
	Expect(users).To(BeEmpty())
}

func (s *UserRepositoryTestSuite) TestRepository_ListUsers_OrderedByID() {
	first := s.create(map[string]any{"Name": "Zed"})
	second := s.create(map[string]any{"Name": "Amy"})

	users, err := s.repo.List(context.Background(), domain.ListFilter{})

	Expect(err).To(BeNil())
	Expect(users).To(HaveLen(2))
	Expect(users[0].ID).To(Equal(first))
	Expect(users[1].ID).To(Equal(second))
}

func (s *UserRepositoryTestSuite) TestRepository_ListUsers_FilterBySubstring() {
	s.create(map[string]any{"Name": "Alice", "Email": "alice@x.io"})
	s.create(map[string]any{"Name": "Malik", "Email": "malik@y.io"})
	s.create(map[string]any{"Name": "Bob", "Email": "bob@x.io"})

	users, err := s.repo.List(context.Background(), domain.ListFilter{Name: "li"})

	Expect(err).To(BeNil())
	Expect(users).To(HaveLen(2))

	users, err = s.repo.List(context.Background(), domain.ListFilter{Name: "  li  ", Email: "x.io"})

	Expect(err).To(BeNil())
	Expect(users).To(HaveLen(1))
	Expect(users[0].Name).To(Equal("Alice"))
}

func (s *UserRepositoryTestSuite) TestRepository_ListUsers_CaseSensitive() {
	s.create(map[string]any{"Name": "Alice"})

	users, err := s.repo.List(context.Background(), domain.ListFilter{Name: "alice"})

	Expect(err).To(BeNil())
	Expect(users).To(BeEmpty())
}

func (s *UserRepositoryTestSuite) TestRepository_ListUsers_BlankFilterIgnored() {
	s.create(nil)
	s.create(nil)

	users, err := s.repo.List(context.Background(), domain.ListFilter{Name: "   ", Email: ""})

	Expect(err).To(BeNil())
	Expect(users).To(HaveLen(2))
}

func (s *UserRepositoryTestSuite) TestRepository_UpdateUser_Success() {
	ctx := context.Background()
	id := s.create(map[string]any{"Name": "Alice"})

	err := s.repo.Update(ctx, domain.User{
		ID:                id,
		Name:              "Alicia",
		Email:             "alicia@x.io",
		EncryptedPassword: "hash",
		Phone:             "0123456789",
	})

	assert.NoError(s.T(), err)

	users, _ := s.repo.List(ctx, domain.ListFilter{})

	Expect(users).To(HaveLen(1))
	Expect(users[0].Name).To(Equal("Alicia"))
	Expect(users[0].Email).To(Equal("alicia@x.io"))
	Expect(users[0].Phone).To(Equal("0123456789"))
}

func (s *UserRepositoryTestSuite) TestRepository_UpdateUser_MissingIDIsNoop() {
	err := s.repo.Update(context.Background(), domain.User{ID: 999, Name: "Ghost", Email: "g@x", Phone: "0123456789"})

	assert.NoError(s.T(), err)
}

func (s *UserRepositoryTestSuite) TestRepository_DeleteUser_Success() {
	ctx := context.Background()
	id := s.create(nil)
	keep := s.create(nil)

	err := s.repo.Delete(ctx, id)
	assert.NoError(s.T(), err)

	users, _ := s.repo.List(ctx, domain.ListFilter{})

	Expect(users).To(HaveLen(1))
	Expect(users[0].ID).To(Equal(keep))
}

func (s *UserRepositoryTestSuite) TestRepository_DeleteUser_MissingIDIsNoop() {
	assert.NoError(s.T(), s.repo.Delete(context.Background(), 12345))
}

func (s *UserRepositoryTestSuite) TestRepository_DeleteMany_Success() {
	ctx := context.Background()
	a := s.create(nil)
	b := s.create(nil)
	c := s.create(nil)

	err := s.repo.DeleteMany(ctx, []int64{a, c, 9999})
	assert.NoError(s.T(), err)

	users, _ := s.repo.List(ctx, domain.ListFilter{})

	Expect(users).To(HaveLen(1))
	Expect(users[0].ID).To(Equal(b))
}

func (s *UserRepositoryTestSuite) TestRepository_DeleteMany_Empty() {
	s.create(nil)

	assert.NoError(s.T(), s.repo.DeleteMany(context.Background(), nil))

	users, _ := s.repo.List(context.Background(), domain.ListFilter{})
	Expect(users).To(HaveLen(1))
}
