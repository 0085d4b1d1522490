package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"userapp/internal/core/domain"
	"userapp/internal/core/port"
)

// UserRepository keeps users in process memory. Filters follow the same
// case-sensitive substring rules as the SQL stores.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[int64]domain.User
	nextID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[int64]domain.User),
	}
}

var _ port.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.TrimSpace(filter.Name)
	email := strings.TrimSpace(filter.Email)

	users := make([]domain.User, 0, len(r.users))

	for _, user := range r.users {
		if !strings.Contains(user.Name, name) || !strings.Contains(user.Email, email) {
			continue
		}

		users = append(users, domain.User{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		})
	}

	slices.SortFunc(users, func(a, b domain.User) int {
		return int(a.ID - b.ID)
	})

	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user domain.NewUser) (int64, error) {
	if column := user.Missing(); column != "" {
		return 0, fmt.Errorf("NOT NULL constraint failed: users.%s", column)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.users[r.nextID] = domain.User{
		ID:                r.nextID,
		Name:              *user.Name,
		Email:             *user.Email,
		EncryptedPassword: *user.EncryptedPassword,
		Phone:             *user.Phone,
	}

	return r.nextID, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		user.Password = ""
		r.users[user.ID] = user
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)

	return nil
}

func (r *UserRepository) DeleteMany(ctx context.Context, ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		delete(r.users, id)
	}

	return nil
}

// EncryptedPassword returns the stored hash for id.
func (r *UserRepository) EncryptedPassword(id int64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]

	return user.EncryptedPassword, ok
}
