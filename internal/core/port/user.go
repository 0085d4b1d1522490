package port

import (
	"context"
	"encoding/json"

	"userapp/internal/core/domain"
)

type UserRepository interface {
	List(ctx context.Context, filter domain.ListFilter) ([]domain.User, error)
	Create(ctx context.Context, user domain.NewUser) (int64, error)
	Update(ctx context.Context, user domain.User) error
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) error
}

type UserService interface {
	List(ctx context.Context, filter domain.ListFilter) ([]domain.User, error)
	Create(ctx context.Context, user domain.NewUser) (int64, error)
	Update(ctx context.Context, user domain.User) error
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []json.RawMessage) error
}
