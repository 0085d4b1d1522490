package repository

import (
	"context"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	database "userapp/internal/adapter/database/postgres"
	domain "userapp/internal/core/domain"
	port "userapp/internal/core/port"
	tel "userapp/internal/core/telemetry"
	"userapp/pkg/tracing"
)

type UserRepository struct {
	db        *database.DB
	telemetry port.Telemetry
}

func NewUserRepository(db *database.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{db: db, telemetry: telemetry}
}

// run executes fn inside a database span and records the operation.
func (ur *UserRepository) run(ctx context.Context, operation, query string, fn func(context.Context) error) error {
	start := time.Now()

	err := tracing.DatabaseSpanWrapper(ctx, "postgresql", "users", operation, query, fn)
	ur.telemetry.RecordRepositoryOperation(ctx, operation, "users", time.Since(start), err)

	return err
}

func (ur *UserRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.User, error) {
	query := ur.db.QueryBuilder.Select("id", "name", "email", "phone").
		From("users").
		OrderBy("id")

	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where(sq.Like{"name": "%" + name + "%"})
	}

	if email := strings.TrimSpace(filter.Email); email != "" {
		query = query.Where(sq.Like{"email": "%" + email + "%"})
	}

	sql, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	var users []domain.User

	err = ur.run(ctx, "list", sql, func(ctx context.Context) error {
		rows, err := ur.db.Query(ctx, sql, args...)

		if err != nil {
			return err
		}

		users, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.User, error) {
			var user domain.User
			err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone)

			return user, err
		})

		return err
	})

	if err != nil {
		slog.Error("Error listing users", "error", err)
		return nil, err
	}

	if users == nil {
		users = []domain.User{}
	}

	return users, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.NewUser) (int64, error) {
	sql, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("name", "email", "encrypted_password", "phone").
		Values(user.Name, user.Email, user.EncryptedPassword, user.Phone).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, err
	}

	var id int64

	err = ur.run(ctx, "create", sql, func(ctx context.Context) error {
		return ur.db.QueryRow(ctx, sql, args...).Scan(&id)
	})

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return 0, err
	}

	return id, nil
}

func (ur *UserRepository) Update(ctx context.Context, user domain.User) error {
	sql, args, err := ur.db.QueryBuilder.Update("users").
		SetMap(map[string]any{
			"name":               user.Name,
			"email":              user.Email,
			"encrypted_password": user.EncryptedPassword,
			"phone":              user.Phone,
		}).
		Where(sq.Eq{"id": user.ID}).
		ToSql()

	if err != nil {
		return err
	}

	if err := ur.exec(ctx, "update", sql, args); err != nil {
		slog.Error("Error updating user", "id", user.ID, "error", err)
		return err
	}

	return nil
}

func (ur *UserRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	if err := ur.exec(ctx, "delete", sql, args); err != nil {
		slog.Error("Error deleting user", "id", id, "error", err)
		return err
	}

	return nil
}

func (ur *UserRepository) DeleteMany(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	sql, args, err := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return err
	}

	if err := ur.exec(ctx, "delete_many", sql, args); err != nil {
		slog.Error("Error deleting users", "count", len(ids), "error", err)
		return err
	}

	return nil
}

func (ur *UserRepository) exec(ctx context.Context, operation, sql string, args []any) error {
	return ur.run(ctx, operation, sql, func(ctx context.Context) error {
		_, err := ur.db.Exec(ctx, sql, args...)
		return err
	})
}
