package repository

import (
	"context"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"userapp/internal/adapter/database/sqlite"
	"userapp/internal/core/domain"
	"userapp/internal/core/port"
	tel "userapp/internal/core/telemetry"
)

type UserRepository struct {
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewUserRepository(db *sqlite.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		scanner:   sqlite.NewScanner(),
		telemetry: telemetry,
	}
}

func (ur *UserRepository) List(ctx context.Context, filter domain.ListFilter) (users []domain.User, err error) {
	op := tel.StartOperation(ctx, ur.telemetry, "list", "users")
	defer func() { op.End(err) }()

	query := ur.db.QueryBuilder.Select("id", "name", "email", "phone").
		From("users").
		OrderBy("id")

	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where(sq.Like{"name": "%" + name + "%"})
	}

	if email := strings.TrimSpace(filter.Email); email != "" {
		query = query.Where(sq.Like{"email": "%" + email + "%"})
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := ur.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error listing users", "error", err)
		return nil, err
	}

	defer rows.Close()

	users = []domain.User{}

	if err = ur.scanner.ScanRowsToSlice(rows, &users); err != nil {
		slog.Error("Error scanning users", "error", err)
		return nil, err
	}

	return users, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.NewUser) (id int64, err error) {
	op := tel.StartOperation(ctx, ur.telemetry, "create", "users")
	defer func() { op.End(err) }()

	stmt, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("name", "email", "encrypted_password", "phone").
		Values(user.Name, user.Email, user.EncryptedPassword, user.Phone).
		ToSql()

	if err != nil {
		return 0, err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return 0, err
	}

	return result.LastInsertId()
}

func (ur *UserRepository) Update(ctx context.Context, user domain.User) (err error) {
	op := tel.StartOperation(ctx, ur.telemetry, "update", "users")
	defer func() { op.End(err) }()

	stmt, args, err := ur.db.QueryBuilder.Update("users").
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

	if _, err = ur.db.ExecContext(ctx, stmt, args...); err != nil {
		slog.Error("Error updating user", "id", user.ID, "error", err)
	}

	return err
}

func (ur *UserRepository) Delete(ctx context.Context, id int64) (err error) {
	op := tel.StartOperation(ctx, ur.telemetry, "delete", "users")
	defer func() { op.End(err) }()

	stmt, args, err := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	if _, err = ur.db.ExecContext(ctx, stmt, args...); err != nil {
		slog.Error("Error deleting user", "id", id, "error", err)
	}

	return err
}

func (ur *UserRepository) DeleteMany(ctx context.Context, ids []int64) (err error) {
	op := tel.StartOperation(ctx, ur.telemetry, "delete_many", "users")
	defer func() { op.End(err) }()

	if len(ids) == 0 {
		return nil
	}

	stmt, args, err := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return err
	}

	if _, err = ur.db.ExecContext(ctx, stmt, args...); err != nil {
		slog.Error("Error deleting users", "count", len(ids), "error", err)
	}

	return err
}
