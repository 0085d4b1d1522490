package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"userapp/internal/core/domain"
	"userapp/internal/core/model/request"
	"userapp/internal/core/port"
	"userapp/internal/core/telemetry"
	"userapp/internal/core/util"
)

const (
	MsgEmptyIDs   = "Please provide a non-empty array of user IDs to delete."
	MsgNoValidIDs = "No valid user IDs provided for deletion."
)

type UserService struct {
	repo      port.UserRepository
	validator port.Validator
	telemetry port.Telemetry
}

func NewUserService(repo port.UserRepository, validator port.Validator, probe port.Telemetry) *UserService {
	if probe == nil {
		probe = telemetry.NewNoOpProbe()
	}

	return &UserService{
		repo:      repo,
		validator: validator,
		telemetry: probe,
	}
}

func (s *UserService) observe(ctx context.Context, operation string, attrs map[string]interface{}, fn func(context.Context) error) error {
	ctx, span := s.telemetry.StartServiceSpan(ctx, "user", operation, attrs)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	s.telemetry.RecordServiceOperation(ctx, "user", operation, time.Since(start), err)

	return err
}

func (s *UserService) List(ctx context.Context, filter domain.ListFilter) ([]domain.User, error) {
	var users []domain.User

	err := s.observe(ctx, "list", map[string]interface{}{
		"filter.name":  filter.Name,
		"filter.email": filter.Email,
	}, func(ctx context.Context) error {
		var err error
		users, err = s.repo.List(ctx, filter)
		return err
	})

	if err != nil {
		return nil, err
	}

	return users, nil
}

// Create stores a new record and returns its id. Field rules are not
// enforced on this path; only the store constraints apply, so an absent
// field reaches the store as NULL.
func (s *UserService) Create(ctx context.Context, user domain.NewUser) (int64, error) {
	var id int64

	err := s.observe(ctx, "create", nil, func(ctx context.Context) error {
		user.EncryptedPassword = nil

		if user.Password != nil {
			encrypted, err := util.HashPassword(*user.Password)

			if err != nil {
				return domain.Internal("hash password", err)
			}

			user.EncryptedPassword = &encrypted
		}

		var err error
		id, err = s.repo.Create(ctx, user)
		return err
	})

	if err != nil {
		return 0, err
	}

	s.telemetry.RecordBusinessEvent(ctx, "user_created", "user", strconv.FormatInt(id, 10), nil)

	return id, nil
}

// Update replaces all fields of the record with user.ID. It reports success
// even when no row has that id.
func (s *UserService) Update(ctx context.Context, user domain.User) error {
	return s.observe(ctx, "update", map[string]interface{}{"user.id": user.ID}, func(ctx context.Context) error {
		params := request.UpdateUserRequest{
			Name:     user.Name,
			Email:    user.Email,
			Password: user.Password,
			Phone:    user.Phone,
		}

		if err := s.validator.ValidateStruct(params); err != nil {
			return err
		}

		encrypted, err := util.HashPassword(user.Password)

		if err != nil {
			return domain.Internal("hash password", err)
		}

		user.EncryptedPassword = encrypted

		return s.repo.Update(ctx, user)
	})
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.observe(ctx, "delete", map[string]interface{}{"user.id": id}, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}

// DeleteMany removes every record whose id is among the positive integers in
// values. Other entries are ignored.
func (s *UserService) DeleteMany(ctx context.Context, values []json.RawMessage) error {
	return s.observe(ctx, "delete_many", map[string]interface{}{"ids.count": len(values)}, func(ctx context.Context) error {
		if len(values) == 0 {
			return domain.NewValidationError("ids", MsgEmptyIDs)
		}

		ids := util.PositiveIntegers(values)

		if len(ids) == 0 {
			return domain.NewValidationError("ids", MsgNoValidIDs)
		}

		return s.repo.DeleteMany(ctx, ids)
	})
}
