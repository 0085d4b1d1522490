package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	. "userapp/internal/adapter/http/helper"
	"userapp/internal/core/domain"
	"userapp/internal/core/model/request"
	"userapp/internal/core/model/response"
	"userapp/internal/core/port"
	"userapp/internal/core/util"

	"github.com/gin-gonic/gin"
)

const (
	MsgBodyMissing = "Request body is missing"
	MsgInvalidBody = "Invalid request body"
	MsgInvalidID   = "Invalid user ID"

	MsgUserCreated  = "User created"
	MsgUserUpdated  = "User updated"
	MsgUserDeleted  = "User deleted"
	MsgUsersDeleted = "Users deleted successfully"
)

type UserHandler struct {
	svc port.UserService
}

func NewUserHandler(svc port.UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var query request.ListUsersQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		SendBadRequestError(c, MsgInvalidBody)
		return
	}

	users, err := h.svc.List(c.Request.Context(), domain.ListFilter{
		Name:  query.Name,
		Email: query.Email,
	})

	if err != nil {
		SendServiceError(c, err)
		return
	}

	data := make([]response.UserResponse, 0, len(users))

	for _, user := range users {
		data = append(data, response.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		})
	}

	SendSuccess(c, http.StatusOK, data)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	params, ok := bindUser(c)

	if !ok {
		return
	}

	id, err := h.svc.Create(c.Request.Context(), domain.NewUser{
		Name:     params.Name,
		Email:    params.Email,
		Password: params.Password,
		Phone:    params.Phone,
	})

	if err != nil {
		SendServiceError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.CreateUserResponse{
		Message: MsgUserCreated,
		UserID:  id,
	})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := util.ParseID(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, MsgInvalidID)
		return
	}

	params, ok := bindUser(c)

	if !ok {
		return
	}

	user := toUser(params)
	user.ID = id

	if err := h.svc.Update(c.Request.Context(), user); err != nil {
		SendServiceError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.MessageResponse{Message: MsgUserUpdated})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := util.ParseID(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, MsgInvalidID)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		SendServiceError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.MessageResponse{Message: MsgUserDeleted})
}

// DeleteUsers removes every user listed in the ids array. A missing body or
// an ids value that is not an array counts as an empty list.
func (h *UserHandler) DeleteUsers(c *gin.Context) {
	var params request.BatchDeleteRequest

	if err := c.ShouldBindJSON(&params); err != nil && !errors.Is(err, io.EOF) {
		SendBadRequestError(c, MsgInvalidBody)
		return
	}

	var values []json.RawMessage

	if len(params.IDs) > 0 {
		if err := json.Unmarshal(params.IDs, &values); err != nil {
			values = nil
		}
	}

	if err := h.svc.DeleteMany(c.Request.Context(), values); err != nil {
		SendServiceError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.MessageResponse{Message: MsgUsersDeleted})
}

func bindUser(c *gin.Context) (request.UserRequest, bool) {
	var params request.UserRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		if errors.Is(err, io.EOF) {
			SendBadRequestError(c, MsgBodyMissing)
		} else {
			SendBadRequestError(c, MsgInvalidBody)
		}

		return params, false
	}

	return params, true
}

func toUser(params request.UserRequest) domain.User {
	return domain.User{
		Name:     deref(params.Name),
		Email:    deref(params.Email),
		Password: deref(params.Password),
		Phone:    deref(params.Phone),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
