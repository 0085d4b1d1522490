package view

import (
	"context"
	"fmt"

	"userapp/internal/client/api"
	"userapp/internal/client/store"
	"userapp/internal/core/domain"
)

const (
	MsgSuppressed   = "Selected users removed from UI only."
	MsgUserAdded    = "User added successfully."
	MsgUserUpdated  = "User updated successfully."
	MsgSaveFallback = "Failed to save user"
)

// Store is what the view needs from the client state store.
type Store interface {
	State() store.State
	Fetch(ctx context.Context) error
	AddUser(ctx context.Context, payload api.UserPayload) (int64, error)
	UpdateUser(ctx context.Context, id int64, payload api.UserPayload) error
	Suppress(ctx context.Context, ids []int64)
}

// Model is the view state that lives outside the store.
type Model struct {
	Store     Store
	Search    string
	Selection Selection
}

func NewModel(s Store) *Model {
	return &Model{Store: s}
}

// Filtered is the list the table shows.
func (m *Model) Filtered() []domain.User {
	return Filter(m.Store.State().Users, m.Search)
}

// ToggleAll checks every filtered row, or clears the selection when the
// select-all box is already checked.
func (m *Model) ToggleAll(checked bool) {
	if checked {
		m.Selection.SelectAll(m.Filtered())
		return
	}
	m.Selection.Clear()
}

// ConfirmPrompt is the question asked before hiding n selected users.
func ConfirmPrompt(n int) string {
	return fmt.Sprintf("Are you sure you want to delete %d selected user(s)?", n)
}

// DeleteSelected hides the selected users locally once confirm agrees. It
// never calls the service. It reports whether anything was hidden.
func (m *Model) DeleteSelected(ctx context.Context, confirm func(prompt string) bool) bool {
	if m.Selection.Len() == 0 {
		return false
	}
	if !confirm(ConfirmPrompt(m.Selection.Len())) {
		return false
	}

	m.Store.Suppress(ctx, m.Selection.IDs())
	m.Selection.Clear()
	return true
}

// Submit validates f and creates or updates the user. On failure the form
// keeps its values and the returned error is also set as f.Errors["form"].
func (m *Model) Submit(ctx context.Context, f *Form) (string, error) {
	if !f.Validate() {
		return "", ErrInvalidForm
	}

	var (
		msg string
		err error
	)
	if f.IsUpdate() {
		err = m.Store.UpdateUser(ctx, f.ID, f.Payload())
		msg = MsgUserUpdated
	} else {
		_, err = m.Store.AddUser(ctx, f.Payload())
		msg = MsgUserAdded
	}

	if err != nil {
		text := err.Error()
		if text == "" {
			text = MsgSaveFallback
		}
		f.Errors["form"] = text
		return "", err
	}

	f.Reset()
	return msg, nil
}
