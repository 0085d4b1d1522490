// Package cli is the terminal front end of the client: a table of users
// driven by a line-oriented command loop.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"userapp/internal/client/store"
	"userapp/internal/client/view"
)

// StateStore is the client state store as the terminal sees it.
type StateStore interface {
	view.Store
	Subscribe(fn func(store.State))
}

type App struct {
	model  *view.Model
	store  StateStore
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(s StateStore, in io.Reader, out io.Writer) *App {
	return &App{
		model:  view.NewModel(s),
		store:  s,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// Run loads the list and then serves commands until EOF or exit.
func (a *App) Run(ctx context.Context) {
	a.store.Subscribe(func(s store.State) {
		if s.Loading {
			a.println(MsgLoading)
		}
	})

	a.Refresh(ctx)
	runREPL(ctx, a, a.reader, a.out)
}

func (a *App) List() {
	Render(a.out, a.store.State(), a.model.Filtered(), &a.model.Selection)
}

func (a *App) Refresh(ctx context.Context) {
	if err := a.store.Fetch(ctx); err != nil {
		a.println("Error:", err)
		return
	}
	a.List()
}

func (a *App) Search(term string) {
	a.model.Search = term
	a.List()
}

func (a *App) Select(arg string) {
	id, err := parseID(arg)
	if err != nil {
		a.println(err)
		return
	}
	a.model.Selection.Toggle(id)
	a.List()
}

func (a *App) SelectAll(checked bool) {
	a.model.ToggleAll(checked)
	a.List()
}

func (a *App) Add(ctx context.Context) {
	a.editForm(ctx, view.NewForm())
}

func (a *App) Update(ctx context.Context, arg string) {
	id, err := parseID(arg)
	if err != nil {
		a.println(err)
		return
	}

	for _, u := range a.store.State().Users {
		if u.ID == id {
			a.editForm(ctx, view.EditForm(u))
			return
		}
	}
	a.println("User not found:", id)
}

func (a *App) Delete(ctx context.Context) {
	if a.model.Selection.Len() == 0 {
		a.println("No users selected.")
		return
	}

	confirm := func(prompt string) bool { return Confirm(a.reader, prompt, a.out) }
	if a.model.DeleteSelected(ctx, confirm) {
		a.println(view.MsgSuppressed)
		a.List()
	}
}

// editForm prompts for every field, keeping the current value on an empty
// answer, until the form is saved or the user gives up.
func (a *App) editForm(ctx context.Context, f *view.Form) {
	a.println(f.Title())

	for {
		if err := a.fillForm(f); err != nil {
			return
		}

		msg, err := a.model.Submit(ctx, f)
		if err == nil {
			a.println(msg)
			a.List()
			return
		}

		for _, field := range []string{"password", "phone"} {
			if text, ok := f.Errors[field]; ok {
				a.println(fmt.Sprintf("  %s: %s", field, text))
			}
		}
		if !errors.Is(err, view.ErrInvalidForm) {
			a.println("Error:", f.Errors["form"])
		}

		if !Confirm(a.reader, "Edit again?", a.out) {
			return
		}
	}
}

func (a *App) fillForm(f *view.Form) error {
	fields := []struct {
		prompt string
		value  *string
	}{
		{"Name", &f.Name},
		{"Email", &f.Email},
		{"Password", &f.Password},
		{"Phone", &f.Phone},
	}

	for _, field := range fields {
		v, err := GetWithDefault(a.reader, field.prompt, *field.value, a.out)
		if err != nil {
			return err
		}
		*field.value = v
	}
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return id, nil
}
