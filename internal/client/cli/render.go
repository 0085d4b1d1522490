package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"userapp/internal/client/store"
	"userapp/internal/client/view"
	"userapp/internal/core/domain"
)

const (
	MaskedPassword = "••••••"
	MsgNoUsers     = "No users found."
	MsgLoading     = "Loading users..."
)

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func maskPassword(p string) string {
	if p == "" {
		return ""
	}
	return MaskedPassword
}

// Render writes the status lines and the table of filtered users.
func Render(w io.Writer, state store.State, filtered []domain.User, sel *view.Selection) {
	if state.Loading {
		fmt.Fprintln(w, MsgLoading)
	}
	if state.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", state.Error)
	}

	if len(filtered) == 0 {
		fmt.Fprintln(w, MsgNoUsers)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tID\tNAME\tEMAIL\tPASSWORD\tPHONE\n", checkbox(sel.AllSelected(filtered)))
	for _, u := range filtered {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
			checkbox(sel.Contains(u.ID)), u.ID, u.Name, u.Email, maskPassword(u.Password), u.Phone)
	}
	tw.Flush()
}
