package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const helpText = `Available commands:
  list                show users
  search <term>       filter by name, email, password or phone (empty clears)
  select <id>         check or uncheck a row
  selectall           check every shown row
  unselectall         clear the selection
  add                 add a user
  update <id>         edit a user
  delete              remove checked users from this view
  refresh             reload from the server
  exit | quit         leave`

type execIface interface {
	List()
	Refresh(ctx context.Context)
	Search(term string)
	Select(arg string)
	SelectAll(checked bool)
	Add(ctx context.Context)
	Update(ctx context.Context, arg string)
	Delete(ctx context.Context)
}

// runREPL reads one command per line and dispatches it to a. It returns on
// EOF, exit or quit, or when ctx is cancelled.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprint(out, "users> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "":
		case "help":
			fmt.Fprintln(out, helpText)
		case "l", "list":
			a.List()
		case "search":
			a.Search(rest)
		case "select":
			a.Select(rest)
		case "selectall":
			a.SelectAll(true)
		case "unselectall":
			a.SelectAll(false)
		case "add":
			a.Add(ctx)
		case "update":
			a.Update(ctx, rest)
		case "delete":
			a.Delete(ctx)
		case "refresh":
			a.Refresh(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
