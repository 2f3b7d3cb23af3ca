package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fmsdesk/internal/client/gate"
	"github.com/dmitrijs2005/fmsdesk/internal/client/services"
	"github.com/dmitrijs2005/fmsdesk/internal/client/workspace"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

var errUnknownCommand = errors.New("unknown command")

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	// route maps a command line to the view path the gate checks.
	route(cmd string, args []string) (string, error)
	checkAccess(ctx context.Context, path string) (gate.Decision, error)
	run(ctx context.Context, cmd string, args []string) error
	helpText() string
}

// runREPL starts the read–eval–print loop of the fmsdesk CLI.
//
// Each line is split into a command and its arguments. The command is mapped
// to a view path, the path is checked by the session gate and, when allowed,
// the command runs. A redirect is reported instead of running the command; a
// redirect to the dashboard (a signed-in user asking for a public view) shows
// the dashboard. The loop exits on EOF or when the user types "exit" or "quit".
//
// Command errors are printed as one line and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("fms> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(a.helpText())

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			dispatch(ctx, a, cmd, args)
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) {
	path, err := a.route(cmd, args)
	if errors.Is(err, errUnknownCommand) {
		printlnFn("Unknown command:", cmd)
		return
	}
	if err != nil {
		printlnFn(describe(err))
		return
	}

	d, err := a.checkAccess(ctx, path)
	if err != nil {
		printlnFn(describe(err))
		return
	}

	if !d.Allow {
		if d.ClearCredentials {
			printlnFn("Your session has expired. Please sign in again.")
		}
		switch d.Redirect {
		case gate.SignInPath:
			printlnFn("Please sign in first: signin [email]")
		case gate.DashboardPath:
			printlnFn("You are already signed in.")
			if err := a.run(ctx, "dashboard", nil); err != nil {
				printlnFn(describe(err))
			}
		}
		return
	}

	if err := a.run(ctx, cmd, args); err != nil {
		printlnFn(describe(err))
	}
}

// describe adds the workspace state errors to services.Describe.
func describe(err error) string {
	switch {
	case errors.Is(err, workspace.ErrNotEditing):
		return "The document is not being edited. Use: edit"
	case errors.Is(err, workspace.ErrNotViewing):
		return "Finish or cancel the edit first: save | cancel"
	case errors.Is(err, workspace.ErrReferencesNotLoaded):
		return fmt.Sprintf("Cannot do that while %s. Use: retry", err)
	}
	return services.Describe(err)
}
