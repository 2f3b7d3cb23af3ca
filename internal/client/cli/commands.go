package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/fmsdesk/internal/client/gate"
	"github.com/dmitrijs2005/fmsdesk/internal/client/services"
)

const referencesPath = "/settings/references"

type command struct {
	name  string
	usage string
	help  string
	path  func(a *App, args []string) (string, error)
	run   func(a *App, ctx context.Context, args []string) error
}

// commands is the full command table in help order. help, exit and quit are
// handled by the REPL itself.
var commands []command

func init() {
	commands = []command{
		{"signin", "[email]", "sign in", fixed(gate.SignInPath), (*App).signIn},
		{"signup", "", "create an account", fixed("/sign-up"), (*App).signUp},
		{"activate", "<token>", "activate an account with the emailed token", activatePath, (*App).activate},
		{"reset", "[email]", "request a password-reset code", fixed("/reset-password"), (*App).resetPassword},
		{"verify", "", "set a new password with the emailed code", fixed("/verify-otp"), (*App).verifyCode},

		{"dashboard", "", "overview of recent documents", fixed(gate.DashboardPath), (*App).dashboard},
		{"profile", "[edit]", "show or edit your profile", fixed("/profile"), (*App).showProfile},
		{"docs", "[-tag n] [-type n] [-corr n] [-project id] [text]", "list and filter documents", fixed("/documents"), (*App).listDocuments},
		{"projects", "", "list projects", fixed("/projects"), (*App).listProjects},
		{"project", "<id>", "show a project and its documents", projectPath, (*App).showProject},
		{"upload", "[-title t] [-project id] [-tags a,b] [-type n] [-corr n] [-created YYYY-MM-DD] <file>", "upload a document", fixed("/documents/upload"), (*App).upload},
		{"download", "<original|archive> [id]", "download a file of a document", downloadPath, (*App).download},

		{"open", "<id>", "open a document", openPath, (*App).open},
		{"show", "", "show the open document", currentPath, (*App).show},
		{"edit", "", "start editing the open document", currentPath, (*App).edit},
		{"set", "<title|created|type|corr> <value>", "change a field of the draft", currentPath, (*App).set},
		{"tags", "[a,b,...]", "replace the draft's tags (no names clears them)", currentPath, (*App).tags},
		{"newtag", "<name> [#color]", "create a tag and add it to the draft", currentPath, (*App).newTag},
		{"note", "[text]", "attach a note (to the draft while editing)", currentPath, (*App).note},
		{"save", "", "save the draft", currentPath, (*App).save},
		{"cancel", "", "discard the draft", currentPath, (*App).cancel},
		{"preview", "", "write the document to a temporary file", currentPath, (*App).previewFile},
		{"retry", "", "reload reference lists that failed", currentPath, (*App).retry},
		{"close", "", "close the open document", currentPath, (*App).closeDocument},

		{"refs", "", "list tags, document types and correspondents", fixed(referencesPath), (*App).listReferences},
		{"mktag", "<name> [#color]", "create a tag", fixed(referencesPath), (*App).makeTag},
		{"rmtag", "<name>", "delete a tag", fixed(referencesPath), (*App).removeTag},
		{"mktype", "<name>", "create a document type", fixed(referencesPath), (*App).makeDocumentType},
		{"rmtype", "<name>", "delete a document type", fixed(referencesPath), (*App).removeDocumentType},
		{"mkcorr", "<name>", "create a correspondent", fixed(referencesPath), (*App).makeCorrespondent},

		{"signout", "", "sign out", fixed("/sign-out"), (*App).signOut},
	}
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func (a *App) route(cmd string, args []string) (string, error) {
	c, ok := lookupCommand(cmd)
	if !ok {
		return "", errUnknownCommand
	}
	return c.path(a, args)
}

func (a *App) run(ctx context.Context, cmd string, args []string) error {
	c, ok := lookupCommand(cmd)
	if !ok {
		return errUnknownCommand
	}
	return c.run(a, ctx, args)
}

func (a *App) helpText() string {
	var sb strings.Builder
	sb.WriteString("Available commands:\n")
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(tw, "  %s %s\t%s\n", c.name, c.usage, c.help)
	}
	fmt.Fprintf(tw, "  help\tshow this list\n")
	fmt.Fprintf(tw, "  exit | quit\tleave the program\n")
	_ = tw.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

func usage(cmd string) error {
	c, _ := lookupCommand(cmd)
	return &services.ValidationError{Message: strings.TrimSpace(fmt.Sprintf("Usage: %s %s", c.name, c.usage))}
}

var errNoDocument = &services.ValidationError{Message: "No document is open. Use: open <id>"}

func fixed(path string) func(*App, []string) (string, error) {
	return func(*App, []string) (string, error) { return path, nil }
}

func parseID(s, label string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, &services.ValidationError{Field: label, Message: fmt.Sprintf("Invalid %s id %q.", label, s)}
	}
	return id, nil
}

func activatePath(_ *App, args []string) (string, error) {
	if len(args) != 1 {
		return "", usage("activate")
	}
	return "/activate/" + args[0], nil
}

func projectPath(_ *App, args []string) (string, error) {
	if len(args) != 1 {
		return "", usage("project")
	}
	id, err := parseID(args[0], "project")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/projects/%d", id), nil
}

func openPath(_ *App, args []string) (string, error) {
	if len(args) != 1 {
		return "", usage("open")
	}
	id, err := parseID(args[0], "document")
	if err != nil {
		return "", err
	}
	return documentPath(id), nil
}

func currentPath(a *App, _ []string) (string, error) {
	if a.ws == nil {
		return "", errNoDocument
	}
	return documentPath(a.ws.ID()), nil
}

func downloadPath(a *App, args []string) (string, error) {
	switch len(args) {
	case 1:
		return currentPath(a, nil)
	case 2:
		id, err := parseID(args[1], "document")
		if err != nil {
			return "", err
		}
		return documentPath(id), nil
	}
	return "", usage("download")
}

func documentPath(id int) string {
	return fmt.Sprintf("/documents/%d", id)
}
