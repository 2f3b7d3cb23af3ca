package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fmsdesk/internal/client/blobstore"
	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/dmitrijs2005/fmsdesk/internal/client/refdata"
	"github.com/dmitrijs2005/fmsdesk/internal/client/workspace"
)

// open loads a document into a fresh workspace. An unsaved draft of the
// previously open document is dropped.
func (a *App) open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("open")
	}
	id, err := parseID(args[0], "document")
	if err != nil {
		return err
	}

	ws := workspace.New(id, a.docs, a.refs, a.logger)
	if err := ws.Open(ctx); err != nil {
		fmt.Fprintf(a.out, "Could not load document %d.\n%s\n", id, describe(err))
		fmt.Fprintln(a.out, "Use 'docs' to go back to the document list.")
		return nil
	}

	if a.ws != nil && a.ws.State() == workspace.Editing {
		fmt.Fprintf(a.out, "Unsaved changes to document %d were discarded.\n", a.ws.ID())
	}
	a.closeWorkspace()
	a.ws = ws
	return a.show(ctx, nil)
}

func (a *App) show(_ context.Context, _ []string) error {
	v := a.ws.View()

	fmt.Fprintf(a.out, "Document %d [%s]\n", v.ID, v.State)
	fmt.Fprintf(a.out, "  Title:         %s\n", v.Title)
	fmt.Fprintf(a.out, "  Created:       %s\n", v.Created)
	fmt.Fprintf(a.out, "  Type:          %s\n", orNone(v.DocumentType))
	fmt.Fprintf(a.out, "  Correspondent: %s\n", orNone(v.Correspondent))

	names := make([]string, 0, len(v.Tags))
	for _, t := range v.Tags {
		names = append(names, t.Name)
	}
	fmt.Fprintf(a.out, "  Tags:          %s\n", orNone(strings.Join(names, ", ")))

	archive := "no"
	if v.HasArchive {
		archive = "yes"
	}
	fmt.Fprintf(a.out, "  Archive:       %s\n", archive)

	if v.State == workspace.Editing && v.PendingNote != "" {
		fmt.Fprintf(a.out, "  New note:      %s\n", v.PendingNote)
	}

	if len(v.Notes) > 0 {
		fmt.Fprintln(a.out, "  Notes:")
		for _, n := range v.Notes {
			fmt.Fprintf(a.out, "    [%s] %s\n", models.DateOf(n.Created), n.Note)
		}
	}

	for _, k := range refdata.Kinds {
		if err, ok := v.RefErrors[k]; ok {
			fmt.Fprintf(a.out, "! %s could not be loaded: %s (use: retry)\n", k, describe(err))
		}
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (a *App) edit(_ context.Context, _ []string) error {
	if err := a.ws.BeginEdit(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Editing document %d. Use set, tags, newtag and note, then save or cancel.\n", a.ws.ID())
	return nil
}

// set changes one draft field. An empty value clears the document type or
// correspondent.
func (a *App) set(_ context.Context, args []string) error {
	if len(args) < 1 {
		return usage("set")
	}
	value := strings.Join(args[1:], " ")

	var err error
	switch args[0] {
	case "title":
		err = a.ws.SetTitle(value)
	case "created":
		d, perr := models.ParseDate(value)
		if perr != nil {
			return usage("set")
		}
		err = a.ws.SetCreated(d)
	case "type":
		err = a.ws.SetDocumentType(value)
	case "corr":
		err = a.ws.SetCorrespondent(value)
	default:
		return usage("set")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s set.\n", args[0])
	return nil
}

func (a *App) tags(_ context.Context, args []string) error {
	unknown, err := a.ws.SelectTags(splitNames(strings.Join(args, " ")))
	if err != nil {
		return err
	}
	if len(unknown) > 0 {
		fmt.Fprintf(a.out, "! Ignored unknown tags: %s (create them with: newtag <name>)\n", strings.Join(unknown, ", "))
	}
	fmt.Fprintf(a.out, "Tags: %s\n", orNone(strings.Join(a.ws.SelectedTagNames(), ", ")))
	return nil
}

func (a *App) newTag(ctx context.Context, args []string) error {
	name, color, err := nameAndColor("newtag", args)
	if err != nil {
		return err
	}
	t, err := a.ws.CreateTagInline(ctx, name, color)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Tag %q created and selected.\n", t.Name)
	return nil
}

// nameAndColor splits "<name words...> [#color]".
func nameAndColor(cmd string, args []string) (string, string, error) {
	if len(args) == 0 {
		return "", "", usage(cmd)
	}
	color := ""
	if last := args[len(args)-1]; strings.HasPrefix(last, "#") {
		color = last
		args = args[:len(args)-1]
	}
	name := strings.Join(args, " ")
	if name == "" {
		return "", "", usage(cmd)
	}
	return name, color, nil
}

// note sets the draft note while editing, otherwise it creates the note on
// the document right away. Without text the note is read from the prompt.
func (a *App) note(ctx context.Context, args []string) error {
	body := strings.Join(args, " ")
	if body == "" {
		var err error
		if body, err = getMultiline(a.reader, "Note", a.out); err != nil {
			return err
		}
	}

	if a.ws.State() == workspace.Editing {
		if err := a.ws.SetNote(body); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "The note will be added on save.")
		return nil
	}

	if _, err := a.ws.AddNote(ctx, body); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Note added.")
	return nil
}

func (a *App) save(ctx context.Context, _ []string) error {
	res := a.ws.Save(ctx)
	switch res.Outcome {
	case workspace.Failed:
		fmt.Fprintf(a.out, "! Save failed: %s\n", describe(res.Err))
		fmt.Fprintln(a.out, "Your changes are kept. Fix them and save again, or cancel.")
	case workspace.DocumentSavedNoteFailed:
		fmt.Fprintln(a.out, "Document saved.")
		fmt.Fprintf(a.out, "! The note was not added: %s\n", describe(res.NoteErr))
		fmt.Fprintf(a.out, "To try again: note %s\n", res.PendingNote)
	default:
		fmt.Fprintln(a.out, "Document saved.")
	}
	if res.Outcome != workspace.Failed {
		return a.show(ctx, nil)
	}
	return nil
}

func (a *App) cancel(ctx context.Context, _ []string) error {
	if err := a.ws.Cancel(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Changes discarded.")
	return a.show(ctx, nil)
}

// previewFile writes the archived rendition (the original when there is no
// archive) to a temporary directory that is removed when the document closes.
func (a *App) previewFile(ctx context.Context, _ []string) error {
	kind := models.FileOriginal
	if a.ws.Document().HasArchive() {
		kind = models.FileArchive
	}

	if a.preview == nil {
		p, err := blobstore.NewPreviewSink()
		if err != nil {
			return err
		}
		a.preview = p
	}

	loc, err := a.fetchTo(ctx, a.preview, a.ws.ID(), kind)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Preview (%s): %s\n", kind, loc)
	return nil
}

func (a *App) retry(ctx context.Context, _ []string) error {
	if len(a.ws.Snapshot().Failed()) == 0 {
		fmt.Fprintln(a.out, "All reference lists are loaded.")
		return nil
	}
	a.ws.Retry(ctx)
	return a.show(ctx, nil)
}

func (a *App) closeDocument(_ context.Context, _ []string) error {
	id := a.ws.ID()
	a.closeWorkspace()
	fmt.Fprintf(a.out, "Closed document %d.\n", id)
	return nil
}
