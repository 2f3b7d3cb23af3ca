package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/fmsdesk/internal/client/blobstore"
	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/dmitrijs2005/fmsdesk/internal/client/reconcile"
	"github.com/dmitrijs2005/fmsdesk/internal/client/refdata"
	"github.com/dmitrijs2005/fmsdesk/internal/client/services"
)

const recentDocuments = 5

func (a *App) dashboard(ctx context.Context, _ []string) error {
	if a.profile == nil {
		a.refreshProfile(ctx)
	}
	if a.profile != nil {
		fmt.Fprintf(a.out, "Welcome, %s.\n", a.profile.DisplayName())
	}

	docs, err := a.docs.List(ctx, models.DocumentFilter{})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Documents: %d\n", len(docs))

	if projects, err := a.docs.ListProjects(ctx); err == nil {
		fmt.Fprintf(a.out, "Projects:  %d\n", len(projects))
	} else {
		a.logger.Warn(ctx, "project list failed", "error", err.Error())
	}

	if len(docs) == 0 {
		return nil
	}
	slices.SortStableFunc(docs, func(x, y models.Document) int {
		return dateKey(y.Created) - dateKey(x.Created)
	})
	if len(docs) > recentDocuments {
		docs = docs[:recentDocuments]
	}
	fmt.Fprintln(a.out, "\nRecent documents:")
	a.printDocuments(docs, a.refs.Load(ctx))
	return nil
}

func dateKey(d models.Date) int {
	return d.Year*10000 + int(d.Month)*100 + d.Day
}

// listDocuments prints the documents matching the flags and a free-text
// title query. Reference names are resolved against a fresh snapshot.
func (a *App) listDocuments(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("docs", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	tag := fs.String("tag", "", "tag name")
	docType := fs.String("type", "", "document type name")
	corr := fs.String("corr", "", "correspondent name")
	project := fs.String("project", "", "project id")
	if err := fs.Parse(args); err != nil {
		return usage("docs")
	}

	snap := a.refs.Load(ctx)
	filter := models.DocumentFilter{Query: strings.Join(fs.Args(), " ")}

	var err error
	if filter.TagID, err = resolveName(snap.Tags(), *tag, "tag"); err != nil {
		return err
	}
	if filter.DocumentTypeID, err = resolveName(snap.DocumentTypes(), *docType, "document type"); err != nil {
		return err
	}
	if filter.CorrespondentID, err = resolveName(snap.Correspondents(), *corr, "correspondent"); err != nil {
		return err
	}
	if *project != "" {
		id, err := parseID(*project, "project")
		if err != nil {
			return err
		}
		filter.ProjectID = &id
	}

	docs, err := a.docs.List(ctx, filter)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(a.out, "No documents found.")
		return nil
	}
	a.printDocuments(docs, snap)
	return nil
}

// resolveName maps an optional reference name to its id. An empty name
// means "no filter".
func resolveName[T models.Reference](c refdata.Collection[T], name, label string) (*int, error) {
	if name == "" {
		return nil, nil
	}
	if !c.Loaded() {
		if err := c.Err(); err != nil {
			return nil, fmt.Errorf("load %ss: %w", label, err)
		}
		return nil, &services.ValidationError{Field: label, Message: fmt.Sprintf("The %s list is not loaded.", label)}
	}
	id, ok := reconcile.ID(name, c.Items())
	if !ok {
		return nil, &services.ValidationError{Field: label, Message: fmt.Sprintf("Unknown %s %q.", label, name)}
	}
	return &id, nil
}

func (a *App) printDocuments(docs []models.Document, snap refdata.Snapshot) {
	types := snap.DocumentTypes().Items()
	correspondents := snap.Correspondents().Items()
	var tags []models.Tag
	if reconcile.Ready(snap) {
		tags = snap.Tags().Items()
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tTITLE\tTYPE\tCORRESPONDENT\tTAGS")
	for _, d := range docs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			d.ID,
			d.Created,
			d.Title,
			reconcile.DocumentTypeName(d.DocumentType, types),
			reconcile.CorrespondentName(d.Correspondent, correspondents),
			strings.Join(reconcile.TagNames(d.Tags, tags), ", "),
		)
	}
	_ = tw.Flush()
}

func (a *App) listProjects(ctx context.Context, _ []string) error {
	projects, err := a.docs.ListProjects(ctx)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No projects.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Name, p.Description)
	}
	return tw.Flush()
}

func (a *App) showProject(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("project")
	}
	id, err := parseID(args[0], "project")
	if err != nil {
		return err
	}

	p, err := a.docs.GetProject(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Project %d: %s\n", p.ID, p.Name)
	if p.Description != "" {
		fmt.Fprintln(a.out, p.Description)
	}

	docs, err := a.docs.ProjectDocuments(ctx, id)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(a.out, "No documents in this project.")
		return nil
	}
	a.printDocuments(docs, a.refs.Load(ctx))
	return nil
}

func (a *App) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	title := fs.String("title", "", "document title")
	project := fs.String("project", "", "project id")
	tagList := fs.String("tags", "", "comma-separated tag names")
	docType := fs.String("type", "", "document type name")
	corr := fs.String("corr", "", "correspondent name")
	created := fs.String("created", "", "creation date")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return usage("upload")
	}
	path := fs.Arg(0)

	doc := models.NewDocument{FileName: filepath.Base(path), Title: *title}

	if *created != "" {
		d, err := models.ParseDate(*created)
		if err != nil {
			return &services.ValidationError{Field: "created", Message: err.Error()}
		}
		doc.Created = d
	}
	if *project != "" {
		id, err := parseID(*project, "project")
		if err != nil {
			return err
		}
		doc.Project = &id
	}

	if *tagList != "" || *docType != "" || *corr != "" {
		snap := a.refs.Load(ctx)
		var err error
		if doc.DocumentType, err = resolveName(snap.DocumentTypes(), *docType, "document type"); err != nil {
			return err
		}
		if doc.Correspondent, err = resolveName(snap.Correspondents(), *corr, "correspondent"); err != nil {
			return err
		}
		if doc.Tags, err = resolveTags(snap, splitNames(*tagList)); err != nil {
			return err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return &services.ValidationError{Field: "document", Message: fmt.Sprintf("Cannot read %s.", path)}
	}
	defer f.Close()

	uploaded, err := a.docs.Upload(ctx, doc, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded document %d: %s\n", uploaded.ID, uploaded.Title)
	return nil
}

// resolveTags maps every name to a tag id. Unknown names are an error here:
// an upload cannot be corrected afterwards in the same step.
func resolveTags(snap refdata.Snapshot, names []string) ([]int, error) {
	if len(names) == 0 {
		return nil, nil
	}
	tags := snap.Tags()
	if !tags.Loaded() {
		if err := tags.Err(); err != nil {
			return nil, fmt.Errorf("load tags: %w", err)
		}
	}

	items := tags.Items()
	var unknown []string
	for _, n := range names {
		if _, ok := reconcile.ID(n, items); !ok {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return nil, &services.ValidationError{Field: "tags", Message: "Unknown tags: " + strings.Join(unknown, ", ") + "."}
	}
	return reconcile.TagIDs(names, items), nil
}

func splitNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func (a *App) download(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("download")
	}
	kind := models.FileKind(args[0])
	if kind != models.FileOriginal && kind != models.FileArchive {
		return usage("download")
	}

	var id int
	if len(args) == 2 {
		var err error
		if id, err = parseID(args[1], "document"); err != nil {
			return err
		}
	} else {
		if a.ws == nil {
			return errNoDocument
		}
		id = a.ws.ID()
	}

	loc, err := a.fetchTo(ctx, a.sink, id, kind)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved to %s\n", loc)
	return nil
}

func (a *App) fetchTo(ctx context.Context, dst blobstore.Sink, id int, kind models.FileKind) (string, error) {
	f, err := a.docs.Download(ctx, id, kind)
	if err != nil {
		return "", err
	}
	loc, err := dst.Put(ctx, f.Name, bytes.NewReader(f.Data), int64(len(f.Data)), f.ContentType)
	if err != nil {
		return "", fmt.Errorf("store %s: %w", f.Name, err)
	}
	a.logger.Info(ctx, "document file stored", "document_id", id, "kind", string(kind), "location", loc)
	return loc, nil
}
