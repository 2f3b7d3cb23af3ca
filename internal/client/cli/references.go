package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/fmsdesk/internal/client/refdata"
)

func (a *App) listReferences(ctx context.Context, _ []string) error {
	snap := a.refs.Load(ctx)
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "Tags:")
	if err := snap.Tags().Err(); err != nil {
		fmt.Fprintf(tw, "  ! %s\n", describe(err))
	}
	for _, t := range snap.Tags().Items() {
		fmt.Fprintf(tw, "  %d\t%s\t%s\n", t.ID, t.Name, t.Color)
	}

	fmt.Fprintln(tw, "Document types:")
	if err := snap.DocumentTypes().Err(); err != nil {
		fmt.Fprintf(tw, "  ! %s\n", describe(err))
	}
	for _, dt := range snap.DocumentTypes().Items() {
		fmt.Fprintf(tw, "  %d\t%s\t\n", dt.ID, dt.Name)
	}

	fmt.Fprintln(tw, "Correspondents:")
	if err := snap.Correspondents().Err(); err != nil {
		fmt.Fprintf(tw, "  ! %s\n", describe(err))
	}
	for _, c := range snap.Correspondents().Items() {
		fmt.Fprintf(tw, "  %d\t%s\t\n", c.ID, c.Name)
	}
	return tw.Flush()
}

// refreshOpen reloads kind in the open workspace so its pickers see the change.
func (a *App) refreshOpen(ctx context.Context, kind refdata.Kind) {
	if a.ws != nil {
		a.ws.Retry(ctx, kind)
	}
}

func (a *App) makeTag(ctx context.Context, args []string) error {
	name, color, err := nameAndColor("mktag", args)
	if err != nil {
		return err
	}
	t, err := a.docs.CreateTag(ctx, name, color)
	if err != nil {
		return err
	}
	a.refreshOpen(ctx, refdata.KindTags)
	fmt.Fprintf(a.out, "Created tag %d: %s\n", t.ID, t.Name)
	return nil
}

func (a *App) removeTag(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("rmtag")
	}
	name := strings.Join(args, " ")

	id, err := resolveName(a.refs.Load(ctx).Tags(), name, "tag")
	if err != nil {
		return err
	}
	if err := a.docs.DeleteTag(ctx, *id); err != nil {
		return err
	}
	a.refreshOpen(ctx, refdata.KindTags)
	fmt.Fprintf(a.out, "Deleted tag %s.\n", name)
	return nil
}

func (a *App) makeDocumentType(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("mktype")
	}
	dt, err := a.docs.CreateDocumentType(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.refreshOpen(ctx, refdata.KindDocumentTypes)
	fmt.Fprintf(a.out, "Created document type %d: %s\n", dt.ID, dt.Name)
	return nil
}

func (a *App) removeDocumentType(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("rmtype")
	}
	name := strings.Join(args, " ")

	id, err := resolveName(a.refs.Load(ctx).DocumentTypes(), name, "document type")
	if err != nil {
		return err
	}
	if err := a.docs.DeleteDocumentType(ctx, *id); err != nil {
		return err
	}
	a.refreshOpen(ctx, refdata.KindDocumentTypes)
	fmt.Fprintf(a.out, "Deleted document type %s.\n", name)
	return nil
}

func (a *App) makeCorrespondent(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("mkcorr")
	}
	c, err := a.docs.CreateCorrespondent(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.refreshOpen(ctx, refdata.KindCorrespondents)
	fmt.Fprintf(a.out, "Created correspondent %d: %s\n", c.ID, c.Name)
	return nil
}
