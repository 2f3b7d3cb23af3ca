// Package refdata fetches the reference collections (tags, document types,
// correspondents) a document view needs.
//
// The three lists are requested concurrently and each one records its own
// outcome, so one failing endpoint never hides the others. Nothing is cached:
// every view builds a fresh Snapshot.
package refdata

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/dmitrijs2005/fmsdesk/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Source is the read side of the backend used by the loader.
type Source interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	ListDocumentTypes(ctx context.Context) ([]models.DocumentType, error)
	ListCorrespondents(ctx context.Context) ([]models.Correspondent, error)
	GetDocument(ctx context.Context, id int) (models.Document, error)
}

type Loader struct {
	src    Source
	logger logging.Logger
}

func NewLoader(src Source, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loader{src: src, logger: logger}
}

// Load fetches all three collections.
func (l *Loader) Load(ctx context.Context) Snapshot {
	return l.fetch(ctx, Snapshot{}, Kinds)
}

// LoadDocument fetches the document in the same batch as the collections. A
// document error is returned; collection errors stay in the snapshot.
func (l *Loader) LoadDocument(ctx context.Context, id int) (models.Document, Snapshot, error) {
	var (
		doc    models.Document
		docErr error
		snap   Snapshot
		g      errgroup.Group
	)

	g.Go(func() error {
		doc, docErr = l.src.GetDocument(ctx, id)
		return nil
	})
	g.Go(func() error {
		snap = l.Load(ctx)
		return nil
	})
	_ = g.Wait()

	if docErr != nil {
		l.logger.Warn(ctx, "document fetch failed", "document_id", id, "error", docErr.Error())
		return models.Document{}, snap, docErr
	}
	return doc, snap, nil
}

// Retry re-fetches kinds (every failed collection when none are given) and
// returns a new snapshot. Collections not retried are carried over as is.
func (l *Loader) Retry(ctx context.Context, snap Snapshot, kinds ...Kind) Snapshot {
	if len(kinds) == 0 {
		kinds = snap.Failed()
	}
	if len(kinds) == 0 {
		return snap
	}
	return l.fetch(ctx, snap, kinds)
}

func (l *Loader) fetch(ctx context.Context, base Snapshot, kinds []Kind) Snapshot {
	out := base
	var g errgroup.Group

	if slices.Contains(kinds, KindTags) {
		g.Go(func() error {
			out.tags = collect(ctx, l, KindTags, l.src.ListTags)
			return nil
		})
	}
	if slices.Contains(kinds, KindDocumentTypes) {
		g.Go(func() error {
			out.documentTypes = collect(ctx, l, KindDocumentTypes, l.src.ListDocumentTypes)
			return nil
		})
	}
	if slices.Contains(kinds, KindCorrespondents) {
		g.Go(func() error {
			out.correspondents = collect(ctx, l, KindCorrespondents, l.src.ListCorrespondents)
			return nil
		})
	}

	_ = g.Wait()
	return out
}

func collect[T models.Reference](ctx context.Context, l *Loader, kind Kind, list func(context.Context) ([]T, error)) Collection[T] {
	items, err := list(ctx)
	if err != nil {
		l.logger.Warn(ctx, "reference fetch failed", "collection", string(kind), "error", err.Error())
		return Failed[T](err)
	}
	l.logger.Debug(ctx, "reference fetched", "collection", string(kind), "count", len(items))
	return Loaded(items)
}
