package workspace

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/dmitrijs2005/fmsdesk/internal/client/reconcile"
	"github.com/dmitrijs2005/fmsdesk/internal/client/refdata"
	"github.com/dmitrijs2005/fmsdesk/internal/client/services"
	"github.com/dmitrijs2005/fmsdesk/internal/logging"
)

// Documents is the subset of services.DocumentService the workspace calls.
type Documents interface {
	Get(ctx context.Context, id int) (models.Document, error)
	Update(ctx context.Context, id int, patch models.DocumentPatch) (models.Document, error)
	CreateNote(ctx context.Context, documentID int, body string) (models.Note, error)
	CreateTag(ctx context.Context, name, color string) (models.Tag, error)
}

// References loads the document together with its reference collections.
type References interface {
	LoadDocument(ctx context.Context, id int) (models.Document, refdata.Snapshot, error)
	Retry(ctx context.Context, snap refdata.Snapshot, kinds ...refdata.Kind) refdata.Snapshot
}

type Workspace struct {
	id     int
	docs   Documents
	refs   References
	logger logging.Logger

	opened bool
	state  State
	doc    models.Document
	snap   refdata.Snapshot
	draft  Draft
	err    error
}

func New(id int, docs Documents, refs References, logger logging.Logger) *Workspace {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Workspace{
		id:     id,
		docs:   docs,
		refs:   refs,
		logger: logger.With("document_id", id),
	}
}

// Open fetches the document and the reference collections. A document error
// is returned and leaves the workspace unusable; collection errors are kept
// per collection in the snapshot.
func (w *Workspace) Open(ctx context.Context) error {
	doc, snap, err := w.refs.LoadDocument(ctx, w.id)
	w.snap = snap
	if err != nil {
		return err
	}

	w.doc = doc
	w.opened = true
	w.state = Viewing
	w.draft = Draft{}
	w.err = nil
	return nil
}

func (w *Workspace) ID() int                    { return w.id }
func (w *Workspace) State() State               { return w.state }
func (w *Workspace) Snapshot() refdata.Snapshot { return w.snap }

// Document returns a copy of the last fetched document.
func (w *Workspace) Document() models.Document { return w.doc.Clone() }

// Draft returns a copy of the current draft. It is zero while Viewing.
func (w *Workspace) Draft() Draft { return w.draft.clone() }

// Err is the inline error of the last failed action, cleared by the next
// successful one.
func (w *Workspace) Err() error { return w.err }

// Retry re-fetches the failed reference collections.
func (w *Workspace) Retry(ctx context.Context, kinds ...refdata.Kind) {
	w.snap = w.refs.Retry(ctx, w.snap, kinds...)
}

// BeginEdit switches to Editing with a draft seeded from the last fetched
// document.
func (w *Workspace) BeginEdit() error {
	if !w.opened {
		return ErrNotOpen
	}
	if w.state != Viewing {
		return ErrNotViewing
	}
	w.state = Editing
	w.draft = draftOf(w.doc)
	w.err = nil
	return nil
}

// Cancel discards the draft and returns to Viewing.
func (w *Workspace) Cancel() error {
	if w.state != Editing {
		return ErrNotEditing
	}
	w.state = Viewing
	w.draft = Draft{}
	w.err = nil
	return nil
}

func (w *Workspace) editing() error {
	if !w.opened {
		return ErrNotOpen
	}
	if w.state != Editing {
		return ErrNotEditing
	}
	return nil
}

func (w *Workspace) SetTitle(title string) error {
	if err := w.editing(); err != nil {
		return err
	}
	w.draft.Title = title
	return nil
}

func (w *Workspace) SetCreated(d models.Date) error {
	if err := w.editing(); err != nil {
		return err
	}
	w.draft.Created = d
	return nil
}

// SetDocumentType selects the type by display name; an empty name clears it.
func (w *Workspace) SetDocumentType(name string) error {
	if err := w.editing(); err != nil {
		return err
	}
	id, err := lookup(name, "document_type", "document type", w.snap.DocumentTypes())
	if err != nil {
		return err
	}
	w.draft.DocumentType = id
	return nil
}

// SetCorrespondent selects the correspondent by display name; an empty name
// clears it.
func (w *Workspace) SetCorrespondent(name string) error {
	if err := w.editing(); err != nil {
		return err
	}
	id, err := lookup(name, "correspondent", "correspondent", w.snap.Correspondents())
	if err != nil {
		return err
	}
	w.draft.Correspondent = id
	return nil
}

func lookup[T models.Reference](name, field, label string, c refdata.Collection[T]) (*int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	if !c.Loaded() {
		return nil, fmt.Errorf("%w: %ss", ErrReferencesNotLoaded, label)
	}
	id, ok := reconcile.ID(name, c.Items())
	if !ok {
		return nil, &services.ValidationError{Field: field, Message: fmt.Sprintf("Unknown %s %q.", label, name)}
	}
	return &id, nil
}

// SelectTags replaces the draft's tag selection with the tags named in names.
// Names that match no tag are dropped and returned.
func (w *Workspace) SelectTags(names []string) ([]string, error) {
	if err := w.editing(); err != nil {
		return nil, err
	}
	tags := w.snap.Tags()
	if !tags.Loaded() {
		return nil, fmt.Errorf("%w: tags", ErrReferencesNotLoaded)
	}

	items := tags.Items()
	var unresolved []string
	for _, n := range names {
		if _, ok := reconcile.ID(n, items); !ok {
			unresolved = append(unresolved, n)
		}
	}
	w.draft.Tags = reconcile.TagIDs(names, items)
	return unresolved, nil
}

// SetNote sets the note created together with the next Save.
func (w *Workspace) SetNote(body string) error {
	if err := w.editing(); err != nil {
		return err
	}
	w.draft.Note = body
	return nil
}

// CreateTagInline creates a tag and selects it in the draft. On failure
// nothing local changes. The tag collection must have loaded, otherwise the
// new name could not be shown or picked again.
func (w *Workspace) CreateTagInline(ctx context.Context, name, color string) (models.Tag, error) {
	if err := w.editing(); err != nil {
		return models.Tag{}, err
	}
	if !w.snap.Tags().Loaded() {
		return models.Tag{}, fmt.Errorf("%w: tags", ErrReferencesNotLoaded)
	}

	tag, err := w.docs.CreateTag(ctx, name, color)
	if err != nil {
		w.err = err
		return models.Tag{}, err
	}

	w.snap = w.snap.WithTag(tag)
	if !slices.Contains(w.draft.Tags, tag.ID) {
		w.draft.Tags = append(w.draft.Tags, tag.ID)
	}
	w.err = nil
	return tag, nil
}

// Save sends the draft. See Outcome for the possible results.
func (w *Workspace) Save(ctx context.Context) SaveResult {
	if err := w.editing(); err != nil {
		return SaveResult{Outcome: Failed, Err: err}
	}

	patched := w.doc
	updated := false
	if patch := w.draft.patch(w.doc); !patch.Empty() {
		doc, err := w.docs.Update(ctx, w.id, patch)
		if err != nil {
			w.err = err
			w.logger.Warn(ctx, "document update failed", "error", err.Error())
			return SaveResult{Outcome: Failed, Err: err}
		}
		patched = doc
		updated = true
	}

	note := strings.TrimSpace(w.draft.Note)
	var noteErr error
	if note != "" {
		if _, noteErr = w.docs.CreateNote(ctx, w.id, note); noteErr != nil {
			w.logger.Warn(ctx, "note creation after update failed", "error", noteErr.Error())
		}
	}

	// nothing reached the server, so the edit is still pending
	if noteErr != nil && !updated {
		w.err = noteErr
		return SaveResult{Outcome: Failed, Err: noteErr}
	}

	w.doc = w.refetch(ctx, patched)
	w.state = Viewing
	w.draft = Draft{}
	w.err = noteErr

	if noteErr != nil {
		return SaveResult{
			Outcome:     DocumentSavedNoteFailed,
			Document:    w.doc.Clone(),
			NoteErr:     noteErr,
			PendingNote: note,
		}
	}
	return SaveResult{Outcome: Saved, Document: w.doc.Clone()}
}

// AddNote creates a note while Viewing and reloads the document.
func (w *Workspace) AddNote(ctx context.Context, body string) (models.Note, error) {
	if !w.opened {
		return models.Note{}, ErrNotOpen
	}
	if w.state != Viewing {
		return models.Note{}, ErrNotViewing
	}

	n, err := w.docs.CreateNote(ctx, w.id, body)
	if err != nil {
		w.err = err
		return models.Note{}, err
	}

	fallback := w.doc.Clone()
	fallback.Notes = append(fallback.Notes, n)
	w.doc = w.refetch(ctx, fallback)
	w.err = nil
	return n, nil
}

// refetch reloads the canonical document, keeping fallback if that fails.
func (w *Workspace) refetch(ctx context.Context, fallback models.Document) models.Document {
	fresh, err := w.docs.Get(ctx, w.id)
	if err != nil {
		w.logger.Warn(ctx, "document re-fetch failed", "error", err.Error())
		return fallback
	}
	return fresh
}
