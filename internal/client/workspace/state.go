package workspace

import (
	"errors"
	"slices"

	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
)

type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	}
	return "unknown"
}

var (
	ErrNotOpen             = errors.New("document is not loaded")
	ErrNotEditing          = errors.New("document is not being edited")
	ErrNotViewing          = errors.New("finish or cancel the edit first")
	ErrReferencesNotLoaded = errors.New("reference data is not loaded")
)

// Draft holds the in-progress edit. Tags is the authoritative id-list.
type Draft struct {
	Title         string
	Created       models.Date
	DocumentType  *int
	Correspondent *int
	Tags          []int
	Note          string
}

func draftOf(d models.Document) Draft {
	return Draft{
		Title:         d.Title,
		Created:       d.Created,
		DocumentType:  cloneInt(d.DocumentType),
		Correspondent: cloneInt(d.Correspondent),
		Tags:          slices.Clone(d.Tags),
	}
}

func (d Draft) clone() Draft {
	c := d
	c.DocumentType = cloneInt(d.DocumentType)
	c.Correspondent = cloneInt(d.Correspondent)
	c.Tags = slices.Clone(d.Tags)
	return c
}

// patch returns the fields of d that differ from base.
func (d Draft) patch(base models.Document) models.DocumentPatch {
	var p models.DocumentPatch

	if d.Title != base.Title {
		title := d.Title
		p.Title = &title
	}
	if d.Created != base.Created && !d.Created.IsZero() {
		created := d.Created
		p.Created = &created
	}
	if !sameRef(d.Correspondent, base.Correspondent) {
		if d.Correspondent == nil {
			p.ClearCorrespondent = true
		} else {
			p.Correspondent = cloneInt(d.Correspondent)
		}
	}
	if !sameRef(d.DocumentType, base.DocumentType) {
		if d.DocumentType == nil {
			p.ClearDocumentType = true
		} else {
			p.DocumentType = cloneInt(d.DocumentType)
		}
	}
	if !slices.Equal(d.Tags, base.Tags) {
		p.Tags = slices.Clone(d.Tags)
		p.SetTags = true
	}
	return p
}

func sameRef(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Outcome classifies a Save.
type Outcome int

const (
	// Saved: the patch and the pending note (if any) both went through.
	Saved Outcome = iota
	// DocumentSavedNoteFailed: the document was updated but the note was not
	// created; the workspace is back in Viewing.
	DocumentSavedNoteFailed
	// Failed: the update was rejected, or there was nothing to update and
	// the note was rejected; the workspace stays in Editing with the draft
	// intact.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Saved:
		return "saved"
	case DocumentSavedNoteFailed:
		return "document saved, note failed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

type SaveResult struct {
	Outcome  Outcome
	Document models.Document
	Err      error
	// NoteErr and PendingNote are set for DocumentSavedNoteFailed so the
	// caller can offer to resend the note.
	NoteErr     error
	PendingNote string
}
