package workspace

import (
	"slices"

	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/dmitrijs2005/fmsdesk/internal/client/reconcile"
	"github.com/dmitrijs2005/fmsdesk/internal/client/refdata"
)

// View is a read-only projection of the workspace. In Editing it shows the
// draft, otherwise the last fetched document.
type View struct {
	State         State
	ID            int
	Title         string
	Created       models.Date
	DocumentType  string
	Correspondent string
	Tags          []models.Tag
	Notes         []models.Note
	OriginalFile  string
	HasArchive    bool
	PendingNote   string
	// RefErrors has an entry for every reference collection that failed to load.
	RefErrors map[refdata.Kind]error
	Err       error
}

func (w *Workspace) View() View {
	v := View{
		State:        w.state,
		ID:           w.doc.ID,
		Notes:        slices.Clone(w.doc.Notes),
		OriginalFile: w.doc.OriginalFile,
		HasArchive:   w.doc.HasArchive(),
		Err:          w.err,
	}

	title, created, typeID, corrID, tagIDs := w.doc.Title, w.doc.Created, w.doc.DocumentType, w.doc.Correspondent, w.doc.Tags
	if w.state == Editing {
		title, created, typeID, corrID, tagIDs = w.draft.Title, w.draft.Created, w.draft.DocumentType, w.draft.Correspondent, w.draft.Tags
		v.PendingNote = w.draft.Note
	}

	v.Title = title
	v.Created = created
	v.DocumentType = reconcile.DocumentTypeName(typeID, w.snap.DocumentTypes().Items())
	v.Correspondent = reconcile.CorrespondentName(corrID, w.snap.Correspondents().Items())
	v.Tags = []models.Tag{}
	if reconcile.Ready(w.snap) {
		v.Tags = reconcile.ResolveTags(tagIDs, w.snap.Tags().Items())
	}

	for _, k := range w.snap.Failed() {
		if v.RefErrors == nil {
			v.RefErrors = make(map[refdata.Kind]error)
		}
		v.RefErrors[k] = w.snap.Err(k)
	}
	return v
}

// SelectedTagNames is the tag picker content: the names of the current
// id-list. It is empty until the tag collection has loaded.
func (w *Workspace) SelectedTagNames() []string {
	if !reconcile.Ready(w.snap) {
		return []string{}
	}
	ids := w.doc.Tags
	if w.state == Editing {
		ids = w.draft.Tags
	}
	return reconcile.TagNames(ids, w.snap.Tags().Items())
}
