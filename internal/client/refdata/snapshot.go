package refdata

import (
	"slices"

	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
)

// Kind names a reference collection.
type Kind string

const (
	KindTags           Kind = "tags"
	KindDocumentTypes  Kind = "document types"
	KindCorrespondents Kind = "correspondents"
)

// Kinds lists every collection in display order.
var Kinds = []Kind{KindTags, KindDocumentTypes, KindCorrespondents}

// Collection is one fetched reference list together with its own load error.
// A failed collection keeps whatever items it was given (usually none).
type Collection[T models.Reference] struct {
	items  []T
	err    error
	loaded bool
}

func Loaded[T models.Reference](items []T) Collection[T] {
	return Collection[T]{items: slices.Clone(items), loaded: true}
}

func Failed[T models.Reference](err error) Collection[T] {
	return Collection[T]{err: err}
}

// Items returns a copy of the entries.
func (c Collection[T]) Items() []T { return slices.Clone(c.items) }

func (c Collection[T]) Err() error   { return c.err }
func (c Collection[T]) Loaded() bool { return c.loaded }
func (c Collection[T]) Len() int     { return len(c.items) }

// Find returns the entry with id.
func (c Collection[T]) Find(id int) (T, bool) {
	for _, it := range c.items {
		if it.RefID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c Collection[T]) with(item T) Collection[T] {
	out := c
	out.items = append(slices.Clone(c.items), item)
	return out
}

func (c Collection[T]) without(id int) Collection[T] {
	out := c
	out.items = slices.DeleteFunc(slices.Clone(c.items), func(it T) bool { return it.RefID() == id })
	return out
}

// Snapshot holds the three reference collections of one view. It is a value:
// every With* method returns a new Snapshot and leaves the receiver untouched.
type Snapshot struct {
	tags           Collection[models.Tag]
	documentTypes  Collection[models.DocumentType]
	correspondents Collection[models.Correspondent]
}

func NewSnapshot(tags Collection[models.Tag], types Collection[models.DocumentType], correspondents Collection[models.Correspondent]) Snapshot {
	return Snapshot{tags: tags, documentTypes: types, correspondents: correspondents}
}

func (s Snapshot) Tags() Collection[models.Tag]                     { return s.tags }
func (s Snapshot) DocumentTypes() Collection[models.DocumentType]   { return s.documentTypes }
func (s Snapshot) Correspondents() Collection[models.Correspondent] { return s.correspondents }

// Err returns the load error of kind, if any.
func (s Snapshot) Err(kind Kind) error {
	switch kind {
	case KindTags:
		return s.tags.Err()
	case KindDocumentTypes:
		return s.documentTypes.Err()
	case KindCorrespondents:
		return s.correspondents.Err()
	}
	return nil
}

// Failed lists the kinds whose last fetch failed.
func (s Snapshot) Failed() []Kind {
	var out []Kind
	for _, k := range Kinds {
		if s.Err(k) != nil {
			out = append(out, k)
		}
	}
	return out
}

func (s Snapshot) WithTag(t models.Tag) Snapshot {
	s.tags = s.tags.with(t)
	return s
}

func (s Snapshot) WithoutTag(id int) Snapshot {
	s.tags = s.tags.without(id)
	return s
}

func (s Snapshot) WithDocumentType(dt models.DocumentType) Snapshot {
	s.documentTypes = s.documentTypes.with(dt)
	return s
}

func (s Snapshot) WithoutDocumentType(id int) Snapshot {
	s.documentTypes = s.documentTypes.without(id)
	return s
}

func (s Snapshot) WithCorrespondent(c models.Correspondent) Snapshot {
	s.correspondents = s.correspondents.with(c)
	return s
}
