// Package reconcile derives display names from a document's stored reference
// ids and maps picker selections back to ids.
//
// The id-list on the document is the only state; names are always computed
// from it and the loaded collection, never stored next to it. Ids or names
// that do not resolve are dropped silently. When two entries share a display
// name the first one in the collection wins.
package reconcile

import (
	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/dmitrijs2005/fmsdesk/internal/client/refdata"
)

// Resolve returns the entries for ids in id order, each id at most once.
func Resolve[T models.Reference](ids []int, items []T) []T {
	byID := make(map[int]T, len(items))
	for _, it := range items {
		if _, dup := byID[it.RefID()]; !dup {
			byID[it.RefID()] = it
		}
	}

	out := make([]T, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		if it, ok := byID[id]; ok {
			seen[id] = struct{}{}
			out = append(out, it)
		}
	}
	return out
}

// Names maps ids to display names.
func Names[T models.Reference](ids []int, items []T) []string {
	resolved := Resolve(ids, items)
	out := make([]string, 0, len(resolved))
	for _, it := range resolved {
		out = append(out, it.RefName())
	}
	return out
}

// IDs maps display names to ids, each id at most once.
func IDs[T models.Reference](names []string, items []T) []int {
	out := make([]int, 0, len(names))
	seen := make(map[int]struct{}, len(names))
	for _, n := range names {
		id, ok := ID(n, items)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ID finds the first entry named name.
func ID[T models.Reference](name string, items []T) (int, bool) {
	for _, it := range items {
		if it.RefName() == name {
			return it.RefID(), true
		}
	}
	return 0, false
}

// Name returns the display name for an optional reference, or "" when it is
// unset or unresolved.
func Name[T models.Reference](id *int, items []T) string {
	if id == nil {
		return ""
	}
	for _, it := range items {
		if it.RefID() == *id {
			return it.RefName()
		}
	}
	return ""
}

func ResolveTags(ids []int, tags []models.Tag) []models.Tag { return Resolve(ids, tags) }

func TagNames(ids []int, tags []models.Tag) []string { return Names(ids, tags) }

func TagIDs(names []string, tags []models.Tag) []int { return IDs(names, tags) }

func DocumentTypeName(id *int, types []models.DocumentType) string { return Name(id, types) }

func CorrespondentName(id *int, correspondents []models.Correspondent) string {
	return Name(id, correspondents)
}

func DocumentTypeID(name string, types []models.DocumentType) (int, bool) { return ID(name, types) }

func CorrespondentID(name string, correspondents []models.Correspondent) (int, bool) {
	return ID(name, correspondents)
}

// Ready reports whether tag reconciliation may run: the tag collection must
// have loaded and be non-empty, otherwise an in-flight or failed fetch would
// derive an empty selection.
func Ready(snap refdata.Snapshot) bool {
	return snap.Tags().Loaded() && snap.Tags().Len() > 0
}
