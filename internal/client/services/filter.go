package services

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
)

// FilterDocuments keeps the documents matching every set field of f. The
// query is a case-insensitive title substring. ProjectID is not applied here.
func FilterDocuments(docs []models.Document, f models.DocumentFilter) []models.Document {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if query != "" && !strings.Contains(strings.ToLower(d.Title), query) {
			continue
		}
		if f.TagID != nil && !slices.Contains(d.Tags, *f.TagID) {
			continue
		}
		if f.DocumentTypeID != nil && (d.DocumentType == nil || *d.DocumentType != *f.DocumentTypeID) {
			continue
		}
		if f.CorrespondentID != nil && (d.Correspondent == nil || *d.Correspondent != *f.CorrespondentID) {
			continue
		}
		out = append(out, d)
	}
	return out
}
