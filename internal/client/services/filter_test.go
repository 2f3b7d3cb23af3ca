package services

import (
	"testing"

	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestFilterDocuments(t *testing.T) {
	docs := []models.Document{
		{ID: 1, Title: "Lease", Tags: []int{1, 3}, DocumentType: models.IntPtr(2), Correspondent: models.IntPtr(5)},
		{ID: 2, Title: "Invoice March", Tags: []int{3}},
		{ID: 3, Title: "Invoice April", DocumentType: models.IntPtr(2)},
	}

	ids := func(ds []models.Document) []int {
		out := []int{}
		for _, d := range ds {
			out = append(out, d.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter models.DocumentFilter
		want   []int
	}{
		{"empty filter", models.DocumentFilter{}, []int{1, 2, 3}},
		{"query case-insensitive", models.DocumentFilter{Query: " INVOICE "}, []int{2, 3}},
		{"tag", models.DocumentFilter{TagID: models.IntPtr(3)}, []int{1, 2}},
		{"type", models.DocumentFilter{DocumentTypeID: models.IntPtr(2)}, []int{1, 3}},
		{"correspondent", models.DocumentFilter{CorrespondentID: models.IntPtr(5)}, []int{1}},
		{"combined", models.DocumentFilter{Query: "invoice", DocumentTypeID: models.IntPtr(2)}, []int{3}},
		{"project ignored", models.DocumentFilter{ProjectID: models.IntPtr(99)}, []int{1, 2, 3}},
		{"no match", models.DocumentFilter{TagID: models.IntPtr(42)}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterDocuments(docs, tt.filter)))
		})
	}
}
