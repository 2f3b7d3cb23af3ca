package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_DecodesBackendShape(t *testing.T) {
	raw := `{
		"id": 42,
		"title": "Lease",
		"created": "2024-03-01T10:15:00Z",
		"correspondent": null,
		"document_type": 2,
		"tags": [1, 3],
		"notes": [{"id": 7, "note": "signed", "created": "2024-03-02T08:00:00Z", "document": 42}],
		"archive_file": "/media/archive/42.pdf"
	}`

	var d Document
	require.NoError(t, json.Unmarshal([]byte(raw), &d))

	assert.Equal(t, 42, d.ID)
	assert.Equal(t, Date{2024, time.March, 1}, d.Created)
	assert.Nil(t, d.Correspondent)
	require.NotNil(t, d.DocumentType)
	assert.Equal(t, 2, *d.DocumentType)
	assert.Equal(t, []int{1, 3}, d.Tags)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "signed", d.Notes[0].Note)
	assert.True(t, d.HasArchive())
}

func TestDocument_CloneIsDeep(t *testing.T) {
	d := Document{ID: 1, Tags: []int{1, 2}, DocumentType: IntPtr(5)}
	c := d.Clone()

	c.Tags[0] = 99
	*c.DocumentType = 6

	assert.Equal(t, []int{1, 2}, d.Tags)
	assert.Equal(t, 5, *d.DocumentType)
}

func TestDocumentPatch_Body(t *testing.T) {
	title := "New title"
	created := Date{2023, time.December, 31}

	p := DocumentPatch{
		Title:             &title,
		Created:           &created,
		Correspondent:     IntPtr(4),
		ClearDocumentType: true,
		SetTags:           true,
	}
	body := p.Body()

	assert.Equal(t, "New title", body["title"])
	assert.Equal(t, "2023-12-31", body["created"])
	assert.Equal(t, 4, body["correspondent"])
	v, ok := body["document_type"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, []int{}, body["tags"])
	assert.False(t, p.Empty())
	assert.True(t, DocumentPatch{}.Empty())
}

func TestDate_ParseAndFormat(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseDate("29/02/2024")
	require.Error(t, err)

	var zero Date
	b, err := json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestProfile_DisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Profile{FirstName: "Ada", LastName: "Lovelace"}.DisplayName())
	assert.Equal(t, "Ada", Profile{FirstName: "Ada"}.DisplayName())
	assert.Equal(t, "ada@example.org", Profile{Email: "ada@example.org"}.DisplayName())
}
