package models

import (
	"slices"
	"time"
)

// Document as returned by GET /documents/{id}/.
type Document struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Created       Date   `json:"created"`
	Correspondent *int   `json:"correspondent"`
	DocumentType  *int   `json:"document_type"`
	Tags          []int  `json:"tags"`
	Notes         []Note `json:"notes"`
	OriginalFile  string `json:"original_file,omitempty"`
	ArchiveFile   string `json:"archive_file,omitempty"`
	Project       *int   `json:"project,omitempty"`
}

// Clone returns a deep copy so callers can hand out snapshots safely.
func (d Document) Clone() Document {
	c := d
	c.Correspondent = cloneInt(d.Correspondent)
	c.DocumentType = cloneInt(d.DocumentType)
	c.Project = cloneInt(d.Project)
	c.Tags = slices.Clone(d.Tags)
	c.Notes = slices.Clone(d.Notes)
	return c
}

// HasArchive reports whether an archived (OCR'd) rendition is available.
func (d Document) HasArchive() bool {
	return d.ArchiveFile != ""
}

// DocumentPatch is the body of PATCH /documents/{id}/. Nil fields are not
// sent. ClearCorrespondent/ClearDocumentType send an explicit null.
type DocumentPatch struct {
	Title              *string
	Created            *Date
	Correspondent      *int
	ClearCorrespondent bool
	DocumentType       *int
	ClearDocumentType  bool
	Tags               []int
	SetTags            bool
}

// Empty reports whether the patch would change nothing.
func (p DocumentPatch) Empty() bool {
	return p.Title == nil && p.Created == nil &&
		p.Correspondent == nil && !p.ClearCorrespondent &&
		p.DocumentType == nil && !p.ClearDocumentType &&
		!p.SetTags
}

// Body renders the patch as the JSON object sent to the backend.
func (p DocumentPatch) Body() map[string]any {
	body := make(map[string]any)
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.Created != nil {
		body["created"] = p.Created.String()
	}
	switch {
	case p.ClearCorrespondent:
		body["correspondent"] = nil
	case p.Correspondent != nil:
		body["correspondent"] = *p.Correspondent
	}
	switch {
	case p.ClearDocumentType:
		body["document_type"] = nil
	case p.DocumentType != nil:
		body["document_type"] = *p.DocumentType
	}
	if p.SetTags {
		tags := p.Tags
		if tags == nil {
			tags = []int{}
		}
		body["tags"] = tags
	}
	return body
}

// NewDocument describes a multipart upload to POST /documents/.
type NewDocument struct {
	FileName      string
	Title         string
	Created       Date
	Correspondent *int
	DocumentType  *int
	Tags          []int
	Project       *int
}

// DocumentFilter narrows document listings. ProjectID is applied by the
// backend; the remaining fields are applied client-side.
type DocumentFilter struct {
	Query           string
	TagID           *int
	DocumentTypeID  *int
	CorrespondentID *int
	ProjectID       *int
}

// FileKind selects which rendition of a document to download.
type FileKind string

const (
	FileOriginal FileKind = "original"
	FileArchive  FileKind = "archive"
)

// DownloadedFile is a fetched document rendition held in memory.
type DownloadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// IntPtr is a convenience for optional id fields.
func IntPtr(v int) *int { return &v }

// Today returns the current date in local time.
func Today() Date {
	return DateOf(time.Now())
}
