package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/fmsdesk/internal/client/client"
	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/dmitrijs2005/fmsdesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate(t *testing.T) {
	fc := &fakeClient{UpdateRet: models.Document{ID: 5, Title: "New"}}
	svc := NewDocumentService(fc, nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, 5, models.DocumentPatch{})
	require.ErrorIs(t, err, common.ErrValidation)

	blank := "  "
	_, err = svc.Update(ctx, 5, models.DocumentPatch{Title: &blank})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Zero(t, fc.calls)

	title := "New"
	d, err := svc.Update(ctx, 5, models.DocumentPatch{Title: &title, Tags: []int{1}, SetTags: true})
	require.NoError(t, err)
	assert.Equal(t, "New", d.Title)
	assert.Equal(t, 5, fc.LastUpdateID)
	assert.Equal(t, []int{1}, fc.LastPatch.Tags)

	fc.UpdateErr = errors.New("boom")
	_, err = svc.Update(ctx, 5, models.DocumentPatch{Title: &title})
	require.ErrorIs(t, err, fc.UpdateErr)
}

func TestUpload_DefaultsTitleFromFileName(t *testing.T) {
	fc := &fakeClient{UploadRet: models.Document{ID: 9}}
	svc := NewDocumentService(fc, nil)

	d, err := svc.Upload(context.Background(), models.NewDocument{FileName: "/tmp/scan.2024.pdf"}, strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, 9, d.ID)
	assert.Equal(t, "scan.2024", fc.LastUpload.Title)
	assert.Equal(t, "x", fc.LastUploadBody)

	_, err = svc.Upload(context.Background(), models.NewDocument{}, strings.NewReader("x"))
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestCreateNote(t *testing.T) {
	fc := &fakeClient{NoteRet: models.Note{ID: 3, Note: "hi"}}
	svc := NewDocumentService(fc, nil)

	_, err := svc.CreateNote(context.Background(), 1, "   ")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Zero(t, fc.calls)

	n, err := svc.CreateNote(context.Background(), 1, " hi ")
	require.NoError(t, err)
	assert.Equal(t, 3, n.ID)
	assert.Equal(t, "hi", fc.LastNoteBody)
	assert.Equal(t, 1, fc.LastNoteDoc)
}

func TestCreateTag(t *testing.T) {
	fc := &fakeClient{TagRet: models.Tag{ID: 8, Name: "Tax"}}
	svc := NewDocumentService(fc, nil)
	ctx := context.Background()

	_, err := svc.CreateTag(ctx, "", "")
	require.ErrorIs(t, err, common.ErrValidation)
	_, err = svc.CreateTag(ctx, "Tax", "red")
	require.ErrorIs(t, err, common.ErrValidation)

	tag, err := svc.CreateTag(ctx, " Tax ", "")
	require.NoError(t, err)
	assert.Equal(t, 8, tag.ID)
	assert.Equal(t, "Tax", fc.LastTagName)
	assert.Equal(t, DefaultTagColor, fc.LastColor)

	_, err = svc.CreateTag(ctx, "Tax", "#FFF")
	require.NoError(t, err)
	assert.Equal(t, "#FFF", fc.LastColor)
}

func TestReferenceMutations(t *testing.T) {
	fc := &fakeClient{
		TypeRet: models.DocumentType{ID: 2, Name: "Invoice"},
		CorrRet: models.Correspondent{ID: 4, Name: "ACME"},
	}
	svc := NewDocumentService(fc, nil)
	ctx := context.Background()

	dt, err := svc.CreateDocumentType(ctx, "Invoice")
	require.NoError(t, err)
	assert.Equal(t, 2, dt.ID)

	c, err := svc.CreateCorrespondent(ctx, "ACME")
	require.NoError(t, err)
	assert.Equal(t, 4, c.ID)

	_, err = svc.CreateCorrespondent(ctx, " ")
	require.ErrorIs(t, err, common.ErrValidation)
	_, err = svc.CreateDocumentType(ctx, "")
	require.ErrorIs(t, err, common.ErrValidation)

	require.NoError(t, svc.DeleteTag(ctx, 7))
	assert.Equal(t, 7, fc.LastDeletedID)
	require.NoError(t, svc.DeleteDocumentType(ctx, 2))
	assert.Equal(t, 2, fc.LastDeletedID)

	fc.DeleteErr = &client.APIError{Status: 409, Message: "Tag is in use"}
	err = svc.DeleteTag(ctx, 7)
	require.Error(t, err)
	assert.Equal(t, "Tag is in use", Describe(err))
}

func TestListAndProjects(t *testing.T) {
	fc := &fakeClient{
		Docs: []models.Document{
			{ID: 1, Title: "Lease agreement", Tags: []int{1}},
			{ID: 2, Title: "Invoice March", Tags: []int{2}},
		},
		Projects: []models.Project{{ID: 7, Name: "House"}},
	}
	svc := NewDocumentService(fc, nil)
	ctx := context.Background()

	docs, err := svc.List(ctx, models.DocumentFilter{Query: "lease"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Nil(t, fc.LastProjectID)

	docs, err = svc.ProjectDocuments(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	require.NotNil(t, fc.LastProjectID)
	assert.Equal(t, 7, *fc.LastProjectID)

	projects, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	p, err := svc.GetProject(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "House", p.Name)

	fc.DocsErr = client.ErrUnavailable
	_, err = svc.List(ctx, models.DocumentFilter{})
	require.ErrorIs(t, err, client.ErrUnavailable)
}

func TestGetAndDownloadWrapErrors(t *testing.T) {
	fc := &fakeClient{DocErr: client.ErrNotFound, FileErr: client.ErrNotFound}
	svc := NewDocumentService(fc, nil)

	_, err := svc.Get(context.Background(), 1)
	require.ErrorIs(t, err, client.ErrNotFound)
	_, err = svc.Download(context.Background(), 1, models.FileArchive)
	require.ErrorIs(t, err, client.ErrNotFound)
}
