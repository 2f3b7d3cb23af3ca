package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
)

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	Tokens    models.TokenPair
	TokensErr error

	RegisterErr    error
	ActivateErr    error
	ResetReqErr    error
	ResetVerifyErr error

	ProfileRet models.Profile
	ProfileErr error

	Docs       []models.Document
	DocsErr    error
	Doc        models.Document
	DocErr     error
	UpdateRet  models.Document
	UpdateErr  error
	UploadRet  models.Document
	UploadErr  error
	File       models.DownloadedFile
	FileErr    error
	NoteRet    models.Note
	NoteErr    error
	TagRet     models.Tag
	TagErr     error
	TypeRet    models.DocumentType
	TypeErr    error
	CorrRet    models.Correspondent
	CorrErr    error
	DeleteErr  error
	Projects   []models.Project
	ProjectErr error

	calls int

	LastEmail, LastPassword string
	LastRegistration        models.Registration
	LastActivateToken       string
	LastResetEmail          string
	LastResetConfirmation   models.PasswordResetConfirmation
	LastProfile             models.Profile
	LastProjectID           *int
	LastUpdateID            int
	LastPatch               models.DocumentPatch
	LastUpload              models.NewDocument
	LastUploadBody          string
	LastNoteDoc             int
	LastNoteBody            string
	LastTagName, LastColor  string
	LastName                string
	LastDeletedID           int
}

func (f *fakeClient) ObtainTokens(_ context.Context, email, password string) (models.TokenPair, error) {
	f.calls++
	f.LastEmail, f.LastPassword = email, password
	return f.Tokens, f.TokensErr
}

func (f *fakeClient) Register(_ context.Context, r models.Registration) error {
	f.calls++
	f.LastRegistration = r
	return f.RegisterErr
}

func (f *fakeClient) Activate(_ context.Context, token string) error {
	f.calls++
	f.LastActivateToken = token
	return f.ActivateErr
}

func (f *fakeClient) RequestPasswordReset(_ context.Context, email string) error {
	f.calls++
	f.LastResetEmail = email
	return f.ResetReqErr
}

func (f *fakeClient) ConfirmPasswordReset(_ context.Context, c models.PasswordResetConfirmation) error {
	f.calls++
	f.LastResetConfirmation = c
	return f.ResetVerifyErr
}

func (f *fakeClient) GetProfile(context.Context) (models.Profile, error) {
	f.calls++
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(_ context.Context, p models.Profile) (models.Profile, error) {
	f.calls++
	f.LastProfile = p
	return p, f.ProfileErr
}

func (f *fakeClient) ListTags(context.Context) ([]models.Tag, error) { return nil, nil }

func (f *fakeClient) CreateTag(_ context.Context, name, color string) (models.Tag, error) {
	f.calls++
	f.LastTagName, f.LastColor = name, color
	return f.TagRet, f.TagErr
}

func (f *fakeClient) DeleteTag(_ context.Context, id int) error {
	f.calls++
	f.LastDeletedID = id
	return f.DeleteErr
}

func (f *fakeClient) ListDocumentTypes(context.Context) ([]models.DocumentType, error) {
	return nil, nil
}

func (f *fakeClient) CreateDocumentType(_ context.Context, name string) (models.DocumentType, error) {
	f.calls++
	f.LastName = name
	return f.TypeRet, f.TypeErr
}

func (f *fakeClient) DeleteDocumentType(_ context.Context, id int) error {
	f.calls++
	f.LastDeletedID = id
	return f.DeleteErr
}

func (f *fakeClient) ListCorrespondents(context.Context) ([]models.Correspondent, error) {
	return nil, nil
}

func (f *fakeClient) CreateCorrespondent(_ context.Context, name string) (models.Correspondent, error) {
	f.calls++
	f.LastName = name
	return f.CorrRet, f.CorrErr
}

func (f *fakeClient) ListDocuments(_ context.Context, projectID *int) ([]models.Document, error) {
	f.calls++
	f.LastProjectID = projectID
	return f.Docs, f.DocsErr
}

func (f *fakeClient) GetDocument(_ context.Context, id int) (models.Document, error) {
	f.calls++
	return f.Doc, f.DocErr
}

func (f *fakeClient) UpdateDocument(_ context.Context, id int, patch models.DocumentPatch) (models.Document, error) {
	f.calls++
	f.LastUpdateID, f.LastPatch = id, patch
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) UploadDocument(_ context.Context, doc models.NewDocument, content io.Reader) (models.Document, error) {
	f.calls++
	f.LastUpload = doc
	b, _ := io.ReadAll(content)
	f.LastUploadBody = string(b)
	return f.UploadRet, f.UploadErr
}

func (f *fakeClient) DownloadDocument(context.Context, int, models.FileKind) (models.DownloadedFile, error) {
	f.calls++
	return f.File, f.FileErr
}

func (f *fakeClient) CreateNote(_ context.Context, documentID int, body string) (models.Note, error) {
	f.calls++
	f.LastNoteDoc, f.LastNoteBody = documentID, body
	return f.NoteRet, f.NoteErr
}

func (f *fakeClient) ListProjects(context.Context) ([]models.Project, error) {
	f.calls++
	return f.Projects, f.ProjectErr
}

func (f *fakeClient) GetProject(_ context.Context, id int) (models.Project, error) {
	f.calls++
	for _, p := range f.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, f.ProjectErr
}

// fakeStore implements CredentialStore.
type fakeStore struct {
	SaveErr  error
	ClearErr error

	Saves    int
	Clears   int
	LastPair models.TokenPair
	LastUID  string
}

func (s *fakeStore) Save(_ context.Context, pair models.TokenPair, uid string) error {
	s.Saves++
	s.LastPair, s.LastUID = pair, uid
	return s.SaveErr
}

func (s *fakeStore) Clear(context.Context) error {
	s.Clears++
	return s.ClearErr
}
