package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
)

// Client is the backend contract used by the services layer.
type Client interface {
	ObtainTokens(ctx context.Context, email, password string) (models.TokenPair, error)
	Register(ctx context.Context, r models.Registration) error
	Activate(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, c models.PasswordResetConfirmation) error
	GetProfile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, p models.Profile) (models.Profile, error)

	ReferenceClient

	ListDocuments(ctx context.Context, projectID *int) ([]models.Document, error)
	GetDocument(ctx context.Context, id int) (models.Document, error)
	UpdateDocument(ctx context.Context, id int, patch models.DocumentPatch) (models.Document, error)
	UploadDocument(ctx context.Context, doc models.NewDocument, content io.Reader) (models.Document, error)
	DownloadDocument(ctx context.Context, id int, kind models.FileKind) (models.DownloadedFile, error)
	CreateNote(ctx context.Context, documentID int, body string) (models.Note, error)

	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id int) (models.Project, error)
}

// ReferenceClient covers the reference collections a document points at.
type ReferenceClient interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	CreateTag(ctx context.Context, name, color string) (models.Tag, error)
	DeleteTag(ctx context.Context, id int) error

	ListDocumentTypes(ctx context.Context) ([]models.DocumentType, error)
	CreateDocumentType(ctx context.Context, name string) (models.DocumentType, error)
	DeleteDocumentType(ctx context.Context, id int) error

	ListCorrespondents(ctx context.Context) ([]models.Correspondent, error)
	CreateCorrespondent(ctx context.Context, name string) (models.Correspondent, error)
}

// TokenSource yields the access credential attached to authenticated calls.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}
