package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/fmsdesk/internal/client/client"
	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/dmitrijs2005/fmsdesk/internal/logging"
)

// DefaultTagColor is used when a tag is created without a color.
const DefaultTagColor = "#a6cee3"

// DocumentService issues the document, note and reference-data calls.
//
// Every call carries the bearer credential and maps any non-success response
// to one error; nothing is retried and failed creates are never merged into
// local state.
type DocumentService interface {
	Get(ctx context.Context, id int) (models.Document, error)
	List(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error)
	Update(ctx context.Context, id int, patch models.DocumentPatch) (models.Document, error)
	Upload(ctx context.Context, doc models.NewDocument, content io.Reader) (models.Document, error)
	Download(ctx context.Context, id int, kind models.FileKind) (models.DownloadedFile, error)
	CreateNote(ctx context.Context, documentID int, body string) (models.Note, error)

	CreateTag(ctx context.Context, name, color string) (models.Tag, error)
	DeleteTag(ctx context.Context, id int) error
	CreateDocumentType(ctx context.Context, name string) (models.DocumentType, error)
	DeleteDocumentType(ctx context.Context, id int) error
	CreateCorrespondent(ctx context.Context, name string) (models.Correspondent, error)

	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id int) (models.Project, error)
	ProjectDocuments(ctx context.Context, projectID int) ([]models.Document, error)
}

type documentService struct {
	client client.Client
	logger logging.Logger
}

func NewDocumentService(c client.Client, logger logging.Logger) DocumentService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &documentService{client: c, logger: logger}
}

func (s *documentService) Get(ctx context.Context, id int) (models.Document, error) {
	d, err := s.client.GetDocument(ctx, id)
	if err != nil {
		return models.Document{}, fmt.Errorf("get document %d: %w", id, err)
	}
	return d, nil
}

// List fetches the documents (of one project when filter.ProjectID is set)
// and applies the rest of the filter locally.
func (s *documentService) List(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error) {
	docs, err := s.client.ListDocuments(ctx, filter.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return FilterDocuments(docs, filter), nil
}

func (s *documentService) Update(ctx context.Context, id int, patch models.DocumentPatch) (models.Document, error) {
	if patch.Empty() {
		return models.Document{}, invalid("", "Nothing to save.")
	}
	if patch.Title != nil {
		if err := checkVar("title", strings.TrimSpace(*patch.Title), "required"); err != nil {
			return models.Document{}, err
		}
	}

	d, err := s.client.UpdateDocument(ctx, id, patch)
	if err != nil {
		return models.Document{}, fmt.Errorf("update document %d: %w", id, err)
	}
	s.logger.Info(ctx, "document updated", "document_id", id)
	return d, nil
}

// Upload sends a new file. The title defaults to the file name without its
// extension.
func (s *documentService) Upload(ctx context.Context, doc models.NewDocument, content io.Reader) (models.Document, error) {
	if err := checkVar("document", strings.TrimSpace(doc.FileName), "required"); err != nil {
		return models.Document{}, err
	}
	if content == nil {
		return models.Document{}, invalid("document", "A file is required.")
	}
	if strings.TrimSpace(doc.Title) == "" {
		base := filepath.Base(doc.FileName)
		doc.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	d, err := s.client.UploadDocument(ctx, doc, content)
	if err != nil {
		return models.Document{}, fmt.Errorf("upload document: %w", err)
	}
	s.logger.Info(ctx, "document uploaded", "document_id", d.ID, "file", doc.FileName)
	return d, nil
}

func (s *documentService) Download(ctx context.Context, id int, kind models.FileKind) (models.DownloadedFile, error) {
	f, err := s.client.DownloadDocument(ctx, id, kind)
	if err != nil {
		return models.DownloadedFile{}, fmt.Errorf("download document %d: %w", id, err)
	}
	return f, nil
}

func (s *documentService) CreateNote(ctx context.Context, documentID int, body string) (models.Note, error) {
	body = strings.TrimSpace(body)
	if err := checkVar("note", body, "required"); err != nil {
		return models.Note{}, err
	}

	n, err := s.client.CreateNote(ctx, documentID, body)
	if err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}
	s.logger.Info(ctx, "note created", "document_id", documentID, "note_id", n.ID)
	return n, nil
}

func (s *documentService) CreateTag(ctx context.Context, name, color string) (models.Tag, error) {
	if color == "" {
		color = DefaultTagColor
	}
	in := models.Tag{Name: strings.TrimSpace(name), Color: color}
	if err := checkStruct(in); err != nil {
		return models.Tag{}, err
	}

	t, err := s.client.CreateTag(ctx, in.Name, in.Color)
	if err != nil {
		return models.Tag{}, fmt.Errorf("create tag: %w", err)
	}
	s.logger.Info(ctx, "tag created", "tag_id", t.ID)
	return t, nil
}

func (s *documentService) DeleteTag(ctx context.Context, id int) error {
	if err := s.client.DeleteTag(ctx, id); err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	s.logger.Info(ctx, "tag deleted", "tag_id", id)
	return nil
}

func (s *documentService) CreateDocumentType(ctx context.Context, name string) (models.DocumentType, error) {
	name = strings.TrimSpace(name)
	if err := checkStruct(models.DocumentType{Name: name}); err != nil {
		return models.DocumentType{}, err
	}

	dt, err := s.client.CreateDocumentType(ctx, name)
	if err != nil {
		return models.DocumentType{}, fmt.Errorf("create document type: %w", err)
	}
	s.logger.Info(ctx, "document type created", "document_type_id", dt.ID)
	return dt, nil
}

func (s *documentService) DeleteDocumentType(ctx context.Context, id int) error {
	if err := s.client.DeleteDocumentType(ctx, id); err != nil {
		return fmt.Errorf("delete document type %d: %w", id, err)
	}
	s.logger.Info(ctx, "document type deleted", "document_type_id", id)
	return nil
}

func (s *documentService) CreateCorrespondent(ctx context.Context, name string) (models.Correspondent, error) {
	name = strings.TrimSpace(name)
	if err := checkStruct(models.Correspondent{Name: name}); err != nil {
		return models.Correspondent{}, err
	}

	c, err := s.client.CreateCorrespondent(ctx, name)
	if err != nil {
		return models.Correspondent{}, fmt.Errorf("create correspondent: %w", err)
	}
	s.logger.Info(ctx, "correspondent created", "correspondent_id", c.ID)
	return c, nil
}

func (s *documentService) ListProjects(ctx context.Context) ([]models.Project, error) {
	p, err := s.client.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return p, nil
}

func (s *documentService) GetProject(ctx context.Context, id int) (models.Project, error) {
	p, err := s.client.GetProject(ctx, id)
	if err != nil {
		return models.Project{}, fmt.Errorf("get project %d: %w", id, err)
	}
	return p, nil
}

func (s *documentService) ProjectDocuments(ctx context.Context, projectID int) ([]models.Document, error) {
	return s.List(ctx, models.DocumentFilter{ProjectID: &projectID})
}
