package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/fmsdesk/internal/client/client"
	"github.com/dmitrijs2005/fmsdesk/internal/client/gate"
	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/dmitrijs2005/fmsdesk/internal/client/refdata"
	"github.com/dmitrijs2005/fmsdesk/internal/logging"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

// stubTerminal makes GetPassword read plain lines from the reader.
func stubTerminal(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

func testSnapshot() refdata.Snapshot {
	return refdata.NewSnapshot(
		refdata.Loaded([]models.Tag{{ID: 1, Name: "Invoice"}, {ID: 3, Name: "Paid"}, {ID: 5, Name: "Tax"}}),
		refdata.Loaded([]models.DocumentType{{ID: 2, Name: "Contract"}, {ID: 4, Name: "Receipt"}}),
		refdata.Loaded([]models.Correspondent{{ID: 7, Name: "ACME"}}),
	)
}

func lease() models.Document {
	return models.Document{
		ID:           42,
		Title:        "Lease",
		Created:      models.Date{Year: 2024, Month: time.March, Day: 1},
		DocumentType: models.IntPtr(2),
		Tags:         []int{1, 3},
		OriginalFile: "/media/originals/42.pdf",
	}
}

type testEnv struct {
	app  *App
	out  *bytes.Buffer
	gate *fakeGate
	auth *fakeAuth
	docs *fakeDocs
	refs *fakeRefs
}

func newTestApp(t *testing.T, lines ...string) *testEnv {
	t.Helper()
	stubTerminal(t)

	docs := &fakeDocs{docs: map[int]models.Document{42: lease()}}
	env := &testEnv{
		out:  &bytes.Buffer{},
		gate: &fakeGate{},
		auth: &fakeAuth{profile: models.Profile{ID: 1, Email: "ann@example.com", FirstName: "Ann"}},
		docs: docs,
		refs: &fakeRefs{snap: testSnapshot(), docs: docs},
	}
	env.app = &App{
		logger: logging.NewNop(),
		gate:   env.gate,
		auth:   env.auth,
		docs:   env.docs,
		refs:   env.refs,
		reader: readerFromLines(lines...),
		out:    env.out,
	}
	t.Cleanup(env.app.closeWorkspace)
	return env
}

// ------------ gate ------------

type fakeGate struct {
	decisions map[string]gate.Decision
	err       error
	paths     []string
}

func (f *fakeGate) Check(_ context.Context, path string) (gate.Decision, error) {
	f.paths = append(f.paths, path)
	if f.err != nil {
		return gate.Decision{}, f.err
	}
	if d, ok := f.decisions[path]; ok {
		return d, nil
	}
	return gate.Decision{Allow: true}, nil
}

// ------------ auth ------------

type fakeAuth struct {
	profile    models.Profile
	signInErr  error
	profileErr error
	err        error

	LastEmail        string
	LastPassword     string
	LastRegistration models.Registration
	LastRepeat       string
	LastToken        string
	LastResetEmail   string
	LastConfirmation models.PasswordResetConfirmation
	LastUpdate       models.Profile
	signOuts         int
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (models.Profile, error) {
	f.LastEmail, f.LastPassword = email, password
	if f.signInErr != nil {
		return models.Profile{}, f.signInErr
	}
	return f.profile, nil
}

func (f *fakeAuth) SignUp(_ context.Context, r models.Registration, repeat string) error {
	f.LastRegistration, f.LastRepeat = r, repeat
	return f.err
}

func (f *fakeAuth) Activate(_ context.Context, token string) error {
	f.LastToken = token
	return f.err
}

func (f *fakeAuth) RequestPasswordReset(_ context.Context, email string) error {
	f.LastResetEmail = email
	return f.err
}

func (f *fakeAuth) ConfirmPasswordReset(_ context.Context, c models.PasswordResetConfirmation, repeat string) error {
	f.LastConfirmation, f.LastRepeat = c, repeat
	return f.err
}

func (f *fakeAuth) Profile(context.Context) (models.Profile, error) {
	if f.profileErr != nil {
		return models.Profile{}, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeAuth) UpdateProfile(_ context.Context, p models.Profile) (models.Profile, error) {
	f.LastUpdate = p
	if f.err != nil {
		return models.Profile{}, f.err
	}
	f.profile = p
	return p, nil
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.signOuts++
	return f.err
}

// ------------ documents ------------

type fakeDocs struct {
	docs     map[int]models.Document
	projects []models.Project
	file     models.DownloadedFile

	listErr     error
	updateErr   error
	noteErr     error
	tagErr      error
	downloadErr error

	LastFilter       models.DocumentFilter
	LastPatch        models.DocumentPatch
	LastUpload       models.NewDocument
	LastUploadBody   string
	LastNote         string
	LastTag          string
	LastColor        string
	LastDeletedTag   int
	LastDeletedType  int
	LastTypeName     string
	LastCorrName     string
	LastDownloadID   int
	LastDownloadKind models.FileKind
	LastProjectID    int
	updates          int
	lists            int
}

func notFound(id int) error {
	return fmt.Errorf("get document %d: %w", id, &client.APIError{Status: 404, Message: "Not found."})
}

func (f *fakeDocs) Get(_ context.Context, id int) (models.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return models.Document{}, notFound(id)
	}
	return d.Clone(), nil
}

func (f *fakeDocs) List(_ context.Context, filter models.DocumentFilter) ([]models.Document, error) {
	f.lists++
	f.LastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Document, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, d.Clone())
	}
	return out, nil
}

func (f *fakeDocs) Update(_ context.Context, id int, p models.DocumentPatch) (models.Document, error) {
	f.updates++
	f.LastPatch = p
	if f.updateErr != nil {
		return models.Document{}, f.updateErr
	}
	d := f.docs[id]
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Created != nil {
		d.Created = *p.Created
	}
	if p.ClearDocumentType {
		d.DocumentType = nil
	} else if p.DocumentType != nil {
		d.DocumentType = models.IntPtr(*p.DocumentType)
	}
	if p.ClearCorrespondent {
		d.Correspondent = nil
	} else if p.Correspondent != nil {
		d.Correspondent = models.IntPtr(*p.Correspondent)
	}
	if p.SetTags {
		d.Tags = append([]int{}, p.Tags...)
	}
	f.docs[id] = d
	return d.Clone(), nil
}

func (f *fakeDocs) Upload(_ context.Context, doc models.NewDocument, content io.Reader) (models.Document, error) {
	f.LastUpload = doc
	b, err := io.ReadAll(content)
	if err != nil {
		return models.Document{}, err
	}
	f.LastUploadBody = string(b)
	title := doc.Title
	if title == "" {
		title = doc.FileName
	}
	return models.Document{ID: 99, Title: title}, nil
}

func (f *fakeDocs) Download(_ context.Context, id int, kind models.FileKind) (models.DownloadedFile, error) {
	f.LastDownloadID, f.LastDownloadKind = id, kind
	if f.downloadErr != nil {
		return models.DownloadedFile{}, f.downloadErr
	}
	return f.file, nil
}

func (f *fakeDocs) CreateNote(_ context.Context, id int, body string) (models.Note, error) {
	f.LastNote = body
	if f.noteErr != nil {
		return models.Note{}, f.noteErr
	}
	n := models.Note{ID: 500, Note: body, Document: id, Created: time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)}
	d := f.docs[id]
	d.Notes = append(d.Notes, n)
	f.docs[id] = d
	return n, nil
}

func (f *fakeDocs) CreateTag(_ context.Context, name, color string) (models.Tag, error) {
	f.LastTag, f.LastColor = name, color
	if f.tagErr != nil {
		return models.Tag{}, f.tagErr
	}
	return models.Tag{ID: 100, Name: name, Color: color}, nil
}

func (f *fakeDocs) DeleteTag(_ context.Context, id int) error {
	f.LastDeletedTag = id
	return f.tagErr
}

func (f *fakeDocs) CreateDocumentType(_ context.Context, name string) (models.DocumentType, error) {
	f.LastTypeName = name
	return models.DocumentType{ID: 200, Name: name}, nil
}

func (f *fakeDocs) DeleteDocumentType(_ context.Context, id int) error {
	f.LastDeletedType = id
	return nil
}

func (f *fakeDocs) CreateCorrespondent(_ context.Context, name string) (models.Correspondent, error) {
	f.LastCorrName = name
	return models.Correspondent{ID: 300, Name: name}, nil
}

func (f *fakeDocs) ListProjects(context.Context) ([]models.Project, error) {
	return f.projects, nil
}

func (f *fakeDocs) GetProject(_ context.Context, id int) (models.Project, error) {
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, &client.APIError{Status: 404, Message: "Project not found."}
}

func (f *fakeDocs) ProjectDocuments(ctx context.Context, id int) ([]models.Document, error) {
	f.LastProjectID = id
	return f.List(ctx, models.DocumentFilter{ProjectID: &id})
}

// ------------ references ------------

type fakeRefs struct {
	snap  refdata.Snapshot
	docs  *fakeDocs
	loads int

	retries        int
	LastRetryKinds []refdata.Kind
	retrySnap      *refdata.Snapshot
}

func (f *fakeRefs) Load(context.Context) refdata.Snapshot {
	f.loads++
	return f.snap
}

func (f *fakeRefs) LoadDocument(ctx context.Context, id int) (models.Document, refdata.Snapshot, error) {
	d, err := f.docs.Get(ctx, id)
	return d, f.snap, err
}

func (f *fakeRefs) Retry(_ context.Context, snap refdata.Snapshot, kinds ...refdata.Kind) refdata.Snapshot {
	f.retries++
	f.LastRetryKinds = kinds
	if f.retrySnap != nil {
		return *f.retrySnap
	}
	return snap
}
