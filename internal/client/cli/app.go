package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/fmsdesk/internal/client/blobstore"
	"github.com/dmitrijs2005/fmsdesk/internal/client/client"
	"github.com/dmitrijs2005/fmsdesk/internal/client/config"
	"github.com/dmitrijs2005/fmsdesk/internal/client/gate"
	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/dmitrijs2005/fmsdesk/internal/client/refdata"
	"github.com/dmitrijs2005/fmsdesk/internal/client/services"
	"github.com/dmitrijs2005/fmsdesk/internal/client/session"
	"github.com/dmitrijs2005/fmsdesk/internal/client/workspace"
	"github.com/dmitrijs2005/fmsdesk/internal/logging"
)

type accessChecker interface {
	Check(ctx context.Context, path string) (gate.Decision, error)
}

type referenceLoader interface {
	workspace.References
	Load(ctx context.Context) refdata.Snapshot
}

// App is the REPL application. It owns at most one open document workspace
// and is driven by a single goroutine.
type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	gate    accessChecker
	auth    services.AuthService
	docs    services.DocumentService
	refs    referenceLoader
	sink    blobstore.Sink
	preview *blobstore.PreviewSink

	ws      *workspace.Workspace
	profile *models.Profile

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewFileLogger(logging.Options{FilePath: c.LogFilePath, Debug: c.Verbose})

	db, err := session.OpenDatabase(ctx, c.SessionDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing session database", "error", err.Error())
		return nil, err
	}
	store := session.NewStore(db)

	api, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, store, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sink, err := newDownloadSink(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	docs := services.NewDocumentService(api, logger)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		gate:   gate.New(store, logger),
		auth:   services.NewAuthService(api, store, logger),
		docs:   docs,
		refs:   refdata.NewLoader(api, logger),
		sink:   sink,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// newDownloadSink picks the S3 bucket when one is configured, otherwise the
// local download directory.
func newDownloadSink(ctx context.Context, c *config.Config) (blobstore.Sink, error) {
	if c.S3Bucket != "" {
		return blobstore.NewS3Sink(ctx, blobstore.S3Options{
			Bucket:    c.S3Bucket,
			Prefix:    c.S3Prefix,
			Region:    c.S3Region,
			Endpoint:  c.S3Endpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		})
	}
	return blobstore.NewLocalSink(c.DownloadDir)
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if d, err := a.gate.Check(ctx, gate.DashboardPath); err == nil && d.Allow {
		a.refreshProfile(ctx)
	}

	printlnFn("fmsdesk: type 'help' for the list of commands.")
	runREPL(ctx, a, a.status, a.reader)
}

// Close releases the preview directory and the session database.
func (a *App) Close() {
	a.closeWorkspace()
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) refreshProfile(ctx context.Context) {
	p, err := a.auth.Profile(ctx)
	if err != nil {
		a.logger.Warn(ctx, "profile fetch failed", "error", err.Error())
		return
	}
	a.profile = &p
}

// status is the prompt label: who is signed in and which document is open.
func (a *App) status() string {
	s := "signed out"
	if a.profile != nil {
		s = a.profile.DisplayName()
	}
	if a.ws != nil {
		s += fmt.Sprintf(" | doc %d [%s]", a.ws.ID(), a.ws.State())
	}
	return s
}

func (a *App) closeWorkspace() {
	a.ws = nil
	if a.preview != nil {
		if err := a.preview.Close(); err != nil {
			a.logger.Warn(context.Background(), "preview cleanup failed", "error", err.Error())
		}
		a.preview = nil
	}
}

func (a *App) checkAccess(ctx context.Context, path string) (gate.Decision, error) {
	d, err := a.gate.Check(ctx, path)
	if err != nil {
		return d, err
	}
	if d.ClearCredentials || d.Redirect == gate.SignInPath {
		a.profile = nil
		a.closeWorkspace()
	}
	return d, nil
}
