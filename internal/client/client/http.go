package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/dmitrijs2005/fmsdesk/internal/common"
	"github.com/dmitrijs2005/fmsdesk/internal/logging"
	"github.com/dmitrijs2005/fmsdesk/internal/netx"
	"github.com/google/uuid"
)

// maxPages bounds how many "next" links a listing follows.
const maxPages = 200

// HTTPClient implements Client over the backend's REST API.
type HTTPClient struct {
	baseURL      string
	http         *http.Client
	tokens       TokenSource
	logger       logging.Logger
	newRequestID func() string
}

// NewHTTPClient validates baseURL and builds a client whose requests time out
// after timeout (zero disables the timeout).
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: timeout},
		tokens:       tokens,
		logger:       logger,
		newRequestID: uuid.NewString,
	}, nil
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

type request struct {
	method      string
	url         string
	auth        bool
	body        io.Reader
	contentType string
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *HTTPClient) send(ctx context.Context, r request) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, r.url, r.body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := c.newRequestID()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	if r.auth {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("access token: %w", err)
		}
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	log := c.logger.With("request_id", requestID, "method", r.method, "path", req.URL.Path)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Warn(ctx, "request failed", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	log.Info(ctx, "request finished", "status", resp.StatusCode, "duration_ms", time.Since(started).Milliseconds())

	if !netx.IsSuccess(resp.StatusCode) {
		return nil, newAPIError(resp.StatusCode, netx.ErrorMessage(body))
	}
	return &response{status: resp.StatusCode, header: resp.Header, body: body}, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, auth bool, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	resp, err := c.send(ctx, request{method: method, url: c.endpoint(path, nil), auth: auth, body: body, contentType: contentType})
	if err != nil {
		return err
	}
	return decode(resp.body, out)
}

func decode(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

type page[T any] struct {
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

// getList reads a collection that is either a bare JSON array or a paginated
// {"next": ..., "results": [...]} envelope, following next links.
func getList[T any](ctx context.Context, c *HTTPClient, path string, query url.Values) ([]T, error) {
	items := make([]T, 0)
	next := c.endpoint(path, query)

	for i := 0; next != "" && i < maxPages; i++ {
		resp, err := c.send(ctx, request{method: http.MethodGet, url: next, auth: true})
		if err != nil {
			return nil, err
		}

		trimmed := bytes.TrimSpace(resp.body)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var list []T
			if err := decode(trimmed, &list); err != nil {
				return nil, err
			}
			return append(items, list...), nil
		}

		var p page[T]
		if err := decode(trimmed, &p); err != nil {
			return nil, err
		}
		items = append(items, p.Results...)

		next = ""
		if p.Next != nil && *p.Next != "" {
			if next, err = c.resolveNext(*p.Next); err != nil {
				return nil, err
			}
		}
	}
	return items, nil
}

// resolveNext turns a page link into an absolute url on the configured
// server. Links to any other host are refused so the bearer token stays put.
func (c *HTTPClient) resolveNext(link string) (string, error) {
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("base url: %w", err)
	}
	ref, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("%w: next link %q: %v", ErrInvalidResponse, link, err)
	}
	u := base.ResolveReference(ref)
	if u.Scheme != base.Scheme || u.Host != base.Host {
		return "", fmt.Errorf("%w: next link %q leaves %s", ErrInvalidResponse, link, base.Host)
	}
	return u.String(), nil
}

func (c *HTTPClient) ObtainTokens(ctx context.Context, email, password string) (models.TokenPair, error) {
	var pair models.TokenPair
	in := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/token/", false, in, &pair); err != nil {
		return models.TokenPair{}, err
	}
	if pair.Access == "" {
		return models.TokenPair{}, fmt.Errorf("%w: access token missing", ErrInvalidResponse)
	}
	return pair, nil
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) error {
	return c.doJSON(ctx, http.MethodPost, "/register/", false, r, nil)
}

func (c *HTTPClient) Activate(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodGet, "/accounts/activate/"+url.PathEscape(token), false, nil, nil)
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/accounts/password-reset/request/", false, map[string]string{"email": email}, nil)
}

func (c *HTTPClient) ConfirmPasswordReset(ctx context.Context, conf models.PasswordResetConfirmation) error {
	return c.doJSON(ctx, http.MethodPost, "/accounts/password-reset/verify/", false, conf, nil)
}

func (c *HTTPClient) GetProfile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	err := c.doJSON(ctx, http.MethodGet, "/accounts/profiles/me/", true, nil, &p)
	return p, err
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, p models.Profile) (models.Profile, error) {
	var out models.Profile
	err := c.doJSON(ctx, http.MethodPut, "/accounts/profiles/me/", true, p, &out)
	return out, err
}

func (c *HTTPClient) ListTags(ctx context.Context) ([]models.Tag, error) {
	return getList[models.Tag](ctx, c, "/tags/", nil)
}

func (c *HTTPClient) CreateTag(ctx context.Context, name, color string) (models.Tag, error) {
	var t models.Tag
	err := c.doJSON(ctx, http.MethodPost, "/tags/", true, models.Tag{Name: name, Color: color}, &t)
	return t, err
}

func (c *HTTPClient) DeleteTag(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/tags/%d/", id), true, nil, nil)
}

func (c *HTTPClient) ListDocumentTypes(ctx context.Context) ([]models.DocumentType, error) {
	return getList[models.DocumentType](ctx, c, "/document-type/", nil)
}

func (c *HTTPClient) CreateDocumentType(ctx context.Context, name string) (models.DocumentType, error) {
	var dt models.DocumentType
	err := c.doJSON(ctx, http.MethodPost, "/document-type/", true, map[string]string{"name": name}, &dt)
	return dt, err
}

func (c *HTTPClient) DeleteDocumentType(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/document-type/%d/", id), true, nil, nil)
}

func (c *HTTPClient) ListCorrespondents(ctx context.Context) ([]models.Correspondent, error) {
	return getList[models.Correspondent](ctx, c, "/correspondents/", nil)
}

func (c *HTTPClient) CreateCorrespondent(ctx context.Context, name string) (models.Correspondent, error) {
	var cr models.Correspondent
	err := c.doJSON(ctx, http.MethodPost, "/correspondents/", true, map[string]string{"name": name}, &cr)
	return cr, err
}

func (c *HTTPClient) ListDocuments(ctx context.Context, projectID *int) ([]models.Document, error) {
	var q url.Values
	if projectID != nil {
		q = url.Values{"project": {strconv.Itoa(*projectID)}}
	}
	return getList[models.Document](ctx, c, "/documents/", q)
}

func (c *HTTPClient) GetDocument(ctx context.Context, id int) (models.Document, error) {
	var d models.Document
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/documents/%d/", id), true, nil, &d)
	return d, err
}

func (c *HTTPClient) UpdateDocument(ctx context.Context, id int, patch models.DocumentPatch) (models.Document, error) {
	var d models.Document
	err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/documents/%d/", id), true, patch.Body(), &d)
	return d, err
}

func (c *HTTPClient) UploadDocument(ctx context.Context, doc models.NewDocument, content io.Reader) (models.Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("document", doc.FileName)
	if err != nil {
		return models.Document{}, fmt.Errorf("multipart: %w", err)
	}
	if _, err := io.Copy(fw, content); err != nil {
		return models.Document{}, fmt.Errorf("multipart: copy file: %w", err)
	}

	fields := [][2]string{{"title", doc.Title}}
	if doc.Correspondent != nil {
		fields = append(fields, [2]string{"correspondent", strconv.Itoa(*doc.Correspondent)})
	}
	if doc.DocumentType != nil {
		fields = append(fields, [2]string{"document_type", strconv.Itoa(*doc.DocumentType)})
	}
	for _, id := range doc.Tags {
		fields = append(fields, [2]string{"tags[]", strconv.Itoa(id)})
	}
	if !doc.Created.IsZero() {
		fields = append(fields, [2]string{"created", doc.Created.String()})
	}
	if doc.Project != nil {
		fields = append(fields, [2]string{"Project", strconv.Itoa(*doc.Project)})
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return models.Document{}, fmt.Errorf("multipart: field %s: %w", f[0], err)
		}
	}
	if err := mw.Close(); err != nil {
		return models.Document{}, fmt.Errorf("multipart: %w", err)
	}

	resp, err := c.send(ctx, request{
		method:      http.MethodPost,
		url:         c.endpoint("/documents/", nil),
		auth:        true,
		body:        &buf,
		contentType: mw.FormDataContentType(),
	})
	if err != nil {
		return models.Document{}, err
	}

	var d models.Document
	if err := decode(resp.body, &d); err != nil {
		return models.Document{}, err
	}
	return d, nil
}

func (c *HTTPClient) DownloadDocument(ctx context.Context, id int, kind models.FileKind) (models.DownloadedFile, error) {
	var path string
	switch kind {
	case models.FileOriginal:
		path = fmt.Sprintf("/documents/%d/download-original/", id)
	case models.FileArchive:
		path = fmt.Sprintf("/documents/%d/download-archive/", id)
	default:
		return models.DownloadedFile{}, fmt.Errorf("unknown file kind %q", kind)
	}

	resp, err := c.send(ctx, request{method: http.MethodGet, url: c.endpoint(path, nil), auth: true})
	if err != nil {
		return models.DownloadedFile{}, err
	}

	contentType := resp.header.Get("Content-Type")
	return models.DownloadedFile{
		Name:        fileName(resp.header.Get("Content-Disposition"), contentType, id, kind),
		ContentType: contentType,
		Data:        resp.body,
	}, nil
}

func fileName(disposition, contentType string, id int, kind models.FileKind) string {
	if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
		return params["filename"]
	}
	name := fmt.Sprintf("document-%d-%s", id, kind)
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
			name += exts[0]
		}
	}
	return name
}

func (c *HTTPClient) CreateNote(ctx context.Context, documentID int, body string) (models.Note, error) {
	var n models.Note
	in := map[string]any{"note": body, "document": documentID}
	err := c.doJSON(ctx, http.MethodPost, "/notes/", true, in, &n)
	return n, err
}

func (c *HTTPClient) ListProjects(ctx context.Context) ([]models.Project, error) {
	return getList[models.Project](ctx, c, "/projects/", nil)
}

func (c *HTTPClient) GetProject(ctx context.Context, id int) (models.Project, error) {
	var p models.Project
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/", id), true, nil, &p)
	return p, err
}
