package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/dmitrijs2005/fmsdesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) AccessToken(context.Context) (string, error) {
	return s.token, s.err
}

func newTestClient(t *testing.T, h http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL+"/", 5*time.Second, staticTokens{token: "tok"}, nil)
	require.NoError(t, err)
	c.newRequestID = func() string { return "req-1" }
	return c
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.com", time.Second, staticTokens{}, nil)
	require.Error(t, err)

	_, err = NewHTTPClient("://nope", time.Second, staticTokens{}, nil)
	require.Error(t, err)
}

func TestObtainTokens_SendsCredentialsWithoutAuth(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/token/", r.URL.Path)
		assert.Empty(t, r.Header.Get(common.AuthorizationHeaderName))
		assert.Equal(t, "req-1", r.Header.Get(common.RequestIDHeaderName))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "a@b.c", in["email"])
		assert.Equal(t, "pw", in["password"])

		_, _ = io.WriteString(w, `{"access":"A","refresh":"R"}`)
	}))

	pair, err := c.ObtainTokens(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.TokenPair{Access: "A", Refresh: "R"}, pair)
}

func TestObtainTokens_MissingAccessIsInvalid(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"refresh":"R"}`)
	}))

	_, err := c.ObtainTokens(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{"unauthorized", 401, `{"detail":"Token expired"}`, ErrUnauthorized, "Token expired"},
		{"forbidden", 403, `{}`, ErrUnauthorized, common.GenericErrorMessage},
		{"not found", 404, `{"detail":"Not found."}`, ErrNotFound, "Not found."},
		{"server", 502, `oops`, ErrUnavailable, common.GenericErrorMessage},
		{"validation", 400, `{"name":["already exists"]}`, nil, "name: already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))

			_, err := c.CreateTag(context.Background(), "x", "#fff")
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAuthenticatedCall_TokenSourceError(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	sentinel := errors.New("no creds")
	c, err := NewHTTPClient(srv.URL, time.Second, staticTokens{err: sentinel}, nil)
	require.NoError(t, err)

	_, err = c.GetProfile(context.Background())
	require.ErrorIs(t, err, sentinel)
	assert.False(t, called)
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, time.Second, staticTokens{token: "t"}, nil)
	require.NoError(t, err)

	_, err = c.ListTags(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestListTags_BareArray(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get(common.AuthorizationHeaderName))
		_, _ = io.WriteString(w, `[{"id":1,"name":"Invoice","color":"#f00"}]`)
	}))

	tags, err := c.ListTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Tag{{ID: 1, Name: "Invoice", Color: "#f00"}}, tags)
}

func TestListDocuments_FollowsPagination(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/documents/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("project"))
		switch r.URL.Query().Get("page") {
		case "":
			fmt.Fprintf(w, `{"count":2,"next":%q,"results":[{"id":1,"title":"a","created":"2024-01-02","tags":[]}]}`,
				srvURL+"/documents/?project=7&page=2")
		case "2":
			_, _ = io.WriteString(w, `{"count":2,"next":null,"results":[{"id":2,"title":"b","created":null,"tags":[3]}]}`)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	srvURL = srv.URL

	c, err := NewHTTPClient(srv.URL, time.Second, staticTokens{token: "t"}, nil)
	require.NoError(t, err)

	docs, err := c.ListDocuments(context.Background(), models.IntPtr(7))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].Title)
	assert.Equal(t, models.Date{Year: 2024, Month: 1, Day: 2}, docs[0].Created)
	assert.Equal(t, []int{3}, docs[1].Tags)
	assert.True(t, docs[1].Created.IsZero())
}

func TestListDocuments_RelativeNextLink(t *testing.T) {
	var pages []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages = append(pages, r.URL.RequestURI())
		assert.Equal(t, "Bearer tok", r.Header.Get(common.AuthorizationHeaderName))
		if r.URL.Query().Get("page") == "" {
			_, _ = io.WriteString(w, `{"count":2,"next":"/documents/?page=2","results":[{"id":1,"title":"a","tags":[]}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"count":2,"next":null,"results":[{"id":2,"title":"b","tags":[]}]}`)
	}))

	docs, err := c.ListDocuments(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, []string{"/documents/", "/documents/?page=2"}, pages)
}

func TestListDocuments_ForeignNextLinkRefused(t *testing.T) {
	var leaked int
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		leaked++
		_, _ = io.WriteString(w, `{"count":0,"next":null,"results":[]}`)
	}))
	defer foreign.Close()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"count":2,"next":%q,"results":[{"id":1,"title":"a","tags":[]}]}`,
			foreign.URL+"/documents/?page=2")
	}))

	_, err := c.ListDocuments(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidResponse)
	assert.Zero(t, leaked)
}

func TestListProjects_EmptyIsNotNil(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"count":0,"next":null,"results":[]}`)
	}))

	projects, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestUpdateDocument_SendsPatchBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/documents/5/", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "New", body["title"])
		v, ok := body["correspondent"]
		assert.True(t, ok)
		assert.Nil(t, v)
		assert.Equal(t, []any{float64(1), float64(2)}, body["tags"])
		_, has := body["document_type"]
		assert.False(t, has)

		_, _ = io.WriteString(w, `{"id":5,"title":"New","tags":[1,2]}`)
	}))

	title := "New"
	doc, err := c.UpdateDocument(context.Background(), 5, models.DocumentPatch{
		Title:              &title,
		ClearCorrespondent: true,
		Tags:               []int{1, 2},
		SetTags:            true,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, doc.ID)
}

func TestUploadDocument_Multipart(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Lease", r.FormValue("title"))
		assert.Equal(t, "3", r.FormValue("correspondent"))
		assert.Empty(t, r.FormValue("document_type"))
		assert.Equal(t, []string{"1", "4"}, r.MultipartForm.Value["tags[]"])
		assert.Equal(t, "2024-05-06", r.FormValue("created"))
		assert.Equal(t, "9", r.FormValue("Project"))

		f, hdr, err := r.FormFile("document")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "lease.pdf", hdr.Filename)
		assert.Equal(t, "PDF", string(data))

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":11,"title":"Lease"}`)
	}))

	doc, err := c.UploadDocument(context.Background(), models.NewDocument{
		FileName:      "lease.pdf",
		Title:         "Lease",
		Created:       models.Date{Year: 2024, Month: 5, Day: 6},
		Correspondent: models.IntPtr(3),
		Tags:          []int{1, 4},
		Project:       models.IntPtr(9),
	}, strings.NewReader("PDF"))
	require.NoError(t, err)
	assert.Equal(t, 11, doc.ID)
}

func TestDownloadDocument(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/documents/3/download-original/":
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="scan.pdf"`)
			_, _ = io.WriteString(w, "orig")
		case "/documents/3/download-archive/":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = io.WriteString(w, "arch")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	f, err := c.DownloadDocument(context.Background(), 3, models.FileOriginal)
	require.NoError(t, err)
	assert.Equal(t, "scan.pdf", f.Name)
	assert.Equal(t, []byte("orig"), f.Data)

	f, err = c.DownloadDocument(context.Background(), 3, models.FileArchive)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(f.Name, "document-3-archive"))
	assert.Equal(t, []byte("arch"), f.Data)

	_, err = c.DownloadDocument(context.Background(), 3, models.FileKind("thumb"))
	require.Error(t, err)
}

func TestCreateNote(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notes/", r.URL.Path)
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "hello", in["note"])
		assert.Equal(t, float64(4), in["document"])
		_, _ = io.WriteString(w, `{"id":77,"note":"hello","document":4,"created":"2024-01-01T10:00:00Z"}`)
	}))

	n, err := c.CreateNote(context.Background(), 4, "hello")
	require.NoError(t, err)
	assert.Equal(t, 77, n.ID)
	assert.Equal(t, 4, n.Document)
}

func TestActivate_EscapesToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/activate/a%2Fb", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.Activate(context.Background(), "a/b"))
}

func TestInvalidJSON(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":`)
	}))

	_, err := c.GetDocument(context.Background(), 1)
	require.ErrorIs(t, err, ErrInvalidResponse)
}
