package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"filetags/internal/adapters/auth"
	"filetags/internal/adapters/files"
	"filetags/internal/delivery/http/helpers"
	"filetags/internal/services"
)

// newTestServer wires the real manager, file store and auth stack over an
// in-memory filesystem holding a.txt, b.txt and c.txt.
func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	fs := afero.NewBasePathFs(afero.NewMemMapFs(), "/srv")
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		require.NoError(t, afero.WriteFile(fs, name, []byte(strings.TrimSuffix(name, ".txt")), 0o644))
	}

	manager := services.NewTagManager(files.NewStore(fs), logger)
	require.NoError(t, services.Bootstrap(context.Background(), manager, files.NewDirSource(fs)))

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret")
	require.NoError(t, err)
	issuer := auth.NewJWTIssuer("test-secret")
	authService := services.NewOperatorAuthService("admin", hash, hasher, issuer, time.Hour)

	srv := httptest.NewServer(NewHandler(Deps{
		Logger:         logger,
		Manager:        manager,
		Auth:           authService,
		Verifier:       auth.NewJWTVerifier("test-secret"),
		RequestTimeout: time.Second,
	}))
	t.Cleanup(srv.Close)

	token, err := issuer.Issue("admin", time.Hour)
	require.NoError(t, err)
	return srv, token
}

func do(t *testing.T, srv *httptest.Server, method, path, token, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestRouter_TagLifecycle(t *testing.T) {
	srv, token := newTestServer(t)

	steps := []struct {
		method     string
		path       string
		token      string
		body       string
		wantStatus int
		wantBody   string
	}{
		{http.MethodGet, "/tags", "", "", http.StatusOK, `"name":"untagged","file_count":3`},
		{http.MethodPost, "/tags", "", `{"name":"red"}`, http.StatusUnauthorized, "missing authorization header"},
		{http.MethodPost, "/tags", token, `{"name":"red"}`, http.StatusCreated, `"name":"red"`},
		{http.MethodPost, "/tags", token, `{"name":"red"}`, http.StatusConflict, "already exists"},
		{http.MethodPost, "/files/tags", token, `{"path":"a.txt","tag":"red"}`, http.StatusOK, `"changed":true`},
		{http.MethodPost, "/files/tags", token, `{"path":"a.txt","tag":"red"}`, http.StatusOK, `"changed":false`},
		{http.MethodPost, "/files/tags", token, `{"path":"b.txt","tag":"red"}`, http.StatusOK, `"changed":true`},
		{http.MethodGet, "/files/tags?path=a.txt", "", "", http.StatusOK, `[{"name":"red","file_count":2}]`},
		{http.MethodGet, "/tags/red/files", "", "", http.StatusOK, `"name":"a.txt"`},
		{http.MethodGet, "/tags/red/content", "", "", http.StatusOK, "ab"},
		{http.MethodPut, "/tags/red/content", token, `{"content":"hi"}`, http.StatusOK, `"bytes":2`},
		{http.MethodGet, "/tags/red/content", "", "", http.StatusOK, "hihi"},
		{http.MethodDelete, "/tags/red", token, "", http.StatusConflict, "tag still has files"},
		{http.MethodPatch, "/tags/red", token, `{"name":"crimson"}`, http.StatusOK, `"name":"crimson"`},
		{http.MethodDelete, "/files/tags?path=a.txt&tag=crimson", token, "", http.StatusOK, `"changed":true`},
		{http.MethodDelete, "/files/tags?path=b.txt&tag=crimson", token, "", http.StatusOK, `"changed":true`},
		{http.MethodGet, "/files/tags?path=a.txt", "", "", http.StatusOK, `"name":"untagged"`},
		{http.MethodDelete, "/tags/crimson", token, "", http.StatusOK, `"name":"crimson"`},
		{http.MethodDelete, "/tags/untagged", token, "", http.StatusBadRequest, "reserved"},
		{http.MethodGet, "/tags/crimson/files", "", "", http.StatusNotFound, "no such tag"},
		{http.MethodGet, "/files?page=2&page_size=2", "", "", http.StatusOK, `"total":3`},
	}
	for _, s := range steps {
		resp, body := do(t, srv, s.method, s.path, s.token, s.body)
		require.Equal(t, s.wantStatus, resp.StatusCode, "%s %s: %s", s.method, s.path, body)
		assert.Contains(t, body, s.wantBody, "%s %s", s.method, s.path)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	}
}

func TestRouter_Login(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/auth/login", "", `{"username":"admin","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = do(t, srv, http.MethodPost, "/auth/login", "", `{"username":"admin","password":"secret"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	require.NotEmpty(t, envelope.Data.Token)

	resp, body = do(t, srv, http.MethodPost, "/tags", envelope.Data.Token, `{"name":"blue"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, body)
}

func TestRouter_ContentETag(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := do(t, srv, http.MethodGet, "/tags/untagged/content", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/tags/untagged/content", nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", etag)
	resp, err = srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
}
