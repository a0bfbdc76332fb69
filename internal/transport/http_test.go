package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpggio/atelier/internal/apperr"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/report"
	"github.com/stretchr/testify/require"
)

type stubFiles struct {
	docs    map[string][]byte
	reports map[string][]byte
}

func (f *stubFiles) DownloadDocument(_ context.Context, id string) (*project.Document, []byte, error) {
	data, ok := f.docs[id]
	if !ok {
		return nil, nil, project.ErrDocumentNotFound
	}
	return &project.Document{ID: id, Name: "brief.txt", MimeType: "text/plain", UploadedAt: time.Now()}, data, nil
}

func (f *stubFiles) ProjectReport(_ context.Context, id string) ([]byte, error) {
	data, ok := f.reports[id]
	if !ok {
		return nil, errors.New("disk on fire")
	}
	return data, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	files := &stubFiles{
		docs:    map[string][]byte{"d1": []byte("hello")},
		reports: map[string][]byte{"p1": []byte("xlsx")},
	}
	mcp := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	server := httptest.NewServer(NewServer(mcp, files, nil))
	t.Cleanup(server.Close)
	return server
}

func TestHTTPServer_Health(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_MCPRoute(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/mcp", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestHTTPServer_Document(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/documents/d1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "brief.txt")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "hello", string(body))
}

func TestHTTPServer_DocumentNotFound(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/documents/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body apperr.Error
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, apperr.CodeNotFound, body.Code)
}

func TestHTTPServer_Report(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/projects/p1/report")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, report.ContentType, resp.Header.Get("Content-Type"))

	failed, err := http.Get(server.URL + "/projects/p2/report")
	require.NoError(t, err)
	defer failed.Body.Close()
	require.Equal(t, http.StatusInternalServerError, failed.StatusCode)
}

func TestStatusFor(t *testing.T) {
	require.Equal(t, http.StatusNotFound, StatusFor(apperr.CodeNotFound))
	require.Equal(t, http.StatusBadRequest, StatusFor(apperr.CodeValidation))
	require.Equal(t, http.StatusInternalServerError, StatusFor(apperr.CodeFileIO))
	require.Equal(t, http.StatusInternalServerError, StatusFor(apperr.CodeDatabase))
}
