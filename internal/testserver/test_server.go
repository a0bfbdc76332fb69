// Package testserver runs the full HTTP stack against an in-memory database
// for end-to-end tests.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/atelier/internal/app"
	"github.com/rpggio/atelier/internal/filestore"
	"github.com/rpggio/atelier/internal/mcp"
	"github.com/rpggio/atelier/internal/sqlite"
	"github.com/rpggio/atelier/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
	Files  *filestore.Store
}

func New(t *testing.T) *TestServer {
	t.Helper()

	files, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	application := app.New(sqlite.NewTestDB(t), files, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		App:           application,
		TransportMode: "http",
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		nil,
	)
	server := httptest.NewServer(transport.NewServer(mcpHandler, application, nil))
	t.Cleanup(server.Close)

	return &TestServer{
		Server: server,
		App:    application,
		Files:  files,
	}
}

// Connect opens an MCP client session over streamable HTTP.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		MaxRetries: -1,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}
