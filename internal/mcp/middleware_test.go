package mcp

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func TestAbbreviate(t *testing.T) {
	plain := `{"name":"a.txt","content_base64": "aGVsbG8="}`
	require.Equal(t, `{"name":"a.txt","content_base64":"<omitted>"}`, abbreviate(plain))

	escaped := `{"text":"{\"content_base64\":\"aGVsbG8=\"}"}`
	require.NotContains(t, abbreviate(escaped), "aGVsbG8=")

	long := strings.Repeat("x", maxLoggedPayload+10)
	out := abbreviate(long)
	require.True(t, strings.HasPrefix(out, strings.Repeat("x", maxLoggedPayload)))
	require.Contains(t, out, "bytes)")
}

func TestRecoverMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := recoverMiddleware(logger)(func(context.Context, string, sdkmcp.Request) (sdkmcp.Result, error) {
		panic("boom")
	})
	result, err := handler(context.Background(), "tools/call", nil)
	require.Nil(t, result)
	require.ErrorContains(t, err, "tools/call")
	require.Contains(t, buf.String(), "boom")
}

func TestToolTimingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := toolTimingMiddleware(logger)(func(context.Context, string, sdkmcp.Request) (sdkmcp.Result, error) {
		return &sdkmcp.CallToolResult{IsError: true}, nil
	})
	req := &sdkmcp.CallToolRequest{Params: &sdkmcp.CallToolParamsRaw{Name: "approve_quote"}}
	_, err := handler(context.Background(), "tools/call", req)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "tool=approve_quote")
	require.Contains(t, buf.String(), "failed=true")

	buf.Reset()
	_, err = handler(context.Background(), "tools/list", nil)
	require.NoError(t, err)
	require.Empty(t, buf.String())
}
