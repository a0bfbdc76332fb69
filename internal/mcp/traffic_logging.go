package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxLoggedPayload caps a logged payload. Uploads and reports travel as
// base64 and would otherwise flood the log.
const maxLoggedPayload = 2048

// Matches both plain and string-escaped JSON, since tool results embed
// their JSON in text content.
var base64Field = regexp.MustCompile(`\\?"content_base64\\?"\s*:\s*\\?"[A-Za-z0-9+/=]*\\?"`)

// trafficLoggingMiddleware logs every request and response at debug level.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			attrs := []any{"direction", direction, "method", method, "session_id", sessionID(req)}
			logger.Debug("mcp request", append(attrs, "params", formatPayload(params(req)))...)

			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}
			attrs = append(attrs, "result", formatPayload(result))
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			logger.Debug("mcp response", attrs...)
			return result, err
		}
	}
}

// sessionID tolerates requests whose session is not yet attached.
func sessionID(req sdkmcp.Request) (id string) {
	if req == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()
	if session := req.GetSession(); session != nil {
		return session.ID()
	}
	return ""
}

func params(req sdkmcp.Request) (p any) {
	if req == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			p = nil
		}
	}()
	return req.GetParams()
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return abbreviate(string(data))
}

// abbreviate drops base64 bodies and truncates what is left.
func abbreviate(s string) string {
	s = base64Field.ReplaceAllString(s, `"content_base64":"<omitted>"`)
	if len(s) > maxLoggedPayload {
		return s[:maxLoggedPayload] + fmt.Sprintf("...(%d bytes)", len(s))
	}
	return s
}
