package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// recoverMiddleware turns a panic inside a handler into a method error so a
// single bad call cannot take the server down.
func recoverMiddleware(logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (result sdkmcp.Result, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("mcp handler panic", "method", method, "panic", r, "stack", string(debug.Stack()))
					result, err = nil, fmt.Errorf("internal error handling %s", method)
				}
			}()
			return next(ctx, method, req)
		}
	}
}

// toolTimingMiddleware logs the name and duration of every tool call.
func toolTimingMiddleware(logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if method != "tools/call" {
				return next(ctx, method, req)
			}
			name := ""
			if p, ok := req.GetParams().(*sdkmcp.CallToolParamsRaw); ok && p != nil {
				name = p.Name
			}
			start := time.Now()
			result, err := next(ctx, method, req)
			failed := err != nil
			if r, ok := result.(*sdkmcp.CallToolResult); ok && r != nil && r.IsError {
				failed = true
			}
			logger.Info("tool call", "tool", name, "duration", time.Since(start), "failed", failed)
			return result, err
		}
	}
}
