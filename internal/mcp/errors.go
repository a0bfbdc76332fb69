package mcp

import (
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/atelier/internal/apperr"
)

// toolError turns a failure into a tool result the caller can read. The
// text content is the JSON form of the classified error.
func toolError(err error) *sdkmcp.CallToolResult {
	appErr := apperr.From(err)
	data, mErr := json.Marshal(appErr)
	if mErr != nil {
		data, _ = json.Marshal(&apperr.Error{Code: appErr.Code, Message: appErr.Message})
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

// invalidArg reports a malformed argument that the schema could not catch.
func invalidArg(field, rule string) error {
	return apperr.Violations{field: rule}.Check()
}
