// Package tools implements the MCP tool handlers that expose the active
// TIA Portal project view.
//
// Each tool lives in its own file: a struct holding its dependencies, a
// constructor, Definition() for registration and Handle() for the call.
// Expected failures (unknown path, bad pattern, no open project) come back
// as tool error results the agent can act on. Adapter faults are returned
// as Go errors.
package tools

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/tianav/internal/project"
	"github.com/mark3labs/mcp-go/mcp"
)

// failure maps err to a tool result. Expected errors become tool error
// results; anything else is wrapped with op and args and returned.
func failure(op string, err error, args ...string) (*mcp.CallToolResult, error) {
	if project.IsExpected(err) {
		return mcp.NewToolResultError(expectedMessage(err)), nil
	}
	return nil, project.Wrap(op, err, args...)
}

func expectedMessage(err error) string {
	msg := err.Error()
	if strings.Contains(msg, project.ErrAdapterUnavailable.Error()) {
		return "No active project. Open one with `tia_open_project` first."
	}
	return upperFirst(msg)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// required reads a non-empty string argument.
func required(req mcp.CallToolRequest, name string) (string, *mcp.CallToolResult) {
	v := strings.TrimSpace(req.GetString(name, ""))
	if v == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("'%s' is required", name))
	}
	return v, nil
}

func softwareLabel(c project.SoftwareContainer) (string, error) {
	if c == nil {
		return "", nil
	}
	sw, err := c.Software()
	if err != nil {
		return "", err
	}
	if sw == nil {
		return "none", nil
	}
	return fmt.Sprintf("%s [%s]", sw.Name(), sw.Variant()), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
