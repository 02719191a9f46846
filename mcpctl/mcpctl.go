// Package mcpctl exposes Multi-Engine Supervisor lifecycle control over
// MCP (spec.md §4.J), grounded directly on mcp/mcp.go and
// mcp/entertainment.go's handler shape: one HandleX(collaborator)
// server.ToolHandlerFunc per tool, reading string args out of
// request.GetArguments() and replying with mcp.NewToolResultText/Error —
// generalized here from per-light/per-group Hue calls to supervisor
// start/stop/status/add-projector/remove-projector calls.
package mcpctl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kungfusheep/laserctl/supervisor"
	"github.com/kungfusheep/laserctl/world"
)

// RegisterTools adds every supervisor-control tool to srv.
func RegisterTools(srv *server.MCPServer, store *world.Store, sup *supervisor.Supervisor) {
	srv.AddTool(mcp.NewTool("supervisor_start",
		mcp.WithDescription("Start a Streaming Engine for every enabled projector"),
	), HandleStart(sup))

	srv.AddTool(mcp.NewTool("supervisor_stop",
		mcp.WithDescription("Stop every running Streaming Engine"),
	), HandleStop(sup))

	srv.AddTool(mcp.NewTool("supervisor_status",
		mcp.WithDescription("Report per-projector engine stats"),
	), HandleStatus(sup))

	srv.AddTool(mcp.NewTool("projector_add",
		mcp.WithDescription("Register a new projector and (if enabled) start streaming to it"),
		mcp.WithString("id", mcp.Description("Unique projector ID (generated if omitted)")),
		mcp.WithString("host", mcp.Required(), mcp.Description("Projector IP address or hostname")),
		mcp.WithNumber("port", mcp.Description("UDP port (default 7255)")),
		mcp.WithString("zone", mcp.Description("Zone group this projector belongs to")),
	), HandleAddProjector(store, sup))

	srv.AddTool(mcp.NewTool("projector_remove",
		mcp.WithDescription("Remove a projector and stop its Streaming Engine"),
		mcp.WithString("id", mcp.Required(), mcp.Description("Projector ID to remove")),
	), HandleRemoveProjector(store, sup))
}

// HandleStart returns a tool handler that starts every enabled projector's
// engine.
func HandleStart(sup *supervisor.Supervisor) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sup.StartAll()
		return mcp.NewToolResultText(fmt.Sprintf("started %d engine(s)", sup.EngineCount())), nil
	}
}

// HandleStop returns a tool handler that stops every running engine.
func HandleStop(sup *supervisor.Supervisor) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sup.StopAll()
		return mcp.NewToolResultText("stopped all engines"), nil
	}
}

// HandleStatus returns a tool handler reporting per-projector stats.
func HandleStatus(sup *supervisor.Supervisor) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats := sup.Stats()
		if len(stats) == 0 {
			return mcp.NewToolResultText("no engines running"), nil
		}
		result := "Streaming engines:\n"
		for id, s := range stats {
			result += fmt.Sprintf("- %s: frames_sent=%d actual_fps=%.1f degraded=%v last_error=%q\n",
				id, s.FramesSent, s.ActualFPS, s.Degraded, s.LastError)
		}
		return mcp.NewToolResultText(result), nil
	}
}

// HandleAddProjector returns a tool handler that registers a new projector
// in the world snapshot and reconciles the supervisor against it.
func HandleAddProjector(store *world.Store, sup *supervisor.Supervisor) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		id, _ := args["id"].(string)
		if id == "" {
			id = uuid.NewString()
		}
		host, ok := args["host"].(string)
		if !ok || host == "" {
			return mcp.NewToolResultError("host is required"), nil
		}

		port := 7255
		if raw, ok := args["port"].(float64); ok && raw > 0 {
			port = int(raw)
		}

		var zones []string
		if zone, ok := args["zone"].(string); ok && zone != "" {
			zones = []string{zone}
		}

		store.Mutate(func(snap *world.Snapshot) {
			snap.Projectors[id] = world.Projector{
				ID:         id,
				Name:       id,
				Host:       host,
				Port:       port,
				Enabled:    true,
				Output:     world.OutputConfigRef{ColorBits: 8, XYBits: 16},
				ZoneGroups: zones,
			}
		})
		sup.Reconcile()

		return mcp.NewToolResultText(fmt.Sprintf("projector %s added at %s:%s", id, host, strconv.Itoa(port))), nil
	}
}

// HandleRemoveProjector returns a tool handler that drops a projector from
// the world snapshot and reconciles the supervisor against it.
func HandleRemoveProjector(store *world.Store, sup *supervisor.Supervisor) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		id, ok := args["id"].(string)
		if !ok || id == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		store.Mutate(func(snap *world.Snapshot) {
			delete(snap.Projectors, id)
		})
		sup.Reconcile()

		return mcp.NewToolResultText(fmt.Sprintf("projector %s removed", id)), nil
	}
}
