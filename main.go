package main

import (
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/kungfusheep/laserctl/clock"
	"github.com/kungfusheep/laserctl/cmd"
	"github.com/kungfusheep/laserctl/fx"
	"github.com/kungfusheep/laserctl/mcpctl"
	"github.com/kungfusheep/laserctl/presets"
	"github.com/kungfusheep/laserctl/supervisor"
	"github.com/kungfusheep/laserctl/world"
)

// main dispatches to the cobra CLI, unless LASERCTL_MCP=1 is set, in which
// case it runs as an MCP tool server exposing supervisor control —
// grounded on the teacher's main.go, which always ran as an MCP stdio
// server; generalized into a dual-mode entrypoint now that laserctl also
// has a standalone CLI (cmd/root.go).
func main() {
	if os.Getenv("LASERCTL_MCP") == "1" {
		runMCPServer()
		return
	}
	cmd.Execute()
}

func runMCPServer() {
	store := world.NewStore()
	registry := fx.NewRegistry()
	presetReg := presets.NewRegistry()
	sup := supervisor.New(store, presetReg, registry, clock.System{}, clock.System{}.NowMs)

	srv := server.NewMCPServer(
		"laserctl MCP Server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	mcpctl.RegisterTools(srv, store, sup)

	log.Println("Starting laserctl MCP server...")
	if err := server.ServeStdio(srv); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
