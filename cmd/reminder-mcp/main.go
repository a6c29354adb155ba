// Command reminder-mcp serves the reminder tools over MCP stdio, proxying to
// a running reminder service.
//
// Environment:
//
//	REMINDER_SERVICE_URL  Base URL of the reminder service (default http://localhost:8080)
//	REMINDER_MCP_DEBUG    Set to "true" for debug logs on stderr
package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dayminder/dayminder/client"
	"github.com/dayminder/dayminder/internal/logger"
	"github.com/dayminder/dayminder/internal/mcptools"
)

const (
	serverName    = "dayminder-mcp"
	serverVersion = "0.1.0"
)

func main() {
	// stdout carries the protocol; logs go to stderr
	log := logger.NewConsole(serverName, os.Getenv("REMINDER_MCP_DEBUG") == "true")

	url := os.Getenv("REMINDER_SERVICE_URL")
	if url == "" {
		url = "http://localhost:8080"
	}
	c, err := client.New(url)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create client")
		os.Exit(1)
	}

	s := server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(true))
	if err := mcptools.NewReminderHandler(c, log, nil).RegisterTools(s); err != nil {
		log.Error().Err(err).Msg("Failed to register reminder tools")
		os.Exit(1)
	}

	log.Info().Str("service_url", url).Msg("Starting reminder MCP server (stdio transport)")
	if err := server.ServeStdio(s); err != nil {
		log.Error().Err(err).Msg("Stdio server error")
		os.Exit(1)
	}
}
