// Package mcp provides a Model Context Protocol server for doctags.
// It exposes comment export and cleaning as MCP tools so an agent can
// refresh generated documentation without shelling out.
package mcp

import (
	"io"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/gorewood/doctags/internal/config"
	"github.com/gorewood/doctags/internal/source"
)

// NewServer creates an MCP server with all doctags tools registered.
// Settings supply the defaults for tool arguments left unset.
func NewServer(version string, settings config.Settings, logger *logrus.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "doctags",
		Version: version,
	}, nil)
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	registerTools(server, settings, logger)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for tools without side effects.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that overwrite generated
// files. Rerunning with the same input produces the same files.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all doctags tools to the server.
func registerTools(server *mcp.Server, settings config.Settings, logger *logrus.Logger) {
	// Go packages stay parsed between export calls until their files change.
	cache, err := source.NewPackageCache(source.DefaultCacheSize)
	if err != nil {
		logger.WithError(err).Warn("package cache disabled")
		cache = nil
	}

	mcp.AddTool(server, &mcp.Tool{
		Name: "export",
		Description: "Extract documentation comments from a YAML/JSON symbol dump or a Go source directory " +
			"and write them as tagged AsciiDoc blocks, one file per type and package. " +
			"Set dry_run to list the planned files without writing.",
		Annotations: writeAnnotations(),
	}, handleExport(settings, cache, logger))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clean_comment",
		Description: "Normalize a raw documentation comment the way export does: trim it, drop one leading space per line, and unescape '*\\/' terminators.",
		Annotations: readOnlyAnnotations(),
	}, handleCleanComment())
}
