package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/gorewood/doctags/internal/config"
	"github.com/gorewood/doctags/internal/export"
	"github.com/gorewood/doctags/internal/source"
)

// --- Export tool ---

// ExportInput is the input for the export tool.
type ExportInput struct {
	Input           string `json:"input"                      jsonschema:"path to a symbol dump (YAML or JSON) or a Go source directory"`
	OutputDirectory string `json:"output_directory,omitempty" jsonschema:"root directory for generated files (default from doctags.yaml)"`
	IncludeCaptions *bool  `json:"include_captions,omitempty" jsonschema:"add an '== tag' heading to every block"`
	Collisions      string `json:"collisions,omitempty"       jsonschema:"duplicate tag policy: allow, suffix, merge or reject"`
	Unexported      *bool  `json:"unexported,omitempty"       jsonschema:"include unexported Go declarations (default from doctags.yaml)"`
	DryRun          bool   `json:"dry_run,omitempty"          jsonschema:"plan units without writing files"`
}

// UnitSummary describes one planned or written unit.
type UnitSummary struct {
	Name     string `json:"name"               jsonschema:"qualified unit name"`
	Kind     string `json:"kind"               jsonschema:"symbol kind of the unit"`
	Path     string `json:"path"               jsonschema:"file path under the output directory"`
	Tags     int    `json:"tags"               jsonschema:"number of tagged blocks"`
	Inferred bool   `json:"inferred,omitempty" jsonschema:"package unit derived from its types"`
	Error    string `json:"error,omitempty"    jsonschema:"why the unit was not written"`
}

// ExportOutput is the output for the export tool.
type ExportOutput struct {
	Shape     string        `json:"shape"      jsonschema:"host shape of the input: flat or elements"`
	OutputDir string        `json:"output_dir" jsonschema:"root directory of the generated files"`
	DryRun    bool          `json:"dry_run"    jsonschema:"true when nothing was written"`
	Written   int           `json:"written"    jsonschema:"number of units written"`
	Failed    int           `json:"failed"     jsonschema:"number of units that failed"`
	Units     []UnitSummary `json:"units"      jsonschema:"every unit in output order"`
}

func handleExport(
	settings config.Settings, cache *source.PackageCache, logger *logrus.Logger,
) mcp.ToolHandlerFor[ExportInput, ExportOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
		if input.Input == "" {
			return nil, ExportOutput{}, errors.New("input is required")
		}

		cfg, err := exportConfig(settings, input)
		if err != nil {
			return nil, ExportOutput{}, err
		}

		unexported := settings.Unexported
		if input.Unexported != nil {
			unexported = *input.Unexported
		}
		tree, err := source.Load(input.Input, source.GoOptions{
			Unexported: unexported,
			Logger:     logger,
			Cache:      cache,
		})
		if err != nil {
			return nil, ExportOutput{}, fmt.Errorf("loading %s: %w", input.Input, err)
		}

		exporter := export.New(cfg, export.WithLogger(logger))
		var report *export.Report
		if input.DryRun {
			report = exporter.Preview(tree)
		} else {
			report = exporter.Export(tree)
		}

		out := ExportOutput{
			Shape:     report.Shape,
			OutputDir: report.OutputDir,
			DryRun:    input.DryRun,
			Failed:    len(report.Failed()),
		}
		if !input.DryRun {
			out.Written = report.Written()
		}
		for _, result := range report.Units {
			out.Units = append(out.Units, UnitSummary{
				Name:     result.Name,
				Kind:     result.Kind.String(),
				Path:     result.Path,
				Tags:     result.Tags,
				Inferred: result.Inferred,
				Error:    result.Error,
			})
		}
		return nil, out, nil
	}
}

// exportConfig layers tool arguments over the server settings.
func exportConfig(settings config.Settings, input ExportInput) (export.Config, error) {
	if input.OutputDirectory != "" {
		settings.OutputDirectory = input.OutputDirectory
	}
	if input.IncludeCaptions != nil {
		settings.IncludeCaptions = *input.IncludeCaptions
	}
	if input.Collisions != "" {
		settings.Collisions = input.Collisions
	}
	return settings.ExportConfig()
}

// --- Clean comment tool ---

// CleanCommentInput is the input for the clean_comment tool.
type CleanCommentInput struct {
	Comment string `json:"comment" jsonschema:"raw documentation comment text"`
}

// CleanCommentOutput is the output for the clean_comment tool.
type CleanCommentOutput struct {
	Cleaned string `json:"cleaned" jsonschema:"comment as it would appear in a tagged block"`
}

func handleCleanComment() mcp.ToolHandlerFor[CleanCommentInput, CleanCommentOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CleanCommentInput) (*mcp.CallToolResult, CleanCommentOutput, error) {
		return nil, CleanCommentOutput{Cleaned: export.CleanComment(input.Comment)}, nil
	}
}
