// Package cli implements the seqdiag command-line interface.
//
// This package provides commands for rendering sequence diagrams, checking
// and inspecting diagram sources, serving the renderer over HTTP and
// managing the render cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, JSON, PNG or PDF output from diagram files
//   - parse: Print the participants, events and warnings of a diagram
//   - check: Validate diagram files and point at the first error in each
//   - serve: Run the HTTP renderer
//   - cache: Manage the render cache
//   - syntax: Show the diagram language reference
//
// # Configuration
//
// Settings are read from a TOML file (--config, default
// $XDG_CONFIG_HOME/seqdiag/config.toml), then from SEQDIAG_* environment
// variables, then from flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is attached to the command context and retrieved with log.FromContext.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seqdiag/pkg/buildinfo"
	"github.com/matzehuels/seqdiag/pkg/cache"
	"github.com/matzehuels/seqdiag/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "seqdiag"

	// diagramExt is the file extension offered by the file picker.
	diagramExt = ".seq"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "seqdiag renders text sequence diagrams to SVG",
		Long:          `seqdiag turns a small text language of participants, messages, notes and combined fragments into sequence diagrams.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(log.WithContext(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/seqdiag/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.syntaxCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg := c.config.Cache
	if noCache {
		cfg.Backend = cache.BackendNone
	}
	cc, err := cache.Open(ctx, cfg)
	if err != nil {
		if cfg.Backend == "" || cfg.Backend == cache.BackendFile {
			// The local cache is best effort.
			c.Logger.Warn("cache disabled", "error", err)
			return pipeline.NewRunner(nil, nil, c.Logger), nil
		}
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return pipeline.NewRunner(cc, cache.KeyerFor(cfg), c.Logger), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// renderOptions builds pipeline options from the config file, to which
// command flags are applied afterwards.
func (c *CLI) renderOptions() pipeline.Options {
	r := c.config.Render
	opts := pipeline.Options{
		Formats:        append([]string(nil), r.Formats...),
		IDPrefix:       r.IDPrefix,
		Scale:          r.Scale,
		XMLDeclaration: r.XMLDeclaration,
		TitleElement:   r.TitleElement,
		Logger:         c.Logger,
	}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
