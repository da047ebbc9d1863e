package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/pipeline"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	format string // json or yaml
	output string // output file path (stdout if empty)
}

// parseCommand creates the parse command, which prints the structure of a
// diagram without laying it out.
func (c *CLI) parseCommand() *cobra.Command {
	opts := parseOpts{format: "json"}

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Print the participants, events and warnings of a diagram",
		Long: `Parse a diagram and print its structure: the title, the participants in
lane order, one entry per event with its source line, and any warnings.

Examples:
  seqdiag parse login.seq
  seqdiag parse --format yaml login.seq
  cat login.seq | seqdiag parse -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := stdinName
			if len(args) == 1 {
				input = args[0]
			}
			return runParse(cmd, input, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: json, yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	cmd.ValidArgsFunction = completeDiagrams

	return cmd
}

func runParse(cmd *cobra.Command, input string, opts parseOpts) error {
	ctx := cmd.Context()
	src, err := readSource(input)
	if err != nil {
		return err
	}
	d, err := pipeline.Parse(ctx, src, pipeline.Options{Logger: log.FromContext(ctx)})
	if err != nil {
		return fmt.Errorf("%s: %s", displayName(input), errors.UserMessage(err))
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	return writeSummary(out, pipeline.Summarize(d), opts.format)
}

// writeSummary encodes s as JSON or YAML.
func writeSummary(w io.Writer, s pipeline.Summary, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'json' or 'yaml')", format)
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a writer for path, or stdout if path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
