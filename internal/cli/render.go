package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/pipeline"
)

// stdinName is the argument that reads the diagram from standard input.
const stdinName = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file (single input and format), base path, or directory (several inputs)
	formats  string // comma-separated output formats
	idPrefix string
	scale    float64
	xmlDecl  bool
	titleEl  bool
	noCache  bool
	refresh  bool
	jobs     int
}

// renderedFile is the outcome of rendering one input.
type renderedFile struct {
	input  string
	paths  []string
	result *pipeline.Result
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{jobs: runtime.GOMAXPROCS(0)}

	cmd := &cobra.Command{
		Use:   "render [file...|-]",
		Short: "Render diagrams to SVG, JSON, PNG or PDF",
		Long: `Render one or more diagram files.

Each input produces one file per format next to it (diagram.seq -> diagram.svg)
unless --output is given. With several inputs --output names a directory.
Use "-" to read standard input; the result goes to standard output when a single
format is requested and no --output is set.

Without arguments an interactive picker lists the ` + diagramExt + ` files in the
current directory.

Examples:
  seqdiag render login.seq
  seqdiag render -f svg,png -o out/ docs/*.seq
  cat login.seq | seqdiag render - > login.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.renderOptions()
			flags := cmd.Flags()
			if flags.Changed("format") {
				popts.Formats = parseFormats(opts.formats)
			}
			if flags.Changed("id-prefix") {
				popts.IDPrefix = opts.idPrefix
			}
			if flags.Changed("scale") {
				popts.Scale = opts.scale
			}
			if flags.Changed("xml-declaration") {
				popts.XMLDeclaration = opts.xmlDecl
			}
			if flags.Changed("title-element") {
				popts.TitleElement = opts.titleEl
			}
			popts.Refresh = opts.refresh
			if err := popts.ValidateForRender(); err != nil {
				return err
			}

			inputs, err := resolveInputs(args)
			if err != nil || len(inputs) == 0 {
				return err
			}
			return c.runRender(cmd.Context(), inputs, popts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or directory when rendering several inputs")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.idPrefix, "id-prefix", "", "id of the <svg> element and prefix of element ids")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.xmlDecl, "xml-declaration", false, "start SVG output with an XML declaration")
	cmd.Flags().BoolVar(&opts.titleEl, "title-element", false, "add an accessible <title> element")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and recompute")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "number of diagrams rendered concurrently")

	cmd.ValidArgsFunction = completeDiagrams

	return cmd
}

// resolveInputs returns the files to render. Without arguments it reads
// standard input when that is not a terminal, and otherwise asks the
// user to pick a file. A nil result means the picker was cancelled.
func resolveInputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if !isTerminal(os.Stdin) {
		return []string{stdinName}, nil
	}
	path, err := pickDiagram(".")
	if err != nil || path == "" {
		return nil, err
	}
	return []string{path}, nil
}

// runRender renders all inputs concurrently and reports the written files
// in input order.
func (c *CLI) runRender(ctx context.Context, inputs []string, popts pipeline.Options, opts renderOpts) error {
	toStdout := len(inputs) == 1 && inputs[0] == stdinName && opts.output == ""
	if toStdout && len(popts.Formats) > 1 {
		return fmt.Errorf("rendering several formats from stdin requires --output")
	}
	for _, in := range inputs {
		if in == stdinName && len(inputs) > 1 {
			return fmt.Errorf("%q cannot be combined with other inputs", stdinName)
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	logger := log.FromContext(ctx)
	prog := newProgress(logger)

	var bar *batchSpinner
	if len(inputs) > 1 && isTerminal(os.Stderr) {
		bar = startBatchSpinner(ctx, os.Stderr, len(inputs))
		defer bar.Stop()
	}

	results := make([]renderedFile, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(opts.jobs, len(inputs))))
	for i, in := range inputs {
		g.Go(func() error {
			rf, err := c.renderOne(gctx, runner, in, popts, opts, len(inputs) > 1, toStdout)
			if err != nil {
				return err
			}
			results[i] = rf
			bar.Advance()
			return nil
		})
	}
	err = g.Wait()
	bar.Stop()
	if err != nil {
		return err
	}
	if toStdout {
		return nil
	}

	for _, rf := range results {
		s := rf.result.Stats
		printSuccess("%s", displayName(rf.input))
		printStats(s.Participants, rf.result.Diagram.MessageCount(), s.Warnings, rf.result.CacheInfo.LayoutHit && rf.result.CacheInfo.RenderHit)
		for _, p := range rf.paths {
			printFile(p)
		}
		for _, w := range rf.result.Diagram.Warnings {
			printWarning("%s", w)
		}
	}
	if n := warningCount(results); n > 0 && len(inputs) == 1 && inputs[0] != stdinName {
		printNextStep("Show the source lines", "seqdiag check "+inputs[0])
	}
	if len(results) > 1 {
		prog.done(fmt.Sprintf("Rendered %d diagrams", len(results)))
	}
	return nil
}

func warningCount(results []renderedFile) int {
	n := 0
	for _, rf := range results {
		n += len(rf.result.Diagram.Warnings)
	}
	return n
}

// renderOne renders a single input and writes its artifacts.
func (c *CLI) renderOne(ctx context.Context, runner *pipeline.Runner, input string, popts pipeline.Options, opts renderOpts, multi, toStdout bool) (renderedFile, error) {
	src, err := readSource(input)
	if err != nil {
		return renderedFile{}, err
	}

	res, err := runner.Execute(ctx, src, popts)
	if err != nil {
		return renderedFile{}, fmt.Errorf("%s: %s", displayName(input), errors.UserMessage(err))
	}
	if toStdout {
		for _, w := range res.Diagram.Warnings {
			log.FromContext(ctx).Warn(w.Message, "file", displayName(input), "line", w.Line)
		}
	}

	rf := renderedFile{input: input, result: res}
	if toStdout {
		_, err := os.Stdout.Write(res.Artifacts[popts.Formats[0]])
		return rf, err
	}

	for _, format := range popts.Formats {
		path := outputPath(input, format, opts.output, multi, len(popts.Formats) > 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return rf, err
			}
		}
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return rf, err
		}
		rf.paths = append(rf.paths, path)
	}
	return rf, nil
}

// outputPath derives where one artifact is written.
//
//   - one input, one format, --output set: --output as given
//   - several inputs, --output set: <output>/<input stem>.<format>
//   - otherwise: <base>.<format>, with base from --output or the input
func outputPath(input, format, output string, multiInput, multiFormat bool) string {
	switch {
	case output != "" && !multiInput && !multiFormat:
		return output
	case output != "" && multiInput:
		return filepath.Join(output, stem(input)+"."+format)
	default:
		return basePath(output, input) + "." + format
	}
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinName {
			return "stdin"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if errors.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func stem(path string) string {
	if path == stdinName {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// readSource reads a diagram from path, or from standard input for "-".
func readSource(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinName {
		data, err = io.ReadAll(io.LimitReader(os.Stdin, int64(errors.DefaultMaxSourceBytes)+1))
	} else {
		data, err = os.ReadFile(path)
	}
	if os.IsNotExist(err) {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "%s: no such file", path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", displayName(path), err)
	}
	return string(data), nil
}

func displayName(path string) string {
	if path == stdinName {
		return "<stdin>"
	}
	return path
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
