package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waiteperspectives/eml/pkg/errors"
	"github.com/waiteperspectives/eml/pkg/pipeline"
)

// stdio is the file argument that means stdin or stdout.
const stdio = "-"

// compileFlags holds the command-line flags for the compile command.
// Unset flags fall back to the [render] section of the config file.
type compileFlags struct {
	formats    string  // comma-separated output formats
	vizType    string  // "timeline" or "nodelink"
	arrowheads bool    // draw arrowhead markers
	detailed   bool    // label nodelink nodes with their type
	scale      float64 // PNG scale factor
	noCache    bool    // bypass the artifact cache
}

// compileCommand creates the compile command, which renders a YAML event
// model.
//
// Both arguments default to "-". With several formats the output argument
// is a base path and each artifact gets its format as extension.
func (c *CLI) compileCommand() *cobra.Command {
	var flags compileFlags

	cmd := &cobra.Command{
		Use:   "compile [infile|-] [outfile|-]",
		Short: "Render an event model to SVG, PNG, PDF or JSON",
		Long: `Render an event model to SVG, PNG, PDF or JSON.

Reads YAML from infile (or stdin) and writes the diagram to outfile
(or stdout). With more than one format, outfile is used as a base path:

  eml compile model.yaml model -f svg,png   # writes model.svg and model.png`,
		Example: `  eml compile model.yaml model.svg
  cat model.yaml | eml compile --arrowheads > model.svg
  eml compile model.yaml model.json -f json
  eml compile model.yaml graph.svg --type nodelink --detailed`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.compileOptions(cmd, flags)
			if err != nil {
				return err
			}
			in, out := stdio, stdio
			if len(args) > 0 {
				in = args[0]
			}
			if len(args) > 1 {
				out = args[1]
			}
			return c.runCompile(cmd, in, out, opts)
		},
	}

	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&flags.vizType, "type", "t", "", "visualization type: timeline (default), nodelink")
	cmd.Flags().BoolVar(&flags.arrowheads, "arrowheads", false, "draw arrowheads at arrow ends")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "show node types (nodelink)")
	cmd.Flags().Float64Var(&flags.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// compileOptions merges explicitly set flags over the config file.
func (c *CLI) compileOptions(cmd *cobra.Command, flags compileFlags) (pipeline.Options, error) {
	opts, err := c.Config.Options()
	if err != nil {
		return pipeline.Options{}, err
	}

	changed := cmd.Flags().Changed
	if changed("format") {
		opts.Formats = parseFormats(flags.formats)
	}
	if changed("type") {
		opts.VizType = flags.vizType
	}
	if changed("arrowheads") {
		opts.Arrowheads = flags.arrowheads
	}
	if changed("detailed") {
		opts.Detailed = flags.detailed
	}
	if changed("scale") {
		opts.Scale = flags.scale
	}
	opts.NoCache = flags.noCache

	if err := opts.Validate(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func (c *CLI) runCompile(cmd *cobra.Command, in, out string, opts pipeline.Options) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := errors.ValidateOutputPath(out); err != nil {
		return err
	}
	if out == stdio && len(opts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "writing %d formats needs an output path", len(opts.Formats))
	}

	source, err := readSource(cmd.InOrStdin(), in)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, source, opts)
	if err != nil {
		return err
	}

	if out == stdio {
		_, err := cmd.OutOrStdout().Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(out, opts.Formats)
	if err := writeArtifacts(ctx, result.Artifacts, paths, opts.Formats); err != nil {
		return err
	}
	prog.done("Compiled " + describeInput(in))

	printSuccess("Rendered %s", describeInput(in))
	printStats(result.Stats.NodeCount, result.Stats.ArrowCount, result.CacheInfo.RenderHit)
	for _, f := range opts.Formats {
		printFile(paths[f])
	}
	return nil
}

// writeArtifacts writes each format to its path, showing a spinner when
// stderr is a terminal.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, paths map[string]string, formats []string) error {
	if isTerminal(os.Stderr) {
		spinner := newSpinnerWithContext(ctx, os.Stderr, "Writing outputs...")
		spinner.Start()
		defer spinner.Stop()
	}

	for _, f := range formats {
		if err := os.WriteFile(paths[f], artifacts[f], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "write %s", paths[f])
		}
	}
	return nil
}

// readSource reads the document from path, or from stdin when path is "-".
func readSource(stdin io.Reader, path string) ([]byte, error) {
	if path == stdio {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}

// outputPaths maps each format to its output file. A single format writes
// to out as given; several formats share out (minus extension) as base.
func outputPaths(out string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 {
		paths[formats[0]] = out
		return paths
	}
	base := strings.TrimSuffix(out, filepath.Ext(out))
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func describeInput(in string) string {
	if in == stdio {
		return "stdin"
	}
	return filepath.Base(in)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
