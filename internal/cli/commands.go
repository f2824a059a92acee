package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/erikmannerfelt/manus/internal/ctxlog"
	"github.com/erikmannerfelt/manus/internal/fsutil"
	"github.com/erikmannerfelt/manus/internal/tex"
	"github.com/spf13/cobra"
)

// buildCommand renders the manuscript and compiles it with tectonic.
func (r *root) buildCommand() *cobra.Command {
	var (
		dataArg           string
		keepIntermediates bool
		synctex           bool
	)

	cmd := &cobra.Command{
		Use:   "build INPUT [OUTPUT]",
		Short: "Render the manuscript with tectonic.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkStdinConflict(args[0], dataArg); err != nil {
				return err
			}
			lines, outputPath, err := r.linesAndOutputPath(args)
			if err != nil {
				return fail(err)
			}

			a := r.newApp()
			filled, err := a.Fill(cmd.Context(), lines, dataArg, r.streams.In)
			if err != nil {
				return fail(err)
			}

			opts := tex.BuildOptions{
				KeepIntermediates: keepIntermediates,
				Synctex:           synctex,
			}
			if r.logLevel == "debug" {
				opts.CompilerOutput = r.streams.Err
			}
			buildCtx := ctxlog.WithLogger(cmd.Context(), a.Logger())
			if err := tex.Build(buildCtx, filled, outputPath, opts); err != nil {
				return fail(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataArg, "data", "d", "", "Data filepath. If '-', read from stdin.")
	cmd.Flags().BoolVarP(&keepIntermediates, "keep-intermediates", "k", false, "Keep intermediate files.")
	cmd.Flags().BoolVarP(&synctex, "synctex", "s", false, "Generate synctex data.")
	return cmd
}

// convertCommand renders the manuscript to another format on stdout.
func (r *root) convertCommand() *cobra.Command {
	var (
		dataArg string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "convert INPUT",
		Short: "Convert to different formats.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkStdinConflict(args[0], dataArg); err != nil {
				return err
			}
			if strings.ToLower(format) != "tex" {
				return &ExitError{Code: 2, Message: fmt.Sprintf("unsupported output format %q (choices: tex)", format)}
			}
			lines, _, err := r.linesAndOutputPath(args)
			if err != nil {
				return fail(err)
			}

			filled, err := r.newApp().Fill(cmd.Context(), lines, dataArg, r.streams.In)
			if err != nil {
				return fail(err)
			}
			return writeLines(r.streams.Out, filled)
		},
	}

	cmd.Flags().StringVarP(&dataArg, "data", "d", "", "Data filepath. If '-', read from stdin.")
	cmd.Flags().StringVarP(&format, "format", "f", "tex", "Output format. Choices: [tex].")
	return cmd
}

// mergeCommand inlines all \input clauses of a manuscript.
func (r *root) mergeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "merge INPUT",
		Short: "Merge 'input' clauses.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := fsutil.ResolvePath(args[0], "tex")
			if err != nil {
				return fail(err)
			}
			lines, err := tex.Merge(path)
			if err != nil {
				return fail(err)
			}
			return writeLines(r.streams.Out, lines)
		},
	}
}

// linesAndOutputPath reads the template from a file (merging \input
// clauses) or from stdin when INPUT is "-", and derives the output PDF
// path from the optional second argument or the input file name.
func (r *root) linesAndOutputPath(args []string) ([]string, string, error) {
	inputArg := strings.TrimSpace(args[0])

	var (
		lines []string
		stem  string
		err   error
	)
	if inputArg == "-" {
		lines, err = fsutil.ReadLines(r.streams.In)
		stem = "main"
	} else {
		var path string
		path, err = fsutil.ResolvePath(inputArg, "tex")
		if err == nil {
			lines, err = tex.Merge(path)
			stem = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
	}
	if err != nil {
		return nil, "", err
	}

	outputPath := stem + ".pdf"
	if len(args) > 1 {
		outputPath = args[1]
	}
	return lines, outputPath, nil
}
