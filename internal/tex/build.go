package tex

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/erikmannerfelt/manus/internal/ctxlog"
)

// compilerName is the external TeX engine invoked for builds.
const compilerName = "tectonic"

// BuildOptions control the external compiler invocation.
type BuildOptions struct {
	// KeepIntermediates leaves the compiler's auxiliary files beside the
	// output instead of discarding them.
	KeepIntermediates bool
	// Synctex asks the compiler for synctex data.
	Synctex bool
	// CompilerOutput receives the compiler's stdout/stderr; nil discards it.
	CompilerOutput io.Writer
}

// Build compiles merged TeX source into a PDF at outputPath by piping the
// source to the external tectonic executable.
func Build(ctx context.Context, lines []string, outputPath string, opts BuildOptions) error {
	logger := ctxlog.FromContext(ctx)

	if parent := filepath.Dir(outputPath); parent != "." {
		if info, err := os.Stat(parent); err != nil || !info.IsDir() {
			return fmt.Errorf("parent directory %q does not exist", parent)
		}
	}

	workDir, err := os.MkdirTemp("", "manus-build-*")
	if err != nil {
		return fmt.Errorf("creating build directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	args := []string{"--outdir", workDir}
	if opts.KeepIntermediates {
		args = append(args, "--keep-intermediates")
	}
	if opts.Synctex {
		args = append(args, "--synctex")
	}
	args = append(args, "-")

	cmd := exec.CommandContext(ctx, compilerName, args...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n"))
	if opts.CompilerOutput != nil {
		cmd.Stdout = opts.CompilerOutput
		cmd.Stderr = opts.CompilerOutput
	}

	logger.Debug("Invoking TeX compiler.", "compiler", compilerName, "args", args)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s exited with an error: %w", compilerName, err)
	}

	// Tectonic names stdin-driven output texput.*; move everything the
	// caller asked for next to the requested path.
	produced, err := os.ReadDir(workDir)
	if err != nil {
		return fmt.Errorf("reading build directory: %w", err)
	}
	outDir := filepath.Dir(outputPath)
	stem := strings.TrimSuffix(filepath.Base(outputPath), filepath.Ext(outputPath))

	foundPDF := false
	for _, entry := range produced {
		name := entry.Name()
		src := filepath.Join(workDir, name)
		switch {
		case name == "texput.pdf":
			if err := moveFile(src, outputPath); err != nil {
				return err
			}
			foundPDF = true
		case opts.Synctex && strings.HasSuffix(name, ".synctex.gz"):
			if err := moveFile(src, filepath.Join(outDir, stem+".synctex.gz")); err != nil {
				return err
			}
		case opts.KeepIntermediates:
			target := stem + strings.TrimPrefix(name, "texput")
			if err := moveFile(src, filepath.Join(outDir, target)); err != nil {
				return err
			}
		}
	}
	if !foundPDF {
		return fmt.Errorf("%s reported success but produced no PDF", compilerName)
	}

	logger.Debug("Build complete.", "output", outputPath)
	return nil
}

// moveFile renames across the temp directory boundary, falling back to a
// copy when the directories are on different file systems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("moving %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("moving %s: %w", src, err)
	}
	return os.Remove(src)
}
