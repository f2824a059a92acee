package tex

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/erikmannerfelt/manus/internal/fsutil"
)

const inputMarker = `\input{`

// Merge reads a root TeX file and recursively inlines every \input{...}
// clause. Extension-less input names default to .tex; relative names are
// resolved against the including file's directory when they do not exist
// as given.
func Merge(path string) ([]string, error) {
	mainLines, err := fsutil.ReadFileLines(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	for i, line := range mainLines {
		idx := strings.Index(line, inputMarker)
		if idx < 0 {
			lines = append(lines, line)
			continue
		}

		rest := line[idx+len(inputMarker):]
		closing := strings.IndexByte(rest, '}')
		if closing < 0 {
			return nil, fmt.Errorf("unclosed \\input clause at line %d of %s", i+1, path)
		}
		inputPath := rest[:closing]

		if filepath.Ext(inputPath) == "" {
			inputPath += ".tex"
		}
		resolved, err := fsutil.ResolvePath(inputPath, "")
		if err != nil {
			resolved, err = fsutil.ResolvePath(filepath.Join(filepath.Dir(path), inputPath), "")
			if err != nil {
				return nil, fmt.Errorf("resolving \\input at line %d of %s: %w", i+1, path, err)
			}
		}

		inputLines, err := Merge(resolved)
		if err != nil {
			return nil, err
		}
		lines = append(lines, inputLines...)
	}
	return lines, nil
}
