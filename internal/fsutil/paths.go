// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath validates a file path against an expected extension. A path
// with no extension is assigned the expected one; a path with a different
// extension is rejected. The file must exist.
func ResolvePath(path string, expectedExt string) (string, error) {
	if expectedExt != "" {
		switch ext := strings.TrimPrefix(filepath.Ext(path), "."); ext {
		case "":
			path += "." + expectedExt
		case expectedExt:
		default:
			return "", fmt.Errorf("incorrect extension %q, expected %q", ext, expectedExt)
		}
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("file not found: %s", path)
	}
	return path, nil
}

// ReadLines reads a stream to its end and splits it into lines, without
// trailing newline characters.
func ReadLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// ReadFileLines reads a file from disk and splits it into lines.
func ReadFileLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}
