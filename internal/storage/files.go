package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"

	"github.com/AD7six/envgen/internal/logging"
)

// maxSourceFileSize guards the stale check against reading something that
// is clearly not a generated file.
const maxSourceFileSize = 8 * 1024 * 1024

var (
	// nonIdentRegex matches runs of characters not allowed in a Rust module name
	nonIdentRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// WriteFile writes data to path, creating the parent directory if needed.
func WriteFile(fs afero.Fs, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	logging.Logger.Debug("wrote file", "path", path, "bytes", len(data))
	return nil
}

// ModuleName turns a file name into a Rust module name: lowercase with runs
// of other characters collapsed to underscores. ".env" becomes "env".
func ModuleName(name string) string {
	return strings.ToLower(strings.Trim(nonIdentRegex.ReplaceAllString(name, "_"), "_"))
}

// StaleError reports that a generated file differs from what would be written now.
type StaleError struct {
	Path string
	Diff string
}

func (e *StaleError) Error() string {
	if e.Diff == "" {
		return fmt.Sprintf("%s does not exist", e.Path)
	}
	return fmt.Sprintf("%s is out of date:\n%s", e.Path, e.Diff)
}

// Check compares the file at path with want. It returns a *StaleError when
// the file is missing or different.
func Check(fs afero.Fs, path string, want []byte) error {
	info, err := fs.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return &StaleError{Path: path}
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > maxSourceFileSize {
		return fmt.Errorf("%s is too large to compare (%d bytes)", path, info.Size())
	}

	got, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if string(got) == string(want) {
		return nil
	}
	return &StaleError{Path: path, Diff: Diff(string(got), string(want))}
}

// Diff returns a line based patch turning before into after.
func Diff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			prefix = " "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix + line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
