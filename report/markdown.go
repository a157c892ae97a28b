package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout names report folders and files.
const TimestampLayout = "2006-01-02-15-04-05"

var nonAnchor = regexp.MustCompile(`[^a-z0-9]+`)

// Anchor returns the Markdown link target for a heading: the lowercased
// title with every run of characters outside [a-z0-9] replaced by a
// hyphen, trimmed of hyphens and prefixed with '#'.
func Anchor(title string) string {
	anchor := nonAnchor.ReplaceAllString(strings.ToLower(title), "-")
	return "#" + strings.Trim(anchor, "-")
}

// Folder returns <root>/<name>_<timestamp>.
func Folder(root, name string, at time.Time) string {
	return filepath.Join(root, name+"_"+at.Format(TimestampLayout))
}

// FileName returns <prefix><name>_<timestamp>.<ext>.
func FileName(prefix, name string, at time.Time, ext string) string {
	return fmt.Sprintf("%s%s_%s.%s", prefix, name, at.Format(TimestampLayout), ext)
}

// Append appends text and a trailing newline to the file at path,
// creating the file and its parent directories when missing.
func Append(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report folder: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open report file: %w", err)
	}
	if _, err := f.WriteString(text + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return f.Close()
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
