package ingestion

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

var feedURL = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)

// ReadURLs reads a feeds file: one URL per line. Blank lines and lines
// starting with '#' are skipped; anything else that is not an http(s)
// URL is ignored with a warning.
func ReadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feeds file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !feedURL.MatchString(line) {
			slog.Warn("ignoring feeds file line", "line", line)
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feeds file: %w", err)
	}
	return urls, nil
}
