// Package fileutils handles reading raw log input from files and readers.
package fileutils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadLines reads everything from r and returns the non-empty,
// whitespace-trimmed lines in input order. Blank lines are dropped before
// they ever reach the parser.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	// Log lines with embedded payloads can exceed the default 64K token limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	return lines, nil
}

// ReadLinesFromFile opens path and returns its trimmed non-empty lines.
func ReadLinesFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return ReadLines(file)
}

// SplitLines splits an in-memory text blob the same way ReadLines does.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
