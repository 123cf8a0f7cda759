package snippet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Write stores text at path, creating parent directories and replacing
// any existing file.
func Write(path, text string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("snippet: create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("snippet: write output: %w", err)
	}
	return nil
}

// CountLines re-reads path and counts its lines: one per newline, plus a
// final unterminated line if any.
func CountLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("snippet: open output: %w", err)
	}
	defer f.Close()

	lines := 0
	var last byte = '\n'
	buf := make([]byte, 32*1024)
	for {
		n, err := f.Read(buf)
		for _, b := range buf[:n] {
			if b == '\n' {
				lines++
			}
		}
		if n > 0 {
			last = buf[n-1]
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("snippet: read output: %w", err)
		}
	}
	if last != '\n' {
		lines++
	}
	return lines, nil
}
