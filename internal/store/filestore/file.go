// Package filestore reads and writes an automaton as a single line of text.
package filestore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Read returns the first line of path. ok is false, with a nil error, when
// the path is empty, the file does not exist, or its first line is blank.
func Read(path string) (text string, ok bool, err error) {
	if strings.TrimSpace(path) == "" {
		return "", false, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", false, fmt.Errorf("read %s: %w", path, err)
		}
		return "", false, nil
	}
	line := strings.TrimRight(sc.Text(), "\r")
	if line == "" {
		return "", false, nil
	}
	return line, true, nil
}

// Write replaces path with text as a single line, creating parent directories.
func Write(path, text string) error {
	if strings.ContainsAny(text, "\r\n") {
		return fmt.Errorf("rule text must be a single line")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
