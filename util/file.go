package util

import (
	"fmt"
	"os"
	"strings"
)

// WriteToFile writes the given strings to a file, one per line.
func WriteToFile(savePath string, content ...string) error {
	if err := os.WriteFile(savePath, []byte(strings.Join(content, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", savePath, err)
	}
	return nil
}

// AppendToFile appends the given strings to a file, one per line,
// creating it if needed.
func AppendToFile(savePath string, content ...string) error {
	f, err := os.OpenFile(savePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", savePath, err)
	}
	defer f.Close()

	for _, s := range content {
		if _, err = f.WriteString(s + "\n"); err != nil {
			return fmt.Errorf("appending to %s: %w", savePath, err)
		}
	}
	return nil
}
