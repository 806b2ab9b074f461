package transcript

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes transcripts as UTF-8 text files
type FileSink struct{}

func NewFileSink() *FileSink {
	return &FileSink{}
}

// WriteFile creates the parent directory if needed and writes content to path
func (s *FileSink) WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
