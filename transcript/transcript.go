// Package transcript formats and persists saved conversations and creative output.
package transcript

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Conceptual-Machines/maya-agents-go/conversation"
)

// TimestampLayout is the file-name timestamp, e.g. 20260314_093000
const TimestampLayout = "20060102_150405"

// Sink stores a rendered transcript under a path-like key
type Sink interface {
	WriteFile(path, content string) error
}

// ConversationPath is where a saved conversation goes
func ConversationPath(dir string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("conversation_%s.txt", t.Format(TimestampLayout)))
}

// CreativePath is where auto-saved creative output goes
func CreativePath(dir string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("creative_output_%s.txt", t.Format(TimestampLayout)))
}

// FormatConversation renders the full history with a timestamped header
func FormatConversation(t time.Time, exchanges []conversation.Exchange) string {
	var sb strings.Builder
	sb.WriteString(header("MAYA AI Conversation", t))
	for _, e := range exchanges {
		sb.WriteString(fmt.Sprintf("User: %s\n", e.Input))
		sb.WriteString(fmt.Sprintf("MAYA: %s\n", e.Output))
		sb.WriteString(strings.Repeat("-", 30) + "\n")
	}
	return sb.String()
}

// FormatCreative renders creative output with a timestamped header
func FormatCreative(t time.Time, content string) string {
	return header("MAYA AI Creative Output", t) + content
}

func header(title string, t time.Time) string {
	return fmt.Sprintf("%s - %s\n%s\n\n", title, t.Format(TimestampLayout), strings.Repeat("=", 50))
}
