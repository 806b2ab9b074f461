package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Conceptual-Machines/maya-agents-go/agents/coordination"
	"github.com/Conceptual-Machines/maya-agents-go/models"
	"github.com/charmbracelet/lipgloss"
)

// maxLineBytes caps a single pasted input line
const maxLineBytes = 1024 * 1024

// assistant is the part of a session the REPL drives
type assistant interface {
	Greeting(ctx context.Context) string
	Handle(ctx context.Context, input string) models.Response
}

type replStyles struct {
	name   lipgloss.Style
	prompt lipgloss.Style
	hint   lipgloss.Style
}

func newReplStyles(out io.Writer) replStyles {
	r := lipgloss.NewRenderer(out)
	return replStyles{
		name:   r.NewStyle().Foreground(lipgloss.Color("#ff5fd7")).Bold(true),
		prompt: r.NewStyle().Foreground(lipgloss.Color("#5fd7ff")),
		hint:   r.NewStyle().Foreground(lipgloss.Color("#8a8a8a")).Italic(true),
	}
}

func isQuit(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit", "bye":
		return true
	}
	return false
}

// runREPL greets, then reads one line per turn until a quit word or EOF
func runREPL(ctx context.Context, in io.Reader, out io.Writer, a assistant) error {
	styles := newReplStyles(out)

	fmt.Fprintf(out, "\n%s\n", a.Greeting(ctx))
	fmt.Fprintf(out, "\n%s\n", styles.hint.Render("Press Enter for menu options at any time."))

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for {
		fmt.Fprintf(out, "\n%s", styles.prompt.Render("Your input: "))
		if !scanner.Scan() {
			fmt.Fprintf(out, "\n%s\n", coordination.FarewellText)
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if isQuit(input) {
			fmt.Fprintf(out, "\n%s\n", coordination.FarewellText)
			return nil
		}

		resp := a.Handle(ctx, input)
		fmt.Fprintf(out, "\n%s %s\n", styles.name.Render("MAYA:"), resp.Message)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
