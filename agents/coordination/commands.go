package coordination

import "strings"

// Command is a reserved session-control token
type Command int

const (
	CommandNone Command = iota
	CommandNew
	CommandExit
	CommandMenu
	CommandSave
)

const (
	// MenuText is shown for empty input and the menu command
	MenuText = `👋 Welcome! Here are your options:

1. Start a new chat (type 'new')
2. Show menu options (type 'menu')
3. Save last conversation (type 'save')
4. Exit (type 'exit')
5. Continue current conversation (just type your question)

What would you like to do?`

	// FarewellText is returned for the exit command
	FarewellText = "Thank you for using MAYA! Have a musical day! 🎵"
)

func (c Command) String() string {
	switch c {
	case CommandNew:
		return "new"
	case CommandExit:
		return "exit"
	case CommandMenu:
		return "menu"
	case CommandSave:
		return "save"
	default:
		return ""
	}
}

// ParseCommand matches a trimmed, case-insensitive reserved token exactly
func ParseCommand(utterance string) Command {
	switch strings.ToLower(strings.TrimSpace(utterance)) {
	case "new":
		return CommandNew
	case "exit":
		return CommandExit
	case "menu":
		return CommandMenu
	case "save":
		return CommandSave
	default:
		return CommandNone
	}
}
