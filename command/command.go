// Package command parses the slash commands accepted by the chat input.
// Commands are handled by the dashboard and never reach the transcript.
package command

import (
	"fmt"
	"strings"

	"github.com/fwojciec/sidebot"
)

// Prefix marks chat input as a command.
const Prefix = "/"

// Command names.
const (
	SQL   = "sql"
	Reset = "reset"
	Help  = "help"
)

// HelpText lists the commands.
const HelpText = "/sql <select> query the tips table · /reset show all rows · /help"

// Command is one parsed slash command.
type Command struct {
	Name string
	Arg  string
}

// IsCommand reports whether input should be parsed as a command rather than
// sent to the chat.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), Prefix)
}

// Parse splits input into a command name and its argument and checks it.
// Names are case-insensitive.
func Parse(input string) (Command, error) {
	s := strings.TrimPrefix(strings.TrimSpace(input), Prefix)
	name, arg, _ := strings.Cut(s, " ")
	cmd := Command{Name: strings.ToLower(name), Arg: strings.TrimSpace(arg)}

	switch cmd.Name {
	case SQL:
		if cmd.Arg == "" {
			return cmd, fmt.Errorf("/sql needs a query: %w", sidebot.ErrValidation)
		}
	case Reset, Help:
		if cmd.Arg != "" {
			return cmd, fmt.Errorf("/%s takes no arguments: %w", cmd.Name, sidebot.ErrValidation)
		}
	case "":
		return cmd, fmt.Errorf("missing command name: %w", sidebot.ErrValidation)
	default:
		return cmd, fmt.Errorf("unknown command /%s: %w", cmd.Name, sidebot.ErrValidation)
	}
	return cmd, nil
}
