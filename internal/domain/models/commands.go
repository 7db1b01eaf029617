package models

import "strings"

// CommandType enumerates the WhatsApp commands farm staff can send.
type CommandType string

const (
	CommandSummary CommandType = "summary"
	CommandSick    CommandType = "sick"
	CommandForSale CommandType = "forsale"
	CommandStatus  CommandType = "status"
	CommandDue     CommandType = "due"
	CommandHelp    CommandType = "help"
	CommandUnknown CommandType = "unknown"
)

var commandAliases = map[string]CommandType{
	"summary":  CommandSummary,
	"herd":     CommandSummary,
	"sick":     CommandSick,
	"forsale":  CommandForSale,
	"for_sale": CommandForSale,
	"sale":     CommandForSale,
	"status":   CommandStatus,
	"due":      CommandDue,
	"help":     CommandHelp,
}

// Command represents a parsed instruction extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from free-form text. The leading slash is
// optional and the command word is case-insensitive; arguments keep their case.
func ParseCommand(message string) Command {
	cmd := Command{Type: CommandUnknown, Raw: message}

	tokens := strings.Fields(strings.TrimSpace(message))
	if len(tokens) == 0 {
		return cmd
	}

	head := strings.ToLower(strings.TrimPrefix(tokens[0], "/"))
	if t, ok := commandAliases[head]; ok {
		cmd.Type = t
	}
	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}
	return cmd
}
