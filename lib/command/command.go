package command

import (
	"fmt"
	"strings"
)

// CommandType is the closed set of commands understood by the Processor.
type CommandType uint8

const (
	CommandTUnknown CommandType = iota // Anything that is not a known command.
	CommandTGet                        // Look up a key.
	CommandTSet                        // Insert or replace a typed value.
	CommandTDebug                      // Dump all stored pairs with their raw encoding.
	CommandTDelete                     // Remove a key.
	CommandTType                       // Report the type of a stored value.
	CommandTInfo                       // Report database statistics.
)

func (ct CommandType) String() string {
	switch ct {
	case CommandTGet:
		return "GET"
	case CommandTSet:
		return "SET"
	case CommandTDebug:
		return "DEBUG"
	case CommandTDelete:
		return "DEL"
	case CommandTType:
		return "TYPE"
	case CommandTInfo:
		return "INFO"
	default:
		return fmt.Sprintf("Unknown(%d)", ct)
	}
}

// ParseCommandType maps a command token to its CommandType. The token is case-insensitive.
func ParseCommandType(token string) CommandType {
	switch strings.ToUpper(token) {
	case "GET":
		return CommandTGet
	case "SET":
		return CommandTSet
	case "DEBUG":
		return CommandTDebug
	case "DEL":
		return CommandTDelete
	case "TYPE":
		return CommandTType
	case "INFO":
		return CommandTInfo
	default:
		return CommandTUnknown
	}
}

// Command is a single tokenized input line.
type Command struct {
	Type   CommandType
	Tokens []string // all tokens including the command token
}

// Parse tokenizes a line. Surrounding whitespace is trimmed, the rest is split on single spaces,
// so repeated spaces produce empty tokens. The boolean return value is false for an empty line.
func Parse(line string) (Command, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Command{}, false
	}
	tokens := strings.Split(trimmed, " ")
	return Command{
		Type:   ParseCommandType(tokens[0]),
		Tokens: tokens,
	}, true
}

// Arg returns the i-th argument (the token after the command token) or "" if it does not exist.
func (c Command) Arg(i int) string {
	if i+1 >= len(c.Tokens) {
		return ""
	}
	return c.Tokens[i+1]
}

// NArgs returns the number of arguments.
func (c Command) NArgs() int {
	return len(c.Tokens) - 1
}
