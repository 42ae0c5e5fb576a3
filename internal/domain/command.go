package domain

// CommandType classifies a line typed into the form prompt.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandAddIngredient
	CommandRemoveIngredient
	CommandSetCuisine
	CommandSetLanguage
	CommandSetDuration
	CommandGenerate
	CommandReset
	CommandList
	CommandHelp
	CommandQuit
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	switch c {
	case CommandAddIngredient:
		return "add"
	case CommandRemoveIngredient:
		return "rm"
	case CommandSetCuisine:
		return "cuisine"
	case CommandSetLanguage:
		return "lang"
	case CommandSetDuration:
		return "duration"
	case CommandGenerate:
		return "generate"
	case CommandReset:
		return "reset"
	case CommandList:
		return "list"
	case CommandHelp:
		return "help"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a parsed prompt line.
type Command struct {
	Type    CommandType
	Payload string // argument text, e.g. the ingredient or the index to remove
}
