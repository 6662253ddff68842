package domain

// Handler runs a registered command. args[0] is the command name.
type Handler func(args []string) ErrorKind

// Command is one entry of the command registry.
type Command struct {
	Name        string
	Description string
	Usage       []string
	Handler     Handler
}

// Alias maps a name to replacement text for the first token of a line.
type Alias struct {
	Name      string
	Expansion string
	Builtin   bool
}
