package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/bareshell/internal/domain"
)

var (
	ErrDuplicateCommand = errors.New("command already registered")
	ErrRegistryFull     = errors.New("command registry full")
)

// Registry holds commands in registration order.
type Registry struct {
	commands []domain.Command
	max      int
}

// NewRegistry returns an empty registry bounded by max commands.
func NewRegistry(max int) *Registry {
	return &Registry{max: max}
}

// Register appends cmd. Names are unique and commands never change after
// registration.
func (r *Registry) Register(cmd domain.Command) error {
	if cmd.Name == "" || cmd.Handler == nil {
		return fmt.Errorf("register %q: name and handler are required", cmd.Name)
	}
	if _, ok := r.Lookup(cmd.Name); ok {
		return fmt.Errorf("register %q: %w", cmd.Name, ErrDuplicateCommand)
	}
	if len(r.commands) >= r.max {
		return fmt.Errorf("register %q: %w", cmd.Name, ErrRegistryFull)
	}
	r.commands = append(r.commands, cmd)
	return nil
}

// Lookup finds a command by exact name.
func (r *Registry) Lookup(name string) (domain.Command, bool) {
	for _, c := range r.commands {
		if c.Name == name {
			return c, true
		}
	}
	return domain.Command{}, false
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Commands returns the registered commands in order.
func (r *Registry) Commands() []domain.Command {
	out := make([]domain.Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Names returns command names starting with prefix.
func (r *Registry) Names(prefix string) []string {
	var out []string
	for _, c := range r.commands {
		if strings.HasPrefix(c.Name, prefix) {
			out = append(out, c.Name)
		}
	}
	return out
}
