package shell

import "github.com/doeshing/bareshell/internal/ports"

// NameCompleter offers command names first, then alias names.
type NameCompleter struct {
	registry *Registry
	aliases  *AliasTable
	max      int
}

func NewNameCompleter(registry *Registry, aliases *AliasTable, max int) *NameCompleter {
	return &NameCompleter{registry: registry, aliases: aliases, max: max}
}

func (c *NameCompleter) Complete(prefix string) []string {
	matches := c.registry.Names(prefix)
	matches = append(matches, c.aliases.Names(prefix)...)
	if len(matches) > c.max {
		matches = matches[:c.max]
	}
	return matches
}

var _ ports.Completer = (*NameCompleter)(nil)
