package shell

import (
	"errors"
	"strings"

	"github.com/doeshing/bareshell/internal/domain"
)

var (
	ErrInvalidAliasName = errors.New("invalid alias name or conflicts with existing command")
	ErrExpansionTooLong = errors.New("alias expansion too long")
	ErrAliasTableFull   = errors.New("alias table full")
	ErrAliasNotFound    = errors.New("alias not found")
	ErrBuiltinAlias     = errors.New("built-in aliases cannot be removed")
)

// AliasTable is the ordered set of aliases. Names never collide with a
// registered command; isCommand is consulted on every Add.
type AliasTable struct {
	entries   []domain.Alias
	max       int
	isCommand func(name string) bool
}

// NewAliasTable returns an empty table bounded by max entries.
func NewAliasTable(max int, isCommand func(name string) bool) *AliasTable {
	if isCommand == nil {
		isCommand = func(string) bool { return false }
	}
	return &AliasTable{max: max, isCommand: isCommand}
}

// ValidName reports whether name may be used for an alias.
func (t *AliasTable) ValidName(name string) bool {
	if name == "" || len(name) >= domain.MaxAliasNameLen {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !aliasNameChar(name[i]) {
			return false
		}
	}
	return !t.isCommand(name)
}

func aliasNameChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '-', c == '?':
		return true
	}
	return false
}

// Add creates name or overwrites it in place, keeping its position.
func (t *AliasTable) Add(name, expansion string, builtin bool) error {
	if !t.ValidName(name) {
		return ErrInvalidAliasName
	}
	if len(expansion) >= domain.MaxExpansionLen {
		return ErrExpansionTooLong
	}
	if i := t.index(name); i >= 0 {
		t.entries[i].Expansion = expansion
		t.entries[i].Builtin = builtin
		return nil
	}
	if len(t.entries) >= t.max {
		return ErrAliasTableFull
	}
	t.entries = append(t.entries, domain.Alias{Name: name, Expansion: expansion, Builtin: builtin})
	return nil
}

// Remove deletes a user alias. Later entries shift down.
func (t *AliasTable) Remove(name string) error {
	i := t.index(name)
	if i < 0 {
		return ErrAliasNotFound
	}
	if t.entries[i].Builtin {
		return ErrBuiltinAlias
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	return nil
}

// ClearUser drops every user alias. Built-ins keep their relative order.
func (t *AliasTable) ClearUser() {
	kept := t.entries[:0]
	for _, a := range t.entries {
		if a.Builtin {
			kept = append(kept, a)
		}
	}
	t.entries = kept
}

// Find returns the expansion for name. Matching is case-sensitive.
func (t *AliasTable) Find(name string) (string, bool) {
	if i := t.index(name); i >= 0 {
		return t.entries[i].Expansion, true
	}
	return "", false
}

// All returns a copy of the table in insertion order.
func (t *AliasTable) All() []domain.Alias {
	out := make([]domain.Alias, len(t.entries))
	copy(out, t.entries)
	return out
}

// Names returns alias names starting with prefix.
func (t *AliasTable) Names(prefix string) []string {
	var out []string
	for _, a := range t.entries {
		if strings.HasPrefix(a.Name, prefix) {
			out = append(out, a.Name)
		}
	}
	return out
}

func (t *AliasTable) Len() int { return len(t.entries) }

func (t *AliasTable) Cap() int { return t.max }

func (t *AliasTable) index(name string) int {
	for i, a := range t.entries {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// Expand replaces the first token of a line with expansion and appends the
// remaining tokens space-joined. The result is cut to MaxCommandLen-1 bytes.
func Expand(expansion string, rest []string) string {
	var b strings.Builder
	b.WriteString(expansion)
	for _, arg := range rest {
		b.WriteByte(' ')
		b.WriteString(arg)
	}
	return truncate(b.String(), domain.MaxCommandLen-1)
}
