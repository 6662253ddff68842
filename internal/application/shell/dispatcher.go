package shell

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/doeshing/bareshell/internal/domain"
)

// maxSuggestionDistance bounds the edit distance of a "did you mean" hint.
const maxSuggestionDistance = 2

// Execute runs one input line and returns the result of the last command
// executed.
func (s *Session) Execute(line string) domain.ErrorKind {
	return s.execute(line, 0)
}

func (s *Session) execute(line string, depth int) domain.ErrorKind {
	if strings.Trim(line, " \t\r\n") == "" {
		return domain.KindSuccess
	}
	if IsBatch(line) {
		return s.runBatch(line)
	}

	args, err := s.tokenizer.Tokenize(line)
	if err != nil {
		s.printer.Error("Error: Failed to parse command")
		s.errors.Record(domain.KindParse, domain.ShellCommandName, "tokenization failed")
		return domain.KindParse
	}
	if len(args) == 0 {
		return domain.KindSuccess
	}

	if expansion, ok := s.aliases.Find(args[0]); ok {
		if depth >= s.limits.MaxAliasDepth {
			return s.Fail(domain.KindNotFound, domain.ShellCommandName, "alias expansion too deep")
		}
		expanded := Expand(expansion, args[1:])
		s.log().Debug("alias expanded", map[string]interface{}{
			"alias": args[0],
			"line":  expanded,
			"depth": depth + 1,
		})
		return s.execute(expanded, depth+1)
	}

	return s.dispatch(line, args)
}

// runBatch executes a parsed sequence. Steps are never alias-expanded.
func (s *Session) runBatch(line string) domain.ErrorKind {
	seq, err := ParseBatch(line, s.limits.MaxBatchCommands)
	if err != nil {
		return s.Fail(domain.KindSyntax, domain.ShellCommandName, err.Error())
	}

	last := domain.KindSuccess
	prev := domain.OpNone
	for i, step := range seq.Steps {
		if i > 0 && !shouldRun(prev, last) {
			prev = step.Next
			continue
		}
		prev = step.Next

		args, err := s.tokenizer.Tokenize(step.Command)
		if err != nil {
			s.printer.Error("Error: Failed to parse command")
			s.errors.Record(domain.KindParse, domain.ShellCommandName, "tokenization failed")
			last = domain.KindParse
			continue
		}
		if len(args) == 0 {
			last = domain.KindSuccess
			continue
		}
		last = s.dispatch(step.Command, args)
	}
	return last
}

// dispatch looks up args[0], runs the handler and records the line.
func (s *Session) dispatch(line string, args []string) domain.ErrorKind {
	cmd, ok := s.registry.Lookup(args[0])
	if !ok {
		s.unknownCommand(args[0])
		return domain.KindNotFound
	}

	start := time.Now()
	result := cmd.Handler(args)
	elapsed := time.Since(start)

	if s.stats != nil {
		if err := s.stats.Record(context.Background(), cmd.Name, elapsed, result); err != nil {
			s.log().Warn("failed to record command stats", map[string]interface{}{
				"command": cmd.Name,
				"error":   err.Error(),
			})
		}
	}
	s.log().Debug("command executed", map[string]interface{}{
		"command": cmd.Name,
		"result":  result.String(),
		"elapsed": elapsed.String(),
	})

	if cmd.Name != domain.HistoryCommandName {
		s.history.Add(line)
	}
	return result
}

func (s *Session) unknownCommand(name string) {
	s.printer.Printf("Unknown command: '%s'\n", name)
	s.printer.Println("Type 'help' to see available commands, or 'about' for system info.")
	s.errors.Record(domain.KindNotFound, domain.ShellCommandName, name)

	switch name {
	case "ls":
		s.printer.Println("Hint: This machine has no filesystem. Try 'help' instead.")
		return
	case "exit", "quit":
		s.printer.Println("Hint: Use 'reboot' or Ctrl-D to leave the shell.")
		return
	case "cat", "more":
		s.printer.Println("Hint: No filesystem available. Try 'meminfo' to see memory status.")
		return
	}
	if suggestion, ok := s.suggest(name); ok {
		s.printer.Printf("Did you mean '%s'?\n", suggestion)
	}
}

// suggest finds the closest command or alias name. Subsequence matches win
// over edit distance.
func (s *Session) suggest(name string) (string, bool) {
	candidates := s.registry.Names("")
	candidates = append(candidates, s.aliases.Names("")...)
	if len(candidates) == 0 {
		return "", false
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target, true
	}

	best, bestDistance := "", maxSuggestionDistance+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(name), c); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best, best != ""
}
