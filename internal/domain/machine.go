package domain

import "time"

// Access widths accepted by the memory port.
const (
	WidthByte = 1
	WidthHalf = 2
	WidthWord = 4
)

// HeapStats reports the state of the bump allocator.
type HeapStats struct {
	Start          uint64
	End            uint64
	Current        uint64
	TotalAllocated uint64
	Allocations    uint64
	Remaining      uint64
}

// CommandStats aggregates executions of one command.
type CommandStats struct {
	Name     string
	Calls    int64
	Failures int64
	Total    time.Duration
	Last     time.Duration
	Average  time.Duration
}

// StatsSummary is what the stats command shows.
type StatsSummary struct {
	TotalCommands int64
	Commands      []CommandStats
}

// MostUsed returns the command with the highest call count.
func (s StatsSummary) MostUsed() (CommandStats, bool) {
	if len(s.Commands) == 0 {
		return CommandStats{}, false
	}
	best := s.Commands[0]
	for _, c := range s.Commands[1:] {
		if c.Calls > best.Calls {
			best = c
		}
	}
	return best, true
}
