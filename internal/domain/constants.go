package domain

// Default capacities of the session structures.
const (
	DefaultHistorySize      = 20
	DefaultErrorLogSize     = 10
	DefaultMaxAliases       = 20
	DefaultMaxAliasDepth    = 8
	DefaultMaxBatchCommands = 10
	DefaultMaxCommands      = 32
	DefaultMaxCompletions   = 32
	DefaultInputSize        = 256
	DefaultMaxArgs          = 16
	DefaultMaxTokenLen      = 32
)

// Text bounds.
const (
	// MaxAliasNameLen is the exclusive upper bound on alias name length.
	MaxAliasNameLen = 32
	// MaxExpansionLen is the exclusive upper bound on alias expansion length.
	MaxExpansionLen = 128
	// MaxCommandLen is the exclusive upper bound on a stored or expanded line.
	MaxCommandLen = 256
	// MaxErrorCommandLen bounds the command name kept in the error log.
	MaxErrorCommandLen = 32
	// MaxErrorContextLen bounds the context text kept in the error log.
	MaxErrorContextLen = 64
)

// Default machine layout.
const (
	DefaultLowThreshold  = 0x1000
	DefaultMMIOStart     = 0x09000000
	DefaultMMIOEnd       = 0x09001000
	DefaultHighThreshold = 0xFFFF0000
	DefaultWriteBoundary = 0x40010000

	DefaultRAMBase       = 0x40000000
	DefaultRAMSize       = 16 << 20
	DefaultHeapStart     = 0x40097000
	DefaultHeapSize      = 1 << 20
	DefaultHeapAlignment = 16
)

// DefaultPrompt is shown before every input line.
const DefaultPrompt = "OS> "

// ShellCommandName is the command name used when the shell itself logs an error.
const ShellCommandName = "shell"

// HistoryCommandName is never recorded in history.
const HistoryCommandName = "history"
