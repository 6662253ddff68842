package domain

// HistoryEntry is a line recorded after dispatch.
type HistoryEntry struct {
	Seq     uint64
	Command string
}

// ErrorLogEntry records one error path taken by the shell or a handler.
type ErrorLogEntry struct {
	Kind      ErrorKind
	Command   string
	Context   string
	Timestamp uint64
}
