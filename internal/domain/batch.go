package domain

// BatchOperator joins a batch step to the one after it.
type BatchOperator int

const (
	OpNone BatchOperator = iota
	OpSequence
	OpAnd
	OpOr
)

func (o BatchOperator) String() string {
	switch o {
	case OpSequence:
		return ";"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	default:
		return ""
	}
}

// BatchStep is one sub-command and the operator that follows it.
type BatchStep struct {
	Command string
	Next    BatchOperator
}

// BatchSequence is an ordered list of steps parsed from one line.
type BatchSequence struct {
	Steps []BatchStep
}

// Len returns the number of steps.
func (b BatchSequence) Len() int {
	return len(b.Steps)
}
