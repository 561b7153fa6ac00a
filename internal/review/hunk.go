package review

// Kind classifies how a hunk transforms the original document.
type Kind int

const (
	KindInsert Kind = iota
	KindDelete
	KindReplace
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	case KindReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Status is the resolution state of a hunk. Once a hunk leaves
// StatusPending it is terminal for the session; revisiting a decision
// requires a fresh session from a new proposal.
type Status int

const (
	StatusPending Status = iota
	StatusAccepted
	StatusRejected
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Hunk is one contiguous, independently resolvable change region between
// the original document and the proposed rewrite.
type Hunk struct {
	// ID is unique within a session and assigned at creation.
	ID int

	Kind Kind

	// OrigStart and OrigEnd are inclusive indices into the original line
	// sequence. For an insert the range is empty: OrigStart is the
	// insertion point and OrigEnd is OrigStart-1, so a trailing insert
	// sits at len(originalLines).
	OrigStart int
	OrigEnd   int

	// OrigLines holds the covered original lines verbatim, so rejecting
	// the hunk is lossless. Empty for an insert.
	OrigLines []string

	// ProposedLines holds the replacement lines. Empty for a delete.
	ProposedLines []string

	Status Status
}

// IsInsert reports whether the hunk consumes no original lines.
func (h *Hunk) IsInsert() bool {
	return h.OrigStart > h.OrigEnd
}

// OrigLen returns the number of original lines the hunk covers.
func (h *Hunk) OrigLen() int {
	if h.IsInsert() {
		return 0
	}
	return h.OrigEnd - h.OrigStart + 1
}
