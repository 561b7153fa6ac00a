package review

import "errors"

// ErrPendingHunks is returned by Commit while unresolved hunks remain.
var ErrPendingHunks = errors.New("review session has pending hunks")

// ErrSessionClosed is returned by Commit after Cancel or a prior Commit.
var ErrSessionClosed = errors.New("review session is closed")

// Session is the live review state for one document's proposed rewrite.
// It is created from the original and proposed content, mutated only
// through its methods, and lives in memory until committed or cancelled.
// The underlying document buffer is never touched before Commit, so
// cancelling at any point is a full rollback: every accept/reject
// decision is simply abandoned.
type Session struct {
	// SubjectID names the document this session overlays.
	SubjectID string

	// OriginalContent is captured at creation and immutable for the
	// session's lifetime.
	OriginalContent string

	// Summary is an optional description of the proposed change set,
	// opaque to the engine.
	Summary string

	// Hunks is sorted ascending by OrigStart, pairwise non-overlapping.
	Hunks []Hunk

	// Current is the index of the focused hunk, or -1 when none.
	Current int

	active bool
}

// NewSession diffs proposedContent against originalContent and returns a
// session with every hunk pending. The first hunk starts focused.
func NewSession(subjectID, originalContent, proposedContent, summary string) *Session {
	s := &Session{
		SubjectID:       subjectID,
		OriginalContent: originalContent,
		Summary:         summary,
		Hunks:           ComputeHunks(SplitLines(originalContent), SplitLines(proposedContent)),
		Current:         -1,
		active:          true,
	}
	if len(s.Hunks) > 0 {
		s.Current = 0
	}
	return s
}

// Active reports whether the session is still open for operations.
func (s *Session) Active() bool {
	return s.active
}

// Hunk returns the hunk with the given id, or nil if unknown.
func (s *Session) Hunk(id int) *Hunk {
	if i := s.find(id); i >= 0 {
		return &s.Hunks[i]
	}
	return nil
}

func (s *Session) find(id int) int {
	for i := range s.Hunks {
		if s.Hunks[i].ID == id {
			return i
		}
	}
	return -1
}

// Accept marks the pending hunk with the given id accepted and advances
// the focus to the next pending hunk (wrapping; -1 when none remain).
// Unknown ids and already-resolved hunks are ignored: UI events can
// legitimately double-fire, so this is idempotent rather than an error.
func (s *Session) Accept(id int) bool {
	return s.resolve(id, StatusAccepted)
}

// Reject is the symmetric counterpart of Accept.
func (s *Session) Reject(id int) bool {
	return s.resolve(id, StatusRejected)
}

func (s *Session) resolve(id int, status Status) bool {
	if !s.active {
		return false
	}
	i := s.find(id)
	if i < 0 || s.Hunks[i].Status != StatusPending {
		return false
	}
	s.Hunks[i].Status = status
	s.Current = NextPending(s.Hunks, i)
	return true
}

// AcceptAll accepts every pending hunk and returns how many changed.
// The focus index is left alone; it is irrelevant once nothing is
// pending.
func (s *Session) AcceptAll() int {
	if !s.active {
		return 0
	}
	n := 0
	for i := range s.Hunks {
		if s.Hunks[i].Status == StatusPending {
			s.Hunks[i].Status = StatusAccepted
			n++
		}
	}
	return n
}

// NavigateTo focuses the hunk at index, clamping out-of-range values to
// the nearest bound. Resolved hunks may be focused for inspection.
func (s *Session) NavigateTo(index int) {
	if len(s.Hunks) == 0 {
		s.Current = -1
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(s.Hunks) {
		index = len(s.Hunks) - 1
	}
	s.Current = index
}

// NextHunk moves the focus forward to the nearest pending hunk, if any.
func (s *Session) NextHunk() {
	if i := NextPending(s.Hunks, s.Current); i >= 0 {
		s.Current = i
	}
}

// PrevHunk moves the focus backward to the nearest pending hunk, if any.
func (s *Session) PrevHunk() {
	if i := PrevPending(s.Hunks, s.Current); i >= 0 {
		s.Current = i
	}
}

// PendingCount returns the number of unresolved hunks.
func (s *Session) PendingCount() int {
	n := 0
	for i := range s.Hunks {
		if s.Hunks[i].Status == StatusPending {
			n++
		}
	}
	return n
}

// Resolved reports whether every hunk has reached a terminal status.
func (s *Session) Resolved() bool {
	return s.PendingCount() == 0
}

// Cancel closes the session without applying anything.
func (s *Session) Cancel() {
	s.active = false
}

// Commit closes the session and returns the merged document text. It
// refuses while any hunk is still pending.
func (s *Session) Commit() (string, error) {
	if !s.active {
		return "", ErrSessionClosed
	}
	if s.PendingCount() > 0 {
		return "", ErrPendingHunks
	}
	s.active = false
	return s.Merged(), nil
}

// Merged returns the document text with every accepted hunk applied.
// Rejected and still-pending hunks keep their original lines, so the
// result is well defined at any point in the review.
func (s *Session) Merged() string {
	return JoinLines(MergedLines(s))
}
