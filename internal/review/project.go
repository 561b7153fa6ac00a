package review

// LineKind classifies a projected display line.
type LineKind int

const (
	LineUnchanged LineKind = iota
	LineRemoved
	LineAdded
)

// DisplayLine is one renderable line of the review view. Lines emitted
// for resolved hunks carry no hunk metadata: once decided, the surviving
// content is indistinguishable from original text.
type DisplayLine struct {
	Text   string
	Kind   LineKind
	HunkID int    // 0 when the line carries no hunk metadata
	Status Status // meaningful only when HunkID != 0

	// Anchor marks the first changed line of a pending hunk, where the
	// inline accept/reject affordance is drawn.
	Anchor bool

	// Current marks lines of the focused hunk for highlight styling.
	Current bool
}

// Project flattens the session into its ordered display lines: original
// lines outside any hunk come through unchanged; a pending hunk shows
// its original lines as removed followed by its proposed lines as added;
// an accepted hunk shows only its proposed lines and a rejected hunk
// only its original lines, both as plain unchanged text. Every original
// line is emitted exactly once across the walk.
func Project(s *Session) []DisplayLine {
	orig := SplitLines(s.OriginalContent)
	var out []DisplayLine
	cursor := 0

	for hi := range s.Hunks {
		h := &s.Hunks[hi]
		for ; cursor < h.OrigStart; cursor++ {
			out = append(out, DisplayLine{Text: orig[cursor]})
		}

		switch h.Status {
		case StatusPending:
			focused := hi == s.Current
			anchor := true
			for _, l := range h.OrigLines {
				out = append(out, DisplayLine{
					Text: l, Kind: LineRemoved,
					HunkID: h.ID, Status: StatusPending,
					Anchor: anchor, Current: focused,
				})
				anchor = false
			}
			for _, l := range h.ProposedLines {
				out = append(out, DisplayLine{
					Text: l, Kind: LineAdded,
					HunkID: h.ID, Status: StatusPending,
					Anchor: anchor, Current: focused,
				})
				anchor = false
			}
		case StatusAccepted:
			for _, l := range h.ProposedLines {
				out = append(out, DisplayLine{Text: l})
			}
		case StatusRejected:
			for _, l := range h.OrigLines {
				out = append(out, DisplayLine{Text: l})
			}
		}

		// An insert consumes no original lines; its empty range leaves
		// the cursor where it was.
		cursor = h.OrigEnd + 1
	}

	for ; cursor < len(orig); cursor++ {
		out = append(out, DisplayLine{Text: orig[cursor]})
	}
	return out
}

// MergedLines resolves every hunk to its surviving content: accepted
// hunks contribute their proposed lines, rejected and pending hunks keep
// their original lines.
func MergedLines(s *Session) []string {
	orig := SplitLines(s.OriginalContent)
	var out []string
	cursor := 0

	for i := range s.Hunks {
		h := &s.Hunks[i]
		out = append(out, orig[cursor:h.OrigStart]...)
		if h.Status == StatusAccepted {
			out = append(out, h.ProposedLines...)
		} else {
			out = append(out, h.OrigLines...)
		}
		cursor = h.OrigEnd + 1
	}

	out = append(out, orig[cursor:]...)
	return out
}

// Stats returns the added and removed line counts a pending review would
// apply if fully accepted.
func Stats(s *Session) (added, removed int) {
	for i := range s.Hunks {
		added += len(s.Hunks[i].ProposedLines)
		removed += len(s.Hunks[i].OrigLines)
	}
	return
}
