package review

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ComputeHunks aligns originalLines with proposedLines and returns the
// ordered, non-overlapping change regions between them, each classified
// as an insert, delete, or replace. Identical inputs give nil; fully
// disjoint inputs give a single replace hunk spanning the document.
//
// Common prefix and suffix runs are matched before the middle is
// aligned, which biases ties toward fewer, larger hunks instead of a
// scatter of micro-hunks across a reformatted paragraph.
func ComputeHunks(originalLines, proposedLines []string) []Hunk {
	prefix := commonPrefix(originalLines, proposedLines)
	origMid := originalLines[prefix:]
	propMid := proposedLines[prefix:]
	suffix := commonSuffix(origMid, propMid)
	origMid = origMid[:len(origMid)-suffix]
	propMid = propMid[:len(propMid)-suffix]

	if len(origMid) == 0 && len(propMid) == 0 {
		return nil
	}

	var hunks []Hunk
	cursor := prefix // next unconsumed original line index
	var dels, ins []string

	flush := func() {
		if len(dels) == 0 && len(ins) == 0 {
			return
		}
		h := Hunk{
			ID:            len(hunks) + 1,
			OrigStart:     cursor,
			OrigEnd:       cursor + len(dels) - 1,
			OrigLines:     dels,
			ProposedLines: ins,
			Status:        StatusPending,
		}
		switch {
		case len(dels) > 0 && len(ins) > 0:
			h.Kind = KindReplace
		case len(dels) > 0:
			h.Kind = KindDelete
		default:
			h.Kind = KindInsert
		}
		cursor += len(dels)
		hunks = append(hunks, h)
		dels, ins = nil, nil
	}

	for _, run := range lineRuns(origMid, propMid) {
		switch run.op {
		case diffmatchpatch.DiffEqual:
			flush()
			cursor += len(run.lines)
		case diffmatchpatch.DiffDelete:
			dels = append(dels, run.lines...)
		case diffmatchpatch.DiffInsert:
			ins = append(ins, run.lines...)
		}
	}
	flush()

	return hunks
}

// lineRun is a maximal run of lines sharing one diff operation.
type lineRun struct {
	op    diffmatchpatch.Operation
	lines []string
}

// lineRuns computes a minimal line-level diff of the two sequences. Each
// line is encoded as a single rune so go-diff's Myers alignment works on
// whole lines, then runs are decoded back through the line table.
func lineRuns(oldLines, newLines []string) []lineRun {
	dmp := diffmatchpatch.New()

	rOld, rNew, lineTable := dmp.DiffLinesToRunes(encodeLines(oldLines), encodeLines(newLines))
	diffs := dmp.DiffMainRunes(rOld, rNew, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	var runs []lineRun
	for _, d := range diffs {
		var lines []string
		for _, r := range d.Text {
			idx := int(r)
			if idx > 0 && idx < len(lineTable) {
				lines = append(lines, strings.TrimSuffix(lineTable[idx], "\n"))
			}
		}
		if len(lines) == 0 {
			continue
		}
		runs = append(runs, lineRun{op: d.Type, lines: lines})
	}
	return runs
}

// encodeLines terminates every line uniformly so go-diff tokenizes each
// one as a distinct unit regardless of where it sits in the document.
func encodeLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// commonPrefix returns the length of the longest equal leading run.
func commonPrefix(a, b []string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// commonSuffix returns the length of the longest equal trailing run.
func commonSuffix(a, b []string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return i
}
