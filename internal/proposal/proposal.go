package proposal

import (
	"regexp"
	"strings"

	mdperr "github.com/bwharrington/MarkdownPlus-sub001/internal/errors"
)

// Proposal is a parsed AI rewrite response: the full replacement content
// for a document plus an optional one-line summary of the change set.
type Proposal struct {
	ModifiedContent string
	Summary         string
}

var (
	summaryRe    = regexp.MustCompile(`(?i)^summary:\s*(.+)$`)
	fenceOpenRe  = regexp.MustCompile("^```+[a-zA-Z0-9_+-]*\\s*$")
	fenceCloseRe = regexp.MustCompile("^```+\\s*$")
)

// Parse extracts the proposed document from raw model output. The model
// is asked to reply with an optional "Summary:" line followed by the
// complete rewritten document in a fenced code block; Parse tolerates a
// missing summary and a missing fence, but rejects an empty rewrite so
// that a review session is never constructed from a malformed reply.
func Parse(raw string) (Proposal, error) {
	text := strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	if text == "" {
		return Proposal{}, mdperr.Parse("empty response from model").
			WithHint("try the request again")
	}

	var p Proposal

	// Optional leading summary line.
	first, rest, found := strings.Cut(text, "\n")
	if m := summaryRe.FindStringSubmatch(strings.TrimSpace(first)); m != nil {
		p.Summary = strings.TrimSpace(m[1])
		if !found {
			return Proposal{}, mdperr.Parse("model reply contained a summary but no document")
		}
		text = strings.TrimLeft(rest, "\n")
	}

	p.ModifiedContent = unwrapFence(text)

	if strings.TrimSpace(p.ModifiedContent) == "" {
		return Proposal{}, mdperr.Parse("model reply contained no document content")
	}
	return p, nil
}

// unwrapFence strips one outermost fenced code block, if the text is
// wrapped in one. Inner fences are preserved: only the first and last
// lines are candidates.
func unwrapFence(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}
	if !fenceOpenRe.MatchString(lines[0]) {
		return text
	}
	last := len(lines) - 1
	for last > 0 && strings.TrimSpace(lines[last]) == "" {
		last--
	}
	if last == 0 || !fenceCloseRe.MatchString(lines[last]) {
		return text
	}
	return strings.Join(lines[1:last], "\n")
}
