package rewrite

import (
	"github.com/bwharrington/MarkdownPlus-sub001/internal/api"
	mdperr "github.com/bwharrington/MarkdownPlus-sub001/internal/errors"
	"github.com/bwharrington/MarkdownPlus-sub001/internal/proposal"
)

// APIClient is the interface for sending messages to the AI API.
// This allows mocking in tests.
type APIClient interface {
	SendStream(system, userMessage string, cb api.StreamCallback) (string, error)
}

// Rewrite asks the model for a full rewrite of content following
// instruction, streaming progress through streamCb, and parses the reply
// into a Proposal. A malformed reply is resolved here; callers never
// build a review session from bad output.
func Rewrite(client APIClient, content, instruction, styleGuide string, streamCb api.StreamCallback) (proposal.Proposal, error) {
	if instruction == "" {
		return proposal.Proposal{}, mdperr.Usage("no rewrite instruction given").
			WithHint("pass one with -m, e.g. -m \"make the tone more formal\"")
	}

	system := buildSystemPrompt(styleGuide)
	user := buildUserMessage(content, instruction)

	raw, err := client.SendStream(system, user, streamCb)
	if err != nil {
		return proposal.Proposal{}, err
	}

	p, err := proposal.Parse(raw)
	if err != nil {
		return proposal.Proposal{}, mdperr.WrapParse("parsing rewrite response", err).
			WithHint("the model reply was not a usable document; try again")
	}
	return p, nil
}
