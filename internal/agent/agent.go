// Package agent adapts the external AI evaluation service. A single call
// takes a serialized judging payload and an opaque agent identifier and
// returns a normalized outcome: a verdict on success, or a typed error
// distinguishing transport failures from failures the agent itself
// reported. The agent's response shape is externally defined and treated
// as untrusted input; nothing beyond the explicitly checked fields is
// assumed to be present.
package agent

import (
	"context"
	"fmt"

	"jamjudge/internal/judge"
)

// AgentID is the fixed identifier of the judging agent.
const AgentID = "game-jam-judge"

// Fallback messages shown when the agent supplies no detail of its own.
// Surfaced error strings must never be empty.
const (
	RejectedFallback  = "The evaluation agent could not process this submission."
	TransportFallback = "Could not reach the evaluation agent. Check your connection and try again."
)

// Verdict is a successful agent outcome: the structured evaluation plus
// the response metadata envelope.
type Verdict struct {
	Result   judge.EvaluationResult
	Metadata judge.EvaluationMetadata
}

// Kind classifies an agent error.
type Kind int

const (
	// KindTransport covers network, HTTP and parse failures. No agent
	// detail is surfaced for these.
	KindTransport Kind = iota
	// KindRejected covers application-level failures reported by the
	// agent in a well-formed response.
	KindRejected
)

// Error is a normalized agent failure. Message is always non-empty and
// safe to show to the judge.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage returns the string to surface for any evaluation error.
// Agent-rejected errors carry the agent's own message; everything else
// collapses to the generic transport message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if ae, ok := err.(*Error); ok && ae.Kind == KindRejected {
		if ae.Message != "" {
			return ae.Message
		}
		return RejectedFallback
	}
	return TransportFallback
}

// Client performs one evaluation round trip. The returned error is always
// an *Error; there is no automatic retry and no timeout beyond whatever
// the transport enforces.
type Client interface {
	Evaluate(ctx context.Context, payload string) (*Verdict, error)
}
