package agent

import (
	"encoding/json"

	"jamjudge/internal/judge"
)

// wireResponse is the externally defined agent response envelope. Every
// field is optional as far as this package is concerned; normalization
// checks what it needs explicitly.
type wireResponse struct {
	Success  bool                      `json:"success"`
	Status   string                    `json:"status"`
	Message  string                    `json:"message"`
	Result   *judge.EvaluationResult  `json:"result"`
	Metadata *judge.EvaluationMetadata `json:"metadata"`
}

// decodeOutcome normalizes a raw response body into the tagged outcome:
// a Verdict, a KindRejected error carrying the agent's message (or the
// fallback when absent), or a KindTransport error when the body is not
// parseable at all.
func decodeOutcome(body []byte) (*Verdict, error) {
	var resp wireResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{Kind: KindTransport, Message: TransportFallback, Err: err}
	}

	if !resp.Success || resp.Status != "success" || resp.Result == nil {
		msg := resp.Message
		if msg == "" {
			msg = RejectedFallback
		}
		return nil, &Error{Kind: KindRejected, Message: msg}
	}

	verdict := &Verdict{Result: *resp.Result}
	if resp.Metadata != nil {
		verdict.Metadata = *resp.Metadata
	}
	return verdict, nil
}
