package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"jamjudge/internal/logging"
)

// RuntimeClient invokes the judging agent through an agent runtime over
// HTTP. The runtime resolves the opaque agent identifier; this client only
// ships the payload and normalizes whatever comes back.
type RuntimeClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// RuntimeConfig configures a RuntimeClient.
type RuntimeConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// DefaultRuntimeTimeout bounds a single agent call at the transport layer.
// The workflow itself enforces no timeout and never retries.
const DefaultRuntimeTimeout = 2 * time.Minute

// NewRuntimeClient creates a client for the given runtime endpoint.
func NewRuntimeClient(cfg RuntimeConfig) *RuntimeClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRuntimeTimeout
	}
	return &RuntimeClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// runtimeRequest is the outbound call shape: the agent identifier plus one
// opaque string payload.
type runtimeRequest struct {
	Agent string `json:"agent"`
	Input string `json:"input"`
}

// Evaluate performs one round trip against the agent runtime.
func (c *RuntimeClient) Evaluate(ctx context.Context, payload string) (*Verdict, error) {
	if c.baseURL == "" {
		return nil, &Error{Kind: KindTransport, Message: TransportFallback, Err: fmt.Errorf("agent runtime URL not configured")}
	}

	start := time.Now()
	logging.AgentDebug("Invoking agent %s (payload %d bytes)", AgentID, len(payload))

	body, err := json.Marshal(runtimeRequest{Agent: AgentID, Input: payload})
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: TransportFallback, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	url := fmt.Sprintf("%s/agents/%s/invoke", c.baseURL, AgentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: TransportFallback, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Get(logging.CategoryAgent).Error("Agent call failed: %v", err)
		return nil, &Error{Kind: KindTransport, Message: TransportFallback, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: TransportFallback, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	// A non-2xx status with a well-formed envelope is still an
	// agent-reported failure; only an unparseable body is a transport
	// error.
	verdict, err := decodeOutcome(respBody)
	if err != nil {
		if ae, ok := err.(*Error); ok && ae.Kind == KindTransport && resp.StatusCode != http.StatusOK {
			ae.Err = fmt.Errorf("agent runtime returned status %d", resp.StatusCode)
		}
		logging.Get(logging.CategoryAgent).Warn("Agent returned failure after %v: %v", time.Since(start), err)
		return nil, err
	}

	logging.Agent("Agent verdict received in %v: %s scored %.2f%%",
		time.Since(start), verdict.Result.GameName, verdict.Result.PercentageScore)
	return verdict, nil
}
