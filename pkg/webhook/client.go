package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/biocore/biocore-cli/pkg/form"
)

// Result is the parsed successful response from the BioCore webhook.
type Result struct {
	Report string
	Meta   *Meta
}

// Meta carries the optional metadata block the agent attaches to a
// report. CompoundQueried may arrive as a string (name) or a number
// (CID), so it is kept loosely typed.
type Meta struct {
	CompoundQueried any         `json:"compound_queried"`
	PDBIDQueried    string      `json:"pdb_id_queried"`
	ModelUsed       string      `json:"model_used"`
	TokensUsed      *TokenUsage `json:"tokens_used,omitempty"`
}

type TokenUsage struct {
	TotalTokens int `json:"total_tokens"`
}

// RemoteError means the webhook responded but signaled failure, either
// through a non-success status code or an explicit error payload.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

type Client struct {
	client *http.Client
}

// NewClient builds a webhook client. A zero timeout waits indefinitely
// for the remote pipeline, which routinely runs for minutes.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{Timeout: timeout},
	}
}

// Submit POSTs the payload as JSON and parses the response.
func (c *Client) Submit(url string, payload form.Payload) (*Result, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read webhook response: %w", err)
	}

	return parseResponse(resp.StatusCode, respBytes)
}

// parseResponse maps the webhook's response shapes onto Result or an
// error. Error message priority: body message, body error, HTTP status.
func parseResponse(status int, body []byte) (*Result, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		if status < 200 || status > 299 {
			return nil, &RemoteError{Message: fmt.Sprintf("HTTP status %d", status)}
		}
		return nil, fmt.Errorf("webhook returned non-JSON response: %w", err)
	}

	var env struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Error   string `json:"error"`
		Report  string `json:"report"`
		Meta    *Meta  `json:"meta"`
	}
	// A non-object body leaves env zeroed and falls through to the
	// serialize-everything path below.
	_ = json.Unmarshal(body, &env)

	if env.Status == "error" || status < 200 || status > 299 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP status %d", status)
		}
		return nil, &RemoteError{Message: msg}
	}

	if env.Report != "" {
		return &Result{Report: env.Report, Meta: env.Meta}, nil
	}

	// No report and no explicit error: treat the whole body as the
	// report so the user still sees what came back.
	pretty, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return nil, err
	}
	return &Result{Report: string(pretty), Meta: env.Meta}, nil
}
