package notegen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

// placeholderResponse is returned when the server reply lacks the
// expected response field. Documented graceful degradation rather than
// a hard failure.
const placeholderResponse = "No response from model."

type tagsResponse struct {
	Models *[]struct {
		Name string `json:"name"`
	} `json:"models"`
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response *string `json:"response"`
}

// ListModels queries the server's model listing route.
func (g *implGenerator) ListModels(ctx context.Context) ([]string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, g.host+"/api/tags", nil)
	if err != nil {
		return nil, &Error{Kind: KindMalformed, Message: fmt.Sprintf("build model list request: %v", err), Err: err}
	}

	resp, err := g.list.Do(req)
	if err != nil {
		return nil, transportError(err, "Cannot connect to Ollama. Please ensure Ollama is installed and running (run 'ollama serve' in a terminal).")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Kind:    KindHTTP,
			Message: fmt.Sprintf("HTTP error from Ollama API: %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindConnection, Message: fmt.Sprintf("read model list response: %v", err), Err: err}
	}

	var tags tagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, &Error{Kind: KindMalformed, Message: fmt.Sprintf("error parsing Ollama response: %v", err), Err: err}
	}
	if tags.Models == nil {
		return nil, &Error{Kind: KindMalformed, Message: "invalid response format from Ollama API: missing models field"}
	}

	names := make([]string, 0, len(*tags.Models))
	for _, m := range *tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Generate submits the transcript and system prompt for non-streaming
// generation. The response body is newline-delimited JSON; the last
// line's response field is the generated text.
func (g *implGenerator) Generate(ctx context.Context, transcript, systemPrompt, model string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: transcript,
		System: systemPrompt,
		Stream: false,
	})
	if err != nil {
		return "", &Error{Kind: KindMalformed, Message: fmt.Sprintf("encode generation request: %v", err), Err: err}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, g.host+"/api/generate", payload)
	if err != nil {
		return "", &Error{Kind: KindMalformed, Message: fmt.Sprintf("build generation request: %v", err), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.gen.Do(req)
	if err != nil {
		return "", transportError(err, "Cannot connect to Ollama. Is it running?")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{
			Kind:    KindHTTP,
			Message: fmt.Sprintf("HTTP error from Ollama API: %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(err, "reading generation response failed")
	}

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	last := lines[len(lines)-1]

	var gen generateResponse
	if err := json.Unmarshal([]byte(last), &gen); err != nil {
		return "", &Error{Kind: KindMalformed, Message: fmt.Sprintf("error decoding Ollama response: %v", err), Err: err}
	}
	if gen.Response == nil {
		return placeholderResponse, nil
	}

	return *gen.Response, nil
}

// transportError maps a transport-level failure to a timeout or
// connection error kind.
func transportError(err error, connMsg string) *Error {
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return &Error{
			Kind:    KindTimeout,
			Message: "Request to Ollama timed out. The generation might be taking too long.",
			Err:     err,
		}
	}
	return &Error{Kind: KindConnection, Message: connMsg, Err: err}
}
