package notegen

import "context"

// Generator is the client for the local Ollama generation service.
type Generator interface {
	// ListModels returns the names of models installed on the server.
	ListModels(ctx context.Context) ([]string, error)
	// Generate produces meeting notes from a transcript, guided by a
	// system prompt, using the named model.
	Generate(ctx context.Context, transcript, systemPrompt, model string) (string, error)
}
