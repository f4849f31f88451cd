package diagnostics

import (
	"context"
	"fmt"
	"os"

	"noteflow/internal/config"
)

// ModelLister is the slice of the note-generation client the checker
// needs: only the model listing route.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Checker validates the external tools, input files and services the
// pipeline depends on before any job may start.
type Checker struct {
	cfg    *config.Config
	lister ModelLister
	stat   func(string) (os.FileInfo, error)
}

// New builds a checker using real OS dependencies.
func New(cfg *config.Config, lister ModelLister) *Checker {
	return &Checker{
		cfg:    cfg,
		lister: lister,
		stat:   os.Stat,
	}
}

// Check runs all startup checks and returns human-readable error
// strings. An empty slice means the environment is ready.
func (c *Checker) Check(ctx context.Context) []string {
	var errs []string

	if _, err := c.stat(c.cfg.Whisper.BinaryPath); err != nil {
		errs = append(errs, fmt.Sprintf(
			"ERROR: transcription executable not found at %s. Download the Whisper.cpp binaries and place them next to the noteflow binary.",
			c.cfg.Whisper.BinaryPath))
	}

	if _, err := c.stat(c.cfg.Whisper.LibraryPath); err != nil {
		errs = append(errs, fmt.Sprintf(
			"ERROR: transcription support library not found at %s. It ships alongside the Whisper.cpp executable.",
			c.cfg.Whisper.LibraryPath))
	}

	disc, err := c.cfg.Discover()
	if err != nil {
		errs = append(errs, fmt.Sprintf("ERROR: cannot scan input directory %s: %v", c.cfg.Paths.Input, err))
	} else {
		if len(disc.ModelPaths) == 0 {
			errs = append(errs, fmt.Sprintf(
				"ERROR: no .bin model file found in %s. Download a model from https://huggingface.co/ggerganov/whisper.cpp and place it in the input folder.",
				c.cfg.Paths.Input))
		}
		if len(disc.PromptPaths) == 0 {
			errs = append(errs, fmt.Sprintf(
				"ERROR: no system prompt .txt file found in %s. Create a text file with your base prompt for meeting notes generation.",
				c.cfg.Paths.Input))
		}
	}

	models, err := c.lister.ListModels(ctx)
	if err != nil {
		errs = append(errs, fmt.Sprintf("ERROR: %v", err))
	} else if len(models) == 0 {
		errs = append(errs, "ERROR: Ollama reports no installed models. Pull one first, e.g. 'ollama pull llama3'.")
	}

	if len(errs) > 0 {
		errs = append(errs,
			"",
			"INFO: see README.md for setup instructions.",
			"INFO: model files: https://huggingface.co/ggerganov/whisper.cpp/tree/main",
			"INFO: Ollama: https://ollama.ai")
	}

	return errs
}
