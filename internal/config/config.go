package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Whisper WhisperConfig `yaml:"whisper"`
	Ollama  OllamaConfig  `yaml:"ollama"`
	Logging LoggingConfig `yaml:"logging"`
	Export  ExportConfig  `yaml:"export"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type WhisperConfig struct {
	BinaryPath  string `yaml:"binary_path"`
	LibraryPath string `yaml:"library_path"`
	ModelPath   string `yaml:"model_path"`
}

type OllamaConfig struct {
	Host           string `yaml:"host"`
	Model          string `yaml:"model"`
	PromptPath     string `yaml:"prompt_path"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ExportConfig struct {
	Docx bool `yaml:"docx"`
}

// Discovery holds the model and prompt files found in the input directory.
type Discovery struct {
	ModelPaths  []string
	PromptPaths []string
}

// Load reads the yaml config from path. A missing file yields defaults,
// matching first-launch behavior.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := &Config{}
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate fills defaults for unset fields and rejects invalid values.
func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		c.Paths.Input = "input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "Whisper.exe"
	}
	if c.Whisper.LibraryPath == "" {
		c.Whisper.LibraryPath = "Whisper.dll"
	}
	if c.Ollama.Host == "" {
		c.Ollama.Host = "http://localhost:11434"
	}
	if c.Ollama.TimeoutSeconds == 0 {
		c.Ollama.TimeoutSeconds = 300
	}
	if c.Ollama.TimeoutSeconds < 0 {
		return fmt.Errorf("ollama.timeout_seconds must be positive")
	}
	if c.Ollama.MaxRetries == 0 {
		c.Ollama.MaxRetries = 3
	}
	if c.Ollama.MaxRetries < 0 {
		return fmt.Errorf("ollama.max_retries must be positive")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// Discover globs the input directory for model (*.bin) and system prompt
// (*.txt) files. Results are sorted so the default pick is stable.
func (c *Config) Discover() (Discovery, error) {
	models, err := filepath.Glob(filepath.Join(c.Paths.Input, "*.bin"))
	if err != nil {
		return Discovery{}, fmt.Errorf("glob model files: %w", err)
	}

	prompts, err := filepath.Glob(filepath.Join(c.Paths.Input, "*.txt"))
	if err != nil {
		return Discovery{}, fmt.Errorf("glob prompt files: %w", err)
	}

	sort.Strings(models)
	sort.Strings(prompts)

	return Discovery{ModelPaths: models, PromptPaths: prompts}, nil
}

// ReadSystemPrompt reads a prompt file as UTF-8 text.
func ReadSystemPrompt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read system prompt %s: %w", path, err)
	}
	return string(data), nil
}
