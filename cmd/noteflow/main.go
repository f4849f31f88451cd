package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"noteflow/internal/config"
	"noteflow/internal/diagnostics"
	"noteflow/internal/exporter"
	"noteflow/internal/logger"
	"noteflow/internal/notegen"
	"noteflow/internal/pipeline"
	"noteflow/internal/transcriber"
	"noteflow/internal/watcher"
	"noteflow/pkg/executor"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "noteflow - local meeting notes pipeline")
	log.Info(ctx, "========================================")

	gen := notegen.New(
		cfg.Ollama.Host,
		time.Duration(cfg.Ollama.TimeoutSeconds)*time.Second,
		cfg.Ollama.MaxRetries,
		log,
	)

	// Environment problems block any job before it can start.
	if errs := diagnostics.New(cfg, gen).Check(ctx); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}
	log.Info(ctx, "Environment check passed")

	disc, err := cfg.Discover()
	if err != nil {
		log.Error(ctx, "Input discovery failed: %v", err)
		os.Exit(1)
	}

	modelPath := cfg.Whisper.ModelPath
	if modelPath == "" {
		modelPath = disc.ModelPaths[0]
	}
	promptPath := cfg.Ollama.PromptPath
	if promptPath == "" {
		promptPath = disc.PromptPaths[0]
	}

	ollamaModel := cfg.Ollama.Model
	if ollamaModel == "" {
		models, err := gen.ListModels(ctx)
		if err != nil {
			log.Error(ctx, "Failed to list Ollama models: %v", err)
			os.Exit(1)
		}
		ollamaModel = models[0]
	}

	log.Info(ctx, "Transcription model: %s", modelPath)
	log.Info(ctx, "System prompt: %s", promptPath)
	log.Info(ctx, "Ollama model: %s", ollamaModel)

	trans, err := transcriber.New(cfg.Whisper.BinaryPath, modelPath, executor.New(), log)
	if err != nil {
		log.Error(ctx, "Failed to initialize transcriber: %v", err)
		os.Exit(1)
	}

	runner := pipeline.NewRunner(trans, gen, config.ReadSystemPrompt, log)
	exp := exporter.New(cfg.Paths.Output, cfg.Export.Docx, log)

	emit := func(ev pipeline.Event) {
		switch ev.Type {
		case pipeline.EventProgress:
			log.Info(ctx, "Progress: %d%%", ev.Progress)
		case pipeline.EventLog:
			log.Info(ctx, "%s", ev.Message)
		}
	}

	save := func(job pipeline.Job, res pipeline.Result) error {
		report := exp.Save(res.Transcript, res.Notes, job.AudioPath)
		for _, path := range report.Written {
			log.Info(ctx, "Saved: %s", path)
		}
		for _, werr := range report.Errors {
			log.Error(ctx, "%v", werr)
		}
		return nil
	}

	newJob := func(audioPath string) pipeline.Job {
		return pipeline.Job{
			AudioPath:   audioPath,
			PromptPath:  promptPath,
			OllamaModel: ollamaModel,
		}
	}

	if args := os.Args[1:]; len(args) > 0 {
		var jobs []pipeline.Job
		for _, path := range args {
			if !exporter.IsAudioFile(path) {
				log.Warn(ctx, "Skipping %s: not a supported audio file", path)
				continue
			}
			jobs = append(jobs, newJob(path))
		}
		if len(jobs) == 0 {
			log.Error(ctx, "No supported audio files among the arguments")
			os.Exit(1)
		}

		_, failed := runner.Batch(ctx, jobs, save, emit)
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	// No arguments: watch the input directory for new recordings.
	handle := func(ctx context.Context, audioPath string) error {
		job := newJob(audioPath)
		events, err := runner.Run(ctx, job)
		if err != nil {
			return err
		}

		var result *pipeline.Result
		for ev := range events {
			if ev.Type == pipeline.EventResult {
				result = ev.Result
			}
			emit(ev)
		}
		if result == nil {
			return fmt.Errorf("processing failed for %s", audioPath)
		}
		return save(job, *result)
	}

	w, err := watcher.New(cfg.Paths.Input, handle, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Drop recordings into %s to process them", cfg.Paths.Input)
	log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	cancel()
	log.Info(ctx, "noteflow stopped")
}
