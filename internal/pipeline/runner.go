package pipeline

import (
	"context"
	"errors"
	"fmt"

	"noteflow/internal/logger"
)

// ErrJobAlreadyRunning is returned when starting a second active job.
var ErrJobAlreadyRunning = errors.New("job already running")

// Transcriber is the slice of the transcription invoker the runner needs.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// NoteGenerator is the slice of the note-generation client the runner needs.
type NoteGenerator interface {
	Generate(ctx context.Context, transcript, systemPrompt, model string) (string, error)
}

// PromptReader loads a system prompt file.
type PromptReader func(path string) (string, error)

// Runner executes jobs on a background goroutine, one at a time,
// reporting progress and log lines through an event channel.
type Runner struct {
	transcriber Transcriber
	generator   NoteGenerator
	readPrompt  PromptReader
	logger      logger.Logger
	machine     *machine
}

// NewRunner creates a Runner in idle state.
func NewRunner(t Transcriber, g NoteGenerator, readPrompt PromptReader, log logger.Logger) *Runner {
	return &Runner{
		transcriber: t,
		generator:   g,
		readPrompt:  readPrompt,
		logger:      log,
		machine:     newMachine(),
	}
}

// State returns the current job state.
func (r *Runner) State() State {
	return r.machine.current()
}

// Run starts one job on a background goroutine and returns its event
// channel. The channel is closed after the terminal result event.
// A second concurrent job is refused with ErrJobAlreadyRunning.
func (r *Runner) Run(ctx context.Context, job Job) (<-chan Event, error) {
	if !r.machine.tryStart() {
		return nil, ErrJobAlreadyRunning
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		emit := func(ev Event) { events <- ev }
		result := r.execute(ctx, job, emit)
		emit(Event{Type: EventResult, Result: result})
	}()

	return events, nil
}

// execute walks the job through its stages. All failures, including a
// panic from a collaborator, are converted to a log event plus a nil
// result; nothing escapes the worker goroutine.
func (r *Runner) execute(ctx context.Context, job Job, emit func(Event)) (result *Result) {
	defer func() {
		if p := recover(); p != nil {
			emit(Event{Type: EventLog, Message: fmt.Sprintf("An unexpected error occurred: %v", p)})
			r.fail()
			result = nil
		}
	}()

	emit(Event{Type: EventLog, Message: "Starting meeting notes generation..."})
	emit(Event{Type: EventLog, Message: "Transcribing audio..."})
	emit(Event{Type: EventProgress, Progress: 10})

	transcript, err := r.transcriber.Transcribe(ctx, job.AudioPath)
	if err != nil {
		emit(Event{Type: EventLog, Message: fmt.Sprintf("Transcription error: %v", err)})
		r.fail()
		return nil
	}

	emit(Event{Type: EventLog, Message: "Transcription complete."})
	emit(Event{Type: EventProgress, Progress: 50})

	systemPrompt, err := r.readPrompt(job.PromptPath)
	if err != nil {
		emit(Event{Type: EventLog, Message: fmt.Sprintf("Could not load system prompt from %s: %v", job.PromptPath, err)})
		r.fail()
		return nil
	}

	if err := r.machine.transition(StateGeneratingNotes); err != nil {
		emit(Event{Type: EventLog, Message: fmt.Sprintf("Pipeline state error: %v", err)})
		r.fail()
		return nil
	}
	emit(Event{Type: EventLog, Message: "Generating notes..."})

	notes, err := r.generator.Generate(ctx, transcript, systemPrompt, job.OllamaModel)
	if err != nil {
		emit(Event{Type: EventLog, Message: fmt.Sprintf("Note generation error: %v", err)})
		r.fail()
		return nil
	}

	emit(Event{Type: EventLog, Message: "Note generation complete."})
	emit(Event{Type: EventProgress, Progress: 90})

	if err := r.machine.transition(StateCompleted); err != nil {
		emit(Event{Type: EventLog, Message: fmt.Sprintf("Pipeline state error: %v", err)})
		r.fail()
		return nil
	}

	return &Result{Transcript: transcript, Notes: notes}
}

func (r *Runner) fail() {
	if err := r.machine.transition(StateFailed); err != nil {
		r.logger.Warn(context.Background(), "state machine: %v", err)
	}
}
