package pipeline

// EventType classifies messages emitted while a job runs.
type EventType string

const (
	EventProgress EventType = "progress"
	EventLog      EventType = "log"
	EventResult   EventType = "result"
)

// Event is one signal from the background worker. Events for a job are
// delivered in emission order; the result event is always the last one
// before the channel closes, with Result nil on failure.
type Event struct {
	Type     EventType
	Progress int
	Message  string
	Result   *Result
}

// Job is one audio-file-to-notes processing request.
type Job struct {
	AudioPath   string
	PromptPath  string
	OllamaModel string
}

// Result is a finished job's payload. Ownership passes to the consumer,
// which is responsible for persisting it.
type Result struct {
	Transcript string
	Notes      string
}
