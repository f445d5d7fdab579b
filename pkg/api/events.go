package api

// EventType names a controller lifecycle event. LoggingObserver uses it as
// the log message.
type EventType string

const (
	EventFieldUpdated  EventType = "field.updated"
	EventStepValidated EventType = "step.validated"
	EventNavigated     EventType = "step.navigated"
	EventSubmitted     EventType = "form.submitted"
	EventConfigChanged EventType = "config.changed"
)
