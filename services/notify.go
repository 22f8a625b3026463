package services

import "log"

// Notifier is the user-facing success/error display. Handlers surface the
// outcome of every store operation through one of these instead of a global
// toast: callers inject whatever the presentation layer provides.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier is the default fire-and-forget implementation
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Success(message string) {
	log.Printf("[NOTIFY] %s", message)
}

func (n *LogNotifier) Error(message string) {
	log.Printf("[NOTIFY:ERROR] %s", message)
}
