package submission

import "strings"

// GenericErrorMessage is the only failure text shown to end users.
const GenericErrorMessage = "There was a problem submitting the form. Please try again."

// State is the component-local submission status. The zero value is the state
// at mount.
type State struct {
	Submitted    bool   `json:"isSubmitted"`
	Submitting   bool   `json:"isSubmitting"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// EventKind enumerates reducer inputs.
type EventKind int

const (
	EventSubmitStarted EventKind = iota + 1
	EventSubmitSucceeded
	EventSubmitFailed
)

func (k EventKind) String() string {
	switch k {
	case EventSubmitStarted:
		return "submit_started"
	case EventSubmitSucceeded:
		return "submit_succeeded"
	case EventSubmitFailed:
		return "submit_failed"
	default:
		return "unknown"
	}
}

// Event is a reducer input. Message is only read for EventSubmitFailed.
type Event struct {
	Kind    EventKind
	Message string
}

// SubmitStarted is dispatched before the request is sent.
func SubmitStarted() Event {
	return Event{Kind: EventSubmitStarted}
}

// SubmitSucceeded is dispatched after an ok response.
func SubmitSucceeded() Event {
	return Event{Kind: EventSubmitSucceeded}
}

// SubmitFailed is dispatched after a non-ok response or a transport error.
func SubmitFailed(message string) Event {
	return Event{Kind: EventSubmitFailed, Message: message}
}

// Reduce returns the state that follows ev. Submitted is never reset: once a
// submission succeeded the thank-you text stays until the page is left.
func Reduce(state State, ev Event) State {
	switch ev.Kind {
	case EventSubmitStarted:
		state.Submitting = true
		state.ErrorMessage = ""
	case EventSubmitSucceeded:
		state.Submitted = true
		state.Submitting = false
	case EventSubmitFailed:
		message := strings.TrimSpace(ev.Message)
		if message == "" {
			message = GenericErrorMessage
		}
		state.ErrorMessage = message
		state.Submitting = false
	}
	return state
}
