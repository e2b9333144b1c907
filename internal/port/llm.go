package port

// Generator produces a completion for a prompt via a remote model.
type Generator interface {
	// Generate runs one completion request. All failure modes are
	// reported inside the Completion, never as a Go error: callers
	// at this boundary turn failures into user-facing text.
	Generate(prompt string) Completion

	// ModelName returns the name of the generation model.
	ModelName() string
}

// CompletionKind discriminates the outcome of a generation request.
type CompletionKind int

const (
	// CompletionOK means the service returned a message.
	CompletionOK CompletionKind = iota
	// CompletionAPIError means the service answered with a non-200 status.
	CompletionAPIError
	// CompletionTransportError means the request never got an HTTP response.
	CompletionTransportError
)

// Completion is the decoded outcome of one generation request.
// Exactly one shape is populated, selected by Kind.
type Completion struct {
	Kind       CompletionKind
	Text       string // CompletionOK
	StatusCode int    // CompletionAPIError
	Body       string // CompletionAPIError: raw response body
	Err        error  // CompletionTransportError
}
