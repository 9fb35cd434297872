// Package apierror holds the JSON envelopes for 4xx/5xx responses. Handlers
// build every error body through it so clients always see {"detail": ...}
// and never a raw driver or stack message.
package apierror

// APIError is the body of every non-validation error.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError lists the failing fields with the tag that rejected each.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Datos de entrada invalidos", Fields: fields}
}
