// Package types holds the wire envelopes shared by every JSON endpoint.
package types

// SuccessEnvelope wraps every 2xx payload under a data key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-visible error body. Details carries field-level
// validation output when the error code allows it.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under an error key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Success builds the standard envelope around a response payload.
func Success(data any) SuccessEnvelope {
	return SuccessEnvelope{Data: data}
}

// Failure builds the error envelope for a code, public message, and
// optional details.
func Failure(code, message string, details any) ErrorEnvelope {
	return ErrorEnvelope{Error: APIError{Code: code, Message: message, Details: details}}
}
