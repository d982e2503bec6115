package payload

// ErrorResponse is the body returned for every handler-level failure.
type ErrorResponse struct {
	Message string `json:"message"`
}
