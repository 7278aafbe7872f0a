package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// DeleteResponse lists ids the upstream API confirmed as deleted.
type DeleteResponse struct {
	Deleted []string `json:"deleted"`
}

// HealthResponse reports service readiness.
type HealthResponse struct {
	Status string `json:"status"`
}
