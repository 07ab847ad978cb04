package types

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// StatusResponse is the body of liveness style endpoints.
type StatusResponse struct {
	Name   string `json:"name,omitempty"`
	Status string `json:"status"`
}

// SuccessResponse acknowledges mutations that return no record.
type SuccessResponse struct {
	Success bool `json:"success"`
}
