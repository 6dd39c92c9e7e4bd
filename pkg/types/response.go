package types

// SuccessEnvelope is the JSON shape every successful endpoint returns.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorEnvelope is the JSON shape every failed endpoint returns.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
