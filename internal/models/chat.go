// internal/models/chat.go
package models

// ChatRequest is the inbound question.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the envelope returned for every answered question.
type ChatResponse struct {
	RequestID string    `json:"request_id,omitempty"`
	Question  string    `json:"question"`
	Intent    Intent    `json:"intent"`
	Params    ParamSet  `json:"params"`
	Insights  []Insight `json:"insights"`
	Timestamp string    `json:"timestamp"`
}

// ErrorResponse is returned when the request itself cannot be answered.
type ErrorResponse struct {
	Error    string    `json:"error"`
	Insights []Insight `json:"insights,omitempty"`
}

// HealthResponse describes service readiness.
type HealthResponse struct {
	Status       string   `json:"status"`
	ModelsLoaded []string `json:"models_loaded"`
	AIEnabled    bool     `json:"ai_enabled"`
	Provider     string   `json:"provider,omitempty"`
	Model        string   `json:"model,omitempty"`
	Timestamp    string   `json:"timestamp"`
}
