package server

// chatRequestSchema only constrains the shape; an empty or missing question
// is reported as QUESTION_MISSING by the pipeline.
const chatRequestSchema = `{
  "type": "object",
  "properties": {
    "question": {"type": "string"}
  }
}`

type ServiceInfo struct {
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Status       string            `json:"status"`
	Features     []Feature         `json:"features"`
	Endpoints    map[string]string `json:"endpoints"`
	Capabilities []string          `json:"capabilities"`
	Examples     []string          `json:"examples,omitempty"`
}

type Feature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var endpoints = map[string]string{
	"chat":      "POST /chat",
	"health":    "GET /health",
	"dashboard": "GET /api/dashboard/analytics",
	"metrics":   "GET /metrics",
}
