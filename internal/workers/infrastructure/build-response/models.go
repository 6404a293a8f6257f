package buildresponse

// envelopeSchema is the shape every answered question must have.
const envelopeSchema = `{
  "type": "object",
  "required": ["question", "intent", "params", "insights", "timestamp"],
  "properties": {
    "request_id": {"type": "string"},
    "question":   {"type": "string", "minLength": 1},
    "intent":     {"enum": ["forecast", "inventory", "shipping", "sentiment", "warehouse", "general"]},
    "params":     {"type": "object"},
    "timestamp":  {"type": "string", "minLength": 1},
    "insights": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "text", "data"],
        "properties": {
          "type": {"type": "string", "minLength": 1},
          "text": {"type": "string"}
        }
      }
    }
  }
}`
