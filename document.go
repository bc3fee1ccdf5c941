package jsoncons

// Document is a read-only wrapper over a host JSON tree — the
// encoding/json-shaped values (map[string]any, []any, string, float64,
// bool, nil, json.Number) that Apply, New, and the JSONPath evaluator
// accept and return. It keeps the internal value.Value/value.Builder
// representation private to the engine packages.
type Document struct {
	raw any
}

// NewDocument wraps v as a Document. v is not copied; callers that mutate v
// afterward should not continue to rely on the wrapped snapshot.
func NewDocument(v any) Document { return Document{raw: v} }

// Raw returns the wrapped host value.
func (d Document) Raw() any { return d.raw }
