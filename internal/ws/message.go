package ws

// Message is the outbound wire envelope: a type tag plus a type-specific
// payload, serialized as one JSON text frame.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
