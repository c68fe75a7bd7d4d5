package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload converts an event payload into T. In-process events carry
// the typed struct (or a pointer to it) directly. Anything else, such as a
// payload replayed from the dead-letter file, goes through a JSON round-trip.
func DecodePayload[T any](payload interface{}) (T, error) {
	var out T
	switch v := payload.(type) {
	case nil:
		return out, fmt.Errorf("empty event payload")
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, fmt.Errorf("empty event payload")
		}
		return *v, nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("encode payload: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode payload as %T: %w", out, err)
	}
	return out, nil
}
