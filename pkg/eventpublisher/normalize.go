package eventpublisher

import "strings"

// NormalizeType maps short aliases to full process event types.
func NormalizeType(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "completed", "process.completed", ProcessCompletedType:
		return ProcessCompletedType
	case "started", "process.started", ProcessStartedType:
		return ProcessStartedType
	default:
		return v
	}
}

// NormalizeOutcome maps accepted outcome spellings to matched or discarded.
// Unknown values are returned empty.
func NormalizeOutcome(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "matched", "match", "processed":
		return "matched"
	case "discarded", "discard", "rejected":
		return "discarded"
	default:
		return ""
	}
}
