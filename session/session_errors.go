package session

import "errors"

// User-facing failure messages surfaced by the store. The text is what the
// UI shows, so these read as sentences rather than lowercase error fragments.
var (
	NetworkErr          = errors.New("Network error. Please try again.")
	NotAuthenticatedErr = errors.New("not authenticated")
)

// FieldErrors maps a field name to the validation messages the server
// rejected it with. The "general" key carries failures not tied to a field.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	if msgs, ok := e["general"]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return "validation failed"
}

// GeneralFieldError wraps a single non-field message in the FieldErrors
// shape callers already handle.
func GeneralFieldError(message string) FieldErrors {
	return FieldErrors{"general": {message}}
}
