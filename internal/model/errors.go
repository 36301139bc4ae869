package model

import "fmt"

// InvalidReferenceError reports a version-control reference that failed
// sanitization. References that carry shell metacharacters, path
// traversal or absolute paths are rejected before any external command
// is built from them.
type InvalidReferenceError struct {
	Ref    string
	Reason string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid git reference %q: %s", e.Ref, e.Reason)
}
