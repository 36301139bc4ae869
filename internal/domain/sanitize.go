package domain

import (
	"regexp"
	"strings"

	m "github.com/mouse-blink/snapscope/internal/model"
)

// referencePattern is the full allowed character class for git
// references handed to this tool. Anything outside it (shell
// metacharacters, whitespace, quotes) is rejected outright.
var referencePattern = regexp.MustCompile(`^[a-zA-Z0-9/_.-]+$`)

// SanitizeReference validates a version-control reference before it is
// interpolated into any externally executed command. It is a hard gate
// against command injection, not a check that the reference exists.
func SanitizeReference(ref string) error {
	if ref == "" {
		return &m.InvalidReferenceError{Ref: ref, Reason: "reference is empty"}
	}

	if !referencePattern.MatchString(ref) {
		return &m.InvalidReferenceError{Ref: ref, Reason: "contains characters outside [a-zA-Z0-9/_.-]"}
	}

	if strings.Contains(ref, "..") {
		return &m.InvalidReferenceError{Ref: ref, Reason: "contains path traversal sequence"}
	}

	if strings.HasPrefix(ref, "/") {
		return &m.InvalidReferenceError{Ref: ref, Reason: "starts with /"}
	}

	return nil
}
