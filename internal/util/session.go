package util

import (
	"strings"

	"github.com/google/uuid"
)

// NewSessionID returns a short public identifier for a review: the first group of
// one random UUID followed by the second group of another, e.g. "3f2a9c1e7b4d".
func NewSessionID() string {
	first := strings.Split(uuid.NewString(), "-")[0]
	second := strings.Split(uuid.NewString(), "-")[1]
	return first + second
}
