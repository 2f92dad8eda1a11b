// Package guard implements the lexical guard-rails applied to student input
// before it reaches the completion model. Both checks are lower-cased
// substring scans; entries embedded in benign words can trigger them, which
// is an accepted trade-off of the lexical approach.
package guard

import "strings"

var badWords = []string{
	"fuck", "shit", "rape", "sex", "bloody", "suicide", "kill",
}

var advancedTopics = []string{
	"integration", "differentiation", "matrix", "logarithm",
	"vector", "determinant", "calculus", "limit", "complex number",
}

// IsClean reports whether the text is free of blocklisted unsafe terms.
func IsClean(text string) bool {
	lowered := strings.ToLower(text)
	for _, word := range badWords {
		if strings.Contains(lowered, word) {
			return false
		}
	}
	return true
}

// IsBeyondMatric reports whether the text touches a topic above the
// supported curriculum level.
func IsBeyondMatric(text string) bool {
	lowered := strings.ToLower(text)
	for _, topic := range advancedTopics {
		if strings.Contains(lowered, topic) {
			return true
		}
	}
	return false
}
