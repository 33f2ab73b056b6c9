package eventstore

import (
	"strings"
	"unicode"
)

const eventSuffixWord = "Event"

// MessageFromType derives a human-readable message from a compact message type name.
//
// Words are split at case changes, acronyms stay together and a trailing "Event" word is dropped:
// "ApiSecretRemovedEvent" becomes "Api Secret Removed", "OIDCClientAdded" becomes "OIDC Client Added".
// "Event" elsewhere in the name is kept, and a name consisting only of "Event" stays as it is.
func MessageFromType(messageType string) string {
	words := splitWords(strings.TrimSpace(messageType))

	if last := len(words) - 1; last > 0 && words[last] == eventSuffixWord {
		words = words[:last]
	}

	return strings.Join(words, " ")
}

func splitWords(s string) []string {
	runes := []rune(s)
	words := make([]string, 0)
	start := 0

	for i := 1; i < len(runes); i++ {
		if isWordBoundary(runes, i) {
			words = appendWord(words, runes[start:i])
			start = i
		}
	}

	if len(runes) > 0 {
		words = appendWord(words, runes[start:])
	}

	return words
}

// isWordBoundary reports whether a new word starts at position i.
// A boundary is an upper-case letter after a lower-case letter or digit, or the last upper-case
// letter of an acronym when a lower-case letter follows ("OIDCClient" splits before "Client").
func isWordBoundary(runes []rune, i int) bool {
	current, previous := runes[i], runes[i-1]

	switch {
	case unicode.IsSpace(current) || unicode.IsSpace(previous):
		return true
	case !unicode.IsUpper(current):
		return false
	case unicode.IsLower(previous) || unicode.IsDigit(previous):
		return true
	case unicode.IsUpper(previous) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
		return true
	default:
		return false
	}
}

func appendWord(words []string, word []rune) []string {
	trimmed := strings.TrimSpace(string(word))
	if trimmed == "" {
		return words
	}

	return append(words, trimmed)
}
