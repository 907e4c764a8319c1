package conversation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Keyword heuristics for intent classification. Deliberately loose, kept
// behind these helpers so a stricter matcher can replace them without
// touching the state machine.
var (
	updateKeywords  = []string{"update", "change"}
	cancelKeywords  = []string{"cancel"}
	bookingKeywords = []string{"book", "reserve"}
	doneKeywords    = []string{"no", "done", "update", "confirm", "proceed", "yes"}
	dateAskKeywords = []string{"date", "available", "reschedule"}
)

// intent values produced by classifyIntent.
const (
	intentNone   = ""
	intentUpdate = "update"
	intentCancel = "cancel"
	intentBook   = "book"
)

var (
	digitsPattern = regexp.MustCompile(`\d+`)
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	nonDigits     = regexp.MustCompile(`\D`)
)

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// classifyIntent maps free text to one of the IDLE-state intents.
// Update/change outranks cancel, which outranks book, matching the
// original dispatch order.
func classifyIntent(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, updateKeywords):
		return intentUpdate
	case containsAny(lower, cancelKeywords):
		return intentCancel
	case containsAny(lower, bookingKeywords):
		return intentBook
	default:
		return intentNone
	}
}

// scanInt returns the first integer appearing anywhere in the text.
func scanInt(text string) (int, bool) {
	match := digitsPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

// validEmail reports whether the text looks like an email address.
func validEmail(text string) bool {
	return emailPattern.MatchString(text)
}

// normalizePhone strips every non-digit character.
func normalizePhone(text string) string {
	return nonDigits.ReplaceAllString(text, "")
}

// validName rejects inputs too short to be a name or made of digits only.
func validName(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 2 {
		return false
	}
	for _, r := range trimmed {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(text string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func affirmative(text string) bool {
	return strings.Contains(strings.ToLower(text), "yes")
}

func negative(text string) bool {
	return strings.Contains(strings.ToLower(text), "no")
}
