package catalog

import (
	"strings"

	"scoutai/models"
)

// comboHints map loose "book the whole plan" phrasing onto the combo
// package. Kept as-is for compatibility with the original matcher.
var comboHints = []string{"3 day", "3-day", "package", "full trip", "plan", "all"}

// MatchLocation resolves free text against the catalog's location keys by
// substring in either direction. Returns "" when nothing matches.
func (s *Store) MatchLocation(input string) string {
	if input == "" {
		return ""
	}
	clean := strings.ToLower(input)
	for _, key := range s.order {
		if strings.Contains(clean, key) || strings.Contains(key, clean) {
			return key
		}
	}
	return ""
}

// MatchPackage finds the best matching package key for free text within a
// location. Precedence: combo phrasing, explicit package name or key, then
// generic type keywords such as "glamp". Returns "" when nothing matches.
func (s *Store) MatchPackage(locKey, text string) string {
	if text == "" {
		return ""
	}
	loc, err := s.Location(locKey)
	if err != nil {
		return ""
	}
	lower := strings.ToLower(text)

	if loc.Has("module_combo") {
		for _, hint := range comboHints {
			if strings.Contains(lower, hint) {
				return "module_combo"
			}
		}
	}

	for _, pkg := range loc.Packages() {
		if strings.Contains(lower, strings.ToLower(pkg.Name)) || strings.Contains(lower, pkg.Key) {
			return pkg.Key
		}
	}

	if strings.Contains(lower, "glamp") {
		for _, pkg := range loc.Packages() {
			if strings.Contains(strings.ToLower(pkg.Type), "glamp") {
				return pkg.Key
			}
		}
	}

	return ""
}

// HistoryMatch is the partial result of scanning the transcript.
type HistoryMatch struct {
	Location    string
	ServiceType string
}

// ScanHistory walks the transcript most-recent-first looking for a
// previously mentioned location or package name. It stops at the first
// message that yields a match; it never overrides an explicit current-turn
// signal because callers only consult it when extraction found nothing.
func (s *Store) ScanHistory(transcript []models.Message) HistoryMatch {
	for i := len(transcript) - 1; i >= 0; i-- {
		content := strings.ToLower(transcript[i].Content)

		for _, key := range s.order {
			if strings.Contains(content, key) {
				return HistoryMatch{Location: key}
			}
		}

		for _, loc := range s.Locations() {
			for _, pkg := range loc.Packages() {
				if strings.Contains(content, strings.ToLower(pkg.Name)) {
					return HistoryMatch{Location: loc.Key, ServiceType: pkg.Name}
				}
			}
		}
	}
	return HistoryMatch{}
}
