// Package input provides completion for the go-to-date prompt.
package input

import "strings"

// DateShortcut describes a date keyword accepted by the prompt.
type DateShortcut struct {
	Name        string
	Description string
}

// DateShortcuts are the keywords offered while typing a date.
var DateShortcuts = []DateShortcut{
	{Name: "hoje", Description: "this week"},
	{Name: "amanhã", Description: "tomorrow"},
	{Name: "next-week", Description: "a week from today"},
	{Name: "segunda", Description: "next Monday"},
	{Name: "terça", Description: "next Tuesday"},
	{Name: "quarta", Description: "next Wednesday"},
	{Name: "quinta", Description: "next Thursday"},
	{Name: "sexta", Description: "next Friday"},
	{Name: "sábado", Description: "next Saturday"},
}

// MatchingShortcuts returns shortcuts whose name starts with the input.
// Input that looks like an absolute date matches nothing.
func MatchingShortcuts(input string, shortcuts []DateShortcut) []DateShortcut {
	prefix := strings.ToLower(strings.TrimSpace(input))
	if prefix == "" || startsWithDigit(prefix) {
		return nil
	}

	matches := make([]DateShortcut, 0, len(shortcuts))
	for _, s := range shortcuts {
		if strings.HasPrefix(s.Name, prefix) {
			matches = append(matches, s)
		}
	}
	return matches
}

// Autocomplete returns the first matching shortcut and whether it exists.
func Autocomplete(input string, shortcuts []DateShortcut) (string, bool) {
	matches := MatchingShortcuts(input, shortcuts)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name, true
}

func startsWithDigit(s string) bool {
	return s[0] >= '0' && s[0] <= '9'
}
