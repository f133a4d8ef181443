package services

import "strings"

// ParseSkillList splits a comma separated skill string into a clean list of
// names: tokens are trimmed, empty tokens dropped, and duplicates removed
// case-insensitively keeping the first occurrence's casing and order.
func ParseSkillList(value string) []string {
	if value == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var names []string
	for _, token := range strings.Split(value, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		key := strings.ToLower(token)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, token)
	}
	return names
}

// NormalizeSkillSet lowers a list of skill names into a set.
func NormalizeSkillSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[strings.ToLower(name)] = struct{}{}
	}
	return set
}
