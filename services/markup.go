package services

import (
	"regexp"

	"github.com/rs/zerolog"
)

// imageRefPattern matches the embedded image markup shape `![](path)` used
// in the rich-text description and biography fields. The pattern drives file
// cleanup correctness and must not be loosened.
var imageRefPattern = regexp.MustCompile(`!\[\]\(([-\w/.]+)\)`)

// ExtractImagePaths returns the file paths referenced by embedded images in
// the given rich text.
func ExtractImagePaths(text string) []string {
	matches := imageRefPattern.FindAllStringSubmatch(text, -1)
	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		paths = append(paths, match[1])
	}
	return paths
}

// CleanupRemovedImages deletes files referenced in oldText but absent from
// newText. Deletion failures are logged and swallowed: file cleanup is a
// side effect, never a reason to fail the save.
func CleanupRemovedImages(store FileStore, logger zerolog.Logger, oldText, newText string) {
	remaining := make(map[string]struct{})
	for _, path := range ExtractImagePaths(newText) {
		remaining[path] = struct{}{}
	}
	for _, path := range ExtractImagePaths(oldText) {
		if _, ok := remaining[path]; ok {
			continue
		}
		if err := store.Delete(path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("failed to delete orphaned image")
		}
	}
}
