package pathutils

import (
	"path/filepath"
	"runtime"
	"strings"
)

// RootPathSanitizer normalizes user-supplied scan roots.
type RootPathSanitizer struct {
	homeExpander *HomeExpander
}

// NewRootPathSanitizer constructs a RootPathSanitizer expanding against the user's home directory.
func NewRootPathSanitizer() *RootPathSanitizer {
	return NewRootPathSanitizerWithExpander(nil)
}

// NewRootPathSanitizerWithExpander constructs a RootPathSanitizer using the provided expander.
func NewRootPathSanitizerWithExpander(homeExpander *HomeExpander) *RootPathSanitizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &RootPathSanitizer{homeExpander: homeExpander}
}

// Sanitize trims whitespace, expands the home directory, drops blank entries and
// removes repeated roots while preserving the order of first occurrence.
// It returns nil when nothing remains.
func (sanitizer *RootPathSanitizer) Sanitize(candidatePaths []string) []string {
	if sanitizer == nil {
		sanitizer = NewRootPathSanitizer()
	}

	sanitizedPaths := make([]string, 0, len(candidatePaths))
	seenPaths := make(map[string]struct{}, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		trimmedPath := strings.TrimSpace(candidatePath)
		if len(trimmedPath) == 0 {
			continue
		}

		expandedPath := sanitizer.homeExpander.Expand(trimmedPath)
		comparison := comparisonPath(expandedPath)
		if _, seen := seenPaths[comparison]; seen {
			continue
		}
		seenPaths[comparison] = struct{}{}
		sanitizedPaths = append(sanitizedPaths, expandedPath)
	}

	if len(sanitizedPaths) == 0 {
		return nil
	}
	return sanitizedPaths
}

func comparisonPath(path string) string {
	cleaned := filepath.Clean(path)
	if runtime.GOOS == "windows" {
		return strings.ToLower(cleaned)
	}
	return cleaned
}
