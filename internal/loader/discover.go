package loader

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Discover returns every file in dir matching pattern, sorted
// lexicographically. A missing directory yields no matches.
func Discover(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Pick applies the tie-break policy to an ordered match list: the
// lexicographically smallest path wins. ok is false when there are no matches.
func Pick(matches []string) (path string, ok bool) {
	if len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}
