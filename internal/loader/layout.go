package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joescharf/revscore/internal/models"
)

// Layout describes where review artifacts live under a base directory.
type Layout struct {
	BaseDir        string
	SelfDir        string // self-review subdirectory
	IndependentDir string // independent-review subdirectory
	SecurityDir    string // security-review subdirectory

	// UnifiedCandidate is the one candidate whose self-review lives in a
	// single fixed file instead of a hash-named one.
	UnifiedCandidate string
	UnifiedFile      string
}

// DefaultLayout returns the standard results layout rooted at baseDir.
func DefaultLayout(baseDir string) Layout {
	return Layout{
		BaseDir:          baseDir,
		SelfDir:          "self-reviews",
		IndependentDir:   "coderabbit",
		SecurityDir:      "security",
		UnifiedCandidate: "1-multi",
		UnifiedFile:      "unified-review.json",
	}
}

// Target is a resolved lookup for one candidate and source: either a fixed
// path or a glob pattern inside Dir.
type Target struct {
	Dir     string
	Pattern string // glob relative to Dir; empty when Fixed is set
	Fixed   string // exact file path
}

// Target resolves where the given source's record for c is expected.
func (l Layout) Target(c models.Candidate, src models.Source) (Target, error) {
	switch src {
	case models.SourceSelf:
		dir := filepath.Join(l.BaseDir, l.SelfDir)
		if c.Name == l.UnifiedCandidate && l.UnifiedFile != "" {
			return Target{Dir: dir, Fixed: filepath.Join(dir, l.UnifiedFile)}, nil
		}
		return Target{Dir: dir, Pattern: fmt.Sprintf("*_%s_%s.json", c.Hash, SuffixToken(c.Name))}, nil
	case models.SourceIndependent:
		return Target{
			Dir:     filepath.Join(l.BaseDir, l.IndependentDir),
			Pattern: fmt.Sprintf("*_%s_alt.json", c.Hash),
		}, nil
	case models.SourceSecurity:
		return Target{
			Dir:     filepath.Join(l.BaseDir, l.SecurityDir),
			Pattern: fmt.Sprintf("*_%s_security.json", c.Hash),
		}, nil
	default:
		return Target{}, fmt.Errorf("unknown review source %q", src)
	}
}

// SuffixToken derives the self-review file suffix from a candidate name:
// the second dash-separated token ("2-claude" -> "claude"). Names without a
// dash use the whole name.
func SuffixToken(name string) string {
	parts := strings.Split(name, "-")
	if len(parts) < 2 {
		return name
	}
	return parts[1]
}
