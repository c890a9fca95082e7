package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/joescharf/revscore/internal/models"
	"github.com/joescharf/revscore/internal/review"
)

// ErrMalformed marks a review file that exists but could not be decoded.
var ErrMalformed = errors.New("malformed review record")

// Status is the outcome of loading one source for one candidate.
type Status string

const (
	StatusFound     Status = "found"
	StatusMissing   Status = "missing"
	StatusMalformed Status = "malformed"
)

// Entry is the load result for one source.
type Entry struct {
	Status  Status
	Path    string   // chosen file; empty when nothing matched
	Matches []string // every file that matched, in tie-break order
	Record  *review.Record
}

// Ambiguous reports whether more than one file matched.
func (e Entry) Ambiguous() bool { return len(e.Matches) > 1 }

// Records holds every source's load result for one candidate.
type Records struct {
	Candidate models.Candidate
	Entries   map[models.Source]Entry
}

// Record returns the loaded record for src, or nil when it is absent.
func (r Records) Record(src models.Source) *review.Record {
	return r.Entries[src].Record
}

// Loader discovers and decodes review records.
type Loader struct {
	layout Layout
	log    *zap.Logger
}

// New creates a Loader. A nil logger discards diagnostics.
func New(layout Layout, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{layout: layout, log: log}
}

// Load resolves all three sources for every candidate, in candidate order.
// Missing or malformed files never fail the load; they become absent records.
func (l *Loader) Load(candidates []models.Candidate) []Records {
	out := make([]Records, 0, len(candidates))
	for _, c := range candidates {
		recs := Records{Candidate: c, Entries: make(map[models.Source]Entry, len(models.Sources))}
		for _, src := range models.Sources {
			recs.Entries[src] = l.loadSource(c, src)
		}
		out = append(out, recs)
	}
	return out
}

func (l *Loader) loadSource(c models.Candidate, src models.Source) Entry {
	log := l.log.With(zap.String("candidate", c.Name), zap.String("source", string(src)))

	target, err := l.layout.Target(c, src)
	if err != nil {
		log.Error("resolve source", zap.Error(err))
		return Entry{Status: StatusMissing}
	}

	matches, err := l.locate(target)
	if err != nil {
		log.Error("discover source", zap.Error(err))
		return Entry{Status: StatusMissing}
	}

	path, ok := Pick(matches)
	if !ok {
		log.Info("review source not found", zap.String("dir", target.Dir), zap.String("pattern", target.Pattern))
		return Entry{Status: StatusMissing}
	}
	if len(matches) > 1 {
		log.Warn("ambiguous review source; using lexicographically first match",
			zap.String("path", path), zap.Strings("matches", matches))
	}

	entry := Entry{Path: path, Matches: matches}
	rec, err := readRecord(src, path)
	if err != nil {
		log.Error("review source unreadable; treating as empty", zap.String("path", path), zap.Error(err))
		entry.Status = StatusMalformed
		return entry
	}

	log.Debug("review source loaded", zap.String("path", path))
	entry.Status = StatusFound
	entry.Record = rec
	return entry
}

// locate returns the ordered matches for a target.
func (l *Loader) locate(t Target) ([]string, error) {
	if t.Fixed == "" {
		return Discover(t.Dir, t.Pattern)
	}
	info, err := os.Stat(t.Fixed)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", t.Fixed, err)
	}
	if info.IsDir() {
		return nil, nil
	}
	return []string{t.Fixed}, nil
}

func readRecord(src models.Source, path string) (*review.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrMalformed, filepath.Base(path), err)
	}
	doc, err := review.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, filepath.Base(path), err)
	}
	return &review.Record{Source: src, Path: path, Doc: doc}, nil
}
