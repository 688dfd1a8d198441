// Package library persists the list of saved builds in a key-value surface
// under a single key, most recent first.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ziadkadry99/poe2genie/internal/build"
)

// DefaultKey is the key the saved-build list lives under.
const DefaultKey = "poe2genie_builds"

// ErrNameRequired is returned by Save for a build without a name.
var ErrNameRequired = errors.New("build name is required")

// Library is the saved-build list. Save serialises its read-modify-write
// within the process; concurrent writers in other processes are not
// coordinated and the last write wins.
type Library struct {
	surface Surface
	key     string
	mu      sync.Mutex
	logger  *zap.Logger
}

// New returns a library stored under key (DefaultKey when empty).
func New(surface Surface, key string, logger *zap.Logger) *Library {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Library{surface: surface, key: key, logger: logger}
}

// List returns the saved builds, most recent first. An unreachable surface
// or a stored value that is not a JSON array of builds yields an empty list.
func (l *Library) List(ctx context.Context) []build.Build {
	builds, err := l.load(ctx)
	if err != nil {
		l.logger.Warn("saved builds unavailable", zap.String("key", l.key), zap.Error(err))
		return []build.Build{}
	}
	return builds
}

// Save prepends b. Existing entries are never merged, updated or removed.
// A stored value that cannot be parsed is replaced.
func (l *Library) Save(ctx context.Context, b build.Build) error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrNameRequired
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.load(ctx)
	var corrupt *corruptError
	switch {
	case errors.As(err, &corrupt):
		l.logger.Warn("discarding unreadable saved builds", zap.String("key", l.key), zap.Error(err))
		existing = nil
	case err != nil:
		return err
	}

	next := make([]build.Build, 0, len(existing)+1)
	next = append(next, b)
	next = append(next, existing...)

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding saved builds: %w", err)
	}
	if err := l.surface.Set(ctx, l.key, string(data)); err != nil {
		return fmt.Errorf("saving builds: %w", err)
	}
	l.logger.Info("build saved", zap.String("name", b.Name), zap.Int("total", len(next)))
	return nil
}

type corruptError struct{ err error }

func (e *corruptError) Error() string { return "stored builds are not valid: " + e.err.Error() }
func (e *corruptError) Unwrap() error { return e.err }

func (l *Library) load(ctx context.Context) ([]build.Build, error) {
	raw, ok, err := l.surface.Get(ctx, l.key)
	if err != nil {
		return nil, fmt.Errorf("loading saved builds: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []build.Build{}, nil
	}
	var builds []build.Build
	if err := json.Unmarshal([]byte(raw), &builds); err != nil {
		return nil, &corruptError{err}
	}
	if builds == nil {
		builds = []build.Build{}
	}
	return builds, nil
}
