// Package paths expands user supplied file patterns into candidate paths.
package paths

import (
	"errors"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/agusx1211/glean/internal/logging"
)

// ErrNoPaths is returned by Require when nothing resolved.
var ErrNoPaths = errors.New("no files matched the provided patterns")

// Resolve expands each pattern with `**` aware globbing. A pattern that
// matches nothing (or is not a valid glob) is passed through literally so
// not-yet-existing or special paths can still be named. Order follows the
// input patterns; duplicates are kept.
func Resolve(patterns []string, logger *zap.Logger) []string {
	logger = logging.OrNop(logger)

	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			logger.Debug("Pattern is not a valid glob, using it literally",
				zap.String("pattern", pattern), zap.Error(err))
			out = append(out, pattern)
			continue
		}
		if len(matches) == 0 {
			logger.Debug("Pattern matched nothing, using it literally", zap.String("pattern", pattern))
			out = append(out, pattern)
			continue
		}
		logger.Debug("Expanded pattern", zap.String("pattern", pattern), zap.Int("matches", len(matches)))
		out = append(out, matches...)
	}
	return out
}

// Require is Resolve followed by the empty-result check the CLI treats as fatal.
func Require(patterns []string, logger *zap.Logger) ([]string, error) {
	resolved := Resolve(patterns, logger)
	if len(resolved) == 0 {
		return nil, ErrNoPaths
	}
	return resolved, nil
}
