package truncate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/agusx1211/glean/internal/logging"
)

// ErrInvalidOverride is wrapped by ParseOverride for malformed specs.
var ErrInvalidOverride = errors.New("invalid override format, expected PATTERN:INTEGER")

// Override pins the truncation width for files whose base name matches
// Pattern.
type Override struct {
	Pattern string
	Width   int
}

func (o Override) String() string {
	return fmt.Sprintf("%s:%d", o.Pattern, o.Width)
}

// ParseOverride parses "PATTERN:INTEGER". The string is split at the first
// colon and the width must be positive.
func ParseOverride(spec string) (Override, error) {
	pattern, rawWidth, found := strings.Cut(spec, ":")
	if !found {
		return Override{}, fmt.Errorf("%q: %w", spec, ErrInvalidOverride)
	}
	width, err := strconv.Atoi(strings.TrimSpace(rawWidth))
	if err != nil || width <= 0 {
		return Override{}, fmt.Errorf("%q: %w", spec, ErrInvalidOverride)
	}
	if !doublestar.ValidatePattern(pattern) {
		return Override{}, fmt.Errorf("%q: bad pattern: %w", spec, ErrInvalidOverride)
	}
	return Override{Pattern: pattern, Width: width}, nil
}

// ParseOverrides parses every spec, dropping malformed ones with an error log.
func ParseOverrides(specs []string, logger *zap.Logger) []Override {
	logger = logging.OrNop(logger)

	var out []Override
	for _, spec := range specs {
		o, err := ParseOverride(spec)
		if err != nil {
			logger.Error("Dropping override", zap.String("override", spec), zap.Error(err))
			continue
		}
		out = append(out, o)
	}
	return out
}

// MatchOverride returns the width of the first override whose pattern matches
// the base name of path.
func MatchOverride(path string, overrides []Override) (int, bool) {
	base := filepath.Base(path)
	for _, o := range overrides {
		if ok, err := doublestar.Match(o.Pattern, base); err == nil && ok {
			return o.Width, true
		}
	}
	return 0, false
}
