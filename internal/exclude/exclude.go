// Package exclude decides which paths are left out of a run.
//
// Rules are shell globs searched anywhere in the path: a rule does not have to
// match the whole path, so a bare name such as "node_modules" excludes that
// directory at any depth. Directories are tested with a trailing slash, which
// lets a rule like "build/" target the directory and everything under it
// without also catching "buildtools".
//
// Built-in rules (WithDefaults) are stricter: they must match the end of the
// path and, below the base dir, only see the base-relative path.
package exclude

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/agusx1211/glean/internal/logging"
)

// Rule is one compiled exclusion pattern.
type Rule struct {
	Pattern string
	glob    glob.Glob
	// builtin rules are end-anchored and only see the base-relative path.
	builtin bool
}

// Matcher composes every rule with OR semantics. It is immutable after New.
type Matcher struct {
	rules     []Rule
	baseDir   string
	gitIgnore *ignore.GitIgnore
}

// Option configures a Matcher.
type Option func(*matcherConfig)

type matcherConfig struct {
	defaults     []string
	baseDir      string
	useGitIgnore bool
	logger       *zap.Logger
}

// WithDefaults adds built-in rules. Unlike user rules they are anchored at
// the end of the path, so "*.tmp" keeps "index.tmpl", and under the base dir
// they only see the relative path, so "/tmp/" does not hit a checkout that
// lives in /tmp. A rule ending in "/" still covers everything below it.
func WithDefaults(patterns []string) Option {
	return func(c *matcherConfig) { c.defaults = append(c.defaults, patterns...) }
}

// WithBaseDir makes paths under dir also match by their dir-relative form,
// rooted with a leading slash.
func WithBaseDir(dir string) Option {
	return func(c *matcherConfig) { c.baseDir = dir }
}

// WithGitIgnore additionally honours the .gitignore found in the base dir.
func WithGitIgnore(enabled bool) Option {
	return func(c *matcherConfig) { c.useGitIgnore = enabled }
}

// WithLogger sets the logger used for compile diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *matcherConfig) { c.logger = logger }
}

// New compiles patterns into a Matcher. A pattern that is not a valid glob is
// matched literally instead of failing the run.
func New(patterns []string, opts ...Option) (*Matcher, error) {
	cfg := matcherConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := logging.OrNop(cfg.logger)

	m := &Matcher{}
	if cfg.baseDir != "" {
		abs, err := filepath.Abs(cfg.baseDir)
		if err != nil {
			return nil, err
		}
		m.baseDir = abs
	}

	for _, pattern := range cfg.defaults {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		m.rules = append(m.rules, compileRule(pattern, true, logger))
	}
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		m.rules = append(m.rules, compileRule(pattern, false, logger))
	}

	if cfg.useGitIgnore && m.baseDir != "" {
		gitIgnorePath := filepath.Join(m.baseDir, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			gitIgnore, err := ignore.CompileIgnoreFile(gitIgnorePath)
			if err != nil {
				return nil, err
			}
			m.gitIgnore = gitIgnore
			logger.Debug("Loaded .gitignore", zap.String("path", gitIgnorePath))
		}
	}

	logger.Debug("Compiled exclusion rules", zap.Int("count", len(m.rules)))
	return m, nil
}

func compileRule(pattern string, builtin bool, logger *zap.Logger) Rule {
	suffix := "*"
	if builtin && !strings.HasSuffix(pattern, "/") {
		suffix = ""
	}
	// No separators: `*` crosses directory boundaries, as in fnmatch.
	g, err := glob.Compile("*" + escapeNonShell(pattern) + suffix)
	if err != nil {
		logger.Warn("Invalid exclusion glob, matching it literally",
			zap.String("pattern", pattern), zap.Error(err))
		g = glob.MustCompile("*" + glob.QuoteMeta(pattern) + suffix)
	}
	return Rule{Pattern: pattern, glob: g, builtin: builtin}
}

// escapeNonShell quotes the gobwas-only syntax ({a,b} alternation and
// backslash escapes) so only `*`, `?` and `[...]` stay special.
func escapeNonShell(pattern string) string {
	var sb strings.Builder
	for _, r := range pattern {
		switch r {
		case '{', '}', '\\':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Rules returns the compiled rule patterns in order, built-in ones first.
func (m *Matcher) Rules() []string {
	out := make([]string, len(m.rules))
	for i, r := range m.rules {
		out[i] = r.Pattern
	}
	return out
}

// IsExcluded reports whether a file path matches any rule.
func (m *Matcher) IsExcluded(path string) bool {
	return m.match(path, false)
}

// IsExcludedDir reports whether a directory should be pruned.
func (m *Matcher) IsExcludedDir(path string) bool {
	return m.match(path, true)
}

func (m *Matcher) match(path string, isDir bool) bool {
	abs, rel, inBase := m.subject(path)
	relSubject := abs
	if inBase {
		relSubject = "/"
		if rel != "." {
			relSubject += rel
		}
	}
	if isDir {
		abs = withSlash(abs)
		relSubject = withSlash(relSubject)
	}

	for _, r := range m.rules {
		if r.glob.Match(relSubject) {
			return true
		}
		// "*.egg-info" names a directory without a trailing slash.
		if r.builtin && isDir && r.glob.Match(strings.TrimSuffix(relSubject, "/")) {
			return true
		}
		if !r.builtin && inBase && r.glob.Match(abs) {
			return true
		}
	}

	if m.gitIgnore != nil && inBase && rel != "." {
		if m.gitIgnore.MatchesPath(rel) {
			return true
		}
		if isDir && m.gitIgnore.MatchesPath(rel+"/") {
			return true
		}
	}
	return false
}

// subject returns the slash-separated absolute form of path and, when path
// is under the base dir, its base-relative form.
func (m *Matcher) subject(path string) (abs string, rel string, inBase bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if m.baseDir != "" {
		if r, err := filepath.Rel(m.baseDir, abs); err == nil && r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			return filepath.ToSlash(abs), filepath.ToSlash(r), true
		}
	}
	return filepath.ToSlash(abs), "", false
}

func withSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
