// Package render turns included files into fenced document sections.
package render

import (
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/agusx1211/glean/internal/encoding"
	"github.com/agusx1211/glean/internal/logging"
	"github.com/agusx1211/glean/internal/truncate"
)

// Section is one rendered file.
type Section struct {
	Path     string
	Language string
	Content  string
}

// Lines returns the section as document lines: header, opening fence,
// content, closing fence and a blank separator.
func (s Section) Lines() []string {
	return []string{
		"## " + s.Path,
		"```" + s.Language,
		s.Content,
		"```",
		"",
	}
}

// Renderer reads, transforms and formats files.
type Renderer struct {
	resolver     *encoding.Resolver
	widths       *truncate.WidthTable
	minifyPython bool
	workDir      string
	logger       *zap.Logger
}

// Options configures a Renderer.
type Options struct {
	// Widths is nil when truncation is off.
	Widths       *truncate.WidthTable
	MinifyPython bool
	// WorkDir is what section paths are made relative to.
	WorkDir string
}

// NewRenderer returns a Renderer.
func NewRenderer(resolver *encoding.Resolver, opts Options, logger *zap.Logger) *Renderer {
	if resolver == nil {
		resolver = encoding.NewResolver(nil, "", logger)
	}
	return &Renderer{
		resolver:     resolver,
		widths:       opts.Widths,
		minifyPython: opts.MinifyPython,
		workDir:      opts.WorkDir,
		logger:       logging.OrNop(logger),
	}
}

// Render builds the section for path. ok is false when the file is empty or
// whitespace only. Read errors are returned for the caller to log.
func (r *Renderer) Render(path string) (section Section, ok bool, err error) {
	content, _, err := r.resolver.ReadFile(path)
	if err != nil {
		return Section{}, false, err
	}
	if strings.TrimSpace(content) == "" {
		r.logger.Debug("Skipping empty file", zap.String("path", path))
		return Section{}, false, nil
	}

	if r.minifyPython && IsPython(path) {
		content = MinifyPython(content)
	}

	if width, ok := r.widths.WidthFor(path); ok {
		content = truncate.Content(content, width)
		r.logger.Debug("Truncated words", zap.String("path", path), zap.Int("width", width))
	}

	return Section{
		Path:     r.displayPath(path),
		Language: Language(path),
		Content:  strings.TrimRightFunc(content, unicode.IsSpace),
	}, true, nil
}

func (r *Renderer) displayPath(path string) string {
	base := r.workDir
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
