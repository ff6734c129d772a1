// Package collect runs the whole pipeline: resolve, filter, scan, solve and
// render.
package collect

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/agusx1211/glean/internal/corpus"
	"github.com/agusx1211/glean/internal/encoding"
	"github.com/agusx1211/glean/internal/exclude"
	"github.com/agusx1211/glean/internal/logging"
	"github.com/agusx1211/glean/internal/paths"
	"github.com/agusx1211/glean/internal/render"
	"github.com/agusx1211/glean/internal/truncate"
)

// DefaultMinConfidence is the chardet confidence below which the default
// encoding is used.
const DefaultMinConfidence = 50

// Options configures a run.
type Options struct {
	Patterns       []string
	Excludes       []string
	GitIgnore      bool
	FollowSymlinks bool
	Encoding       string
	Truncate       bool
	MaxLength      int
	Overrides      []string
	MinifyPython   bool
	Verbose        bool

	// WorkDir anchors relative section paths and base-relative exclusion
	// matching. Defaults to the current directory.
	WorkDir string
	// Tool and Args are echoed in the verbose preamble.
	Tool string
	Args []string
	// Detector defaults to chardet.
	Detector encoding.Detector
}

// Result is the outcome of a run.
type Result struct {
	Document *render.Document
	// Widths is nil when truncation is off.
	Widths   *truncate.WidthTable
	Scan     corpus.ScanStats
	Rendered int
	Skipped  int
	Failed   int
}

// Run executes the pipeline. The only error it returns is for input that
// resolves to nothing; per-file problems are logged and skipped.
func Run(opts Options, logger *zap.Logger) (*Result, error) {
	logger = logging.OrNop(logger)

	resolved, err := paths.Require(opts.Patterns, logger)
	if err != nil {
		return nil, err
	}

	workDir := opts.WorkDir
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	matcher, err := exclude.New(opts.Excludes,
		exclude.WithDefaults(exclude.DefaultExclusions()),
		exclude.WithBaseDir(workDir),
		exclude.WithGitIgnore(opts.GitIgnore),
		exclude.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build exclusion rules: %w", err)
	}

	detector := opts.Detector
	if detector == nil {
		detector = encoding.NewChardetDetector(DefaultMinConfidence)
	}
	resolver := encoding.NewResolver(detector, opts.Encoding, logger)
	walker := corpus.NewWalker(matcher, opts.FollowSymlinks, logger)

	res := &Result{Document: &render.Document{}}
	if opts.Truncate {
		words, stats := corpus.NewScanner(walker, resolver, logger).Scan(resolved)
		res.Scan = stats
		overrides := truncate.ParseOverrides(opts.Overrides, logger)
		res.Widths = truncate.NewWidthTable(words, opts.MaxLength, overrides)
		if res.Widths.HasGlobal {
			logger.Info("Determined minimal truncation length", zap.Int("width", res.Widths.Global))
		} else {
			logger.Warn("No suitable truncation length found; global truncation disabled",
				zap.Int("maxLength", opts.MaxLength),
				zap.Int("overrides", len(overrides)))
		}
	}

	if opts.Verbose {
		res.Document.AddLines(preamble(opts, res.Widths, resolver, matcher).Lines()...)
	}

	renderer := render.NewRenderer(resolver, render.Options{
		Widths:       res.Widths,
		MinifyPython: opts.MinifyPython,
		WorkDir:      workDir,
	}, logger)

	walker.Walk(resolved, func(path string) {
		section, ok, err := renderer.Render(path)
		switch {
		case err != nil:
			res.Failed++
			logger.Error("Failed to process file", zap.String("path", path), zap.Error(err))
		case !ok:
			res.Skipped++
		default:
			res.Document.AddSection(section)
			res.Rendered++
		}
	})

	if opts.Verbose {
		res.Document.AddLines(render.SummaryLines(res.Rendered)...)
	}

	logger.Info("Processed files",
		zap.Int("rendered", res.Rendered),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed))
	return res, nil
}

func preamble(opts Options, widths *truncate.WidthTable, resolver *encoding.Resolver, matcher *exclude.Matcher) render.Preamble {
	p := render.Preamble{
		Tool:           opts.Tool,
		Truncate:       opts.Truncate,
		MaxLength:      opts.MaxLength,
		MinifyPython:   opts.MinifyPython,
		FollowSymlinks: opts.FollowSymlinks,
		HasExclusions:  len(matcher.Rules()) > 0,
		Encoding:       resolver.Default(),
		Args:           opts.Args,
	}
	if widths != nil {
		p.Width = widths.Global
		p.HasWidth = widths.HasGlobal
		p.HasOverrides = len(widths.Overrides) > 0
	}
	return p
}
