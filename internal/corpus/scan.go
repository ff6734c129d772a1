package corpus

import (
	"go.uber.org/zap"

	"github.com/agusx1211/glean/internal/encoding"
	"github.com/agusx1211/glean/internal/logging"
	"github.com/agusx1211/glean/internal/truncate"
)

// Scanner builds the corpus word set.
type Scanner struct {
	walker   *Walker
	resolver *encoding.Resolver
	logger   *zap.Logger
}

// ScanStats summarises a scan.
type ScanStats struct {
	Files  int
	Failed int
	Words  int
}

// NewScanner returns a Scanner reading files through resolver.
func NewScanner(walker *Walker, resolver *encoding.Resolver, logger *zap.Logger) *Scanner {
	if resolver == nil {
		resolver = encoding.NewResolver(nil, "", logger)
	}
	return &Scanner{walker: walker, resolver: resolver, logger: logging.OrNop(logger)}
}

// Scan reads every included file under paths and returns the union of their
// word tokens. Unreadable files are logged and skipped; the scan always runs
// to the end.
func (s *Scanner) Scan(paths []string) (truncate.WordSet, ScanStats) {
	words := truncate.NewWordSet()
	var stats ScanStats

	s.walker.Walk(paths, func(path string) {
		content, enc, err := s.resolver.ReadFile(path)
		if err != nil {
			stats.Failed++
			s.logger.Error("Failed to read file", zap.String("path", path), zap.Error(err))
			return
		}
		stats.Files++
		words.AddContent(content)
		s.logger.Debug("Scanned file", zap.String("path", path), zap.String("encoding", enc))
	})

	stats.Words = words.Len()
	s.logger.Info("Collected corpus words",
		zap.Int("files", stats.Files),
		zap.Int("failed", stats.Failed),
		zap.Int("distinctWords", stats.Words))
	return words, stats
}
