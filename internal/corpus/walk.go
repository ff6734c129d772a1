// Package corpus walks the selected files and gathers their word tokens.
package corpus

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/agusx1211/glean/internal/exclude"
	"github.com/agusx1211/glean/internal/logging"
)

// Walker enumerates the files of a run. Both the scan and the render pass use
// the same Walker so they see exactly the same files.
type Walker struct {
	matcher        *exclude.Matcher
	followSymlinks bool
	logger         *zap.Logger
}

// NewWalker returns a Walker. A nil matcher excludes nothing.
func NewWalker(matcher *exclude.Matcher, followSymlinks bool, logger *zap.Logger) *Walker {
	return &Walker{matcher: matcher, followSymlinks: followSymlinks, logger: logging.OrNop(logger)}
}

// Walk calls visit with the absolute path of every included regular file
// reachable from paths. Input order is kept; directory entries are visited in
// lexical order, and excluded directories are never descended into. A file
// reached twice is visited once.
func (w *Walker) Walk(paths []string, visit func(path string)) {
	seenFiles := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.logger.Warn("Failed to get absolute path", zap.String("path", p), zap.Error(err))
			continue
		}

		info, err := os.Stat(abs)
		if err != nil {
			w.logger.Debug("Path does not exist or cannot be accessed", zap.String("path", abs), zap.Error(err))
			continue
		}

		switch {
		case info.IsDir():
			if w.excludedDir(abs) {
				w.logger.Debug("Skipping excluded directory", zap.String("dir", abs))
				continue
			}
			w.walkDir(abs, map[string]struct{}{w.realPath(abs): {}}, seenFiles, visit)
		case info.Mode().IsRegular():
			if w.excludedFile(abs) {
				w.logger.Debug("Skipping excluded file", zap.String("file", abs))
				continue
			}
			w.emit(abs, seenFiles, visit)
		default:
			w.logger.Debug("Skipping non-regular file", zap.String("path", abs))
		}
	}
}

func (w *Walker) walkDir(dir string, ancestors, seenFiles map[string]struct{}, visit func(string)) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.logger.Warn("Failed to read directory", zap.String("dir", dir), zap.Error(err))
		return
	}

	var files, dirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		isDir, isFile := w.classify(path, entry)
		switch {
		case isDir:
			if w.excludedDir(path) {
				w.logger.Debug("Pruning excluded directory", zap.String("dir", path))
				continue
			}
			dirs = append(dirs, path)
		case isFile:
			if w.excludedFile(path) {
				w.logger.Debug("Skipping excluded file", zap.String("file", path))
				continue
			}
			files = append(files, path)
		}
	}

	// Files of a directory come before its subdirectories, top-down.
	for _, f := range files {
		w.emit(f, seenFiles, visit)
	}
	for _, d := range dirs {
		real := w.realPath(d)
		if _, loop := ancestors[real]; loop {
			w.logger.Warn("Skipping symlink cycle", zap.String("dir", d))
			continue
		}
		ancestors[real] = struct{}{}
		w.walkDir(d, ancestors, seenFiles, visit)
		delete(ancestors, real)
	}
}

// classify decides whether an entry is walked as a directory or visited as a
// file. Symlinked directories are only followed when enabled. A dangling
// symlink counts as a file so the failed read gets reported.
func (w *Walker) classify(path string, entry fs.DirEntry) (isDir, isFile bool) {
	mode := entry.Type()
	if mode&fs.ModeSymlink == 0 {
		return entry.IsDir(), mode.IsRegular()
	}

	target, err := os.Stat(path)
	if err != nil {
		return false, true
	}
	if target.IsDir() {
		return w.followSymlinks, false
	}
	return false, target.Mode().IsRegular()
}

func (w *Walker) emit(path string, seen map[string]struct{}, visit func(string)) {
	if _, dup := seen[path]; dup {
		w.logger.Debug("Skipping already visited file", zap.String("file", path))
		return
	}
	seen[path] = struct{}{}
	visit(path)
}

func (w *Walker) realPath(path string) string {
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return real
}

func (w *Walker) excludedDir(path string) bool {
	return w.matcher != nil && w.matcher.IsExcludedDir(path)
}

func (w *Walker) excludedFile(path string) bool {
	return w.matcher != nil && w.matcher.IsExcluded(path)
}
