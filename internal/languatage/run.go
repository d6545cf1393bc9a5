package languatage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JichouP/languatage/internal/config"
)

// DefaultProgressEvery is the default number of visited files between
// progress callbacks.
const DefaultProgressEvery = 512

// currentDirPath is the shorthand exempt from the hidden-directory
// check: scanning "." must work even though its name starts with a dot.
const currentDirPath = "."

// systemDirNames are OS-reserved directories skipped wherever they
// occur in the tree, not only at the root.
var systemDirNames = map[string]struct{}{
	"$RECYCLE.BIN":              {},
	"Recovery":                  {},
	"System Volume Information": {},
}

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		//nolint:forbidigo // Debug output to console
		fmt.Printf(format, args...)
	}
}

// rule is a compiled language rule: extension suffixes plus the
// effective ignore list (common ignores concatenated with the rule's
// own, duplicates preserved).
type rule struct {
	name     string
	suffixes []string
	ignores  []string
}

// matchesExt reports whether the file name ends with "." followed by
// one of the rule's extensions. Matching is case-sensitive.
func (r rule) matchesExt(name string) bool {
	for _, suffix := range r.suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	return false
}

// ignored reports whether the slash-separated path contains one of the
// rule's ignore patterns as a full path segment.
func (r rule) ignored(slashPath string) bool {
	for _, pattern := range r.ignores {
		if strings.Contains(slashPath, pattern) {
			return true
		}
	}

	return false
}

// asSegment bounds a bare directory name with separators on both sides
// so that "target" matches "src/target/main.rs" but never
// "src/targetable/main.rs".
func asSegment(name string) string {
	return "/" + name + "/"
}

// compileRules builds the effective per-rule matchers. The common
// ignore list (plus any extra names) is concatenated with each rule's
// own list; duplicates are kept as-is since matching is set-like anyway.
func compileRules(cfg *config.Config, extraIgnores []string) ([]rule, []string) {
	common := make([]string, 0, len(cfg.Common.Ignore)+len(extraIgnores))

	for _, name := range cfg.Common.Ignore {
		common = append(common, asSegment(name))
	}

	for _, name := range extraIgnores {
		common = append(common, asSegment(name))
	}

	rules := make([]rule, 0, len(cfg.Language))

	for _, lang := range cfg.Language {
		compiled := rule{
			name:     lang.Lang,
			suffixes: make([]string, 0, len(lang.Ext)),
			ignores:  make([]string, 0, len(common)+len(lang.Ignore)),
		}

		for _, ext := range lang.Ext {
			compiled.suffixes = append(compiled.suffixes, "."+ext)
		}

		compiled.ignores = append(compiled.ignores, common...)

		for _, name := range lang.Ignore {
			compiled.ignores = append(compiled.ignores, asSegment(name))
		}

		rules = append(rules, compiled)
	}

	return rules, common
}

// rootInsideSystemDir reports whether the root path itself names or
// sits beneath an OS-reserved directory.
func rootInsideSystemDir(root string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(root), "/") {
		if _, reserved := systemDirNames[segment]; reserved {
			return true
		}
	}

	return false
}

// Run scans the directory tree at opt.Path and returns per-language
// statistics. Files are classified against every rule in opt.Config at
// once during a single sequential depth-first walk; a file whose
// extension is claimed by several rules is counted under each of them.
//
// Individual unreadable entries are skipped and counted in
// Stats.ErrorCount; an unreadable or non-directory root is a hard
// failure. Progress updates are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Stats, error) {
	log := logger{enabled: opt.Debug}

	if opt.Path == "" {
		opt.Path = currentDirPath
	}

	// Normalize to native format to handle both C:/Path and C:\Path inputs
	opt.Path = filepath.Clean(opt.Path)

	if statInfo, err := os.Stat(opt.Path); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Path)
	}

	cfg := opt.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if opt.ProgressEvery <= 0 {
		opt.ProgressEvery = DefaultProgressEvery
	}

	rules, commonIgnores := compileRules(cfg, opt.Ignores)
	acc := newAccumulator(len(rules))

	log.printf("[debug]: rules:\n")

	for _, r := range rules {
		log.printf("[debug]:   - %s: ext %v, ignore %v\n", r.name, r.suffixes, r.ignores)
	}

	start := time.Now()

	if rootInsideSystemDir(opt.Path) {
		log.printf("[debug]: root %s is inside a system directory, nothing to scan\n", opt.Path)

		stats := acc.finalize(rules)
		stats.Elapsed = time.Since(start)

		return stats, nil
	}

	var visited int64

	// WalkDir strips the "./" prefix when the root is ".", which would
	// leave a top-level ignored directory without a leading separator
	// and make the segment-bounded match miss it.
	haystack := func(path string) string {
		slashPath := filepath.ToSlash(path)
		if opt.Path == currentDirPath {
			return "./" + slashPath
		}

		return slashPath
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := filepath.WalkDir(opt.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == opt.Path {
				return fmt.Errorf("reading root %q: %w", path, err)
			}

			log.printf("[debug]: error accessing path %s: %v\n", path, err)
			acc.addError()

			return nil
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if d.IsDir() {
			name := d.Name()

			if _, reserved := systemDirNames[name]; reserved {
				log.printf("[debug]: skipping system directory: %s\n", path)

				return filepath.SkipDir
			}

			// The current-directory shorthand is never treated as hidden.
			if strings.HasPrefix(name, ".") && path != currentDirPath {
				log.printf("[debug]: skipping hidden directory: %s\n", path)

				return filepath.SkipDir
			}

			// A directory ignored by the common list is ignored for every
			// rule, so the whole subtree can be pruned here. Rule-specific
			// ignores are applied per file instead.
			dirPath := haystack(path) + "/"
			for _, pattern := range commonIgnores {
				if strings.Contains(dirPath, pattern) {
					log.printf("[debug]: skipping ignored directory: %s\n", path)

					return filepath.SkipDir
				}
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			log.printf("[debug]: error reading metadata for %s: %v\n", path, err)
			acc.addError()

			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		if fileInfo.Size() < opt.MinSize {
			return nil
		}

		visited++
		if progressHook != nil && visited%int64(opt.ProgressEvery) == 0 {
			progressHook(acc.fileCount, int64(acc.seenBytes)) //nolint:gosec // Sum of file sizes
		}

		slashPath := haystack(path)
		name := d.Name()
		matched := false

		for i, r := range rules {
			if !r.matchesExt(name) || r.ignored(slashPath) {
				continue
			}

			acc.add(i, uint64(fileInfo.Size())) //nolint:gosec // Regular file sizes are non-negative

			matched = true
		}

		if matched {
			acc.fileCount++
			acc.seenBytes += uint64(fileInfo.Size()) //nolint:gosec // Regular file sizes are non-negative
		}

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	stats := acc.finalize(rules)

	stats.Elapsed = time.Since(start)

	return stats, nil
}
