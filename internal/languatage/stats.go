package languatage

import (
	"sort"
	"time"

	"github.com/JichouP/languatage/internal/config"
)

// LanguageStat is one language's share of the counted bytes.
type LanguageStat struct {
	// Language is the language name from the config rule.
	Language string `json:"language"`
	// Bytes is the cumulative size of matching files.
	Bytes uint64 `json:"bytes"`
	// Percentage is Bytes relative to the grand total, unrounded.
	Percentage float64 `json:"percentage"`
}

// Stats holds the aggregate result of a scan.
type Stats struct {
	// Languages is ordered by Bytes descending; rule declaration order
	// breaks ties. Languages with zero matching bytes are omitted.
	Languages []LanguageStat `json:"languages"`
	// FileCount is the number of files that matched at least one rule.
	FileCount int64 `json:"file_count"`
	// TotalBytes is the grand total over all reported languages. A file
	// whose extension is claimed by several rules contributes to each.
	TotalBytes uint64 `json:"total_bytes"`
	// ErrorCount is the number of entries skipped as unreadable.
	ErrorCount int64 `json:"error_count"`
	// Elapsed is the total time taken for the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// Options configures a scan and CLI behavior.
type Options struct {
	// Path is the directory to analyze.
	Path string
	// Config is the language table. Nil means the embedded default.
	Config *config.Config
	// Ignores contains extra directory names appended to the common
	// ignore list.
	Ignores []string
	// MinSize is the minimum file size in bytes.
	MinSize int64
	// ProgressEvery controls how many visited files pass between
	// progress callbacks (0 = default).
	ProgressEvery int
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Output represents output format (table or json).
	Output string
	// Version indicates whether to show version and exit.
	Version bool
}

// accumulator gathers per-rule byte totals during the walk. The walk is
// sequential, so no locking is needed.
type accumulator struct {
	totals     []uint64
	fileCount  int64
	seenBytes  uint64
	errorCount int64
}

func newAccumulator(ruleCount int) *accumulator {
	return &accumulator{totals: make([]uint64, ruleCount)}
}

// addError counts an entry skipped as unreadable.
func (a *accumulator) addError() {
	a.errorCount++
}

// add records a file of the given size under the rule at index.
func (a *accumulator) add(index int, size uint64) {
	a.totals[index] += size
}

// finalize produces the final Stats: zero-total rules are dropped, the
// rest are sorted by total descending with declaration order breaking
// ties, and percentages are derived from the grand total.
func (a *accumulator) finalize(rules []rule) *Stats {
	kept := make([]LanguageStat, 0, len(a.totals))

	for i, total := range a.totals {
		if total == 0 {
			continue
		}

		kept = append(kept, LanguageStat{Language: rules[i].name, Bytes: total})
	}

	// Stable keeps declaration order for equal totals.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Bytes > kept[j].Bytes
	})

	var grandTotal uint64
	for _, stat := range kept {
		grandTotal += stat.Bytes
	}

	if grandTotal > 0 {
		for i := range kept {
			kept[i].Percentage = float64(kept[i].Bytes) / float64(grandTotal) * 100.0
		}
	}

	return &Stats{
		Languages:  kept,
		FileCount:  a.fileCount,
		TotalBytes: grandTotal,
		ErrorCount: a.errorCount,
	}
}
