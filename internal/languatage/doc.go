// Package languatage computes language-usage statistics for a
// directory tree.
//
// It walks the tree once, classifies every regular file by extension
// against the configured language rules, sums byte sizes per language,
// and reports each language's percentage share of the counted bytes.
package languatage
