// Package report persists and prints analysis records as flat rows.
//
// The on-disk format is CSV with a fixed header. Big integers are written as
// exact decimal strings and log2 values with six fractional digits, so a file
// can be parsed back without loss of the integer columns. Paths ending in
// ".zst" are transparently zstd-compressed.
package report
