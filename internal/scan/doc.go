// Package scan walks a directory tree and produces a snapshot of it.
//
// The walk is a sequential two-pass depth-first traversal: a counting
// pass establishes the progress denominator, then a collecting pass
// records every file while reporting percentage progress. Directory
// totals are derived afterwards by a pure aggregation step, so the
// same input always yields the same totals.
package scan
