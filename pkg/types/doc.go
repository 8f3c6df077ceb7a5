// Package types defines the trial snapshot of a hyperparameter study, the
// trial states and parameter distributions it refers to, and the rules that
// decide whether a snapshot is well formed and how snapshots compare.
//
// A FrozenTrial is validated on demand with Validate, compared structurally
// with Equal, and ordered by Number with Less, LessEqual and SortTrials. It
// round-trips through JSON and through the textual form returned by String.
// StudySummary is kept for legacy callers; constructing one sends a
// deprecation notice to the supplied WarningSink.
package types
