// Package report renders crate metadata as aligned, human-readable text.
//
// # Overview
//
// The package turns a registry response into a [Summary] and renders it in
// one of several [Mode]s:
//
//   - [Full]: the labeled crate report, either a compact summary with recent
//     version history or a verbose field listing
//   - [SingleField]: one value such as the repository URL, for scripting
//   - [FeatureList]: cargo features of the latest version
//   - [KeywordList]: the crate's keywords
//
// Labels are padded to a fixed 16-character column ([LabelWidth]) so that
// single-field and full reports line up.
//
// # Time
//
// Every render reads time through a [Clock] value instead of calling
// time.Now, so output for a fixed clock is byte-for-byte reproducible:
//
//	clock := report.NewClock(time.Now())
//	out := report.NewComposer(clock).Compose(summary, report.Full(false))
//
// # Tables
//
// [Table] computes column widths from the header and the cells of each render
// call, then pads every cell to its column width. The version history built on
// top of it ([RenderHistory]) truncates to a limit and appends a hint line
// telling the user how to see the rest.
//
// Nothing in this package performs I/O. Once [NewSummary] accepts a record,
// no render call can fail.
package report
