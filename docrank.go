// Package docrank ranks the sections of a set of paginated documents by
// their relevance to a persona and a task. It reconstructs styled text
// lines from positioned spans, detects headings with layout heuristics,
// ranks them against an intent embedding and extracts the body text of
// the top-ranked sections.
//
// This package contains domain types, interfaces and the pure ranking
// pipeline following Ben Johnson's Standard Package Layout.
// Implementations of external collaborators live in subdirectories named
// after their primary dependency (e.g., pdf/, gemini/, goquery/).
package docrank
