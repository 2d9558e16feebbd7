// Package main hosts the categoryassign CLI entrypoint and command graph.
//
// The Cobra command tree drives the article workflow host directly: it opens
// the SQLite content store, subscribes the category assignment plugin to the
// event dispatcher, and surfaces categories, stages, transitions, articles,
// and the prepared editor forms. Configuration resolution and logging setup
// live in commandContext so subcommands only describe what they print.
//
// Add behaviour to the internal packages first and expose it here with a thin
// command; this package should stay declarative.
package main
