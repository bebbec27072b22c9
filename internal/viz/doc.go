// Package viz renders terminal output for the CLI: run summaries, energy and
// step-count plots drawn with asciigraph, and a braille top-down view of a
// traced trajectory.
//
// Colours come from a [Theme]; three are built in and selected with
// [SetTheme].
package viz
