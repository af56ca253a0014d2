package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Generated output, tool results, warnings and errors
//	1 (-v)      - + Progress and the command line of every tool run
//	2 (-vv)     - + Table statistics, rendered fontconfig configuration
//	3 (-vvv)    - + Captured stdout/stderr of every tool run

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 1 (-v) - Informational
	OutputProgress OutputCategory = iota // Regeneration, font installation
	OutputCommands                       // Command line of each subprocess

	// Level 2 (-vv) - Detailed
	OutputTables // Parsed entries, objects and table widths
	OutputConfig // Rendered fontconfig XML and settings

	// Level 3 (-vvv) - Full dump
	OutputStreams // Subprocess stdout/stderr
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputProgress: VerbosityInfo,
	OutputCommands: VerbosityInfo,
	OutputTables:   VerbosityDebug,
	OutputConfig:   VerbosityDebug,
	OutputStreams:  VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}
