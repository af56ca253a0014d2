package logger

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldRunID     = "run_id"

	// Files and paths
	FieldFile   = "file"
	FieldLine   = "line"
	FieldOutput = "output"
	FieldDir    = "dir"

	// Generator
	FieldEntries     = "entries"
	FieldObjects     = "objects"
	FieldSymbols     = "symbols"
	FieldObjectWidth = "object_width"
	FieldSymbolWidth = "symbol_width"
	FieldMode        = "mode"

	// Harness
	FieldTool     = "tool"
	FieldCommand  = "command"
	FieldExitCode = "exit_code"
	FieldStdout   = "stdout"
	FieldStderr   = "stderr"
	FieldSandbox  = "sandbox"
	FieldFonts    = "fonts"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"
)
