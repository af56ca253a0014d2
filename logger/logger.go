package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Verbosity is the -v count the logger was initialized with
	Verbosity int
)

func init() {
	// No-op until Initialize so packages can log unconditionally
	Logger = zap.NewNop().Sugar()
}

// Options configures Initialize.
type Options struct {
	// JSON selects machine-readable output
	JSON bool
	// Verbosity is the number of -v flags given on the command line
	Verbosity int
	// Output defaults to stderr; stdout is reserved for generated files and tool output
	Output io.Writer
}

// Initialize sets up the global logger
func Initialize(opts Options) error {
	Verbosity = opts.Verbosity

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := zap.NewAtomicLevelAt(VerbosityToLevel(opts.Verbosity))

	var encoder zapcore.Encoder
	if opts.JSON {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoder = newMinimalEncoder()
	}

	Logger = zap.New(zapcore.NewCore(encoder, zapcore.AddSync(out), level)).Sugar()
	return nil
}

// Named returns a child of the global logger for a component
func Named(component string) *zap.SugaredLogger {
	return Logger.Named(component)
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Warnw logs a warning message with structured fields
func Warnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Warnw(msg, keysAndValues...)
	}
}
