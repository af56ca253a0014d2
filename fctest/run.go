package fctest

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/logger"
)

// Result is the outcome of one tool invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Command  []string
	Duration time.Duration
}

// Success reports a zero exit status.
func (r *Result) Success() bool { return r.ExitCode == 0 }

// Lines returns the non-empty lines of stdout.
func (r *Result) Lines() []string {
	var out []string
	for _, l := range strings.Split(r.Stdout, "\n") {
		l = strings.TrimRight(l, "\r")
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// RunOption adjusts a single invocation. The harness environment is never
// modified by an option.
type RunOption func(*runOptions)

type runOptions struct {
	debug      int
	fontations bool
	set        map[string]string
	unset      []string
}

// WithDebug sets FC_DEBUG for this run. Zero leaves it unset.
func WithDebug(level int) RunOption {
	return func(o *runOptions) { o.debug = level }
}

// WithFontations sets FC_FONTATIONS=1 for this run when on.
func WithFontations(on bool) RunOption {
	return func(o *runOptions) { o.fontations = on }
}

// WithEnv sets an environment variable for this run.
func WithEnv(key, value string) RunOption {
	return func(o *runOptions) {
		if o.set == nil {
			o.set = make(map[string]string)
		}
		o.set[key] = value
	}
}

// WithoutEnv removes an environment variable for this run.
func WithoutEnv(key string) RunOption {
	return func(o *runOptions) { o.unset = append(o.unset, key) }
}

// Invocation is a fully prepared command line and environment.
type Invocation struct {
	Args []string
	Env  []string
}

// PrepareCommand builds the argv and environment Run would use. Outside a
// sandbox the runner wrapper (if any) precedes binary. Inside a sandbox the
// whole command is run by bwrap with the config file, the bind mounts and
// the per-run variables passed through --setenv.
func (h *Harness) PrepareCommand(binary string, args []string, opts ...RunOption) *Invocation {
	o := runOptions{debug: h.debug, fontations: h.fontations}
	for _, opt := range opts {
		opt(&o)
	}

	cmd := append(append([]string(nil), h.wrapper...), binary)
	cmd = append(cmd, args...)

	env := h.env.Clone()
	for k, v := range o.set {
		env.Set(k, v)
	}
	for _, k := range o.unset {
		env.Unset(k)
	}

	if h.sandbox == nil {
		if o.debug != 0 {
			env.Set("FC_DEBUG", strconv.Itoa(o.debug))
		}
		if o.fontations {
			env.Set("FC_FONTATIONS", "1")
		}
		return &Invocation{Args: cmd, Env: env.Vars()}
	}

	boxed := []string{
		h.bwrap,
		"--ro-bind", "/", "/",
		"--dev-bind", "/dev", "/dev",
		"--proc", "/proc",
		"--tmpfs", "/tmp",
		"--setenv", "FONTCONFIG_FILE", env.Get("FONTCONFIG_FILE"),
	}
	boxed = append(boxed, h.sandbox.BindArgs()...)
	if o.debug != 0 {
		boxed = append(boxed, "--setenv", "FC_DEBUG", strconv.Itoa(o.debug))
	}
	if o.fontations {
		boxed = append(boxed, "--setenv", "FC_FONTATIONS", "1")
	}
	return &Invocation{Args: append(boxed, cmd...), Env: env.Vars()}
}

// Run executes binary with args and captures its output. A non-zero exit
// status is reported in the Result; an error means the process could not
// be started or was cut short by ctx or the configured timeout.
func (h *Harness) Run(ctx context.Context, binary string, args []string, opts ...RunOption) (*Result, error) {
	inv := h.PrepareCommand(binary, args, opts...)

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	line := shellquote.Join(inv.Args...)
	if logger.ShouldOutput(logger.Verbosity, logger.OutputCommands) {
		h.log.Infow("run", logger.FieldCommand, line, logger.FieldSandbox, h.sandbox != nil)
	}

	cmd := exec.CommandContext(ctx, inv.Args[0], inv.Args[1:]...)
	cmd.Env = inv.Env
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Command:  inv.Args,
		Duration: time.Since(start),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, errors.Wrapf(ctxErr, "run %s", line)
	}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return nil, errors.Wrapf(err, "start %s", inv.Args[0])
	}

	h.log.Debugw("tool exited",
		logger.FieldExitCode, res.ExitCode,
		logger.FieldDurationMS, res.Duration.Milliseconds())
	if logger.ShouldOutput(logger.Verbosity, logger.OutputStreams) {
		h.log.Debugw("tool output",
			logger.FieldStdout, res.Stdout,
			logger.FieldStderr, res.Stderr)
	}
	return res, nil
}

// RunTool runs one of the built tools.
func (h *Harness) RunTool(ctx context.Context, tool Tool, args []string, opts ...RunOption) (*Result, error) {
	return h.Run(ctx, h.ToolPath(tool), args, opts...)
}

// RunCache runs fc-cache.
func (h *Harness) RunCache(ctx context.Context, args []string, opts ...RunOption) (*Result, error) {
	return h.RunTool(ctx, ToolCache, args, opts...)
}

// RunCat runs fc-cat.
func (h *Harness) RunCat(ctx context.Context, args []string, opts ...RunOption) (*Result, error) {
	return h.RunTool(ctx, ToolCat, args, opts...)
}

// RunGenconf runs fc-genconf.
func (h *Harness) RunGenconf(ctx context.Context, args []string, opts ...RunOption) (*Result, error) {
	return h.RunTool(ctx, ToolGenconf, args, opts...)
}

// RunList runs fc-list.
func (h *Harness) RunList(ctx context.Context, args []string, opts ...RunOption) (*Result, error) {
	return h.RunTool(ctx, ToolList, args, opts...)
}

// RunMatch runs fc-match.
func (h *Harness) RunMatch(ctx context.Context, args []string, opts ...RunOption) (*Result, error) {
	return h.RunTool(ctx, ToolMatch, args, opts...)
}

// RunPattern runs fc-pattern.
func (h *Harness) RunPattern(ctx context.Context, args []string, opts ...RunOption) (*Result, error) {
	return h.RunTool(ctx, ToolPattern, args, opts...)
}

// RunQuery runs fc-query.
func (h *Harness) RunQuery(ctx context.Context, args []string, opts ...RunOption) (*Result, error) {
	return h.RunTool(ctx, ToolQuery, args, opts...)
}

// RunScan runs fc-scan.
func (h *Harness) RunScan(ctx context.Context, args []string, opts ...RunOption) (*Result, error) {
	return h.RunTool(ctx, ToolScan, args, opts...)
}

// RunValidate runs fc-validate.
func (h *Harness) RunValidate(ctx context.Context, args []string, opts ...RunOption) (*Result, error) {
	return h.RunTool(ctx, ToolValidate, args, opts...)
}
