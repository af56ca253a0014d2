package fctest

import (
	"os"
	"sort"
	"strings"
)

// Env holds the environment variables for a tool invocation.
// Each harness owns one; per-run changes are applied to a copy so the
// process environment is never modified.
type Env struct {
	vars map[string]string
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{vars: map[string]string{}}
}

// CloneEnv returns a copy of the current process's environment variables.
func CloneEnv() *Env {
	e := NewEnv()
	for _, kv := range os.Environ() {
		k, v := splitEnvVar(kv)
		e.vars[k] = v
	}
	return e
}

func splitEnvVar(v string) (key, val string) {
	sep := strings.Index(v, "=")
	if sep < 0 {
		return v, ""
	}
	return v[:sep], v[sep+1:]
}

// Clone returns an independent copy of e.
func (e *Env) Clone() *Env {
	out := NewEnv()
	for k, v := range e.vars {
		out.vars[k] = v
	}
	return out
}

// Get returns the value of key, or "" when unset.
func (e *Env) Get(key string) string {
	return e.vars[key]
}

// Lookup returns the value of key and whether it is set.
func (e *Env) Lookup(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// Set adds or replaces a variable.
func (e *Env) Set(key, value string) *Env {
	e.vars[key] = value
	return e
}

// Unset removes a variable.
func (e *Env) Unset(key string) *Env {
	delete(e.vars, key)
	return e
}

// Vars returns the variables as sorted "key=value" strings, the form
// exec.Cmd expects.
func (e *Env) Vars() []string {
	out := make([]string, 0, len(e.vars))
	for k, v := range e.vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
