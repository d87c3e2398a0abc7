// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"uvs-cli/pkg/uvsfile"

	shlex "github.com/anmitsu/go-shlex"
	"mvdan.cc/sh/v3/syntax"
)

// launcherPrefix is the fixed invocation every step is delegated to.
var launcherPrefix = []string{"uv", "run"}

// Runner executes resolved steps sequentially with fail-fast semantics.
// The zero value runs through os/exec with diagnostics on stderr.
type Runner struct {
	// Launcher spawns each step; defaults to NewExecLauncher().
	Launcher Launcher

	// Diag receives the verbose `$ ` echo; defaults to os.Stderr.
	Diag io.Writer

	// Verbose echoes each command to Diag before it runs.
	Verbose bool

	// Editable paths become one `--with-editable <path>` pair per entry,
	// injected into every step in the given order.
	Editable []string

	// Features become one `--extra <name>` pair per entry, injected after
	// the editable flags.
	Features []string
}

// Run resolves target against registry and executes each step in order.
//
// extraArgs are appended verbatim to the final step's argument vector, after
// its command line has been tokenized; they are never re-split. The first
// non-zero child exit code stops the run and is returned as the overall
// result. A CyclicReferenceError from resolution aborts before anything is
// spawned.
func (r *Runner) Run(ctx context.Context, target *uvsfile.Script, registry uvsfile.Registry, extraArgs []string) (ExitCode, error) {
	steps, err := Resolve(target, registry)
	if err != nil {
		return 1, err
	}

	launcher := r.Launcher
	if launcher == nil {
		launcher = NewExecLauncher()
	}
	diag := r.Diag
	if diag == nil {
		diag = os.Stderr
	}

	for i, step := range steps {
		argv, err := r.buildArgv(step.Command)
		if err != nil {
			return 1, err
		}
		if i == len(steps)-1 {
			argv = append(argv, extraArgs...)
		}

		if r.Verbose {
			fmt.Fprintf(diag, "$ %s\n", renderStep(step.Env, argv))
		}

		code, err := launcher.Launch(ctx, argv, composeEnv(step.Env))
		if err != nil {
			return code, err
		}
		if !code.IsSuccess() {
			return code, nil
		}
	}

	return 0, nil
}

// buildArgv assembles the full argument vector for one step: the launcher
// prefix, the global flag pairs, then the shell-tokenized command line.
func (r *Runner) buildArgv(command string) ([]string, error) {
	tokens, err := shlex.Split(command, true)
	if err != nil {
		return nil, fmt.Errorf("cannot tokenize command %q: %w", command, err)
	}

	argv := make([]string, 0, len(launcherPrefix)+2*len(r.Editable)+2*len(r.Features)+len(tokens))
	argv = append(argv, launcherPrefix...)
	for _, path := range r.Editable {
		argv = append(argv, "--with-editable", path)
	}
	for _, name := range r.Features {
		argv = append(argv, "--extra", name)
	}
	return append(argv, tokens...), nil
}

// composeEnv builds the child environment for a step. An empty overlay
// returns nil so the child inherits the parent environment untouched.
// Otherwise the parent snapshot is overlaid with the step's mapping, step
// values winning on key collision. The result is sorted for determinism.
func composeEnv(overlay map[string]string) []string {
	if len(overlay) == 0 {
		return nil
	}

	merged := make(map[string]string, len(overlay))
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			merged[k] = v
		}
	}
	maps.Copy(merged, overlay)

	env := make([]string, 0, len(merged))
	for k, v := range merged {
		env = append(env, k+"="+v)
	}
	slices.Sort(env)
	return env
}

// renderStep formats the verbose echo body: sorted KEY=value assignments,
// shell-quoted where needed, followed by the full argument vector.
func renderStep(env map[string]string, argv []string) string {
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(env)) {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(quoteValue(env[k]))
		b.WriteByte(' ')
	}
	b.WriteString(strings.Join(argv, " "))
	return b.String()
}

// quoteValue shell-quotes v only when a POSIX shell would otherwise
// interpret it.
func quoteValue(v string) string {
	quoted, err := syntax.Quote(v, syntax.LangPOSIX)
	if err != nil {
		// Control bytes a POSIX shell cannot represent.
		return strconv.Quote(v)
	}
	return quoted
}
