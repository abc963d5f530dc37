// Package subshell spawns the resolved executable and runs it to
// completion: stream mode inherits the child's stdio directly, detect-
// output mode tees every line through the parent so that any byte of child
// output can be reported as a failure (`--error-on-output`).
package subshell

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrCannotExecute wraps the call (executable + args) and the underlying
// cause when the child process can't even be started.
var ErrCannotExecute = errors.New("cannot execute")

// Call is everything needed to spawn one child process.
type Call struct {
	// Executable is the absolute path to run.
	Executable string
	// ArgumentPrefix is placed before Args, e.g. a forwarded script path
	// when the app is really "node some-cli.js".
	ArgumentPrefix []string
	// Args are the user's own arguments.
	Args []string
	// IncludePaths are extra directories prepended to the child's PATH,
	// e.g. a carrier app's bin dir so a tool can find its own runtime.
	IncludePaths []string
}

// commandLine renders call as a human-readable command line, used in
// ProcessEmittedOutput's message and verbose logs.
func (c Call) commandLine() string {
	parts := append([]string{c.Executable}, c.ArgumentPrefix...)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

func (c Call) args() []string {
	return append(append([]string{}, c.ArgumentPrefix...), c.Args...)
}

// augmentedPath prepends the executable's own directory and every
// IncludePaths entry to the current process's PATH, in the order supplied.
// The parent process's own PATH is never mutated -- this is only used to
// build the child's environment.
func (c Call) augmentedPath() string {
	dirs := append([]string{filepath.Dir(c.Executable)}, c.IncludePaths...)
	return strings.Join(dirs, string(os.PathListSeparator)) + string(os.PathListSeparator) + os.Getenv("PATH")
}

func (c Call) command() *exec.Cmd {
	cmd := exec.Command(c.Executable, c.args()...)
	cmd.Env = append(os.Environ(), "PATH="+c.augmentedPath())
	return cmd
}

// ExitCode maps a completed (or failed-to-start) command's result onto
// rta's [0,255] exit code space: success is 0, a signal death or any code
// over 255 becomes 255, and everything else is reduced modulo 256.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 255
	}
	if exitErr.ProcessState == nil {
		return 255
	}
	code := exitErr.ExitCode()
	if code < 0 {
		// killed by a signal
		return 255
	}
	if code > 255 {
		return 255
	}
	return code % 256
}

// Stream runs call with the child inheriting the parent's stdio, returning
// the mapped exit code.
func Stream(call Call) (int, error) {
	cmd := call.command()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return 255, errors.Wrapf(ErrCannotExecute, "%q: %s", call.commandLine(), err)
		}
	}
	return ExitCode(err), nil
}
