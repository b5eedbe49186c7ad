// Package clippy spawns cargo clippy with the lint flags derived from
// lints.toml and reports how the child process exited.
package clippy

import (
	"os"
	"os/exec"

	"github.com/pingcap/errors"
	"github.com/siddontang/loggers"
	"github.com/sirupsen/logrus"

	"github.com/block/clippy-lints/pkg/lints"
)

// Subcommand is the name cargo dispatches to this tool under. Running
// `cargo clippy-lints` leaves it in argv[1], ahead of the caller's own
// arguments.
const Subcommand = "clippy-lints"

// defaultCargo is the executable resolved from PATH when a Runner does
// not name one.
const defaultCargo = "cargo"

// Invocation describes how the process was started.
type Invocation int

const (
	// Direct means the binary was run on its own, so everything after
	// the program path is a passthrough argument.
	Direct Invocation = iota

	// Delegated means cargo dispatched to this tool as a subcommand,
	// leaving the subcommand name in argv[1].
	Delegated
)

func (i Invocation) String() string {
	if i == Delegated {
		return "delegated"
	}

	return "direct"
}

// Classify inspects the raw process arguments, program path included,
// and returns the invocation style along with the arguments to forward
// to clippy. Only argv[1] is consulted: the subcommand name appearing
// anywhere later is an ordinary passthrough argument.
func Classify(argv []string) (Invocation, []string) {
	if len(argv) >= 2 && argv[1] == Subcommand {
		return Delegated, argv[2:]
	}

	if len(argv) == 0 {
		return Direct, nil
	}

	return Direct, argv[1:]
}

// BuildArgs assembles the cargo argument list: the clippy subcommand,
// the passthrough arguments verbatim, the "--" separator, and the
// synthesized lint flags. The separator is always present, even when no
// lints are configured.
func BuildArgs(l *lints.Lints, passthrough []string) []string {
	flags := l.Flags()

	args := make([]string, 0, len(passthrough)+len(flags)+2)
	args = append(args, "clippy")
	args = append(args, passthrough...)
	args = append(args, "--")
	args = append(args, flags...)

	return args
}

// Runner executes cargo clippy. The zero value runs "cargo" from PATH
// and logs through the logrus standard logger.
type Runner struct {
	// Cargo is the executable to invoke.
	Cargo string

	// Logger receives the diagnostic line announcing the command before
	// it is spawned.
	Logger loggers.Advanced
}

// Run spawns cargo clippy with the given lint configuration and
// passthrough arguments and blocks until it exits. The child inherits
// this process's standard input, output and error streams, so clippy's
// own output is untouched. A child that ran but exited non-zero is
// reported as an *ExitError; failing to start the child, or to wait on
// it, is a different failure and is annotated as such.
func (r *Runner) Run(l *lints.Lints, passthrough []string) error {
	cargo := r.Cargo
	if cargo == "" {
		cargo = defaultCargo
	}

	logger := r.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	args := BuildArgs(l, passthrough)

	cmd := exec.Command(cargo, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logger.Infof("running %q with args %q", cargo, args)

	if err := cmd.Start(); err != nil {
		return errors.Annotate(err, "unable to start clippy")
	}

	err := cmd.Wait()
	if exitErr, ok := err.(*exec.ExitError); ok {
		return &ExitError{
			Status: exitErr.ExitCode(),
			State:  exitErr.ProcessState.String(),
		}
	}

	if err != nil {
		return errors.Annotate(err, "unable to wait for clippy")
	}

	return nil
}
