// Command cargo-clippy-lints runs `cargo clippy` with the lint levels
// declared in the nearest lints.toml.
//
// The file is looked up in the current directory and then each parent
// directory; the first one found wins. Its three optional keys (deny,
// warn and allow) list clippy lint names, forwarded as -D, -W and -A
// flags after the caller's own arguments:
//
//	cargo-clippy-lints --all-targets
//	cargo clippy-lints --all-targets
//
// both run `cargo clippy --all-targets -- <flags>` and exit with
// clippy's status. Diagnostic verbosity is tuned with the
// CARGO_CLIPPY_LINTS_LOG environment variable.
package main

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/sirupsen/logrus"

	"github.com/block/clippy-lints/pkg/clippy"
	"github.com/block/clippy-lints/pkg/lints"
)

// options holds the environment knobs. They tune diagnostics only: lint
// behavior is controlled by lints.toml and the command line.
type options struct {
	LogLevel string `env:"CARGO_CLIPPY_LINTS_LOG" env-default:"info" env-description:"logrus level for diagnostic output"`
}

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	var opts options
	if err := cleanenv.ReadEnv(&opts); err != nil {
		logrus.Warnf("failed to read environment: %v", err)
	}

	level, err := logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
		logrus.Warnf("ignoring invalid CARGO_CLIPPY_LINTS_LOG value %q", opts.LogLevel)
	}
	logrus.SetLevel(level)

	invocation, passthrough := clippy.Classify(argv)
	logrus.Debugf("%s invocation with %d passthrough argument(s)", invocation, len(passthrough))

	cwd, err := os.Getwd()
	if err != nil {
		logrus.Errorf("failed to get current directory: %v", err)
		return 1
	}

	l := &lints.Lints{}
	if path, ok := lints.FindConfigPath(cwd); ok {
		logrus.Debugf("using lints from %s", path)

		if l, err = lints.FromPath(path); err != nil {
			logrus.Errorf("%v", err)
			return 1
		}
	} else {
		logrus.Debugf("no %s found from %s upward, running clippy with no extra flags", lints.FileName, cwd)
	}

	runner := &clippy.Runner{}
	if err := runner.Run(l, passthrough); err != nil {
		logrus.Errorf("%v", err)
		return clippy.ExitCode(err)
	}

	return 0
}
