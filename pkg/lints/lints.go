// Package lints locates and parses lints.toml and translates it into
// clippy lint-level flags.
package lints

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
)

// FileName is the name of the configuration file searched for in the
// working directory and each of its ancestors.
const FileName = "lints.toml"

// Lints holds the lint names configured for each clippy level, in the
// order they appear in lints.toml. All keys are optional: a missing key
// decodes to an empty list. Duplicate names are kept as written.
type Lints struct {
	Deny  []string `toml:"deny"`
	Warn  []string `toml:"warn"`
	Allow []string `toml:"allow"`
}

// FindConfigPath searches dir and then each parent directory for
// FileName and returns the path of the first match. ok is false when the
// filesystem root is reached without finding one. Only existence is
// checked here; the file is read later.
func FindConfigPath(dir string) (path string, ok bool) {
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}

		dir = parent
	}
}

// FromPath reads and parses the lint configuration at path.
func FromPath(path string) (*Lints, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to read config %s", path)
	}

	var l Lints
	if err := toml.Unmarshal(data, &l); err != nil {
		return nil, errors.Annotatef(err, "failed to parse config %s", path)
	}

	return &l, nil
}

// WarnFlags returns a -W flag per warn lint, in configuration order.
func (l *Lints) WarnFlags() []string {
	return levelFlags("-W", l.Warn)
}

// DenyFlags returns a -D flag per deny lint, in configuration order.
func (l *Lints) DenyFlags() []string {
	return levelFlags("-D", l.Deny)
}

// AllowFlags returns an -A flag per allow lint, in configuration order.
func (l *Lints) AllowFlags() []string {
	return levelFlags("-A", l.Allow)
}

// Flags returns the combined flag list passed to clippy: warn flags,
// then deny flags, then allow flags. clippy honors the last flag given
// for a lint, so a name listed under allow wins over the other levels.
func (l *Lints) Flags() []string {
	flags := make([]string, 0, 2*(len(l.Warn)+len(l.Deny)+len(l.Allow)))
	flags = append(flags, l.WarnFlags()...)
	flags = append(flags, l.DenyFlags()...)
	flags = append(flags, l.AllowFlags()...)

	return flags
}

// levelFlags renders one level's lint names as flag-and-name pairs,
// e.g. "-D", "unwrap_used", each name as its own argument.
func levelFlags(flag string, names []string) []string {
	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, flag, name)
	}

	return pairs
}
