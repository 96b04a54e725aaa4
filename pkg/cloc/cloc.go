// Package cloc invokes the cloc line counter and parses its JSON output.
//
// The counter is always run with percentages computed over code and comment
// lines only (--by-percent=cm), so a language's comment_pct is its
// comment-to-code ratio.
package cloc

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dkoosis/commentcheck/pkg/toolexec"
)

// Defaults for Options.
const (
	DefaultBinary = "cloc"
	DefaultVCS    = "git"
)

// DefaultExcludeDirs are auxiliary directories never counted.
var DefaultExcludeDirs = []string{"build", "dist", "node_modules", "testdata", "third_party", "vendor"}

// DefaultExcludeLangs are documentation-only languages never counted.
var DefaultExcludeLangs = []string{"Markdown"}

// Options configures the cloc command line.
type Options struct {
	Binary       string
	VCS          string
	ExcludeDirs  []string
	ExcludeLangs []string
}

// DefaultOptions returns the standard invocation settings.
func DefaultOptions() Options {
	return Options{
		Binary:       DefaultBinary,
		VCS:          DefaultVCS,
		ExcludeDirs:  append([]string(nil), DefaultExcludeDirs...),
		ExcludeLangs: append([]string(nil), DefaultExcludeLangs...),
	}
}

// Args builds the argument list for counting path.
func (o Options) Args(path string) []string {
	var args []string
	if o.VCS != "" {
		args = append(args, "--vcs="+o.VCS)
	}
	if len(o.ExcludeDirs) > 0 {
		args = append(args, "--exclude-dir="+strings.Join(o.ExcludeDirs, ","))
	}
	if len(o.ExcludeLangs) > 0 {
		args = append(args, "--exclude-lang="+strings.Join(o.ExcludeLangs, ","))
	}
	args = append(args, "--by-percent=cm", "--json", "--", path)
	return args
}

func (o Options) binary() string {
	if o.Binary == "" {
		return DefaultBinary
	}
	return o.Binary
}

// Scanner runs cloc in a fixed directory.
type Scanner struct {
	runner toolexec.Runner
	opts   Options
	dir    string
	log    logrus.FieldLogger
}

// NewScanner creates a scanner that runs cloc in dir.
func NewScanner(runner toolexec.Runner, opts Options, dir string, log logrus.FieldLogger) *Scanner {
	return &Scanner{runner: runner, opts: opts, dir: dir, log: log}
}

// Scan counts path. It returns (nil, nil) when cloc prints nothing, which is
// how it reports a path that was wholly excluded.
func (s *Scanner) Scan(ctx context.Context, path string) (*Result, error) {
	args := s.opts.Args(path)
	s.log.WithFields(logrus.Fields{"path": path, "cmd": s.opts.binary()}).Debug("running line counter")

	out, err := s.runner.Run(ctx, s.dir, s.opts.binary(), args...)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(out)) == 0 {
		s.log.WithField("path", path).Debug("excluded by line counter")
		return nil, nil
	}

	r, err := Parse(out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Version reports the installed cloc version.
func (s *Scanner) Version(ctx context.Context) (string, error) {
	out, err := s.runner.Run(ctx, s.dir, s.opts.binary(), "--version")
	if err != nil {
		return "", fmt.Errorf("error getting cloc version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
