// Package vcs enumerates version-controlled files.
package vcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dkoosis/commentcheck/pkg/toolexec"
)

// Lister lists tracked files with git.
type Lister struct {
	runner toolexec.Runner
	dir    string
	log    logrus.FieldLogger
}

// NewLister creates a Lister rooted at dir.
func NewLister(runner toolexec.Runner, dir string, log logrus.FieldLogger) *Lister {
	return &Lister{runner: runner, dir: dir, log: log}
}

// Files returns the paths known to git, in git's order.
func (l *Lister) Files(ctx context.Context) ([]string, error) {
	// quotePath=off keeps non-ASCII names verbatim instead of octal-escaped.
	out, err := l.runner.Run(ctx, l.dir, "git", "-c", "core.quotePath=off", "ls-files")
	if err != nil {
		return nil, fmt.Errorf("list tracked files: %w", err)
	}
	files := splitLines(string(out))
	l.log.WithField("count", len(files)).Debug("enumerated tracked files")
	return files, nil
}

// splitLines splits on newlines and drops empty entries, such as the one
// after the final newline.
func splitLines(s string) []string {
	var files []string
	for _, line := range strings.Split(s, "\n") {
		if line == "" {
			continue
		}
		files = append(files, line)
	}
	return files
}
