// Package toolexectest provides a scripted toolexec.Runner for tests.
package toolexectest

import (
	"context"
	"fmt"
	"strings"
)

// Call records one invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Fake replays canned stdout keyed by a command's final argument
// (the path for cloc, the subcommand for git).
type Fake struct {
	Stdout map[string]string
	Errors map[string]error
	Calls  []Call
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{Stdout: map[string]string{}, Errors: map[string]error{}}
}

// Run implements toolexec.Runner.
func (f *Fake) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.Calls = append(f.Calls, Call{Dir: dir, Name: name, Args: args})
	key := ""
	if len(args) > 0 {
		key = args[len(args)-1]
	}
	if err, ok := f.Errors[key]; ok {
		return nil, err
	}
	out, ok := f.Stdout[key]
	if !ok {
		return nil, fmt.Errorf("toolexectest: no script for %s %s", name, strings.Join(args, " "))
	}
	return []byte(out), nil
}

// CallsTo returns the recorded calls whose final argument is key.
func (f *Fake) CallsTo(key string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if len(c.Args) > 0 && c.Args[len(c.Args)-1] == key {
			out = append(out, c)
		}
	}
	return out
}

// ClocJSON builds minimal cloc --by-percent=cm output with one language and
// a SUM record that both carry commentPct.
func ClocJSON(lang string, files int, commentPct float64, code int) string {
	return fmt.Sprintf(`{"header":{"cloc_version":"2.00","n_files":%[2]d,"n_lines":%[4]d},`+
		`%[1]q:{"nFiles":%[2]d,"blank_pct":10.0,"comment_pct":%[3]g,"code":%[4]d},`+
		`"SUM":{"blank_pct":10.0,"comment_pct":%[3]g,"code":%[4]d,"nFiles":%[2]d}}`,
		lang, files, commentPct, code)
}
