package main

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/commentcheck/pkg/check"
	"github.com/dkoosis/commentcheck/pkg/ratio"
	"github.com/dkoosis/commentcheck/pkg/toolexec"
	"github.com/dkoosis/commentcheck/pkg/toolexec/toolexectest"
)

// newRepo returns an isolated root and a runner that lists files and
// answers cloc for each of them and for the whole tree.
func newRepo(t *testing.T, files map[string]float64, aggregate float64) (string, *toolexectest.Fake) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, ".xdg"))
	t.Setenv("NO_COLOR", "")
	t.Setenv("COMMENTCHECK_DEBUG", "")

	fake := toolexectest.New()
	var listing strings.Builder
	for _, path := range sortedKeys(files) {
		listing.WriteString(path + "\n")
		fake.Stdout[path] = toolexectest.ClocJSON("Go", 1, files[path], 100)
	}
	fake.Stdout["ls-files"] = listing.String()
	fake.Stdout["."] = toolexectest.ClocJSON("Go", len(files), aggregate, 100*len(files))
	return root, fake
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestRun_AllFilesPass(t *testing.T) {
	root, fake := newRepo(t, map[string]float64{"a.go": 30, "b.go": 30}, 28)

	var stdout, stderr bytes.Buffer
	code := runWith([]string{root}, fake, &stdout, &stderr)

	out := stdout.String()
	assert.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.True(t, strings.HasPrefix(out, "Checking comment ratio in "+root+"\n"))
	assert.Contains(t, out, "\nAll files meet the 25% comment threshold.\n")
	assert.NotContains(t, out, "Files below")
	assert.Contains(t, out, "28.0%")
	assert.Empty(t, stderr.String())
}

func TestRun_FileBelowThresholdDoesNotFail(t *testing.T) {
	root, fake := newRepo(t, map[string]float64{"path/to/file": 10, "z.go": 40}, 26)

	var stdout, stderr bytes.Buffer
	code := runWith([]string{root}, fake, &stdout, &stderr)

	out := stdout.String()
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "\nFiles below the 25% comment threshold:\npath/to/file: 10.0%\n")
	assert.Equal(t, 1, strings.Count(out, "Files below"), "banner printed once")
	assert.NotContains(t, out, "z.go:")
	assert.NotContains(t, out, "All files meet")
	assert.Contains(t, out, "26.0%")
}

func TestRun_AggregateBelowThreshold(t *testing.T) {
	root, fake := newRepo(t, map[string]float64{"a.go": 30}, 24.9)

	var stdout, stderr bytes.Buffer
	code := runWith([]string{root}, fake, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, ratio.TooLowMessage+"\n", stderr.String())
	assert.Contains(t, stdout.String(), "24.9%")
}

func TestRun_InvocationOrder(t *testing.T) {
	root, fake := newRepo(t, map[string]float64{"a.go": 30, "b.go": 30}, 30)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, runWith([]string{root}, fake, &stdout, &stderr))

	require.Len(t, fake.Calls, 4)
	assert.Equal(t, "git", fake.Calls[0].Name)
	assert.Equal(t, []string{"a.go", "b.go", "."}, []string{
		lastArg(fake.Calls[1]), lastArg(fake.Calls[2]), lastArg(fake.Calls[3]),
	})
	for _, c := range fake.Calls {
		assert.Equal(t, root, c.Dir)
	}
	assert.Contains(t, fake.Calls[3].Args, "--by-percent=cm")
}

func lastArg(c toolexectest.Call) string {
	return c.Args[len(c.Args)-1]
}

func TestRun_ExcludedFileIsSkipped(t *testing.T) {
	root, fake := newRepo(t, map[string]float64{"a.go": 30}, 30)
	fake.Stdout["ls-files"] = "README.md\na.go\n"
	fake.Stdout["README.md"] = ""

	var stdout, stderr bytes.Buffer
	code := runWith([]string{root}, fake, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.NotContains(t, stdout.String(), "README.md")
	assert.Len(t, fake.CallsTo("README.md"), 1)
}

func TestRun_ThresholdFlag(t *testing.T) {
	root, fake := newRepo(t, map[string]float64{"a.go": 28}, 28)

	var stdout, stderr bytes.Buffer
	code := runWith([]string{"-threshold", "30", root}, fake, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "Files below the 30% comment threshold:\na.go: 28.0%\n")
}

func TestRun_JSONFormat(t *testing.T) {
	root, fake := newRepo(t, map[string]float64{"a.go": 10}, 26)

	var stdout, stderr bytes.Buffer
	code := runWith([]string{"-format", "json", root}, fake, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	var out struct {
		Root     string          `json:"root"`
		Findings []ratio.Finding `json:"findings"`
		Verdict  ratio.Verdict   `json:"verdict"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, root, out.Root)
	assert.Equal(t, []ratio.Finding{{Path: "a.go", CommentPct: 10}}, out.Findings)
	assert.True(t, out.Verdict.Pass)
	assert.NotContains(t, stdout.String(), "Files below", "json output has no text banner")
}

func TestRun_CheckFormat(t *testing.T) {
	root, fake := newRepo(t, map[string]float64{"a.go": 10}, 20)

	var stdout, stderr bytes.Buffer
	code := runWith([]string{"-format", "check", root}, fake, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), ratio.TooLowMessage)

	var report check.Report
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
	assert.Equal(t, check.StatusFail, report.Status)
	assert.Equal(t, check.ToolName, report.Tool)
	require.Len(t, report.Items, 1)
	assert.Equal(t, "a.go", report.Items[0].File)
}

func TestRun_TerminalFormat(t *testing.T) {
	root, fake := newRepo(t, map[string]float64{"a.go": 10}, 26)

	var stdout, stderr bytes.Buffer
	code := runWith([]string{"-format", "terminal", "-theme", "mono", root}, fake, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "! a.go: 10.0%")
	assert.Contains(t, stdout.String(), "+ comment ratio 26.0% (threshold 25%)")
}

func TestRun_UsageErrors(t *testing.T) {
	root, fake := newRepo(t, map[string]float64{"a.go": 30}, 30)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"format typo", []string{"-format", "jsn", root}, `did you mean "json"?`},
		{"unknown flag", []string{"-nope", root}, "flag provided but not defined"},
		{"two roots", []string{root, root}, "expected at most one root"},
		{"threshold out of range", []string{"-threshold", "150", root}, "invalid threshold"},
		{"threshold NaN", []string{"-threshold", "NaN", root}, "invalid threshold"},
		{"threshold infinite", []string{"-threshold", "+Inf", root}, "invalid threshold"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := runWith(tc.args, fake, &stdout, &stderr)
			assert.Equal(t, 2, code)
			assert.Contains(t, stderr.String(), tc.want)
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRun_ToolFailure(t *testing.T) {
	root, fake := newRepo(t, map[string]float64{"a.go": 30}, 30)
	fake.Errors["a.go"] = &toolexec.ToolError{Command: "cloc", Args: []string{"a.go"}, ExitCode: 25, Stderr: "bad input"}

	var stdout, stderr bytes.Buffer
	code := runWith([]string{"-debug", root}, fake, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "commentcheck: cloc a.go: exit status 25: bad input")
	assert.Contains(t, stderr.String(), "stack:")
	assert.Empty(t, fake.CallsTo("."), "whole-tree scan never runs after a failure")
}

func TestRun_MissingTool(t *testing.T) {
	root, fake := newRepo(t, nil, 30)
	fake.Errors["ls-files"] = &toolexec.ToolError{Command: "git", ExitCode: -1, Err: exec.ErrNotFound}

	var stdout, stderr bytes.Buffer
	code := runWith([]string{root}, fake, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "git not found on PATH")
	assert.NotContains(t, stderr.String(), "stack:")
}

func TestRun_NothingCounted(t *testing.T) {
	root, fake := newRepo(t, nil, 30)
	fake.Stdout["."] = ""

	var stdout, stderr bytes.Buffer
	code := runWith([]string{root}, fake, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "no countable source files")
	assert.Contains(t, stdout.String(), "All files meet")
}

func TestRun_Version(t *testing.T) {
	root, fake := newRepo(t, nil, 30)
	fake.Stdout["--version"] = "2.00\n"

	var stdout, stderr bytes.Buffer
	code := runWith([]string{"-version", root}, fake, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, "commentcheck dev (commit unknown, built unknown)\ncloc 2.00\n", stdout.String())
}
