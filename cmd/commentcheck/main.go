// commentcheck fails a build whose source is not commented enough.
//
// Usage:
//
//	commentcheck [flags] [root]
//
// It counts every version-controlled file under root with cloc, warns about
// files whose comment-to-code ratio is below the threshold, prints the
// per-language totals, and exits non-zero when the tree-wide ratio is below
// the threshold.
//
// Output modes (auto-detected):
//
//	terminal  styled output (default when TTY)
//	text      plain text (default when piped)
//	json      structured JSON for automation
//	check     lintkit-check document for dashboards
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/dkoosis/commentcheck/internal/config"
	"github.com/dkoosis/commentcheck/internal/logging"
	"github.com/dkoosis/commentcheck/internal/version"
	"github.com/dkoosis/commentcheck/pkg/check"
	"github.com/dkoosis/commentcheck/pkg/cloc"
	"github.com/dkoosis/commentcheck/pkg/langtable"
	"github.com/dkoosis/commentcheck/pkg/ratio"
	"github.com/dkoosis/commentcheck/pkg/render"
	"github.com/dkoosis/commentcheck/pkg/toolexec"
	"github.com/dkoosis/commentcheck/pkg/vcs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	return runWith(args, toolexec.ExecRunner{}, stdout, stderr)
}

// runWith is run with the process runner injected.
func runWith(args []string, runner toolexec.Runner, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("commentcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: commentcheck [flags] [root]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	var flags config.CliFlags
	fs.StringVar(&flags.Format, "format", config.FormatAuto, "Output format: auto, text, terminal, json, check")
	fs.StringVar(&flags.Theme, "theme", "default", "Theme: default, orca, mono")
	fs.Float64Var(&flags.Threshold, "threshold", ratio.DefaultThreshold, "Minimum comment percentage")
	fs.StringVar(&flags.ConfigPath, "config", "", "Config file (default: "+config.FileName+" in root, then user config dir)")
	fs.StringVar(&flags.Tool, "tool", cloc.DefaultBinary, "Path to the cloc binary")
	fs.BoolVar(&flags.Debug, "debug", false, "Log tool invocations and print call stacks on failure")
	showVersion := fs.Bool("version", false, "Print version information and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			flags.FormatSet = true
		case "theme":
			flags.ThemeSet = true
		case "threshold":
			flags.ThresholdSet = true
		case "tool":
			flags.ToolSet = true
		case "debug":
			flags.DebugSet = true
		}
	})

	if fs.NArg() > 1 {
		fmt.Fprintf(stderr, "commentcheck: expected at most one root, got %d\n", fs.NArg())
		fs.Usage()
		return 2
	}
	root := "."
	if fs.NArg() == 1 {
		root = fs.Arg(0)
	}
	root, err := filepath.Abs(root)
	if err != nil {
		fmt.Fprintf(stderr, "commentcheck: %v\n", err)
		return 2
	}

	cfg, err := config.ResolveConfig(flags, root)
	if err != nil {
		fmt.Fprintf(stderr, "commentcheck: %v\n", err)
		return 2
	}
	log := logging.New(stderr, cfg.Debug)
	log.WithFields(logrus.Fields{
		"config":    cfg.ConfigFile,
		"threshold": cfg.Threshold,
		"source":    cfg.ThresholdSource,
		"theme":     cfg.Theme,
	}).Debug("resolved configuration")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scanner := cloc.NewScanner(runner, cfg.Cloc, root, log)
	if *showVersion {
		return printVersion(ctx, scanner, stdout, stderr, cfg.Debug)
	}

	app := &app{
		root:    root,
		cfg:     cfg,
		mode:    resolveFormat(cfg.Format, stdout),
		scanner: scanner,
		lister:  vcs.NewLister(runner, root, log),
		stdout:  stdout,
		stderr:  stderr,
	}
	return app.check(ctx)
}

type app struct {
	root    string
	cfg     *config.ResolvedConfig
	mode    string
	scanner *cloc.Scanner
	lister  *vcs.Lister
	stdout  io.Writer
	stderr  io.Writer
}

// check runs the per-file pass, then the tree-wide pass, and returns the
// exit code.
func (a *app) check(ctx context.Context) int {
	var text *render.Text
	sink := ratio.Discard
	switch a.mode {
	case config.FormatText:
		text = render.NewText(a.stdout, render.PlainTheme(), 0)
	case config.FormatTerminal:
		width, _ := termSize(a.stdout)
		text = render.NewText(a.stdout, render.ThemeByName(a.cfg.Theme), width)
	}
	if text != nil {
		sink = text
		text.ScanRoot(a.root)
	}

	files, err := a.lister.Files(ctx)
	if err != nil {
		return reportError(a.stderr, err, a.cfg.Debug)
	}
	findings, err := ratio.NewChecker(a.scanner, a.cfg.Threshold).CheckFiles(ctx, files, sink)
	if err != nil {
		return reportError(a.stderr, err, a.cfg.Debug)
	}

	result, err := a.scanner.Scan(ctx, ".")
	if err != nil {
		return reportError(a.stderr, err, a.cfg.Debug)
	}
	if result == nil {
		return reportError(a.stderr, fmt.Errorf("no countable source files under %s", a.root), a.cfg.Debug)
	}
	verdict := ratio.Judge(result.Sum, a.cfg.Threshold)

	switch a.mode {
	case config.FormatJSON:
		err = render.WriteJSON(a.stdout, render.Report{
			Root:      a.root,
			Threshold: a.cfg.Threshold,
			Findings:  findings,
			Result:    result,
			Verdict:   verdict,
		})
	case config.FormatCheck:
		err = check.Write(a.stdout, check.FromScan(findings, result, verdict))
	default:
		text.Table(langtable.Build(result))
		text.Verdict(verdict)
	}
	if err != nil {
		fmt.Fprintf(a.stderr, "commentcheck: writing output: %v\n", err)
		return 2
	}

	if !verdict.Pass {
		fmt.Fprintln(a.stderr, ratio.TooLowMessage)
	}
	return verdict.ExitCode()
}

func printVersion(ctx context.Context, scanner *cloc.Scanner, stdout, stderr io.Writer, debug bool) int {
	fmt.Fprintln(stdout, version.String())
	v, err := scanner.Version(ctx)
	if err != nil {
		return reportError(stderr, err, debug)
	}
	fmt.Fprintf(stdout, "cloc %s\n", v)
	return 0
}

// reportError prints err and returns the tool-failure exit code.
func reportError(stderr io.Writer, err error, debug bool) int {
	fmt.Fprintf(stderr, "commentcheck: %v\n", err)
	var te *toolexec.ToolError
	if !errors.As(err, &te) {
		return 2
	}
	if toolexec.IsCommandNotFound(te) {
		fmt.Fprintf(stderr, "commentcheck: %s not found on PATH; install it or pass -tool\n", te.Command)
	}
	if debug {
		fmt.Fprintf(stderr, "stack:\n%s", te.Trace())
	}
	return 2
}

func resolveFormat(format string, w io.Writer) string {
	if format != config.FormatAuto {
		return format
	}
	// Auto-detect: TTY = terminal, piped = text
	if f, ok := w.(*os.File); ok {
		if term.IsTerminal(int(f.Fd())) {
			return config.FormatTerminal
		}
	}
	return config.FormatText
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}
