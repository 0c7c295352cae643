// Package main is the entry point for vhdlalign.
//
// With no mode flag it opens the given files in a terminal editor where Tab
// and Backspace align trailing VHDL comments. -check and -fix work on files
// in batch, -script runs a Lua script and -set-column updates settings.json.
// -print-config shows every effective setting and where it comes from.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dshills/vhdlalign/internal/align"
	"github.com/dshills/vhdlalign/internal/app"
	"github.com/dshills/vhdlalign/internal/config"
	"github.com/dshills/vhdlalign/internal/plugin/lua"
	"github.com/dshills/vhdlalign/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage marks command-line mistakes; usage has already been printed.
var errUsage = errors.New("usage")

type cliOptions struct {
	app app.Options

	fix         bool
	check       bool
	script      string
	timeout     time.Duration
	setColumn   int
	printConfig bool
	logFile     string
	version     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "vhdlalign %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	logger, closeLog, err := newLogger(opts.logFile, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	app.SetLogger(logger)
	opts.app.Logger = logger

	switch {
	case opts.printConfig:
		return printConfig(opts, stdout, stderr)
	case opts.setColumn > 0:
		return setColumn(opts, stdout, stderr)
	case opts.script != "":
		return runScript(opts, stdout, stderr)
	case opts.check || opts.fix:
		return batch(opts, stdout, stderr)
	default:
		return interactive(opts, stderr)
	}
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("vhdlalign", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.app.ConfigPath, "config", "", "Path to a TOML configuration file")
	fs.StringVar(&opts.app.SettingsPath, "settings", "", "Path to a VS Code settings.json file")
	fs.StringVar(&opts.app.KeybindingsPath, "keybindings", "", "Path to a keybindings.json file")
	fs.IntVar(&opts.app.Column, "column", 0, "Comment column (1-based); overrides settings")
	fs.IntVar(&opts.app.TabSize, "tab-size", 0, "Tab size; overrides settings")
	fs.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	fs.StringVar(&opts.app.Language, "lang", "", "Language id to assume for every file")
	fs.BoolVar(&opts.app.ReadOnly, "readonly", false, "Open files in read-only mode")
	fs.BoolVar(&opts.app.Watch, "watch", false, "Reload configuration files when they change")
	fs.BoolVar(&opts.fix, "fix", false, "Align every trailing comment in the files and save them")
	fs.BoolVar(&opts.check, "check", false, "List misaligned comments; exit 1 if any")
	fs.StringVar(&opts.script, "script", "", "Run a Lua script with the vhdlalign module")
	fs.DurationVar(&opts.timeout, "script-timeout", lua.DefaultExecutionTimeout, "Abort a -script run after this long (0 disables)")
	fs.IntVar(&opts.setColumn, "set-column", 0, "Write the comment column to the -settings file")
	fs.BoolVar(&opts.printConfig, "print-config", false, "Print the effective settings and their sources")
	fs.BoolVar(&opts.version, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "vhdlalign - align trailing VHDL comments\n\n")
		fmt.Fprintf(stderr, "Usage: vhdlalign [options] [files...]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  vhdlalign alu.vhd                 Edit a file\n")
		fmt.Fprintf(stderr, "  vhdlalign -check -column 80 *.vhd  Report misaligned comments\n")
		fmt.Fprintf(stderr, "  vhdlalign -fix src/*.vhd           Align comments in place\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.app.Files = fs.Args()

	if opts.fix && opts.check {
		fmt.Fprintln(stderr, "Error: -fix and -check are mutually exclusive")
		return opts, errUsage
	}
	if (opts.fix || opts.check) && len(opts.app.Files) == 0 {
		fmt.Fprintln(stderr, "Error: -fix and -check need at least one file")
		return opts, errUsage
	}
	if opts.setColumn > 0 && opts.app.SettingsPath == "" {
		fmt.Fprintln(stderr, "Error: -set-column needs -settings")
		return opts, errUsage
	}
	return opts, nil
}

// newLogger logs to path when set, otherwise to stderr.
func newLogger(path string, stderr io.Writer) (*app.Logger, func(), error) {
	cfg := app.DefaultLoggerConfig()
	cfg.Output = stderr
	if path == "" {
		return app.NewLogger(cfg), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	cfg.Output = f
	return app.NewLogger(cfg), func() { _ = f.Close() }, nil
}

// loadConfig loads the configuration layers and applies the log level.
func loadConfig(opts cliOptions) (*config.Config, error) {
	cfg, err := app.LoadConfig(opts.app, opts.app.Logger)
	if err != nil {
		return nil, err
	}
	opts.app.Logger.SetLevel(app.ParseLogLevel(cfg.GetString(config.KeyLogLevel, "info")))
	return cfg, nil
}

// interactive runs the terminal editor until quit or a signal.
func interactive(opts cliOptions, stderr io.Writer) int {
	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// batch checks or fixes every file on the command line.
func batch(opts cliOptions, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer cfg.Close()
	settings := app.AlignSettings(cfg)

	status := 0
	for _, path := range opts.app.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			status = 1
			continue
		}

		lang := opts.app.Language
		if lang == "" {
			lang = app.DetectLanguage(path, data)
		}
		if lang != "vhdl" {
			opts.app.Logger.Warn("skipping %s: language is %q", path, lang)
			continue
		}

		if opts.check {
			if checkFile(path, string(data), settings, stdout) > 0 {
				status = 1
			}
			continue
		}
		if err := fixFile(path, string(data), settings, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			status = 1
		}
	}
	return status
}

// checkFile prints one line per misaligned comment and returns the count.
func checkFile(path, text string, settings align.Options, w io.Writer) int {
	n := 0
	for _, r := range align.Scan(text, settings) {
		switch {
		case r.Misaligned():
			fmt.Fprintf(w, "%s:%d: comment at column %d, want %d\n", path, r.Line+1, r.Column+1, settings.Column)
			n++
		case r.Outcome == align.CodePastTarget:
			fmt.Fprintf(w, "%s:%d: comment at column %d, code extends past column %d\n", path, r.Line+1, r.Column+1, settings.Column)
		}
	}
	return n
}

// fixFile aligns text and rewrites path when anything changed.
func fixFile(path, text string, settings align.Options, w io.Writer) error {
	out, changed := align.AlignText(text, settings)
	if changed == 0 {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(w, "%s: aligned %d comments\n", path, changed)
	return nil
}

// runScript runs a Lua script with the files bound to the global arg.
func runScript(opts cliOptions, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer cfg.Close()

	state := lua.NewState(
		lua.WithOutput(stdout),
		lua.WithDefaults(app.AlignSettings(cfg)),
		lua.WithExecutionTimeout(opts.timeout),
	)
	defer state.Close()

	state.SetGlobal("arg", opts.app.Files)
	if err := state.DoFile(opts.script); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// setColumn persists the comment column in settings.json.
func setColumn(opts cliOptions, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer cfg.Close()

	if err := cfg.SetSetting(config.KeyCommentColumn, opts.setColumn); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "%s = %d (%s)\n", config.KeyCommentColumn, opts.setColumn, opts.app.SettingsPath)
	return 0
}

// printConfig lists the loaded layers, then one line per setting.
func printConfig(opts cliOptions, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer cfg.Close()

	fmt.Fprintf(stdout, "# layers: %s\n", strings.Join(cfg.Layers(), ", "))
	for _, e := range cfg.Merged() {
		fmt.Fprintf(stdout, "%s = %v (%s)\n", e.Path, e.Value, e.Layer)
	}
	return 0
}
