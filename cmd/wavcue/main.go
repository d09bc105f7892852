// SPDX-License-Identifier: EPL-2.0

// Command wavcue inspects and edits the cue layer of WAV files.
//
// Usage:
//
//	wavcue [global flags] <command> [flags] <file>...
//
// Run wavcue -h for the global flags and the list of commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/ik5/wavcue"
	"github.com/ik5/wavcue/internal/config"
	"github.com/ik5/wavcue/internal/logger"
)

// env is the state shared by every command.
type env struct {
	cfg    *config.Config
	log    *logger.Logger
	stdout io.Writer
	stderr io.Writer
}

func (e *env) options() []wavcue.Option {
	return []wavcue.Option{
		wavcue.WithLogger(e.log.Logger),
		wavcue.WithBufferSize(e.cfg.BufferSize),
		wavcue.WithConcurrency(e.cfg.Concurrency),
	}
}

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"info":    {usage: "info <file>...", help: "print header, chunks, cues and markers", run: runInfo},
	"markers": {usage: "markers [-source] <file>...", help: "print classified markers", run: runMarkers},
	"add-cue": {usage: "add-cue -at <frame> -label <label> <file>", help: "add a cue and rewrite the file", run: runAddCue},
	"clear":   {usage: "clear <file>...", help: "remove every cue", run: runClear},
	"concat":  {usage: "concat -o <out.wav> <in.wav>...", help: "join files and carry their cues", run: runConcat},
	"export":  {usage: "export <file>...", help: "write the cues to a JSON sidecar", run: runExport},
	"import":  {usage: "import <file>...", help: "replace the cues with the JSON sidecar", run: runImport},
	"levels":  {usage: "levels <file>", help: "print the peak level after each marker", run: runLevels},
}

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cfg, rest, err := config.Load("wavcue", args, getenv, stderr)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			printUsage(stderr)
			return 0
		}
		fmt.Fprintf(stderr, "wavcue: %v\n", err)
		return 2
	}

	if len(rest) == 0 {
		printUsage(stderr)
		return 2
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "wavcue: unknown command %q\n", rest[0])
		printUsage(stderr)
		return 2
	}

	e := &env{
		cfg: cfg,
		log: logger.New(logger.Config{
			Writer:    stderr,
			Format:    cfg.Logger.Format,
			Level:     logger.ParseLevel(cfg.Logger.Level),
			AddSource: cfg.Logger.AddSource,
			NoColor:   cfg.Logger.NoColor,
		}),
		stdout: stdout,
		stderr: stderr,
	}

	e.log.Debug("running command", slog.String("command", rest[0]), slog.Int("buffer_size", cfg.BufferSize))

	if err := cmd.run(ctx, e, rest[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "usage: wavcue %s\n", cmd.usage)
			return 2
		}
		e.log.WithError(err).Error("command failed", slog.String("command", rest[0]))
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: wavcue [global flags] <command> [flags] <file>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "global flags:")
	fmt.Fprintln(w, "  -log-level    debug, info, warn or error ($WAVCUE_LOG_LEVEL)")
	fmt.Fprintln(w, "  -log-format   pretty or json ($WAVCUE_LOG_FORMAT)")
	fmt.Fprintln(w, "  -log-source   add source locations to log records ($WAVCUE_LOG_SOURCE)")
	fmt.Fprintln(w, "  -no-color     plain log output ($WAVCUE_NO_COLOR)")
	fmt.Fprintln(w, "  -buffer-size  copy and decode buffer in bytes ($WAVCUE_BUFFER_SIZE)")
	fmt.Fprintln(w, "  -concurrency  files read at once ($WAVCUE_CONCURRENCY)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-40s %s\n", commands[name].usage, commands[name].help)
	}
}
