package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ankit-chaubey/formula-metrics/core"
	"github.com/ankit-chaubey/formula-metrics/core/logging"
)

const usage = `Usage: formula-metrics <command> [flags] [args]

Commands:
  size     [-config f] [-format svg|png] [-save-mode base64|xml] [-json] files...
  resize   -in page.html [-out file] [-class Wirisformula]
  stamp    -in a.png -out b.png -baseline N [-dpi N]
  inspect  file.png

Global flags (any command):
  -v       debug logging to stderr
`

type command func(args []string, stdout io.Writer) error

var commands = map[string]command{
	"size":    runSize,
	"resize":  runResize,
	"stamp":   runStamp,
	"inspect": runInspect,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		core.PrintError(fmt.Sprintf("unknown command %q", os.Args[1]))
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	args, verbose := stripVerbose(os.Args[2:])
	if verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := cmd(args, os.Stdout); err != nil {
		core.PrintError(err.Error())
		os.Exit(1)
	}
}

// stripVerbose removes -v/--v from args.
func stripVerbose(args []string) ([]string, bool) {
	out := args[:0:0]
	verbose := false
	for _, a := range args {
		if a == "-v" || a == "--v" {
			verbose = true
			continue
		}
		out = append(out, a)
	}
	return out, verbose
}
