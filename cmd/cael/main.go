package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"github.com/mgomes/cael/cael"
)

var (
	stderr io.Writer = os.Stderr

	errPrinter  = color.New(color.FgRed)
	warnPrinter = color.New(color.FgYellow)
)

func main() {
	if err := runCLI(os.Args); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	// Subcommands receive their own name as argv[0], which getopt skips.
	switch args[1] {
	case "run":
		return runCommand(args[1:])
	case "repl":
		return replCommand(args[1:])
	case "fmt":
		return fmtCommand(args[1:])
	case "analyze":
		return analyzeCommand(args[1:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		if filepath.Ext(args[1]) != "" {
			return runCommand(append([]string{"run"}, args[1:]...))
		}
		return usageError()
	}
}

func runCommand(args []string) error {
	opts, optind, err := getopt.Getopts(args, "tajq:")
	if err != nil {
		return fmt.Errorf("cael run: %w", err)
	}
	var showTokens, showAST, legacyJoin bool
	quota := 0
	for _, opt := range opts {
		switch opt.Option {
		case 't':
			showTokens = true
		case 'a':
			showAST = true
		case 'j':
			legacyJoin = true
		case 'q':
			n, err := strconv.Atoi(opt.Value)
			if err != nil || n < 0 {
				return fmt.Errorf("cael run: invalid step quota %q", opt.Value)
			}
			quota = n
		}
	}
	remaining := args[optind:]
	if len(remaining) == 0 {
		return errors.New("cael run: script path required")
	}

	source, err := loadSource(remaining[0], legacyJoin)
	if err != nil {
		return err
	}
	engine := cael.NewEngine(cael.Config{
		Stdout:    os.Stdout,
		OnWarning: reportWarning,
		StepQuota: quota,
	})
	script, err := engine.Compile(source)
	if err != nil {
		return err
	}
	if showTokens {
		fmt.Println(renderTokenTable(script.Tokens()))
	}
	if showAST {
		dump, err := cael.DescribeYAML(script.Program())
		if err != nil {
			return fmt.Errorf("describe program: %w", err)
		}
		fmt.Print(dump)
	}
	_, err = script.Run()
	return err
}

func reportError(err error) {
	errPrinter.Fprintln(stderr, err)
}

func reportWarning(w *cael.Error) {
	warnPrinter.Fprintf(stderr, "warning: %s\n", w.Message)
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(stderr, "Usage: %s <script.cael>\n", prog)
	fmt.Fprintf(stderr, "       %s run [-t] [-a] [-j] [-q steps] <script.cael>\n", prog)
	fmt.Fprintf(stderr, "       %s repl [-p]\n", prog)
	fmt.Fprintf(stderr, "       %s fmt [-w] [-c] <path>...\n", prog)
	fmt.Fprintf(stderr, "       %s analyze <script.cael>\n", prog)
	fmt.Fprintln(stderr, "Run flags:")
	fmt.Fprintln(stderr, "  -t        print the token stream before running")
	fmt.Fprintln(stderr, "  -a        print the syntax tree as YAML before running")
	fmt.Fprintln(stderr, "  -j        join source lines without a separator")
	fmt.Fprintln(stderr, "  -q steps  abort after this many evaluation steps")
	fmt.Fprintln(stderr, "Repl flags:")
	fmt.Fprintln(stderr, "  -p        plain line editor instead of the full-screen interface")
}
