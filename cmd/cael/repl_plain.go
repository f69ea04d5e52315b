package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/mgomes/cael/cael"
)

const (
	historyFile = ".cael_history"
	promptMain  = "cael> "
	promptCont  = "....> "
)

type lineReader interface {
	Prompt(prompt string) (string, error)
}

// runPlainREPL drives a replSession from a liner prompt. It works on dumb
// terminals and piped input.
func runPlainREPL(out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := newREPLSession()
	ln.SetCompleter(func(line string) []string {
		prefix := trailingWord(line)
		if prefix == "" {
			return nil
		}
		base := strings.TrimSuffix(line, prefix)
		var matches []string
		for _, c := range session.completions(prefix) {
			matches = append(matches, base+c)
		}
		return matches
	})
	return plainLoop(ln, session, out, ln.AppendHistory)
}

func plainLoop(r lineReader, session *replSession, out io.Writer, remember func(string)) error {
	for {
		code, ok := readInput(r)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if quit := plainCommand(trimmed, session, out); quit {
				return nil
			}
			continue
		}

		output, err := session.eval(code)
		if output != "" {
			fmt.Fprintln(out, output)
		}
		if err != nil {
			errPrinter.Fprintln(out, err)
		}
		if remember != nil {
			remember(strings.ReplaceAll(code, "\n", " "))
		}
	}
}

func plainCommand(cmd string, session *replSession, out io.Writer) bool {
	switch strings.Fields(cmd)[0] {
	case ":quit", ":q":
		return true
	case ":reset", ":r":
		session.reset()
		fmt.Fprintln(out, "Environment reset")
	case ":vars", ":v":
		names := session.names()
		if len(names) == 0 {
			fmt.Fprintln(out, "No variables defined")
		}
		for _, name := range names {
			val, _ := session.lookup(name)
			fmt.Fprintf(out, "%s = %s\n", name, val.String())
		}
	case ":help", ":h":
		fmt.Fprintln(out, "Commands: :vars :reset :quit")
	default:
		fmt.Fprintf(out, "Unknown command: %s\n", cmd)
	}
	return false
}

// readInput keeps prompting while the collected text fails to compile only
// because it ends early.
func readInput(r lineReader) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := r.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, err := cael.Parse(src); err != nil && isIncomplete(err) {
			continue
		}
		return src, true
	}
}
