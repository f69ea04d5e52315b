package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
)

const indentUnit = "  "

type fmtMode int

const (
	fmtPrint fmtMode = iota
	fmtWrite
	fmtCheck
)

func fmtCommand(args []string) error {
	opts, optind, err := getopt.Getopts(args, "wc")
	if err != nil {
		return fmt.Errorf("cael fmt: %w", err)
	}
	mode := fmtPrint
	for _, opt := range opts {
		switch {
		case opt.Option == 'c':
			mode = fmtCheck
		case opt.Option == 'w' && mode != fmtCheck:
			mode = fmtWrite
		}
	}

	targets := args[optind:]
	if len(targets) == 0 {
		return errors.New("cael fmt: path required")
	}
	files, err := collectSourceFiles(targets)
	if err != nil {
		return err
	}

	stale := 0
	for _, path := range files {
		changed, err := formatFile(path, mode)
		if err != nil {
			return err
		}
		if changed {
			stale++
		}
	}
	if mode == fmtCheck && stale > 0 {
		return fmt.Errorf("cael fmt: %d file(s) need formatting", stale)
	}
	return nil
}

// formatFile formats one file according to mode and reports whether its
// contents differ from the formatted text.
func formatFile(path string, mode fmtMode) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	formatted := formatSource(string(raw))
	changed := formatted != string(raw)

	switch mode {
	case fmtPrint:
		fmt.Print(formatted)
	case fmtCheck:
		if changed {
			fmt.Println(path)
		}
	case fmtWrite:
		if !changed {
			break
		}
		info, err := os.Stat(path)
		if err != nil {
			return false, fmt.Errorf("stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
			return false, fmt.Errorf("write %s: %w", path, err)
		}
	}
	return changed, nil
}

// collectSourceFiles expands directories into the .cael files below them.
// Results are absolute, deduplicated and sorted.
func collectSourceFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) error {
		if filepath.Ext(path) != sourceExt {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}
		if _, dup := seen[abs]; !dup {
			seen[abs] = struct{}{}
			files = append(files, abs)
		}
		return nil
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			if err := add(target); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil || entry.IsDir() {
				return walkErr
			}
			return add(path)
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// formatSource normalises line endings, strips trailing blanks and re-indents
// every line by its brace depth. Lines that start inside a multi-line string
// literal are left untouched.
func formatSource(source string) string {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	lines := strings.Split(normalized, "\n")
	depth := 0
	inString := false
	for i, line := range lines {
		if inString {
			inString, depth = scanBraces(line, true, depth)
			continue
		}
		body := strings.TrimLeft(line, " \t")
		if strings.TrimSpace(body) == "" {
			lines[i] = ""
			continue
		}
		leading := 0
		for leading < len(body) && body[leading] == '}' {
			leading++
		}
		indent := max(depth-leading, 0)
		inString, depth = scanBraces(body, false, depth)
		if !inString {
			body = strings.TrimRight(body, " \t")
		}
		lines[i] = strings.Repeat(indentUnit, indent) + body
	}

	joined := strings.Join(lines, "\n")
	joined = strings.TrimRight(joined, "\n")
	if joined == "" {
		return ""
	}
	return joined + "\n"
}

// scanBraces walks line tracking string state and returns the updated state
// and brace depth. Braces inside string literals do not count.
func scanBraces(line string, inString bool, depth int) (bool, int) {
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth = max(depth-1, 0)
		}
	}
	return inString, depth
}
