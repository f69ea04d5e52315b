package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mgomes/cael/cael"
)

const sourceExt = ".cael"

func checkExtension(path string) error {
	if ext := filepath.Ext(path); ext != sourceExt {
		return fmt.Errorf("cael: %s: expected a %s file, got %q", path, sourceExt, ext)
	}
	return nil
}

// loadSource reads a program line by line. Lines are joined with "\n"; with
// legacy set they are concatenated with no separator, so a line ending in an
// identifier fuses with one that starts with a letter.
func loadSource(path string, legacy bool) (string, error) {
	if err := checkExtension(path); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	sep := "\n"
	if legacy {
		sep = ""
	}
	return strings.Join(lines, sep), nil
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func renderTokenTable(tokens []cael.Token) string {
	rows := make([][]string, 0, len(tokens))
	for i, tok := range tokens {
		rows = append(rows, []string{fmt.Sprintf("%d", i), string(tok.Type), tok.Literal})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(mutedColor)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers("#", "TYPE", "LITERAL").
		Rows(rows...)
	return t.String()
}
