package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/mgomes/cael/cael"
)

func submit(t *testing.T, m replModel, input string) (replModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	rm, cmd := submit(t, newREPLModel(), ":quit")

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateNonQuitCommandDoesNotReturnCmd(t *testing.T) {
	rm, cmd := submit(t, newREPLModel(), ":help")

	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if rm.quitting {
		t.Fatalf("quitting should remain false")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestEvaluatePersistsDeclarations(t *testing.T) {
	m := newREPLModel()
	m, _ = submit(t, m, "let score = 40;")
	m, _ = submit(t, m, "score = score + 2;")
	m, _ = submit(t, m, "print(score);")

	if len(m.history) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(m.history))
	}
	last := m.history[2]
	if last.isErr || last.output != "42" {
		t.Fatalf("unexpected print entry: %+v", last)
	}
	score, ok := m.session.lookup("score")
	if !ok || score.Kind() != cael.KindNumber || score.Number() != 42 {
		t.Fatalf("unexpected score value: %v", score)
	}
}

func TestEvaluateErrorIsNotFatal(t *testing.T) {
	m := newREPLModel()
	m, _ = submit(t, m, "const c = 1;")
	m, _ = submit(t, m, "c = 2;")
	entry := m.history[1]
	if !entry.isErr || !strings.Contains(entry.output, "AssignToConstant") {
		t.Fatalf("expected AssignToConstant entry, got %+v", entry)
	}
	m, _ = submit(t, m, "c + 1;")
	if got := m.history[2]; got.isErr || got.output != "2" {
		t.Fatalf("session should continue after an error, got %+v", got)
	}
}

func TestResetCommandClearsEnvironment(t *testing.T) {
	m := newREPLModel()
	m, _ = submit(t, m, "let x = 1;")
	m, _ = submit(t, m, ":reset")
	if _, ok := m.session.lookup("x"); ok {
		t.Fatalf("x should be gone after reset")
	}
	m, _ = submit(t, m, "let x = 2;")
	if got := m.history[len(m.history)-1]; got.isErr {
		t.Fatalf("redeclaring after reset failed: %+v", got)
	}
}

func TestAutocompleteSingleMatch(t *testing.T) {
	m := newREPLModel()
	m, _ = submit(t, m, "let counter = 1;")
	m.textInput.SetValue("print(cou")
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	rm := model.(replModel)
	if got := rm.textInput.Value(); got != "print(counter" {
		t.Fatalf("unexpected completion %q", got)
	}
}

func TestAutocompleteMultipleMatches(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue("co")
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	rm := model.(replModel)
	if got := rm.textInput.Value(); got != "const" {
		t.Fatalf("single keyword prefix should complete inline, got %q", got)
	}
	if len(rm.history) != 0 {
		t.Fatalf("unexpected history: %+v", rm.history)
	}

	m = newREPLModel()
	m, _ = submit(t, m, "let fa = 1;")
	m.textInput.SetValue("f")
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	rm = model.(replModel)
	last := rm.history[len(rm.history)-1]
	if !strings.Contains(last.output, "Completions: for, fa, false") {
		t.Fatalf("unexpected completions entry: %+v", last)
	}
}

func TestViewShowsVariables(t *testing.T) {
	m := newREPLModel()
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = model.(replModel)
	m, _ = submit(t, m, "const limit = 3;")
	m, _ = submit(t, m, ":vars")
	view := m.View()
	if !strings.Contains(view, "limit") || !strings.Contains(view, "(const)") {
		t.Fatalf("vars panel missing binding:\n%s", view)
	}
	if strings.Contains(view, "null =") {
		t.Fatalf("built-in constants should be hidden:\n%s", view)
	}
}

type scriptedReader struct {
	lines   []string
	prompts []string
}

func (r *scriptedReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func TestPlainLoopEvaluatesLines(t *testing.T) {
	color.NoColor = true
	reader := &scriptedReader{lines: []string{
		"let x = 5;",
		"print(x + 1);",
		"if (x > 1) {",
		`  print("big");`,
		"}",
		"y;",
		":vars",
		":quit",
		"print(99);",
	}}
	var out bytes.Buffer
	var remembered []string
	err := plainLoop(reader, newREPLSession(), &out, func(s string) { remembered = append(remembered, s) })
	if err != nil {
		t.Fatalf("plain loop: %v", err)
	}
	got := out.String()
	for _, want := range []string{"5\n", "6\n", "big\n", "UndeclaredVariable", "x = 5\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
	if strings.Contains(got, "99") {
		t.Fatalf("input after :quit was evaluated:\n%s", got)
	}
	if len(remembered) != 4 || remembered[2] != `if (x > 1) {   print("big"); }` {
		t.Fatalf("unexpected history: %q", remembered)
	}
	continuations := 0
	for _, p := range reader.prompts {
		if p == promptCont {
			continuations++
		}
	}
	if continuations != 2 {
		t.Fatalf("expected 2 continuation prompts, got %d", continuations)
	}
}

func TestPlainLoopStopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	if err := plainLoop(&scriptedReader{}, newREPLSession(), &out, nil); err != nil {
		t.Fatalf("plain loop: %v", err)
	}
	if out.String() != "\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestIsIncomplete(t *testing.T) {
	cases := map[string]bool{
		"let x = 1":    true,
		"if (1 < 2) {": true,
		`print("open`:  true,
		"let = 1;":     false,
		"print(1);":    false,
	}
	for source, want := range cases {
		_, err := cael.Parse(source)
		if got := err != nil && isIncomplete(err); got != want {
			t.Fatalf("isIncomplete(%q) = %v, want %v (err %v)", source, got, want, err)
		}
	}
}

func TestSubmitContinuesOpenStatement(t *testing.T) {
	m := newREPLModel()
	m, _ = submit(t, m, "if (1 < 2) {")
	if len(m.pending) != 1 || m.textInput.Prompt != promptCont {
		t.Fatalf("expected continuation, got pending %q prompt %q", m.pending, m.textInput.Prompt)
	}
	m, _ = submit(t, m, `  print("yes");`)
	m, _ = submit(t, m, "}")

	if len(m.pending) != 0 || m.textInput.Prompt != promptMain {
		t.Fatalf("statement should be complete, pending %q", m.pending)
	}
	if len(m.history) != 1 || m.history[0].output != "yes" {
		t.Fatalf("unexpected history: %+v", m.history)
	}
}

func TestQuitKeyDiscardsPendingInput(t *testing.T) {
	m := newREPLModel()
	m, _ = submit(t, m, "let x =")
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	rm := model.(replModel)
	if cmd != nil || rm.quitting {
		t.Fatalf("first ctrl+c should only discard pending input")
	}
	if len(rm.pending) != 0 || rm.textInput.Prompt != promptMain {
		t.Fatalf("pending input not discarded: %q", rm.pending)
	}
	model, cmd = rm.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !model.(replModel).quitting || cmd == nil {
		t.Fatalf("second ctrl+c should quit")
	}
}

func TestRecallNavigatesSubmittedInputs(t *testing.T) {
	m := newREPLModel()
	m, _ = submit(t, m, "let a = 1;")
	m, _ = submit(t, m, "let b = 2;")

	press := func(m replModel, kt tea.KeyType) replModel {
		model, _ := m.Update(tea.KeyMsg{Type: kt})
		return model.(replModel)
	}
	m = press(m, tea.KeyUp)
	if got := m.textInput.Value(); got != "let b = 2;" {
		t.Fatalf("first recall = %q", got)
	}
	m = press(m, tea.KeyUp)
	m = press(m, tea.KeyUp)
	if got := m.textInput.Value(); got != "let a = 1;" {
		t.Fatalf("recall should stop at the oldest input, got %q", got)
	}
	m = press(m, tea.KeyDown)
	m = press(m, tea.KeyDown)
	if got := m.textInput.Value(); got != "" || m.cursor != -1 {
		t.Fatalf("moving past the newest input should clear it, got %q", got)
	}
}
