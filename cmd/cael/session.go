package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/mgomes/cael/cael"
)

// replSession evaluates successive inputs against one root environment and
// collects what each input printed.
type replSession struct {
	engine *cael.Engine
	env    *cael.Environment
	out    *bytes.Buffer
}

func newREPLSession() *replSession {
	out := new(bytes.Buffer)
	engine := cael.NewEngine(cael.Config{
		Stdout: out,
		OnWarning: func(w *cael.Error) {
			fmt.Fprintf(out, "warning: %s\n", w.Message)
		},
	})
	return &replSession{engine: engine, env: cael.NewEnvironment(), out: out}
}

// eval runs input and returns the printed output followed by the resulting
// value. Output printed before a failure is kept.
func (s *replSession) eval(input string) (string, error) {
	s.out.Reset()
	script, err := s.engine.Compile(input)
	if err != nil {
		return strings.TrimRight(s.out.String(), "\n"), err
	}
	result, err := script.RunIn(s.env)
	printed := strings.TrimRight(s.out.String(), "\n")
	if err != nil {
		return printed, err
	}
	if result.IsNull() && printed != "" {
		return printed, nil
	}
	if printed == "" {
		return result.String(), nil
	}
	return printed + "\n" + result.String(), nil
}

func (s *replSession) reset() {
	s.env = cael.NewEnvironment()
}

// names lists user bindings, leaving out the built-in constants.
func (s *replSession) names() []string {
	var names []string
	for _, name := range s.env.Names() {
		if isBuiltinConstant(name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

func (s *replSession) lookup(name string) (cael.Value, bool) {
	val, err := s.env.Lookup(name)
	return val, err == nil
}

func isBuiltinConstant(name string) bool {
	switch name {
	case "null", "true", "false":
		return true
	}
	return false
}

// completions returns keywords and bound names starting with prefix.
func (s *replSession) completions(prefix string) []string {
	var out []string
	for _, kw := range cael.Keywords() {
		if strings.HasPrefix(kw, prefix) {
			out = append(out, kw)
		}
	}
	for _, name := range s.env.Names() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// isIncomplete reports whether a compile error could be fixed by more input,
// so a line-oriented REPL can ask for a continuation line.
func isIncomplete(err error) bool {
	var cerr *cael.Error
	if !errors.As(err, &cerr) {
		return false
	}
	switch cerr.Kind {
	case cael.UnterminatedString:
		return true
	case cael.SyntaxError:
		return strings.HasSuffix(cerr.Message, "got end of input")
	default:
		return false
	}
}
