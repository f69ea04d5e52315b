package cael

import (
	"io"
	"os"
)

// Config controls where a program's output goes and how long it may run.
type Config struct {
	// Stdout receives print output. Defaults to os.Stdout.
	Stdout io.Writer
	// OnWarning is called for every recoverable lexical warning.
	OnWarning func(*Error)
	// StepQuota caps evaluation steps; zero means unlimited.
	StepQuota int
}

// Engine compiles and evaluates Cael programs.
type Engine struct {
	config Config
}

// NewEngine constructs an Engine, filling in defaults.
func NewEngine(cfg Config) *Engine {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.StepQuota < 0 {
		cfg.StepQuota = 0
	}
	return &Engine{config: cfg}
}

// Script is a parsed program ready to run any number of times.
type Script struct {
	engine  *Engine
	program *Program
	tokens  []Token
	source  string
}

// Compile lexes and parses source. Lexical warnings are reported through
// Config.OnWarning and do not fail compilation.
func (e *Engine) Compile(source string) (*Script, error) {
	stream, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	if e.config.OnWarning != nil {
		for _, w := range stream.Warnings() {
			e.config.OnWarning(w)
		}
	}
	tokens := stream.Tokens()
	program, err := ParseTokens(stream)
	if err != nil {
		return nil, err
	}
	return &Script{engine: e, program: program, tokens: tokens, source: source}, nil
}

// Evaluate runs a single node against env.
func (e *Engine) Evaluate(node Node, env *Environment) (Value, error) {
	exec := newExecution(e)
	return exec.evaluate(node, env)
}

func (s *Script) Program() *Program { return s.program }

func (s *Script) Tokens() []Token {
	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

func (s *Script) Source() string { return s.source }

// Run evaluates the program in a fresh root environment and returns the
// value of its last statement.
func (s *Script) Run() (Value, error) {
	return s.RunIn(NewEnvironment())
}

// RunIn evaluates the program against an existing environment, keeping
// declarations made by earlier runs visible.
func (s *Script) RunIn(env *Environment) (Value, error) {
	return s.engine.Evaluate(s.program, env)
}
