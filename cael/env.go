package cael

import (
	"sort"

	"github.com/ahrtr/gocontainer/set"
)

// Environment is one scope in the lexical chain. Bindings are resolved from
// the innermost scope outward; assignment mutates the scope that owns the
// name, so every child sharing that ancestor observes the change.
type Environment struct {
	parent    *Environment
	values    map[string]Value
	constants set.Interface
}

var builtinConstants = []struct {
	name  string
	value Value
}{
	{"null", NewNull()},
	{"true", NewBool(true)},
	{"false", NewBool(false)},
}

// NewEnvironment returns a root scope holding the constants null, true and
// false.
func NewEnvironment() *Environment {
	return newEnvironment(nil)
}

// NewChild returns a block scope enclosed by e, seeded with the same
// constants as a root scope.
func (e *Environment) NewChild() *Environment {
	return newEnvironment(e)
}

func newEnvironment(parent *Environment) *Environment {
	env := &Environment{
		parent:    parent,
		values:    make(map[string]Value),
		constants: set.New(),
	}
	for _, c := range builtinConstants {
		env.values[c.name] = c.value
		env.constants.Add(c.name)
	}
	return env
}

// Parent returns the enclosing scope, or nil for a root.
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Declare binds name in this scope. Shadowing an outer binding is allowed;
// redeclaring within the same scope is not.
func (e *Environment) Declare(name string, value Value, constant bool) (Value, error) {
	if _, exists := e.values[name]; exists {
		return NewNull(), newError(DuplicateDeclaration, StageEnvironment, "variable %q already declared", name)
	}
	e.values[name] = value
	if constant {
		e.constants.Add(name)
	}
	return value, nil
}

// Assign replaces the binding in the nearest scope that declares name.
func (e *Environment) Assign(name string, value Value) (Value, error) {
	owner, err := e.resolve(name)
	if err != nil {
		return NewNull(), err
	}
	if owner.constants.Contains(name) {
		return NewNull(), newError(AssignToConstant, StageEnvironment, "variable %q is constant and cannot be assigned", name)
	}
	owner.values[name] = value
	return value, nil
}

// Lookup returns the value bound to name in the nearest declaring scope.
func (e *Environment) Lookup(name string) (Value, error) {
	owner, err := e.resolve(name)
	if err != nil {
		return NewNull(), err
	}
	return owner.values[name], nil
}

// IsConstant reports whether name resolves to a constant binding.
func (e *Environment) IsConstant(name string) bool {
	owner, err := e.resolve(name)
	if err != nil {
		return false
	}
	return owner.constants.Contains(name)
}

// Names lists every name visible from e, sorted.
func (e *Environment) Names() []string {
	seen := make(map[string]struct{})
	for env := e; env != nil; env = env.parent {
		for name := range env.values {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolve returns the owning scope itself, never a copy of it.
func (e *Environment) resolve(name string) (*Environment, error) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			return env, nil
		}
	}
	return nil, newError(UndeclaredVariable, StageEnvironment, "variable %q is not defined", name)
}
