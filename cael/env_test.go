package cael

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnvironmentSeedsConstants(t *testing.T) {
	for _, env := range []*Environment{NewEnvironment(), NewEnvironment().NewChild()} {
		val, err := env.Lookup("true")
		if err != nil || !val.Equal(NewBool(true)) {
			t.Fatalf("expected true constant, got %v (%v)", val, err)
		}
		val, err = env.Lookup("null")
		if err != nil || !val.IsNull() {
			t.Fatalf("expected null constant, got %v (%v)", val, err)
		}
		if _, err := env.Assign("false", NewBool(true)); !errors.Is(err, ErrAssignToConstant) {
			t.Fatalf("expected AssignToConstant for false, got %v", err)
		}
	}
}

func TestEnvironmentDeclareDuplicate(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.Declare("x", NewNumber(1), false); err != nil {
		t.Fatalf("declare: %v", err)
	}
	_, err := env.Declare("x", NewNumber(2), false)
	if !errors.Is(err, ErrDuplicateDeclaration) {
		t.Fatalf("expected DuplicateDeclaration, got %v", err)
	}
	if KindOf(err) != DuplicateDeclaration {
		t.Fatalf("KindOf mismatch: %v", KindOf(err))
	}
}

func TestEnvironmentShadowing(t *testing.T) {
	root := NewEnvironment()
	if _, err := root.Declare("x", NewNumber(1), true); err != nil {
		t.Fatalf("declare root: %v", err)
	}
	child := root.NewChild()
	if _, err := child.Declare("x", NewString("inner"), false); err != nil {
		t.Fatalf("shadowing declare failed: %v", err)
	}
	inner, _ := child.Lookup("x")
	outer, _ := root.Lookup("x")
	if inner.Str() != "inner" || outer.Number() != 1 {
		t.Fatalf("unexpected shadowing result inner=%v outer=%v", inner, outer)
	}
	if _, err := child.Assign("x", NewString("changed")); err != nil {
		t.Fatalf("shadow binding should be assignable: %v", err)
	}
}

func TestEnvironmentAssignMutatesOwner(t *testing.T) {
	root := NewEnvironment()
	if _, err := root.Declare("count", NewNumber(0), false); err != nil {
		t.Fatalf("declare: %v", err)
	}
	child := root.NewChild()
	grandchild := child.NewChild()
	if _, err := grandchild.Assign("count", NewNumber(3)); err != nil {
		t.Fatalf("assign: %v", err)
	}
	for _, env := range []*Environment{root, child} {
		val, err := env.Lookup("count")
		if err != nil || val.Number() != 3 {
			t.Fatalf("assignment not visible: %v (%v)", val, err)
		}
	}
}

func TestEnvironmentUndeclared(t *testing.T) {
	env := NewEnvironment().NewChild()
	if _, err := env.Lookup("missing"); !errors.Is(err, ErrUndeclaredVariable) {
		t.Fatalf("expected UndeclaredVariable on lookup, got %v", err)
	}
	if _, err := env.Assign("missing", NewNull()); !errors.Is(err, ErrUndeclaredVariable) {
		t.Fatalf("expected UndeclaredVariable on assign, got %v", err)
	}
}

func TestEnvironmentConstant(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.Declare("c", NewNumber(5), true); err != nil {
		t.Fatalf("declare: %v", err)
	}
	if !env.IsConstant("c") {
		t.Fatalf("expected c to be constant")
	}
	_, err := env.NewChild().Assign("c", NewNumber(6))
	if !errors.Is(err, ErrAssignToConstant) {
		t.Fatalf("expected AssignToConstant, got %v", err)
	}
	val, _ := env.Lookup("c")
	if val.Number() != 5 {
		t.Fatalf("constant changed to %v", val)
	}
}

func TestEnvironmentNames(t *testing.T) {
	root := NewEnvironment()
	root.Declare("b", NewNull(), false)
	child := root.NewChild()
	child.Declare("a", NewNull(), false)
	want := []string{"a", "b", "false", "null", "true"}
	if diff := cmp.Diff(want, child.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if child.Parent() != root || root.Parent() != nil {
		t.Fatalf("unexpected parent links")
	}
}
