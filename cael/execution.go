package cael

import (
	"fmt"
	"io"
)

// Execution holds the state of one evaluation run. It is not safe for
// concurrent use.
type Execution struct {
	out   io.Writer
	quota int
	steps int
}

func newExecution(engine *Engine) *Execution {
	return &Execution{
		out:   engine.config.Stdout,
		quota: engine.config.StepQuota,
	}
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return newError(StepQuotaExceeded, StageInterpreting, "step quota exceeded (%d)", exec.quota)
	}
	return nil
}

func (exec *Execution) errorf(kind ErrorKind, format string, args ...any) error {
	return newError(kind, StageInterpreting, format, args...)
}

// evaluate dispatches on the concrete node type. Every variant of the tree
// model has a case.
func (exec *Execution) evaluate(node Node, env *Environment) (Value, error) {
	if err := exec.step(); err != nil {
		return NewNull(), err
	}
	switch n := node.(type) {
	case *Program:
		return exec.evalStatements(n.Statements, env)
	case *NumberLiteral:
		return NewNumber(n.Value), nil
	case *StringLiteral:
		return NewString(n.Value), nil
	case *Identifier:
		return env.Lookup(n.Name)
	case *BinaryExpr:
		return exec.evalBinaryExpr(n, env)
	case *ConditionalExpr:
		return exec.evalConditionalExpr(n, env)
	case *VariableDeclaration:
		return exec.evalVariableDeclaration(n, env)
	case *VariableAssignment:
		return exec.evalVariableAssignment(n, env)
	case *PrintStatement:
		return exec.evalPrintStatement(n, env)
	case *IfStatement:
		return exec.evalIfStatement(n, env)
	case *ForStatement:
		return exec.evalForStatement(n, env)
	case *ObjectLiteral:
		return exec.evalObjectLiteral(n, env)
	case *Property:
		return exec.evalProperty(n, env)
	case *MemberExpr:
		return exec.evalMemberExpr(n, env)
	case *CallExpr:
		return exec.evalCallExpr(n)
	case *FunctionDeclaration:
		return NewNull(), exec.errorf(UnsupportedCall, "function declarations are not supported (function %q)", n.Name)
	case nil:
		return NewNull(), exec.errorf(SyntaxError, "missing node")
	default:
		return NewNull(), exec.errorf(SyntaxError, "unsupported node %T", node)
	}
}

// evalStatements runs stmts in order in env and returns the last value.
func (exec *Execution) evalStatements(stmts []Statement, env *Environment) (Value, error) {
	result := NewNull()
	for _, stmt := range stmts {
		val, err := exec.evaluate(stmt, env)
		if err != nil {
			return NewNull(), err
		}
		result = val
	}
	return result, nil
}

func (exec *Execution) evalVariableDeclaration(decl *VariableDeclaration, env *Environment) (Value, error) {
	value := NewNull()
	if decl.Value != nil {
		val, err := exec.evaluate(decl.Value, env)
		if err != nil {
			return NewNull(), err
		}
		value = val
	}
	return env.Declare(decl.Name, value, decl.IsConstant)
}

func (exec *Execution) evalVariableAssignment(assign *VariableAssignment, env *Environment) (Value, error) {
	target, ok := assign.Target.(*Identifier)
	if !ok {
		return NewNull(), exec.errorf(InvalidAssignmentTarget, "cannot assign to %s", describeTarget(assign.Target))
	}
	value, err := exec.evaluate(assign.Value, env)
	if err != nil {
		return NewNull(), err
	}
	return env.Assign(target.Name, value)
}

func (exec *Execution) evalPrintStatement(stmt *PrintStatement, env *Environment) (Value, error) {
	value, err := exec.evaluate(stmt.Value, env)
	if err != nil {
		return NewNull(), err
	}
	if _, err := fmt.Fprintln(exec.out, value.String()); err != nil {
		return NewNull(), fmt.Errorf("print: %w", err)
	}
	return NewNull(), nil
}

func describeTarget(expr Expression) string {
	switch t := expr.(type) {
	case *MemberExpr:
		if prop, ok := t.Property.(*Identifier); ok {
			return fmt.Sprintf("member .%s", prop.Name)
		}
		return "member expression"
	case nil:
		return "nothing"
	default:
		return string(expr.Kind())
	}
}
