package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/mgomes/cael/cael"
)

// lintWarning locates an issue by the 1-based index of the top-level
// statement containing it; tokens carry no source positions.
type lintWarning struct {
	Statement int
	Message   string
}

func analyzeCommand(args []string) error {
	_, optind, err := getopt.Getopts(args, "")
	if err != nil {
		return fmt.Errorf("cael analyze: %w", err)
	}
	remaining := args[optind:]
	if len(remaining) == 0 {
		return errors.New("cael analyze: script path required")
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	source, err := loadSource(scriptPath, false)
	if err != nil {
		return err
	}

	var warnings []lintWarning
	engine := cael.NewEngine(cael.Config{
		OnWarning: func(w *cael.Error) {
			warnings = append(warnings, lintWarning{Message: w.Message})
		},
	})
	script, err := engine.Compile(source)
	if err != nil {
		return fmt.Errorf("analysis compile failed: %w", err)
	}

	warnings = append(warnings, analyzeProgram(script.Program())...)
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		if warning.Statement == 0 {
			fmt.Printf("%s: %s\n", scriptPath, warning.Message)
			continue
		}
		fmt.Printf("%s: statement %d: %s\n", scriptPath, warning.Statement, warning.Message)
	}
	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

func analyzeProgram(program *cael.Program) []lintWarning {
	warnings := make([]lintWarning, 0)
	for i, stmt := range program.Statements {
		l := &linter{statement: i + 1, warnings: &warnings}
		l.visit(stmt)
	}
	return warnings
}

type linter struct {
	statement int
	warnings  *[]lintWarning
}

func (l *linter) warn(format string, args ...any) {
	*l.warnings = append(*l.warnings, lintWarning{
		Statement: l.statement,
		Message:   fmt.Sprintf(format, args...),
	})
}

func (l *linter) statements(stmts []cael.Statement) {
	for _, stmt := range stmts {
		l.visit(stmt)
	}
}

func (l *linter) visit(stmt cael.Statement) {
	switch typed := stmt.(type) {
	case *cael.VariableDeclaration:
		if typed.Value != nil {
			l.expression(typed.Value)
		}
	case *cael.PrintStatement:
		l.expression(typed.Value)
	case *cael.IfStatement:
		l.expression(typed.Condition)
		l.statements(typed.Then)
		l.statements(typed.Else)
	case *cael.ForStatement:
		if typed.Init != nil {
			l.visit(typed.Init)
		}
		l.expression(typed.Condition)
		if typed.Increment != nil {
			l.expression(typed.Increment)
		}
		for _, body := range typed.Body {
			if decl, ok := body.(*cael.VariableDeclaration); ok {
				l.warn("declaration of %q in loop body fails on the second iteration", decl.Name)
			}
		}
		l.statements(typed.Body)
	case cael.Expression:
		l.expression(typed)
	}
}

func (l *linter) expression(expr cael.Expression) {
	switch typed := expr.(type) {
	case *cael.BinaryExpr:
		l.expression(typed.Left)
		l.expression(typed.Right)
	case *cael.ConditionalExpr:
		l.expression(typed.Left)
		l.expression(typed.Right)
	case *cael.VariableAssignment:
		if ident, ok := typed.Target.(*cael.Identifier); ok {
			if isBuiltinConstant(ident.Name) {
				l.warn("assignment to built-in constant %q always fails", ident.Name)
			}
		} else {
			l.warn("assignment target is not a variable")
		}
		l.expression(typed.Value)
	case *cael.ObjectLiteral:
		for _, prop := range typed.Properties {
			if prop.Value != nil {
				l.expression(prop.Value)
			}
		}
	case *cael.MemberExpr:
		switch typed.Object.(type) {
		case *cael.NumberLiteral, *cael.StringLiteral:
			l.warn("member access on a %s always fails", typed.Object.Kind())
		}
		l.expression(typed.Object)
	case *cael.CallExpr:
		l.warn("call expressions are not supported and always fail")
		l.expression(typed.Callee)
		for _, arg := range typed.Arguments {
			l.expression(arg)
		}
	}
}
