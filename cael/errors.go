package cael

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates every failure the pipeline can report.
type ErrorKind int

const (
	LexicalWarning ErrorKind = iota + 1
	UnterminatedString
	SyntaxError
	DuplicateDeclaration
	UndeclaredVariable
	AssignToConstant
	InvalidAssignmentTarget
	UnsupportedOperator
	InvalidComparison
	DivisionByZero
	UnknownProperty
	UnsupportedCall
	StepQuotaExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalWarning:
		return "LexicalWarning"
	case UnterminatedString:
		return "UnterminatedString"
	case SyntaxError:
		return "SyntaxError"
	case DuplicateDeclaration:
		return "DuplicateDeclaration"
	case UndeclaredVariable:
		return "UndeclaredVariable"
	case AssignToConstant:
		return "AssignToConstant"
	case InvalidAssignmentTarget:
		return "InvalidAssignmentTarget"
	case UnsupportedOperator:
		return "UnsupportedOperator"
	case InvalidComparison:
		return "InvalidComparison"
	case DivisionByZero:
		return "DivisionByZero"
	case UnknownProperty:
		return "UnknownProperty"
	case UnsupportedCall:
		return "UnsupportedCall"
	case StepQuotaExceeded:
		return "StepQuotaExceeded"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Stage names the pipeline phase that produced an error.
type Stage string

const (
	StageLexing       Stage = "lexing"
	StageParsing      Stage = "parsing"
	StageEnvironment  Stage = "environment"
	StageInterpreting Stage = "interpreting"
)

// Error is the single error type returned by the lexer, parser, environment
// and evaluator.
type Error struct {
	Kind    ErrorKind
	Stage   Stage
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s: %s", e.Stage, e.Kind, e.Message)
}

// Is matches another *Error of the same kind, so the exported sentinels work
// with errors.Is.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind && other.Message == ""
}

// Sentinels for errors.Is comparisons.
var (
	ErrLexicalWarning          = &Error{Kind: LexicalWarning}
	ErrUnterminatedString      = &Error{Kind: UnterminatedString}
	ErrSyntax                  = &Error{Kind: SyntaxError}
	ErrDuplicateDeclaration    = &Error{Kind: DuplicateDeclaration}
	ErrUndeclaredVariable      = &Error{Kind: UndeclaredVariable}
	ErrAssignToConstant        = &Error{Kind: AssignToConstant}
	ErrInvalidAssignmentTarget = &Error{Kind: InvalidAssignmentTarget}
	ErrUnsupportedOperator     = &Error{Kind: UnsupportedOperator}
	ErrInvalidComparison       = &Error{Kind: InvalidComparison}
	ErrDivisionByZero          = &Error{Kind: DivisionByZero}
	ErrUnknownProperty         = &Error{Kind: UnknownProperty}
	ErrUnsupportedCall         = &Error{Kind: UnsupportedCall}
	ErrStepQuotaExceeded       = &Error{Kind: StepQuotaExceeded}
)

// KindOf reports the ErrorKind carried by err, or 0 when err is not a *Error.
func KindOf(err error) ErrorKind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return 0
}

func newError(kind ErrorKind, stage Stage, format string, args ...any) *Error {
	return &Error{Kind: kind, Stage: stage, Message: fmt.Sprintf(format, args...)}
}
