package cael

import "math"

func (exec *Execution) evalBinaryExpr(expr *BinaryExpr, env *Environment) (Value, error) {
	left, err := exec.evaluate(expr.Left, env)
	if err != nil {
		return NewNull(), err
	}
	right, err := exec.evaluate(expr.Right, env)
	if err != nil {
		return NewNull(), err
	}
	return exec.binaryOp(expr.Operator, left, right)
}

// binaryOp applies operator to a pair of already evaluated operands.
func (exec *Execution) binaryOp(operator string, left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindNumber && right.Kind() == KindNumber:
		return exec.arithmetic(operator, left.Number(), right.Number())
	case left.Kind() == KindString && right.Kind() == KindString:
		if operator == "+" {
			return NewString(left.Str() + right.Str()), nil
		}
	case left.Kind() == KindNumber && right.Kind() == KindString:
		if operator == "+" {
			return NewString(formatNumber(left.Number()) + right.Str()), nil
		}
	case left.Kind() == KindString && right.Kind() == KindNumber:
		if operator == "+" {
			return NewString(left.Str() + formatNumber(right.Number())), nil
		}
	case left.Kind() == KindBool && right.Kind() == KindString:
		if isArithmeticOperator(operator) {
			return NewString(formatBool(left.Bool()) + right.Str()), nil
		}
	case left.Kind() == KindString && right.Kind() == KindBool:
		if isArithmeticOperator(operator) {
			return NewString(left.Str() + formatBool(right.Bool())), nil
		}
	}
	return NewNull(), exec.errorf(UnsupportedOperator, "unsupported operator %q for %s and %s", operator, left.Kind(), right.Kind())
}

func (exec *Execution) arithmetic(operator string, left, right float64) (Value, error) {
	switch operator {
	case "+":
		return NewNumber(left + right), nil
	case "-":
		return NewNumber(left - right), nil
	case "*":
		return NewNumber(left * right), nil
	case "/":
		return NewNumber(left / right), nil
	case "%":
		divisor := math.Trunc(right)
		if divisor == 0 {
			return NewNull(), exec.errorf(DivisionByZero, "modulo by zero")
		}
		// A NaN or infinite operand has no integer part.
		if !isFinite(left) || !isFinite(divisor) {
			return NewNumber(math.NaN()), nil
		}
		return NewNumber(math.Mod(math.Trunc(left), divisor)), nil
	default:
		return NewNull(), exec.errorf(UnsupportedOperator, "unsupported operator %q for number and number", operator)
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func isArithmeticOperator(operator string) bool {
	switch operator {
	case "+", "-", "*", "/", "%":
		return true
	}
	return false
}

func (exec *Execution) evalConditionalExpr(expr *ConditionalExpr, env *Environment) (Value, error) {
	left, err := exec.evaluate(expr.Left, env)
	if err != nil {
		return NewNull(), err
	}
	right, err := exec.evaluate(expr.Right, env)
	if err != nil {
		return NewNull(), err
	}
	return exec.compare(expr.Operator, left, right)
}

// compare allows ordering only between numbers; strings and booleans support
// equality alone.
func (exec *Execution) compare(operator string, left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindNumber && right.Kind() == KindNumber:
		l, r := left.Number(), right.Number()
		switch operator {
		case "<":
			return NewBool(l < r), nil
		case ">":
			return NewBool(l > r), nil
		case "=":
			return NewBool(l == r), nil
		}
	case left.Kind() == KindString && right.Kind() == KindString:
		if operator == "=" {
			return NewBool(left.Str() == right.Str()), nil
		}
	case left.Kind() == KindBool && right.Kind() == KindBool:
		if operator == "=" {
			return NewBool(left.Bool() == right.Bool()), nil
		}
	}
	return NewNull(), exec.errorf(InvalidComparison, "cannot compare %s %s %s", left.Kind(), operator, right.Kind())
}
