package cael

func (exec *Execution) evalCondition(cond Expression, env *Environment) (bool, error) {
	val, err := exec.evaluate(cond, env)
	if err != nil {
		return false, err
	}
	if val.Kind() != KindBool {
		return false, exec.errorf(InvalidComparison, "condition must be a bool, got %s", val.Kind())
	}
	return val.Bool(), nil
}

// evalIfStatement runs the chosen branch in a scope that is dropped on exit.
func (exec *Execution) evalIfStatement(stmt *IfStatement, env *Environment) (Value, error) {
	ok, err := exec.evalCondition(stmt.Condition, env)
	if err != nil {
		return NewNull(), err
	}
	body := stmt.Then
	if !ok {
		body = stmt.Else
	}
	if body == nil {
		return NewNull(), nil
	}
	if _, err := exec.evalStatements(body, env.NewChild()); err != nil {
		return NewNull(), err
	}
	return NewNull(), nil
}

// evalForStatement uses a single scope for the initializer, every pass of
// the body and the increment. A declaration in the body therefore collides
// with itself on the second iteration.
func (exec *Execution) evalForStatement(stmt *ForStatement, env *Environment) (Value, error) {
	scope := env.NewChild()
	if stmt.Init != nil {
		if _, err := exec.evaluate(stmt.Init, scope); err != nil {
			return NewNull(), err
		}
	}
	for {
		ok, err := exec.evalCondition(stmt.Condition, scope)
		if err != nil {
			return NewNull(), err
		}
		if !ok {
			return NewNull(), nil
		}
		if _, err := exec.evalStatements(stmt.Body, scope); err != nil {
			return NewNull(), err
		}
		if stmt.Increment != nil {
			if _, err := exec.evaluate(stmt.Increment, scope); err != nil {
				return NewNull(), err
			}
		}
	}
}
