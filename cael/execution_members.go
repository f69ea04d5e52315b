package cael

import "fmt"

// evalObjectLiteral builds a fresh object. Later duplicate keys win.
func (exec *Execution) evalObjectLiteral(obj *ObjectLiteral, env *Environment) (Value, error) {
	attrs := make(map[string]Value, len(obj.Properties))
	for _, prop := range obj.Properties {
		val, err := exec.evaluate(prop, env)
		if err != nil {
			return NewNull(), err
		}
		attrs[prop.Key] = val
	}
	return NewObject(attrs), nil
}

// evalProperty reads the named variable when the value is omitted ({ x }).
func (exec *Execution) evalProperty(prop *Property, env *Environment) (Value, error) {
	if prop.Value == nil {
		return env.Lookup(prop.Key)
	}
	return exec.evaluate(prop.Value, env)
}

func (exec *Execution) evalMemberExpr(expr *MemberExpr, env *Environment) (Value, error) {
	object, err := exec.evaluate(expr.Object, env)
	if err != nil {
		return NewNull(), err
	}
	if object.Kind() != KindObject {
		return NewNull(), exec.errorf(UnsupportedOperator, "unsupported operator \".\" for %s", object.Kind())
	}
	name, err := exec.memberName(expr, env)
	if err != nil {
		return NewNull(), err
	}
	val, ok := object.Property(name)
	if !ok {
		return NewNull(), exec.errorf(UnknownProperty, "object has no property %q", name)
	}
	return val, nil
}

// memberName resolves the key of a member access. Computed keys are
// evaluated; plain keys are taken from the identifier.
func (exec *Execution) memberName(expr *MemberExpr, env *Environment) (string, error) {
	if !expr.IsComputed {
		if ident, ok := expr.Property.(*Identifier); ok {
			return ident.Name, nil
		}
	}
	key, err := exec.evaluate(expr.Property, env)
	if err != nil {
		return "", err
	}
	switch key.Kind() {
	case KindString:
		return key.Str(), nil
	case KindNumber:
		return formatNumber(key.Number()), nil
	default:
		return "", exec.errorf(UnsupportedOperator, "unsupported operator \".\" with %s key", key.Kind())
	}
}

// evalCallExpr rejects every call. Arguments are not evaluated.
func (exec *Execution) evalCallExpr(call *CallExpr) (Value, error) {
	return NewNull(), exec.errorf(UnsupportedCall, "calls are not supported (callee %s)", calleeName(call.Callee))
}

func calleeName(expr Expression) string {
	switch c := expr.(type) {
	case *Identifier:
		return c.Name
	case *MemberExpr:
		if prop, ok := c.Property.(*Identifier); ok {
			return fmt.Sprintf("%s.%s", calleeName(c.Object), prop.Name)
		}
		return calleeName(c.Object) + "[...]"
	default:
		return "expression"
	}
}
