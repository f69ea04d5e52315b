package cael

import "strconv"

// parseExpression is the assignment level: additive [= additive ;].
func (p *parser) parseExpression() (Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if !p.at(tokenAssign) {
		return left, nil
	}
	p.advance()
	value, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenSemicolon, "';' after assignment"); err != nil {
		return nil, err
	}
	return &VariableAssignment{Target: left, Value: value}, nil
}

// parseConditional reads `additive (< | > | =) additive`. Operand types are
// checked at evaluation time.
func (p *parser) parseConditional() (*ConditionalExpr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if !p.at(tokenLT, tokenGT, tokenAssign) {
		return nil, p.errorExpected("comparison operator '<', '>' or '='")
	}
	operator := p.advance().Literal
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &ConditionalExpr{Left: left, Right: right, Operator: operator}, nil
}

func (p *parser) parseAdditive() (Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.at(tokenPlus, tokenMinus) {
		operator := p.advance().Literal
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Right: right, Operator: operator}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Expression, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for p.at(tokenAsterisk, tokenSlash, tokenPercent) {
		operator := p.advance().Literal
		right, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Right: right, Operator: operator}
	}
	return left, nil
}

// parsePostfix handles member access and call chains such as a.b(c).d.
func (p *parser) parsePostfix() (Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(tokenDot):
			p.advance()
			name, err := p.expect(tokenIdent, "property name after '.'")
			if err != nil {
				return nil, err
			}
			expr = &MemberExpr{Object: expr, Property: &Identifier{Name: name.Literal}}
		case p.at(tokenLParen):
			args, err := p.parseCallArguments()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{Callee: expr, Arguments: args}
		default:
			return expr, nil
		}
	}
}

func (p *parser) parseCallArguments() ([]Expression, error) {
	p.advance()
	args := []Expression{}
	for !p.at(tokenRParen) {
		arg, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.at(tokenComma) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(tokenRParen, "')' after arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parsePrimary() (Expression, error) {
	tok := p.current()
	switch tok.Type {
	case tokenNumber:
		p.advance()
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf("invalid number literal %s", tok.Literal)
		}
		return &NumberLiteral{Value: value}, nil
	case tokenString:
		p.advance()
		return &StringLiteral{Value: tok.Literal}, nil
	case tokenIdent:
		p.advance()
		return &Identifier{Name: tok.Literal}, nil
	case tokenLParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenRParen, "closing parenthesis"); err != nil {
			return nil, err
		}
		return expr, nil
	case tokenLBrace:
		return p.parseObjectLiteral()
	default:
		return nil, p.errorExpected("expression")
	}
}

// parseObjectLiteral reads `{ key: value, other, }`. Values are additive
// expressions; a bare key reads the variable of the same name.
func (p *parser) parseObjectLiteral() (Expression, error) {
	p.advance()
	obj := &ObjectLiteral{Properties: []*Property{}}
	for !p.at(tokenRBrace) {
		key, err := p.expect(tokenIdent, "property key")
		if err != nil {
			return nil, err
		}
		prop := &Property{Key: key.Literal}
		if p.at(tokenColon) {
			p.advance()
			value, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			prop.Value = value
		}
		obj.Properties = append(obj.Properties, prop)
		if !p.at(tokenComma) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(tokenRBrace, "'}' after object properties"); err != nil {
		return nil, err
	}
	return obj, nil
}
