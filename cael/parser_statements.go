package cael

func (p *parser) parseStatement() (Statement, error) {
	switch p.current().Type {
	case tokenLet, tokenConst:
		return p.parseVariableDeclaration()
	case tokenPrint:
		return p.parsePrintStatement()
	case tokenIf:
		return p.parseIfStatement()
	case tokenFor:
		return p.parseForStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseExpressionStatement() (Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	// Assignments consume their own terminator; any other expression may be
	// followed by one.
	if _, isAssign := expr.(*VariableAssignment); !isAssign && p.at(tokenSemicolon) {
		p.advance()
	}
	return expr, nil
}

func (p *parser) parseVariableDeclaration() (*VariableDeclaration, error) {
	keyword := p.advance()
	isConst := keyword.Type == tokenConst

	name, err := p.expect(tokenIdent, "identifier")
	if err != nil {
		return nil, err
	}

	if p.at(tokenSemicolon) {
		if isConst {
			return nil, p.errorf("constant %q must be assigned a value", name.Literal)
		}
		p.advance()
		return &VariableDeclaration{Name: name.Literal, IsConstant: false}, nil
	}

	if _, err := p.expect(tokenAssign, "'=' or ';'"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenSemicolon, "';'"); err != nil {
		return nil, err
	}
	return &VariableDeclaration{Name: name.Literal, Value: value, IsConstant: isConst}, nil
}

func (p *parser) parsePrintStatement() (*PrintStatement, error) {
	p.advance()
	if _, err := p.expect(tokenLParen, "'(' after print"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenRParen, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenSemicolon, "';'"); err != nil {
		return nil, err
	}
	return &PrintStatement{Value: value}, nil
}

func (p *parser) parseIfStatement() (*IfStatement, error) {
	p.advance()
	if _, err := p.expect(tokenLParen, "'(' after if"); err != nil {
		return nil, err
	}
	condition, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenRParen, "')'"); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &IfStatement{Condition: condition, Then: then}
	if p.at(tokenElse) {
		p.advance()
		alternate, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = alternate
	}
	return stmt, nil
}

// parseForStatement reads `for (let i = 0; i < n; i = i + 1;) { ... }`. The
// declaration and the increment carry their own semicolons; the one after the
// condition is optional.
func (p *parser) parseForStatement() (*ForStatement, error) {
	p.advance()
	if _, err := p.expect(tokenLParen, "'(' after for"); err != nil {
		return nil, err
	}
	if !p.at(tokenLet, tokenConst) {
		return nil, p.errorExpected("loop variable declaration")
	}
	init, err := p.parseVariableDeclaration()
	if err != nil {
		return nil, err
	}
	condition, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if p.at(tokenSemicolon) {
		p.advance()
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	increment, ok := expr.(*VariableAssignment)
	if !ok {
		return nil, p.errorf("expected assignment as loop increment, got %s", expr.Kind())
	}
	if _, err := p.expect(tokenRParen, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ForStatement{Init: init, Condition: condition, Increment: increment, Body: body}, nil
}

func (p *parser) parseBlock() ([]Statement, error) {
	if _, err := p.expect(tokenLBrace, "'{'"); err != nil {
		return nil, err
	}
	stmts := []Statement{}
	for !p.at(tokenRBrace) && !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(tokenRBrace, "'}'"); err != nil {
		return nil, err
	}
	return stmts, nil
}
