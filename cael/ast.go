package cael

// NodeKind tags each AST variant.
type NodeKind string

const (
	NodeProgram             NodeKind = "Program"
	NodeNumberLiteral       NodeKind = "NumberLiteral"
	NodeStringLiteral       NodeKind = "StringLiteral"
	NodeIdentifier          NodeKind = "Identifier"
	NodeBinaryExpr          NodeKind = "BinaryExpr"
	NodeConditionalExpr     NodeKind = "ConditionalExpr"
	NodeVariableDeclaration NodeKind = "VariableDeclaration"
	NodeVariableAssignment  NodeKind = "VariableAssignment"
	NodePrintStatement      NodeKind = "PrintStatement"
	NodeIfStatement         NodeKind = "IfStatement"
	NodeForStatement        NodeKind = "ForStatement"
	NodeObjectLiteral       NodeKind = "ObjectLiteral"
	NodeProperty            NodeKind = "Property"
	NodeMemberExpr          NodeKind = "MemberExpr"
	NodeCallExpr            NodeKind = "CallExpr"
	NodeFunctionDeclaration NodeKind = "FunctionDeclaration"
)

type Node interface {
	Kind() NodeKind
}

type Statement interface {
	Node
	stmtNode()
}

// Expression nodes can stand wherever a statement is expected.
type Expression interface {
	Statement
	exprNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) Kind() NodeKind { return NodeProgram }
func (p *Program) stmtNode()      {}

type NumberLiteral struct {
	Value float64
}

func (e *NumberLiteral) Kind() NodeKind { return NodeNumberLiteral }
func (e *NumberLiteral) stmtNode()      {}
func (e *NumberLiteral) exprNode()      {}

type StringLiteral struct {
	Value string
}

func (e *StringLiteral) Kind() NodeKind { return NodeStringLiteral }
func (e *StringLiteral) stmtNode()      {}
func (e *StringLiteral) exprNode()      {}

type Identifier struct {
	Name string
}

func (e *Identifier) Kind() NodeKind { return NodeIdentifier }
func (e *Identifier) stmtNode()      {}
func (e *Identifier) exprNode()      {}

type BinaryExpr struct {
	Left     Expression
	Right    Expression
	Operator string
}

func (e *BinaryExpr) Kind() NodeKind { return NodeBinaryExpr }
func (e *BinaryExpr) stmtNode()      {}
func (e *BinaryExpr) exprNode()      {}

// ConditionalExpr is a comparison using <, > or =.
type ConditionalExpr struct {
	Left     Expression
	Right    Expression
	Operator string
}

func (e *ConditionalExpr) Kind() NodeKind { return NodeConditionalExpr }
func (e *ConditionalExpr) stmtNode()      {}
func (e *ConditionalExpr) exprNode()      {}

// VariableDeclaration binds Name in the current scope. Value is nil for
// `let name;`.
type VariableDeclaration struct {
	Name       string
	Value      Expression
	IsConstant bool
}

func (s *VariableDeclaration) Kind() NodeKind { return NodeVariableDeclaration }
func (s *VariableDeclaration) stmtNode()      {}

type VariableAssignment struct {
	Target Expression
	Value  Expression
}

func (e *VariableAssignment) Kind() NodeKind { return NodeVariableAssignment }
func (e *VariableAssignment) stmtNode()      {}
func (e *VariableAssignment) exprNode()      {}

type PrintStatement struct {
	Value Expression
}

func (s *PrintStatement) Kind() NodeKind { return NodePrintStatement }
func (s *PrintStatement) stmtNode()      {}

// IfStatement keeps Else nil when the source has no else arm.
type IfStatement struct {
	Condition Expression
	Then      []Statement
	Else      []Statement
}

func (s *IfStatement) Kind() NodeKind { return NodeIfStatement }
func (s *IfStatement) stmtNode()      {}

type ForStatement struct {
	Init      *VariableDeclaration
	Condition Expression
	Increment *VariableAssignment
	Body      []Statement
}

func (s *ForStatement) Kind() NodeKind { return NodeForStatement }
func (s *ForStatement) stmtNode()      {}

type ObjectLiteral struct {
	Properties []*Property
}

func (e *ObjectLiteral) Kind() NodeKind { return NodeObjectLiteral }
func (e *ObjectLiteral) stmtNode()      {}
func (e *ObjectLiteral) exprNode()      {}

// Property is one key of an object literal. A nil Value is the shorthand
// `{ key }`, which reads the variable of the same name.
type Property struct {
	Key   string
	Value Expression
}

func (p *Property) Kind() NodeKind { return NodeProperty }

type MemberExpr struct {
	Object     Expression
	Property   Expression
	IsComputed bool
}

func (e *MemberExpr) Kind() NodeKind { return NodeMemberExpr }
func (e *MemberExpr) stmtNode()      {}
func (e *MemberExpr) exprNode()      {}

type CallExpr struct {
	Callee    Expression
	Arguments []Expression
}

func (e *CallExpr) Kind() NodeKind { return NodeCallExpr }
func (e *CallExpr) stmtNode()      {}
func (e *CallExpr) exprNode()      {}

// FunctionDeclaration is part of the tree model only; the parser never
// produces it and the evaluator rejects it.
type FunctionDeclaration struct {
	Name       string
	Parameters []string
	Body       []Statement
}

func (s *FunctionDeclaration) Kind() NodeKind { return NodeFunctionDeclaration }
func (s *FunctionDeclaration) stmtNode()      {}
