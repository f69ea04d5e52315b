package cael

import (
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Describe renders node as an ordered YAML mapping. Field order follows the
// node definition so dumps stay stable between runs.
func Describe(node Node) *yaml.Node {
	if node == nil {
		return scalar("!!null", "null")
	}
	m := mapping("kind", scalar("!!str", string(node.Kind())))
	switch n := node.(type) {
	case *Program:
		m.add("statements", describeStatements(n.Statements))
	case *NumberLiteral:
		m.add("value", numberNode(n.Value))
	case *StringLiteral:
		m.add("value", scalar("!!str", n.Value))
	case *Identifier:
		m.add("name", scalar("!!str", n.Name))
	case *BinaryExpr:
		m.add("operator", scalar("!!str", n.Operator))
		m.add("left", describeExpr(n.Left))
		m.add("right", describeExpr(n.Right))
	case *ConditionalExpr:
		m.add("operator", scalar("!!str", n.Operator))
		m.add("left", describeExpr(n.Left))
		m.add("right", describeExpr(n.Right))
	case *VariableDeclaration:
		m.add("name", scalar("!!str", n.Name))
		m.add("constant", scalar("!!bool", strconv.FormatBool(n.IsConstant)))
		m.add("value", describeExpr(n.Value))
	case *VariableAssignment:
		m.add("target", describeExpr(n.Target))
		m.add("value", describeExpr(n.Value))
	case *PrintStatement:
		m.add("value", describeExpr(n.Value))
	case *IfStatement:
		m.add("condition", describeExpr(n.Condition))
		m.add("then", describeStatements(n.Then))
		if n.Else != nil {
			m.add("else", describeStatements(n.Else))
		}
	case *ForStatement:
		if n.Init != nil {
			m.add("init", Describe(n.Init))
		}
		m.add("condition", describeExpr(n.Condition))
		if n.Increment != nil {
			m.add("increment", Describe(n.Increment))
		}
		m.add("body", describeStatements(n.Body))
	case *ObjectLiteral:
		props := sequence()
		for _, prop := range n.Properties {
			props.Content = append(props.Content, Describe(prop))
		}
		m.add("properties", props)
	case *Property:
		m.add("key", scalar("!!str", n.Key))
		if n.Value != nil {
			m.add("value", describeExpr(n.Value))
		}
	case *MemberExpr:
		m.add("object", describeExpr(n.Object))
		m.add("property", describeExpr(n.Property))
		m.add("computed", scalar("!!bool", strconv.FormatBool(n.IsComputed)))
	case *CallExpr:
		m.add("callee", describeExpr(n.Callee))
		args := sequence()
		for _, arg := range n.Arguments {
			args.Content = append(args.Content, describeExpr(arg))
		}
		m.add("arguments", args)
	case *FunctionDeclaration:
		m.add("name", scalar("!!str", n.Name))
		params := sequence()
		params.Style = yaml.FlowStyle
		for _, param := range n.Parameters {
			params.Content = append(params.Content, scalar("!!str", param))
		}
		m.add("parameters", params)
		m.add("body", describeStatements(n.Body))
	}
	return m.Node
}

// DescribeYAML marshals the description of node.
func DescribeYAML(node Node) (string, error) {
	out, err := yaml.Marshal(Describe(node))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

type yamlMap struct {
	*yaml.Node
}

func mapping(key string, value *yaml.Node) yamlMap {
	m := yamlMap{&yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
	m.add(key, value)
	return m
}

func (m yamlMap) add(key string, value *yaml.Node) {
	m.Content = append(m.Content, scalar("!!str", key), value)
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// numberNode tags integral values as !!int so they dump without a tag.
func numberNode(n float64) *yaml.Node {
	switch {
	case math.IsNaN(n):
		return scalar("!!float", ".nan")
	case math.IsInf(n, 1):
		return scalar("!!float", ".inf")
	case math.IsInf(n, -1):
		return scalar("!!float", "-.inf")
	case n == math.Trunc(n):
		return scalar("!!int", formatNumber(n))
	default:
		return scalar("!!float", formatNumber(n))
	}
}

func sequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func describeStatements(stmts []Statement) *yaml.Node {
	seq := sequence()
	for _, stmt := range stmts {
		seq.Content = append(seq.Content, Describe(stmt))
	}
	return seq
}

// describeExpr avoids wrapping a typed nil in the Node interface.
func describeExpr(expr Expression) *yaml.Node {
	if expr == nil {
		return scalar("!!null", "null")
	}
	return Describe(expr)
}
