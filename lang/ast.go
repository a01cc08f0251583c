package lang

//go:generate go tool stringer --linecomment --type NodeKind,Op --output ast_string.go

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// NodeKind distinguishes leaves from operators.
type NodeKind int

const (
	NodeLiteral NodeKind = iota // literal
	NodeBinary                  // binary
)

// Op is a binary arithmetic operator.
type Op int

const (
	OpAdd Op = iota // +
	OpSub           // -
	OpMul           // *
	OpDiv           // /
)

// opOf maps an operator token to its AST operator.
func opOf(k Kind) (Op, bool) {
	switch k {
	case KindPlus:
		return OpAdd, true
	case KindMinus:
		return OpSub, true
	case KindAsterisk:
		return OpMul, true
	case KindSlash:
		return OpDiv, true
	default:
		return 0, false
	}
}

// Node is one vertex of an expression tree.
//
// Literal nodes carry Value. Binary nodes carry Op and both children.
// Pos is the byte offset of the token the node was built from.
// Nodes are not modified after construction.
type Node struct {
	Left  *Node
	Right *Node
	Kind  NodeKind
	Op    Op
	Pos   int
	Value Number
}

// NewLiteral returns a leaf holding v.
func NewLiteral(v Number, pos int) *Node {
	return &Node{Kind: NodeLiteral, Value: v, Pos: pos}
}

// NewBinary returns an operator node over left and right.
func NewBinary(op Op, left, right *Node, pos int) *Node {
	return &Node{Kind: NodeBinary, Op: op, Left: left, Right: right, Pos: pos}
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}

	return 1 + n.Left.Count() + n.Right.Count()
}

// Depth returns the height of the tree rooted at n.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}

	return 1 + max(n.Left.Depth(), n.Right.Depth())
}

// String returns the expression in infix notation with operator subtrees
// parenthesized.
func (n *Node) String() string {
	var b strings.Builder

	n.infix(&b, false)

	return b.String()
}

func (n *Node) infix(b *strings.Builder, nested bool) {
	switch {
	case n == nil:
		b.WriteString("<nil>")

	case n.Kind == NodeLiteral:
		b.WriteString(strconv.Itoa(int(n.Value)))

	default:
		if nested {
			b.WriteByte('(')
		}

		n.Left.infix(b, true)
		b.WriteString(" " + n.Op.String() + " ")
		n.Right.infix(b, true)

		if nested {
			b.WriteByte(')')
		}
	}
}

func writer(w io.Writer) func(eol string, item ...string) error {
	return func(eol string, item ...string) error {
		_, err := io.WriteString(w, strings.Join(item, " ")+eol)

		return err
	}
}

// Print writes an indented outline of the tree rooted at n.
func (n *Node) Print(w io.Writer) error {
	return n.PrintIndent(w, 0)
}

// PrintIndent writes an outline of the tree rooted at n, indenting every
// line by indent levels.
func (n *Node) PrintIndent(w io.Writer, indent int) error {
	prefix := strings.Repeat("  ", indent)
	put := writer(w)

	switch {
	case n == nil:
		return put("\n", prefix+"(nil)")

	case n.Kind == NodeLiteral:
		return put("\n", prefix+"Literal", strconv.Itoa(int(n.Value)))

	default:
		if err := put("\n", prefix+"Binary", n.Op.String()); err != nil {
			return err
		}

		if err := n.Left.PrintIndent(w, indent+1); err != nil {
			return err
		}

		return n.Right.PrintIndent(w, indent+1)
	}
}

// ToMap converts the tree to native Go maps for encoding.
func (n *Node) ToMap() map[string]any {
	if n == nil {
		return nil
	}

	m := map[string]any{
		"kind": n.Kind.String(),
		"pos":  n.Pos,
	}

	switch n.Kind {
	case NodeLiteral:
		m["value"] = int(n.Value)

	case NodeBinary:
		m["op"] = n.Op.String()
		m["left"] = n.Left.ToMap()
		m["right"] = n.Right.ToMap()
	}

	return m
}

// MarshalJSON implements json.Marshaler for Node.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.ToMap())
}

// FormatJSON writes the tree as JSON to the writer.
func (n *Node) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(n, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(n)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the tree as YAML to the writer.
func (n *Node) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, n.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(yamlData)

	return err
}
