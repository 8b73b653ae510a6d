package arith

import (
	"strconv"
	"strings"
)

type NodeKind uint8

const (
	NodeAdd NodeKind = iota + 1
	NodeSub
	NodeMul
	NodeDiv
	NodeNum
)

func (k NodeKind) String() string {
	switch k {
	case NodeAdd:
		return "+"
	case NodeSub:
		return "-"
	case NodeMul:
		return "*"
	case NodeDiv:
		return "/"
	case NodeNum:
		return "num"
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// Node is either *Binary or *Num.
type Node interface {
	Kind() NodeKind
	String() string
	node()
}

type Binary struct {
	Op    NodeKind
	Left  Node
	Right Node
	Pos   Pos
}

type Num struct {
	Value int64
	Pos   Pos
}

var (
	_ Node = new(Binary)
	_ Node = new(Num)
)

func MakeBinary(kind NodeKind, left, right Node) *Binary {
	return &Binary{
		Op:    kind,
		Left:  left,
		Right: right,
	}
}

func MakeLeaf(value int64) *Num {
	return &Num{
		Value: value,
	}
}

func (b *Binary) Kind() NodeKind {
	return b.Op
}

func (n *Num) Kind() NodeKind {
	return NodeNum
}

func (*Binary) node() {}

func (*Num) node() {}

func (b *Binary) String() string {
	var sb strings.Builder
	writeNode(&sb, b)
	return sb.String()
}

func (n *Num) String() string {
	return strconv.FormatInt(n.Value, 10)
}

func writeNode(sb *strings.Builder, node Node) {
	switch node := node.(type) {
	case *Num:
		sb.WriteString(strconv.FormatInt(node.Value, 10))
	case *Binary:
		sb.WriteString("(")
		sb.WriteString(node.Op.String())
		sb.WriteString(" ")
		writeNode(sb, node.Left)
		sb.WriteString(" ")
		writeNode(sb, node.Right)
		sb.WriteString(")")
	}
}

// Depth returns the height of the tree, a leaf being 1.
func Depth(node Node) int {
	b, ok := node.(*Binary)
	if !ok {
		return 1
	}
	return 1 + max(Depth(b.Left), Depth(b.Right))
}
