// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package rbtree

import (
	"encoding/json"
	"fmt"

	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
)

// Color is the color of a red-black tree node.
type Color byte

const (
	Red Color = iota
	Black
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// MarshalText encodes a color by its name.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Node is a node of a red-black tree. Parent links a node to the node owning
// it; it is encoded by id.
type Node struct {
	Id     common.NodeId `json:"id"`
	Value  float64       `json:"value"`
	Color  Color         `json:"color"`
	Left   *Node         `json:"left,omitempty"`
	Right  *Node         `json:"right,omitempty"`
	Parent *Node         `json:"-"`
}

// MarshalJSON encodes the node with its parent link replaced by the id of the
// parent.
func (n *Node) MarshalJSON() ([]byte, error) {
	type plain Node
	parent := common.NoNode
	if n.Parent != nil {
		parent = n.Parent.Id
	}
	return json.Marshal(struct {
		*plain
		ParentId common.NodeId `json:"parent,omitempty"`
	}{(*plain)(n), parent})
}

// Clone creates a deep copy of the subtree rooted by n, preserving ids. The
// parent of the copied root is nil.
func (n *Node) Clone() *Node {
	return n.clone(nil)
}

func (n *Node) clone(parent *Node) *Node {
	if n == nil {
		return nil
	}
	res := &Node{
		Id:     n.Id,
		Value:  n.Value,
		Color:  n.Color,
		Parent: parent,
	}
	res.Left = n.Left.clone(res)
	res.Right = n.Right.clone(res)
	return res
}

func (n *Node) NodeId() common.NodeId { return n.Id }
func (n *Node) Key() float64          { return n.Value }
func (n *Node) LeftChild() *Node      { return n.Left }
func (n *Node) RightChild() *Node     { return n.Right }

func (n *Node) String() string {
	if n == nil {
		return "nil"
	}
	return fmt.Sprintf("%s%s(%v, %v)", trace.FormatValue(n.Value), colorMark(n.Color), n.Left, n.Right)
}

func colorMark(c Color) string {
	if c == Red {
		return "R"
	}
	return "B"
}

func isRed(n *Node) bool {
	return n != nil && n.Color == Red
}

func label(n *Node) string {
	return trace.FormatValue(n.Value)
}

// rotateLeft turns the right child of x into the parent of x.
func rotateLeft(root **Node, x *Node) {
	y := x.Right
	x.Right = y.Left
	if y.Left != nil {
		y.Left.Parent = x
	}
	replace(root, x, y)
	y.Left = x
	x.Parent = y
}

// rotateRight turns the left child of x into the parent of x.
func rotateRight(root **Node, x *Node) {
	y := x.Left
	x.Left = y.Right
	if y.Right != nil {
		y.Right.Parent = x
	}
	replace(root, x, y)
	y.Right = x
	x.Parent = y
}

// replace puts n into the position of old below the parent of old.
func replace(root **Node, old, n *Node) {
	switch {
	case old.Parent == nil:
		*root = n
	case old == old.Parent.Left:
		old.Parent.Left = n
	default:
		old.Parent.Right = n
	}
	if n != nil {
		n.Parent = old.Parent
	}
}
