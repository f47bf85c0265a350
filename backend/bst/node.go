// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package bst

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
)

// Node is a node of a binary search tree. Every value in the left subtree is
// less than Value, every value in the right subtree is greater. The same node
// type is used by the AVL engine, where the height of a node is not stored
// but derived from its subtrees.
type Node struct {
	Id    common.NodeId `json:"id"`
	Value float64       `json:"value"`
	Left  *Node         `json:"left,omitempty"`
	Right *Node         `json:"right,omitempty"`
}

// Clone creates a deep copy of the subtree rooted by n. Node ids are
// preserved. Cloning nil yields nil.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	return &Node{
		Id:    n.Id,
		Value: n.Value,
		Left:  n.Left.Clone(),
		Right: n.Right.Clone(),
	}
}

func (n *Node) NodeId() common.NodeId { return n.Id }
func (n *Node) Key() float64          { return n.Value }
func (n *Node) LeftChild() *Node      { return n.Left }
func (n *Node) RightChild() *Node     { return n.Right }

func (n *Node) String() string {
	if n == nil {
		return "nil"
	}
	return fmt.Sprintf("%s(%v, %v)", trace.FormatValue(n.Value), n.Left, n.Right)
}

// Height returns the number of nodes on the longest path from n down to a
// leaf. The height of nil is 0, the height of a leaf is 1.
func Height(n *Node) int {
	if n == nil {
		return 0
	}
	return max(Height(n.Left), Height(n.Right)) + 1
}

// Balance returns the balance factor height(left) - height(right) of n.
func Balance(n *Node) int {
	if n == nil {
		return 0
	}
	return Height(n.Left) - Height(n.Right)
}

// Size returns the number of nodes in the subtree rooted by n.
func Size(n *Node) int {
	if n == nil {
		return 0
	}
	return Size(n.Left) + Size(n.Right) + 1
}

// Values returns all values of the subtree in sorted order.
func Values(n *Node) []float64 {
	var res []float64
	var collect func(*Node)
	collect = func(n *Node) {
		if n == nil {
			return
		}
		collect(n.Left)
		res = append(res, n.Value)
		collect(n.Right)
	}
	collect(n)
	return res
}

// Contains reports whether value is stored in the tree.
func Contains(root *Node, value float64) bool {
	for n := root; n != nil; {
		switch {
		case value < n.Value:
			n = n.Left
		case value > n.Value:
			n = n.Right
		default:
			return true
		}
	}
	return false
}

// Verify checks the search tree ordering and the uniqueness of node ids.
func Verify(root *Node) error {
	var errs []error
	ids := map[common.NodeId]bool{}
	var check func(n *Node, low, high *float64)
	check = func(n *Node, low, high *float64) {
		if n == nil {
			return
		}
		if ids[n.Id] {
			errs = append(errs, fmt.Errorf("node id %v is used more than once", n.Id))
		}
		ids[n.Id] = true
		if low != nil && n.Value <= *low {
			errs = append(errs, fmt.Errorf("node %v: value %v is not greater than %v", n.Id, n.Value, *low))
		}
		if high != nil && n.Value >= *high {
			errs = append(errs, fmt.Errorf("node %v: value %v is not less than %v", n.Id, n.Value, *high))
		}
		check(n.Left, low, &n.Value)
		check(n.Right, &n.Value, high)
	}
	check(root, nil, nil)
	return errors.Join(errs...)
}

// Fingerprint computes a digest of the tree's shape and values. Node ids do
// not contribute, so structurally equal trees share a fingerprint.
func Fingerprint(root *Node) common.Hash {
	d := common.NewDigester()
	defer d.Release()
	var write func(*Node)
	write = func(n *Node) {
		if n == nil {
			d.Marker(0)
			return
		}
		d.Marker(1)
		d.Float(n.Value)
		write(n.Left)
		write(n.Right)
	}
	write(root)
	return d.Sum()
}

// Print renders the tree as text, one node per line.
func Print(root *Node) string {
	return trace.Render(root, func(n *Node) string {
		return trace.FormatValue(n.Value)
	}, children)
}

func children(n *Node) []*Node {
	if n.Left == nil && n.Right == nil {
		return nil
	}
	return []*Node{n.Left, n.Right}
}
