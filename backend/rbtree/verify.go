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
	"errors"
	"fmt"

	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/backend/traversal"
	"github.com/Fantom-foundation/treetrace/common"
)

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

// Size returns the number of nodes in the tree.
func Size(n *Node) int {
	if n == nil {
		return 0
	}
	return Size(n.Left) + Size(n.Right) + 1
}

// Height returns the number of nodes on the longest path from the root down
// to a leaf.
func Height(n *Node) int {
	if n == nil {
		return 0
	}
	return max(Height(n.Left), Height(n.Right)) + 1
}

// BlackHeight returns the number of black nodes on the leftmost path from
// the root down to a missing child.
func BlackHeight(root *Node) int {
	height := 0
	for n := root; n != nil; n = n.Left {
		if n.Color == Black {
			height++
		}
	}
	return height
}

// Values returns all values of the tree in ascending order.
func Values(root *Node) []float64 {
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
	collect(root)
	return res
}

// Traverse walks the tree in the given order. All orders but leaf order are
// supported.
func Traverse(root *Node, order traversal.Order) ([]float64, []Step, error) {
	return traversal.TraverseBinary(root, order, nil)
}

// Traverse walks the tree in the given order, reporting the steps to the
// engine's observer.
func (e *Engine) Traverse(root *Node, order traversal.Order) ([]float64, []Step, error) {
	return traversal.TraverseBinary(root, order, e.observer)
}

// Verify checks the red-black properties, the search tree ordering, and the
// consistency of parent links.
func Verify(root *Node) error {
	if root == nil {
		return nil
	}
	var errs []error
	if root.Color != Black {
		errs = append(errs, fmt.Errorf("root %v is not black", root.Id))
	}
	if root.Parent != nil {
		errs = append(errs, fmt.Errorf("root %v has a parent", root.Id))
	}
	ids := map[common.NodeId]bool{}
	var check func(n *Node, low, high *float64) int
	check = func(n *Node, low, high *float64) int {
		if n == nil {
			return 1
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
		for _, child := range []*Node{n.Left, n.Right} {
			if child == nil {
				continue
			}
			if child.Parent != n {
				errs = append(errs, fmt.Errorf("node %v does not link to its parent %v", child.Id, n.Id))
			}
			if n.Color == Red && child.Color == Red {
				errs = append(errs, fmt.Errorf("red node %v has red child %v", n.Id, child.Id))
			}
		}
		left := check(n.Left, low, &n.Value)
		right := check(n.Right, &n.Value, high)
		if left != right {
			errs = append(errs, fmt.Errorf("node %v: black heights of subtrees differ, %d vs. %d", n.Id, left, right))
		}
		if n.Color == Black {
			left++
		}
		return left
	}
	check(root, nil, nil)
	return errors.Join(errs...)
}

// Fingerprint computes a digest of the tree's shape, values and colors. Node
// ids do not contribute.
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
		d.Bool(n.Color == Red)
		write(n.Left)
		write(n.Right)
	}
	write(root)
	return d.Sum()
}

// Print renders the tree as text, one node per line.
func Print(root *Node) string {
	return trace.Render(root, func(n *Node) string {
		return label(n) + " " + n.Color.String()
	}, func(n *Node) []*Node {
		if n.Left == nil && n.Right == nil {
			return nil
		}
		return []*Node{n.Left, n.Right}
	})
}
