// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package btree

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
		index, exists := n.findItem(value)
		if exists {
			return true
		}
		if n.Leaf {
			return false
		}
		n = n.Children[index]
	}
	return false
}

// Height returns the number of levels of the tree.
func Height(root *Node) int {
	height := 0
	for n := root; n != nil; height++ {
		if n.Leaf {
			n = nil
		} else {
			n = n.Children[0]
		}
	}
	return height
}

// Size returns the number of keys stored in the tree.
func Size(root *Node) int {
	if root == nil {
		return 0
	}
	size := len(root.Keys)
	for _, child := range root.Children {
		size += Size(child)
	}
	return size
}

// Values returns all keys of the tree in ascending order.
func Values(root *Node) []float64 {
	var res []float64
	forEach(root, func(key float64) {
		res = append(res, key)
	})
	return res
}

// forEach iterates ordered keys of the subtree including its children.
func forEach(n *Node, callback func(float64)) {
	if n == nil {
		return
	}
	for i, key := range n.Keys {
		if !n.Leaf {
			forEach(n.Children[i], callback)
		}
		callback(key)
	}
	if !n.Leaf {
		forEach(n.Children[len(n.Keys)], callback)
	}
}

// Traverse walks the tree in in-order or level order.
func Traverse(root *Node, order traversal.Order) ([]float64, []Step, error) {
	return traversal.TraverseMultiway(root, order, nil)
}

// Traverse walks the tree in the given order, reporting the steps to the
// engine's observer.
func (e *Engine) Traverse(root *Node, order traversal.Order) ([]float64, []Step, error) {
	return traversal.TraverseMultiway(root, order, e.observer)
}

// Verify checks the structural invariants of a B-Tree of minimum degree t:
// the number of keys per node, the ordering of keys within nodes and across
// subtrees, the number of children of inner nodes, and that all leaves are on
// the same level.
func Verify(root *Node, t int) error {
	if root == nil {
		return nil
	}
	var errs []error
	ids := map[common.NodeId]bool{}
	leafDepth := -1
	var check func(n *Node, depth int, low, high *float64)
	check = func(n *Node, depth int, low, high *float64) {
		if ids[n.Id] {
			errs = append(errs, fmt.Errorf("node id %v is used more than once", n.Id))
		}
		ids[n.Id] = true

		least := t - 1
		if n == root {
			least = 1
		}
		if len(n.Keys) < least || len(n.Keys) > 2*t-1 {
			errs = append(errs, fmt.Errorf("node %v holds %d keys, expected between %d and %d", n.Id, len(n.Keys), least, 2*t-1))
		}
		for i, key := range n.Keys {
			if i > 0 && n.Keys[i-1] >= key {
				errs = append(errs, fmt.Errorf("keys of node %v are not strictly increasing: %v", n.Id, n.Keys))
			}
			if low != nil && key <= *low {
				errs = append(errs, fmt.Errorf("key %v of node %v is not greater than %v", key, n.Id, *low))
			}
			if high != nil && key >= *high {
				errs = append(errs, fmt.Errorf("key %v of node %v is not less than %v", key, n.Id, *high))
			}
		}

		if n.Leaf {
			if len(n.Children) != 0 {
				errs = append(errs, fmt.Errorf("leaf %v has %d children", n.Id, len(n.Children)))
			}
			if leafDepth < 0 {
				leafDepth = depth
			} else if leafDepth != depth {
				errs = append(errs, fmt.Errorf("leaf %v is at depth %d, expected %d", n.Id, depth, leafDepth))
			}
			return
		}
		if len(n.Children) != len(n.Keys)+1 {
			errs = append(errs, fmt.Errorf("inner node %v has %d keys but %d children", n.Id, len(n.Keys), len(n.Children)))
			return
		}
		for i, child := range n.Children {
			childLow, childHigh := low, high
			if i > 0 {
				childLow = &n.Keys[i-1]
			}
			if i < len(n.Keys) {
				childHigh = &n.Keys[i]
			}
			check(child, depth+1, childLow, childHigh)
		}
	}
	check(root, 0, nil, nil)
	return errors.Join(errs...)
}

// Fingerprint computes a digest of the tree's shape and keys. Node ids do not
// contribute.
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
		d.Bool(n.Leaf)
		d.Int(len(n.Keys))
		for _, key := range n.Keys {
			d.Float(key)
		}
		d.Int(len(n.Children))
		for _, child := range n.Children {
			write(child)
		}
	}
	write(root)
	return d.Sum()
}

// Print renders the tree as text, one node per line.
func Print(root *Node) string {
	return trace.Render(root, label, func(n *Node) []*Node {
		return n.Children
	})
}
