// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package bplustree

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/backend/traversal"
	"github.com/Fantom-foundation/treetrace/common"
	"golang.org/x/exp/slices"
)

// Contains reports whether value is stored in a leaf of the tree.
func Contains(root *Node, value float64) bool {
	if root == nil {
		return false
	}
	n := root
	for !n.Leaf {
		n = n.Children[n.childFor(value)]
	}
	_, found := slices.BinarySearch(n.Keys, value)
	return found
}

// Height returns the number of levels of the tree.
func Height(root *Node) int {
	height := 0
	for n := root; n != nil; height++ {
		if n.Leaf {
			break
		}
		n = n.Children[0]
	}
	return height
}

// Size returns the number of keys stored in the leaves.
func Size(root *Node) int {
	size := 0
	for leaf := leftmostLeaf(root); leaf != nil; leaf = leaf.Next {
		size += len(leaf.Keys)
	}
	return size
}

// Values returns all keys in ascending order by following the leaf chain.
func Values(root *Node) []float64 {
	var res []float64
	for leaf := leftmostLeaf(root); leaf != nil; leaf = leaf.Next {
		res = append(res, leaf.Keys...)
	}
	return res
}

// Traverse walks the tree. In-order visits the leaf keys only, level order
// visits all nodes including their routing keys, and leaf order follows the
// leaf chain.
func Traverse(root *Node, order traversal.Order) ([]float64, []Step, error) {
	return traverse(root, order, nil)
}

// Traverse walks the tree in the given order, reporting the steps to the
// engine's observer.
func (e *Engine) Traverse(root *Node, order traversal.Order) ([]float64, []Step, error) {
	return traverse(root, order, e.observer)
}

func traverse(root *Node, order traversal.Order, observer trace.Observer) ([]float64, []Step, error) {
	var visited []float64
	var steps []Step
	switch order {
	case traversal.InOrder:
		visited, steps = traversal.MultiwayLeafKeys(root, observer)
	case traversal.LevelOrder:
		visited, steps = traversal.MultiwayLevelOrder(root, observer)
	case traversal.LeafOrder:
		visited, steps = traversal.LeafChain(root, observer)
	default:
		return nil, nil, fmt.Errorf("%w: %v", traversal.ErrUnsupportedOrder, order)
	}
	return visited, steps, nil
}

// Verify checks the structural invariants of a B+Tree of minimum degree t:
// the number of keys and children per node, the ordering of keys, equal leaf
// depth, that every routing key equals the smallest key of the subtree right
// of it, and that the leaf chain links all leaves from left to right.
func Verify(root *Node, t int) error {
	if root == nil {
		return nil
	}
	var errs []error
	ids := map[common.NodeId]bool{}
	var leaves []*Node
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
			if low != nil && key < *low {
				errs = append(errs, fmt.Errorf("key %v of node %v is less than %v", key, n.Id, *low))
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
			leaves = append(leaves, n)
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
				if first := leftmostLeaf(child); len(first.Keys) > 0 && first.Keys[0] != n.Keys[i-1] {
					errs = append(errs, fmt.Errorf("routing key %v of node %v differs from the smallest key %v of its right subtree", n.Keys[i-1], n.Id, first.Keys[0]))
				}
			}
			if i < len(n.Keys) {
				childHigh = &n.Keys[i]
			}
			check(child, depth+1, childLow, childHigh)
		}
	}
	check(root, 0, nil, nil)

	for i, leaf := range leaves {
		var want *Node
		if i+1 < len(leaves) {
			want = leaves[i+1]
		}
		if leaf.Next != want {
			errs = append(errs, fmt.Errorf("leaf %v is linked to %v instead of %v", leaf.Id, idOf(leaf.Next), idOf(want)))
		}
	}
	return errors.Join(errs...)
}

func idOf(n *Node) common.NodeId {
	if n == nil {
		return common.NoNode
	}
	return n.Id
}

// Fingerprint computes a digest of the tree's shape, keys and leaf links.
// Node ids do not contribute.
func Fingerprint(root *Node) common.Hash {
	d := common.NewDigester()
	defer d.Release()
	position := map[*Node]int{}
	var write func(*Node)
	write = func(n *Node) {
		if n == nil {
			d.Marker(0)
			return
		}
		position[n] = len(position) + 1
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
	for leaf := leftmostLeaf(root); leaf != nil; leaf = leaf.Next {
		d.Int(position[leaf])
	}
	return d.Sum()
}

// Print renders the tree as text, one node per line. Leaves show the id of
// the next leaf in the chain.
func Print(root *Node) string {
	return trace.Render(root, func(n *Node) string {
		if n.Leaf && n.Next != nil {
			return label(n) + " → " + n.Next.Id.String()
		}
		return label(n)
	}, func(n *Node) []*Node {
		return n.Children
	})
}
