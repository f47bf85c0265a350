// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package traversal

import (
	"fmt"

	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
)

// Multiway is implemented by the node types of B-Trees and B+Trees. Leaves
// report no children.
type Multiway[N any] interface {
	comparable
	NodeId() common.NodeId
	NodeKeys() []float64
	NodeChildren() []N
}

// MultiwayInOrder visits the keys of a multiway tree in sorted order by
// interleaving child subtrees and keys: child₀, key₀, child₁, key₁, …,
// keyₙ₋₁, childₙ. Each key visit highlights the key within its node.
func MultiwayInOrder[N Multiway[N]](root N, observer trace.Observer) ([]float64, []trace.Step[N]) {
	v := newVisitor[N, float64](InOrder, observer)
	var zero N
	if root == zero {
		return v.empty()
	}
	var walk func(n N)
	walk = func(n N) {
		keys, children := n.NodeKeys(), n.NodeChildren()
		for i, key := range keys {
			if i < len(children) {
				walk(children[i])
			}
			visitKey(v, n, i, key)
		}
		if len(children) > len(keys) {
			walk(children[len(keys)])
		}
	}
	walk(root)
	return v.finish(trace.FormatValue)
}

// MultiwayLeafKeys visits the keys stored in the leaves of a multiway tree
// from left to right, skipping the keys of inner nodes. This is the in-order
// traversal of trees keeping all keys in their leaves.
func MultiwayLeafKeys[N Multiway[N]](root N, observer trace.Observer) ([]float64, []trace.Step[N]) {
	v := newVisitor[N, float64](InOrder, observer)
	var zero N
	if root == zero {
		return v.empty()
	}
	var walk func(n N)
	walk = func(n N) {
		children := n.NodeChildren()
		if len(children) == 0 {
			for i, key := range n.NodeKeys() {
				visitKey(v, n, i, key)
			}
			return
		}
		v.enter(n.NodeId())
		for _, child := range children {
			walk(child)
		}
	}
	walk(root)
	return v.finish(trace.FormatValue)
}

// MultiwayLevelOrder visits nodes breadth-first; visiting a node visits all
// of its keys at once.
func MultiwayLevelOrder[N Multiway[N]](root N, observer trace.Observer) ([]float64, []trace.Step[N]) {
	v := newVisitor[N, float64](LevelOrder, observer)
	var zero N
	if root == zero {
		return v.empty()
	}
	queue := []N{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		v.enter(n.NodeId())
		v.visited = append(v.visited, n.NodeKeys()...)
		v.rec.Record(v.path, "Visit node %v", trace.FormatValues(n.NodeKeys()))
		queue = append(queue, n.NodeChildren()...)
	}
	return v.finish(trace.FormatValue)
}

func visitKey[N Multiway[N]](v *visitor[N, float64], n N, index int, key float64) {
	v.enter(n.NodeId())
	v.visited = append(v.visited, key)
	v.rec.RecordKey(trace.KeyHighlight{Node: n.NodeId(), Index: index}, v.path, "Visit %s", trace.FormatValue(key))
}

// Chained is implemented by B+Tree nodes whose leaves are linked left to
// right.
type Chained[N any] interface {
	Multiway[N]
	NextLeaf() N
}

// LeafChain visits the keys of all leaves by starting at the leftmost leaf
// and following the leaf links. The descent to the leftmost leaf is recorded
// as well.
func LeafChain[N Chained[N]](root N, observer trace.Observer) ([]float64, []trace.Step[N]) {
	v := newVisitor[N, float64](LeafOrder, observer)
	var zero N
	if root == zero {
		return v.empty()
	}
	leaf := root
	for children := leaf.NodeChildren(); len(children) > 0; children = leaf.NodeChildren() {
		v.enter(leaf.NodeId())
		v.rec.Record(v.path, "Descend to the leftmost child of node %v", trace.FormatValues(leaf.NodeKeys()))
		leaf = children[0]
	}
	for leaf != zero {
		for i, key := range leaf.NodeKeys() {
			visitKey(v, leaf, i, key)
		}
		if next := leaf.NextLeaf(); next != zero {
			v.rec.Record(v.path.With(next.NodeId()), "Follow the link to the next leaf %v", trace.FormatValues(next.NodeKeys()))
		}
		leaf = leaf.NextLeaf()
	}
	return v.finish(trace.FormatValue)
}

// TraverseMultiway walks a multiway tree in the given order.
func TraverseMultiway[N Multiway[N]](root N, order Order, observer trace.Observer) ([]float64, []trace.Step[N], error) {
	switch order {
	case InOrder:
		visited, steps := MultiwayInOrder(root, observer)
		return visited, steps, nil
	case LevelOrder:
		visited, steps := MultiwayLevelOrder(root, observer)
		return visited, steps, nil
	}
	return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedOrder, order)
}
