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

// Binary is implemented by the node types of binary search trees. A nil
// node pointer represents an absent child.
type Binary[N any] interface {
	comparable
	NodeId() common.NodeId
	Key() float64
	LeftChild() N
	RightChild() N
}

// TraverseBinary walks a binary tree in the given order and returns the
// visited keys along with the recorded steps. Leaf order is not defined for
// binary trees.
func TraverseBinary[N Binary[N]](root N, order Order, observer trace.Observer) ([]float64, []trace.Step[N], error) {
	var visited []float64
	var steps []trace.Step[N]
	switch order {
	case InOrder:
		visited, steps = BinaryInOrder(root, observer)
	case PreOrder:
		visited, steps = BinaryPreOrder(root, observer)
	case PostOrder:
		visited, steps = BinaryPostOrder(root, observer)
	case LevelOrder:
		visited, steps = BinaryLevelOrder(root, observer)
	default:
		return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedOrder, order)
	}
	return visited, steps, nil
}

// BinaryInOrder visits left subtree, node, right subtree.
func BinaryInOrder[N Binary[N]](root N, observer trace.Observer) ([]float64, []trace.Step[N]) {
	return walkBinary(root, InOrder, observer)
}

// BinaryPreOrder visits node, left subtree, right subtree.
func BinaryPreOrder[N Binary[N]](root N, observer trace.Observer) ([]float64, []trace.Step[N]) {
	return walkBinary(root, PreOrder, observer)
}

// BinaryPostOrder visits left subtree, right subtree, node.
func BinaryPostOrder[N Binary[N]](root N, observer trace.Observer) ([]float64, []trace.Step[N]) {
	return walkBinary(root, PostOrder, observer)
}

func walkBinary[N Binary[N]](root N, order Order, observer trace.Observer) ([]float64, []trace.Step[N]) {
	v := newVisitor[N, float64](order, observer)
	var zero N
	if root == zero {
		return v.empty()
	}
	var walk func(n N)
	walk = func(n N) {
		if n == zero {
			return
		}
		if order == PreOrder {
			visitBinary(v, n)
		}
		walk(n.LeftChild())
		if order == InOrder {
			visitBinary(v, n)
		}
		walk(n.RightChild())
		if order == PostOrder {
			visitBinary(v, n)
		}
	}
	walk(root)
	return v.finish(trace.FormatValue)
}

// BinaryLevelOrder visits nodes breadth-first, left to right.
func BinaryLevelOrder[N Binary[N]](root N, observer trace.Observer) ([]float64, []trace.Step[N]) {
	v := newVisitor[N, float64](LevelOrder, observer)
	var zero N
	if root == zero {
		return v.empty()
	}
	queue := []N{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		visitBinary(v, n)
		for _, child := range []N{n.LeftChild(), n.RightChild()} {
			if child != zero {
				queue = append(queue, child)
			}
		}
	}
	return v.finish(trace.FormatValue)
}

func visitBinary[N Binary[N]](v *visitor[N, float64], n N) {
	v.enter(n.NodeId())
	v.visited = append(v.visited, n.Key())
	v.rec.Record(v.path, "Visit %s", trace.FormatValue(n.Key()))
}
