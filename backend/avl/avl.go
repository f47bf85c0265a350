// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package avl implements traced operations on AVL trees, i.e. binary search
// trees in which the heights of the two subtrees of every node differ by at
// most one. Nodes are shared with the bst package; node heights are derived
// from the tree rather than stored.
package avl

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/treetrace/backend/bst"
	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/backend/traversal"
	"github.com/Fantom-foundation/treetrace/common"
)

// Node is a node of an AVL tree.
type Node = bst.Node

// Step is a recorded step of an AVL tree operation.
type Step = trace.Step[*Node]

// Engine performs traced AVL tree operations.
type Engine struct {
	ids      common.IdAllocator
	observer trace.Observer
}

// NewEngine creates an engine reporting to the given observer, which may be
// nil.
func NewEngine(observer trace.Observer) *Engine {
	if observer == nil {
		observer = trace.NilObserver{}
	}
	return &Engine{observer: observer}
}

// Build inserts the given values one after another into an empty tree,
// rebalancing after every insertion.
func (e *Engine) Build(values []float64) (*Node, []Step) {
	var root *Node
	rec := trace.NewRecorder("build", func() *Node { return root.Clone() }, e.observer)
	pending := trace.FormatValues(values)
	for i, value := range values {
		rec.Process(pending[i], pending[i+1:])
		e.insert(rec, &root, value)
	}
	rec.Process("", nil)
	rec.Record(nil, "AVL tree built with %d nodes", bst.Size(root))
	return root, rec.Finish()
}

// Insert adds value to the tree and restores the balance of all ancestors of
// the new node.
func (e *Engine) Insert(root *Node, value float64) (*Node, []Step) {
	root = root.Clone()
	v := trace.FormatValue(value)
	rec := trace.NewRecorder("insert "+v, func() *Node { return root.Clone() }, e.observer)
	rec.Process(v, nil)
	e.insert(rec, &root, value)
	return root, rec.Finish()
}

// Delete removes value from the tree and restores the balance of all nodes
// on the path to the physically removed node.
func (e *Engine) Delete(root *Node, value float64) (*Node, []Step) {
	root = root.Clone()
	v := trace.FormatValue(value)
	rec := trace.NewRecorder("delete "+v, func() *Node { return root.Clone() }, e.observer)
	rec.Process(v, nil)
	if root == nil {
		rec.Record(nil, "Tree is empty, nothing to delete")
		return root, rec.Finish()
	}
	links, path, found := bst.Locate(rec, &root, value)
	if !found {
		return root, rec.Finish()
	}
	changed := bst.Remove(rec, links, path)
	rebalance(rec, changed, func(n *Node) bool {
		return bst.Balance(n.Left) >= 0
	}, func(n *Node) bool {
		return bst.Balance(n.Right) <= 0
	})
	rec.Record(nil, "%s deleted", v)
	return root, rec.Finish()
}

// Search looks for value without modifying the tree.
func (e *Engine) Search(root *Node, value float64) []Step {
	v := trace.FormatValue(value)
	rec := trace.NewRecorder[*Node]("search "+v, nil, e.observer)
	rec.Process(v, nil)
	if root == nil {
		rec.Record(nil, "Tree is empty, %s not found", v)
		return rec.Finish()
	}
	bst.Locate(rec, &root, value)
	return rec.Finish()
}

// Traverse walks the tree in the given order.
func Traverse(root *Node, order traversal.Order) ([]float64, []Step, error) {
	return bst.Traverse(root, order)
}

// Traverse walks the tree in the given order, reporting the steps to the
// engine's observer.
func (e *Engine) Traverse(root *Node, order traversal.Order) ([]float64, []Step, error) {
	return traversal.TraverseBinary(root, order, e.observer)
}

// Verify checks the search tree ordering and that the balance factor of every
// node is within [-1, 1].
func Verify(root *Node) error {
	errs := []error{bst.Verify(root)}
	var check func(*Node)
	check = func(n *Node) {
		if n == nil {
			return
		}
		if b := bst.Balance(n); b < -1 || b > 1 {
			errs = append(errs, fmt.Errorf("node %v with value %v is unbalanced, balance factor %d", n.Id, n.Value, b))
		}
		check(n.Left)
		check(n.Right)
	}
	check(root)
	return errors.Join(errs...)
}

func (e *Engine) insert(rec *trace.Recorder[*Node], root **Node, value float64) {
	links, _, inserted := bst.Attach(rec, &e.ids, root, value)
	if !inserted {
		return
	}
	// An insertion below the left child of a left-heavy node is a left-left
	// case, anything else a left-right case; mirrored for the right side.
	rebalance(rec, links, func(n *Node) bool {
		return value < n.Left.Value
	}, func(n *Node) bool {
		return value > n.Right.Value
	})
}

// rebalance checks the balance factor of the nodes referenced by the given
// links, deepest first, and rotates where a node is out of balance. The
// outer functions decide for a left-heavy or right-heavy node whether a
// single rotation suffices.
func rebalance(rec *trace.Recorder[*Node], links []**Node, leftOuter, rightOuter func(*Node) bool) {
	for i := len(links) - 1; i >= 0; i-- {
		link := links[i]
		n := *link
		v := trace.FormatValue(n.Value)
		path := pathTo(links[:i+1])
		b := bst.Balance(n)
		if b >= -1 && b <= 1 {
			rec.Record(path, "Balance factor of %s is %d, balanced", v, b)
			continue
		}
		rec.Record(path, "Balance factor of %s is %d, unbalanced", v, b)

		if b > 1 {
			if leftOuter(n) {
				rec.Record(path.With(n.Left.Id), "Left-Left case at %s", v)
			} else {
				child := n.Left
				rec.Record(path.With(child.Id, child.Right.Id), "Left-Right case at %s, rotate %s left first", v, trace.FormatValue(child.Value))
				n.Left = rotateLeft(child)
				rec.Record([]common.NodeId{child.Id, n.Left.Id}, "Rotated left at %s", trace.FormatValue(child.Value))
			}
			pivot := n.Left
			*link = rotateRight(n)
			rec.Record([]common.NodeId{n.Id, pivot.Id}, "Rotated right at %s, %s takes its place", v, trace.FormatValue(pivot.Value))
			continue
		}

		if rightOuter(n) {
			rec.Record(path.With(n.Right.Id), "Right-Right case at %s", v)
		} else {
			child := n.Right
			rec.Record(path.With(child.Id, child.Left.Id), "Right-Left case at %s, rotate %s right first", v, trace.FormatValue(child.Value))
			n.Right = rotateRight(child)
			rec.Record([]common.NodeId{child.Id, n.Right.Id}, "Rotated right at %s", trace.FormatValue(child.Value))
		}
		pivot := n.Right
		*link = rotateLeft(n)
		rec.Record([]common.NodeId{n.Id, pivot.Id}, "Rotated left at %s, %s takes its place", v, trace.FormatValue(pivot.Value))
	}
}

// pathTo lists the ids of the nodes currently referenced by the given links.
func pathTo(links []**Node) trace.Path {
	res := make(trace.Path, len(links))
	for i, link := range links {
		res[i] = (*link).Id
	}
	return res
}

func rotateRight(n *Node) *Node {
	pivot := n.Left
	n.Left = pivot.Right
	pivot.Right = n
	return pivot
}

func rotateLeft(n *Node) *Node {
	pivot := n.Right
	n.Right = pivot.Left
	pivot.Left = n
	return pivot
}
