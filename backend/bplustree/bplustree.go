// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package bplustree implements traced operations on B+Trees of a configurable
// minimum degree t. All keys live in the leaves, which form a linked list in
// ascending order; inner nodes hold copies of keys for routing.
package bplustree

import (
	"github.com/Fantom-foundation/treetrace/backend/input"
	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
	"golang.org/x/exp/slices"
)

// Step is a recorded step of a B+Tree operation.
type Step = trace.Step[*Node]

// Engine performs traced B+Tree operations.
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

// Build inserts the given values one after another into an empty tree of
// minimum degree t.
func (e *Engine) Build(values []float64, t int) (*Node, []Step, error) {
	if err := input.ValidateDegree(t); err != nil {
		return nil, nil, err
	}
	var root *Node
	rec := trace.NewRecorder("build", func() *Node { return root.Clone() }, e.observer)
	pending := trace.FormatValues(values)
	for i, value := range values {
		rec.Process(pending[i], pending[i+1:])
		e.insert(rec, &root, value, t)
	}
	rec.Process("", nil)
	rec.Record(nil, "B+Tree of minimum degree %d built with %d keys and height %d", t, Size(root), Height(root))
	return root, rec.Finish(), nil
}

// Insert adds value to a tree of minimum degree t. Inserting a value that is
// already present leaves the tree unchanged.
func (e *Engine) Insert(root *Node, value float64, t int) (*Node, []Step, error) {
	if err := input.ValidateDegree(t); err != nil {
		return nil, nil, err
	}
	root = root.Clone()
	v := trace.FormatValue(value)
	rec := trace.NewRecorder("insert "+v, func() *Node { return root.Clone() }, e.observer)
	rec.Process(v, nil)
	e.insert(rec, &root, value, t)
	return root, rec.Finish(), nil
}

// Search looks for value without modifying the tree. The search always ends
// in a leaf, even if value appears as a routing key on the way down.
func (e *Engine) Search(root *Node, value float64) []Step {
	v := trace.FormatValue(value)
	rec := trace.NewRecorder[*Node]("search "+v, nil, e.observer)
	rec.Process(v, nil)
	locate(rec, root, value)
	return rec.Finish()
}

func (e *Engine) insert(rec *trace.Recorder[*Node], root **Node, value float64, t int) {
	v := trace.FormatValue(value)
	if *root == nil {
		*root = &Node{Id: e.ids.Next(), Keys: []float64{value}, Leaf: true}
		rec.RecordKey(trace.KeyHighlight{Node: (*root).Id}, []common.NodeId{(*root).Id}, "Tree is empty, create a root leaf holding %s", v)
		return
	}
	if Contains(*root, value) {
		locate(rec, *root, value)
		rec.Record(nil, "%s already exists, skipping", v)
		return
	}

	if len((*root).Keys) >= 2*t-1 {
		e.growRoot(rec, root, t)
	}

	var ancestors []*Node
	var path trace.Path
	n := *root
	for !n.Leaf {
		path = path.With(n.Id)
		index := n.childFor(value)
		if len(n.Children[index].Keys) >= 2*t-1 {
			rec.Record(path.With(n.Children[index].Id), "Child %s is full, split it before descending", label(n.Children[index]))
			splitChild(rec, &e.ids, n, index, t)
			index = n.childFor(value)
		}
		child := n.Children[index]
		rec.Record(path.With(child.Id), "Route %s through %s to child %d", v, label(n), index)
		ancestors = append(ancestors, n)
		n = child
	}

	index, _ := slices.BinarySearch(n.Keys, value)
	n.Keys = slices.Insert(n.Keys, index, value)
	path = path.With(n.Id)
	rec.RecordKey(trace.KeyHighlight{Node: n.Id, Index: index}, path, "Insert %s into leaf at position %d", v, index)

	for len(n.Keys) >= 2*t-1 {
		if len(ancestors) == 0 {
			e.growRoot(rec, root, t)
			return
		}
		parent := ancestors[len(ancestors)-1]
		ancestors = ancestors[:len(ancestors)-1]
		rec.Record([]common.NodeId{parent.Id, n.Id}, "Node %s reached %d keys, split it", label(n), len(n.Keys))
		splitChild(rec, &e.ids, parent, slices.Index(parent.Children, n), t)
		n = parent
	}
}

// growRoot splits the full root below a new root, increasing the height of
// the tree by one.
func (e *Engine) growRoot(rec *trace.Recorder[*Node], root **Node, t int) {
	old := *root
	rec.Record([]common.NodeId{old.Id}, "Root %s is full, split it and grow a new root", label(old))
	*root = &Node{Id: e.ids.Next(), Children: []*Node{old}}
	splitChild(rec, &e.ids, *root, 0, t)
}

// locate narrates the search for value from the root down to a leaf.
func locate(rec *trace.Recorder[*Node], root *Node, value float64) bool {
	v := trace.FormatValue(value)
	if root == nil {
		rec.Record(nil, "Tree is empty, %s not found", v)
		return false
	}
	var path trace.Path
	n := root
	for !n.Leaf {
		path = path.With(n.Id)
		index := n.childFor(value)
		rec.Record(path, "Route %s through %s to child %d", v, label(n), index)
		n = n.Children[index]
	}
	path = path.With(n.Id)
	index, found := slices.BinarySearch(n.Keys, value)
	if found {
		rec.RecordKey(trace.KeyHighlight{Node: n.Id, Index: index}, path, "Found %s in leaf %s at position %d", v, label(n), index)
		return true
	}
	rec.Record(path, "%s not found, leaf %s does not contain it", v, label(n))
	return false
}
