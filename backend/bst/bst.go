// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package bst implements traced operations on unbalanced binary search
// trees. All mutating operations work on a private copy of their input tree
// and return the new root along with the steps leading to it.
package bst

import (
	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
)

// Step is a recorded step of a binary search tree operation.
type Step = trace.Step[*Node]

// Engine performs traced binary search tree operations. Node ids are drawn
// from an allocator owned by the engine, so ids are unique among all trees
// produced by the same engine.
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

// Build inserts the given values one after another into an empty tree.
func (e *Engine) Build(values []float64) (*Node, []Step) {
	var root *Node
	rec := trace.NewRecorder("build", func() *Node { return root.Clone() }, e.observer)
	pending := trace.FormatValues(values)
	for i, value := range values {
		rec.Process(pending[i], pending[i+1:])
		Attach(rec, &e.ids, &root, value)
	}
	rec.Process("", nil)
	rec.Record(nil, "Binary search tree built with %d nodes", Size(root))
	return root, rec.Finish()
}

// Insert adds value to the tree. Inserting a value that is already present
// leaves the tree unchanged.
func (e *Engine) Insert(root *Node, value float64) (*Node, []Step) {
	root = root.Clone()
	v := trace.FormatValue(value)
	rec := trace.NewRecorder("insert "+v, func() *Node { return root.Clone() }, e.observer)
	rec.Process(v, nil)
	Attach(rec, &e.ids, &root, value)
	return root, rec.Finish()
}

// Delete removes value from the tree. Deleting an absent value leaves the
// tree unchanged.
func (e *Engine) Delete(root *Node, value float64) (*Node, []Step) {
	root = root.Clone()
	v := trace.FormatValue(value)
	rec := trace.NewRecorder("delete "+v, func() *Node { return root.Clone() }, e.observer)
	rec.Process(v, nil)
	if root == nil {
		rec.Record(nil, "Tree is empty, nothing to delete")
		return root, rec.Finish()
	}
	if links, path, found := Locate(rec, &root, value); found {
		Remove(rec, links, path)
		rec.Record(nil, "%s deleted", v)
	}
	return root, rec.Finish()
}

// Search looks for value without modifying the tree. The steps of a search
// carry no snapshots.
func (e *Engine) Search(root *Node, value float64) []Step {
	v := trace.FormatValue(value)
	rec := trace.NewRecorder[*Node]("search "+v, nil, e.observer)
	rec.Process(v, nil)
	if root == nil {
		rec.Record(nil, "Tree is empty, %s not found", v)
		return rec.Finish()
	}
	Locate(rec, &root, value)
	return rec.Finish()
}
