// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package rbtree implements traced operations on red-black trees. Every node
// is red or black, the root is black, a red node has no red child, and every
// path from a node down to a missing child passes the same number of black
// nodes.
package rbtree

import (
	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
)

// Step is a recorded step of a red-black tree operation.
type Step = trace.Step[*Node]

// Engine performs traced red-black tree operations.
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
		e.insert(rec, &root, value)
	}
	rec.Process("", nil)
	rec.Record(nil, "Red-black tree built with %d nodes, black height %d", Size(root), BlackHeight(root))
	return root, rec.Finish()
}

// Insert adds value to the tree as a red node and restores the red-black
// properties by recoloring and rotating.
func (e *Engine) Insert(root *Node, value float64) (*Node, []Step) {
	root = root.Clone()
	v := trace.FormatValue(value)
	rec := trace.NewRecorder("insert "+v, func() *Node { return root.Clone() }, e.observer)
	rec.Process(v, nil)
	e.insert(rec, &root, value)
	return root, rec.Finish()
}

// Search looks for value without modifying the tree.
func (e *Engine) Search(root *Node, value float64) []Step {
	v := trace.FormatValue(value)
	rec := trace.NewRecorder[*Node]("search "+v, nil, e.observer)
	rec.Process(v, nil)
	locate(rec, root, value)
	return rec.Finish()
}

func (e *Engine) insert(rec *trace.Recorder[*Node], root **Node, value float64) {
	v := trace.FormatValue(value)
	var parent *Node
	var path trace.Path
	for n := *root; n != nil; {
		path = path.With(n.Id)
		switch {
		case value < n.Value:
			rec.Record(path, "Compare %s with %s: smaller, go left", v, label(n))
			parent, n = n, n.Left
		case value > n.Value:
			rec.Record(path, "Compare %s with %s: greater, go right", v, label(n))
			parent, n = n, n.Right
		default:
			rec.Record(path, "%s already exists, skipping", v)
			return
		}
	}

	z := &Node{Id: e.ids.Next(), Value: value, Color: Red, Parent: parent}
	path = path.With(z.Id)
	switch {
	case parent == nil:
		*root = z
		rec.Record(path, "Tree is empty, %s becomes the root", v)
	case value < parent.Value:
		parent.Left = z
		rec.Record(path, "Insert %s as red left child of %s", v, label(parent))
	default:
		parent.Right = z
		rec.Record(path, "Insert %s as red right child of %s", v, label(parent))
	}

	insertFixup(rec, root, z)
	blackenRoot(rec, *root)
}

// insertFixup resolves a red node z with a red parent, moving up the tree
// while the uncle of z is red.
func insertFixup(rec *trace.Recorder[*Node], root **Node, z *Node) {
	for isRed(z.Parent) {
		p := z.Parent
		g := p.Parent
		if p == g.Left {
			u := g.Right
			if isRed(u) {
				p.Color, u.Color, g.Color = Black, Black, Red
				rec.Record(ids(z, p, u, g), "Parent %s and uncle %s are red: color them black and grandparent %s red", label(p), label(u), label(g))
				z = g
				continue
			}
			if z == p.Right {
				rotateLeft(root, p)
				rec.Record(ids(z, p), "Uncle of %s is black and %s is an inner child: rotate left at parent %s", label(z), label(z), label(p))
				z, p = p, z
			}
			p.Color, g.Color = Black, Red
			rotateRight(root, g)
			rec.Record(ids(z, p, g), "Uncle of %s is black: color %s black and %s red, rotate right at %s", label(z), label(p), label(g), label(g))
		} else {
			u := g.Left
			if isRed(u) {
				p.Color, u.Color, g.Color = Black, Black, Red
				rec.Record(ids(z, p, u, g), "Parent %s and uncle %s are red: color them black and grandparent %s red", label(p), label(u), label(g))
				z = g
				continue
			}
			if z == p.Left {
				rotateRight(root, p)
				rec.Record(ids(z, p), "Uncle of %s is black and %s is an inner child: rotate right at parent %s", label(z), label(z), label(p))
				z, p = p, z
			}
			p.Color, g.Color = Black, Red
			rotateLeft(root, g)
			rec.Record(ids(z, p, g), "Uncle of %s is black: color %s black and %s red, rotate left at %s", label(z), label(p), label(g), label(g))
		}
	}
}

func blackenRoot(rec *trace.Recorder[*Node], root *Node) {
	if isRed(root) {
		root.Color = Black
		rec.Record(ids(root), "Color the root %s black", label(root))
	}
}

// locate narrates the search for value. It returns the node holding value,
// or nil.
func locate(rec *trace.Recorder[*Node], root *Node, value float64) *Node {
	v := trace.FormatValue(value)
	if root == nil {
		rec.Record(nil, "Tree is empty, %s not found", v)
		return nil
	}
	var path trace.Path
	for n := root; n != nil; {
		path = path.With(n.Id)
		switch {
		case value < n.Value:
			rec.Record(path, "Compare %s with %s: smaller, go left", v, label(n))
			n = n.Left
		case value > n.Value:
			rec.Record(path, "Compare %s with %s: greater, go right", v, label(n))
			n = n.Right
		default:
			rec.Record(path, "Found %s", v)
			return n
		}
	}
	rec.Record(path, "%s not found in the tree", v)
	return nil
}

// ids lists the ids of the given nodes, skipping missing ones.
func ids(nodes ...*Node) []common.NodeId {
	res := make([]common.NodeId, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			res = append(res, n.Id)
		}
	}
	return res
}
