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
	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
	"golang.org/x/exp/slices"
)

// The functions in this file are the traced building blocks of binary
// search tree operations. They operate on links, i.e. the addresses of the
// child pointers (or the root variable) referencing a node, so that every
// structural change is immediately visible from the root and recorded
// snapshots never lag behind their narration. They are shared by the BST and
// the AVL engine.

// Attach descends from the root to the position of value and attaches a new
// node there. It returns the links of all nodes passed on the way down, the
// highlighted path ending in the new node, and whether a node was attached.
// If value is already present, nothing is changed.
func Attach(rec *trace.Recorder[*Node], ids *common.IdAllocator, root **Node, value float64) ([]**Node, trace.Path, bool) {
	var links []**Node
	var path trace.Path
	link := root
	v := trace.FormatValue(value)
	for *link != nil {
		n := *link
		links = append(links, link)
		path = path.With(n.Id)
		switch {
		case value < n.Value:
			rec.Record(path, "Compare %s with %s: smaller, go left", v, trace.FormatValue(n.Value))
			link = &n.Left
		case value > n.Value:
			rec.Record(path, "Compare %s with %s: greater, go right", v, trace.FormatValue(n.Value))
			link = &n.Right
		default:
			rec.Record(path, "%s already exists, skipping", v)
			return links, path, false
		}
	}

	node := &Node{Id: ids.Next(), Value: value}
	*link = node
	path = path.With(node.Id)
	if len(links) == 0 {
		rec.Record(path, "Tree is empty, %s becomes the root", v)
	} else {
		parent := *links[len(links)-1]
		side := "right"
		if parent.Left == node {
			side = "left"
		}
		rec.Record(path, "Insert %s as %s child of %s", v, side, trace.FormatValue(parent.Value))
	}
	return links, path, true
}

// Locate descends from the root towards value, recording one step per
// comparison. It returns the links of the visited nodes and the highlighted
// path. If value is present, the last link references its node.
func Locate(rec *trace.Recorder[*Node], root **Node, value float64) ([]**Node, trace.Path, bool) {
	var links []**Node
	var path trace.Path
	v := trace.FormatValue(value)
	for link := root; *link != nil; {
		n := *link
		links = append(links, link)
		path = path.With(n.Id)
		switch {
		case value < n.Value:
			rec.Record(path, "Compare %s with %s: smaller, go left", v, trace.FormatValue(n.Value))
			link = &n.Left
		case value > n.Value:
			rec.Record(path, "Compare %s with %s: greater, go right", v, trace.FormatValue(n.Value))
			link = &n.Right
		default:
			rec.Record(path, "Found %s", v)
			return links, path, true
		}
	}
	rec.Record(path, "%s not found in the tree", v)
	return links, path, false
}

// Remove unlinks the node referenced by the last of the given links, which
// must be the links from the root down to that node. A leaf is dropped, a
// node with a single child is replaced by that child, and a node with two
// children takes over the value of its in-order successor, which is then
// removed from the right subtree in turn.
//
// The result lists the links of all remaining nodes whose subtrees changed,
// ordered from the root downwards. Balancing trees revisit these bottom-up.
func Remove(rec *trace.Recorder[*Node], links []**Node, path trace.Path) []**Node {
	link := links[len(links)-1]
	n := *link
	v := trace.FormatValue(n.Value)
	above := links[:len(links)-1]
	switch {
	case n.Left == nil && n.Right == nil:
		*link = nil
		rec.Record(path[:len(path)-1], "%s is a leaf, remove it", v)
		return above
	case n.Left == nil || n.Right == nil:
		child, side := n.Left, "left"
		if child == nil {
			child, side = n.Right, "right"
		}
		*link = child
		rec.Record(path[:len(path)-1].With(child.Id), "%s has only a %s child, promote %s into its place", v, side, trace.FormatValue(child.Value))
		return above
	}

	successorLinks := slices.Clone(links)
	successorPath := path
	rec.Record(path, "%s has two children, look for its in-order successor in the right subtree", v)
	for l := &n.Right; ; l = &(*l).Left {
		successorLinks = append(successorLinks, l)
		successorPath = successorPath.With((*l).Id)
		if (*l).Left == nil {
			break
		}
		rec.Record(successorPath, "%s has a left child, keep going left", trace.FormatValue((*l).Value))
	}
	successor := *successorLinks[len(successorLinks)-1]
	s := trace.FormatValue(successor.Value)
	rec.Record(successorPath, "In-order successor of %s is %s", v, s)

	n.Value = successor.Value
	rec.Record(successorPath, "Replace %s by %s, then remove the successor's original node", v, s)
	return Remove(rec, successorLinks, successorPath)
}
