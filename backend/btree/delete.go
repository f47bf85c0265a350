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
	"github.com/Fantom-foundation/treetrace/backend/input"
	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
)

// Delete removes value from a tree of minimum degree t. Deleting an absent
// value leaves the tree unchanged.
//
// The deletion runs top-down in a single pass: before it descends into a
// child holding only t-1 keys, the child is refilled by borrowing from a
// sibling or merging with it, so that removing a key further down never
// leaves a node with too few keys.
func (e *Engine) Delete(root *Node, value float64, t int) (*Node, []Step, error) {
	if err := input.ValidateDegree(t); err != nil {
		return nil, nil, err
	}
	root = root.Clone()
	v := trace.FormatValue(value)
	rec := trace.NewRecorder("delete "+v, func() *Node { return root.Clone() }, e.observer)
	rec.Process(v, nil)
	if !Contains(root, value) {
		locate(rec, root, value)
		return root, rec.Finish(), nil
	}

	remove(rec, root, value, t, nil)

	if len(root.Keys) == 0 {
		if root.Leaf {
			root = nil
			rec.Record(nil, "The root has no keys left, the tree is now empty")
		} else {
			root = root.Children[0]
			rec.Record([]common.NodeId{root.Id}, "The root has no keys left, its only child %s becomes the root", label(root))
		}
	}
	rec.Record(nil, "%s deleted", v)
	return root, rec.Finish(), nil
}

// remove deletes value from the subtree rooted by n. Unless n is the root, n
// holds at least t keys.
func remove(rec *trace.Recorder[*Node], n *Node, value float64, t int, path trace.Path) {
	v := trace.FormatValue(value)
	path = path.With(n.Id)
	index, exists := n.findItem(value)

	if n.Leaf {
		rec.RecordKey(trace.KeyHighlight{Node: n.Id, Index: index}, path, "Found %s in leaf %s", v, label(n))
		n.removeAt(index)
		rec.Record(path, "Remove %s from the leaf, %s remains", v, label(n))
		return
	}

	if exists {
		key := trace.KeyHighlight{Node: n.Id, Index: index}
		left, right := n.Children[index], n.Children[index+1]
		switch {
		case len(left.Keys) >= t:
			predecessor := maxKey(left)
			rec.RecordKey(key, path.With(left.Id), "Found %s in inner node, left child has %d keys, replace it by its predecessor %s",
				v, len(left.Keys), trace.FormatValue(predecessor))
			n.Keys[index] = predecessor
			remove(rec, left, predecessor, t, path)
		case len(right.Keys) >= t:
			successor := minKey(right)
			rec.RecordKey(key, path.With(right.Id), "Found %s in inner node, right child has %d keys, replace it by its successor %s",
				v, len(right.Keys), trace.FormatValue(successor))
			n.Keys[index] = successor
			remove(rec, right, successor, t, path)
		default:
			rec.RecordKey(key, path, "Found %s in inner node, both children have only %d keys, merge them", v, t-1)
			merge(rec, n, index)
			remove(rec, left, value, t, path)
		}
		return
	}

	if len(n.Children[index].Keys) < t {
		fill(rec, n, index, t)
		// Merging may have moved keys, so the child is looked up again.
		index, _ = n.findItem(value)
	}
	child := n.Children[index]
	rec.Record(path.With(child.Id), "%s is not in %s, descend to child %d", v, label(n), index)
	remove(rec, child, value, t, path)
}

func maxKey(n *Node) float64 {
	for !n.Leaf {
		n = n.Children[len(n.Children)-1]
	}
	return n.Keys[len(n.Keys)-1]
}

func minKey(n *Node) float64 {
	for !n.Leaf {
		n = n.Children[0]
	}
	return n.Keys[0]
}
