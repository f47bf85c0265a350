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
	"github.com/Fantom-foundation/treetrace/backend/input"
	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
	"golang.org/x/exp/slices"
)

// Delete removes value from a tree of minimum degree t. Deleting an absent
// value leaves the tree unchanged.
//
// Like the B-Tree deletion it refills children holding t-1 keys before
// descending into them. Since keys are only stored in leaves, the deletion
// always ends in a leaf; routing keys equal to the deleted value are
// replaced by the new minimum of their right subtree afterwards.
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
	refreshRoutingKeys(rec, root, value)
	rec.Record(nil, "%s deleted", v)
	return root, rec.Finish(), nil
}

func remove(rec *trace.Recorder[*Node], n *Node, value float64, t int, path trace.Path) {
	v := trace.FormatValue(value)
	path = path.With(n.Id)
	if n.Leaf {
		index, _ := slices.BinarySearch(n.Keys, value)
		rec.RecordKey(trace.KeyHighlight{Node: n.Id, Index: index}, path, "Found %s in leaf %s", v, label(n))
		n.Keys = slices.Delete(n.Keys, index, index+1)
		rec.Record(path, "Remove %s from the leaf, %s remains", v, label(n))
		return
	}

	index := n.childFor(value)
	if len(n.Children[index].Keys) < t {
		fill(rec, n, index, t)
		// Merging may have moved keys, so the child is looked up again.
		index = n.childFor(value)
	}
	child := n.Children[index]
	rec.Record(path.With(child.Id), "Route %s through %s to child %d", v, label(n), index)
	remove(rec, child, value, t, path)
}

// refreshRoutingKeys replaces routing keys equal to a deleted value by the
// smallest key of the subtree right of them.
func refreshRoutingKeys(rec *trace.Recorder[*Node], root *Node, value float64) {
	var path trace.Path
	for n := root; n != nil && !n.Leaf; {
		path = path.With(n.Id)
		index, found := slices.BinarySearch(n.Keys, value)
		if found {
			n.Keys[index] = minKey(n.Children[index+1])
			rec.RecordKey(trace.KeyHighlight{Node: n.Id, Index: index}, path, "Routing key %s no longer exists, replace it by %s",
				trace.FormatValue(value), trace.FormatValue(n.Keys[index]))
			index++
		}
		n = n.Children[index]
	}
}
