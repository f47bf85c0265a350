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
	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
	"golang.org/x/exp/slices"
)

// The functions in this file restructure the children of an inner node. Each
// of them records exactly one step showing the result.

// splitChild splits the full child at the given index into two nodes holding
// t-1 keys each. The median key moves up into parent at the split index, the
// new right sibling is inserted after the child.
func splitChild(rec *trace.Recorder[*Node], ids *common.IdAllocator, parent *Node, index, t int) {
	child := parent.Children[index]
	before := label(child)
	median := child.Keys[t-1]
	right := &Node{
		Id:   ids.Next(),
		Keys: slices.Clone(child.Keys[t:]),
		Leaf: child.Leaf,
	}
	if !child.Leaf {
		right.Children = slices.Clone(child.Children[t:])
		child.Children = child.Children[:t]
	}
	child.Keys = child.Keys[:t-1]

	parent.insertAt(median, index)
	parent.Children = slices.Insert(parent.Children, index+1, right)
	rec.RecordKey(trace.KeyHighlight{Node: parent.Id, Index: index}, []common.NodeId{parent.Id, child.Id, right.Id},
		"Split %s: median %s moves up, %s and %s remain", before, trace.FormatValue(median), label(child), label(right))
}

// fill makes sure that the child at the given index holds at least t keys
// before the deletion descends into it. It borrows a key through the parent
// from a sibling with keys to spare, or merges the child with a sibling.
func fill(rec *trace.Recorder[*Node], parent *Node, index, t int) {
	child := parent.Children[index]
	rec.Record([]common.NodeId{parent.Id, child.Id}, "Child %s has only %d keys, fill it before descending", label(child), len(child.Keys))
	switch {
	case index > 0 && len(parent.Children[index-1].Keys) >= t:
		borrowFromLeft(rec, parent, index)
	case index < len(parent.Children)-1 && len(parent.Children[index+1].Keys) >= t:
		borrowFromRight(rec, parent, index)
	case index < len(parent.Children)-1:
		merge(rec, parent, index)
	default:
		merge(rec, parent, index-1)
	}
}

// borrowFromLeft rotates the last key of the left sibling of the child at the
// given index up into the parent and the separating parent key down into the
// child.
func borrowFromLeft(rec *trace.Recorder[*Node], parent *Node, index int) {
	child, left := parent.Children[index], parent.Children[index-1]
	separator := parent.Keys[index-1]
	child.insertAt(separator, 0)
	parent.Keys[index-1] = left.removeAt(len(left.Keys) - 1)
	if !left.Leaf {
		last := len(left.Children) - 1
		child.Children = slices.Insert(child.Children, 0, left.Children[last])
		left.Children = left.Children[:last]
	}
	rec.RecordKey(trace.KeyHighlight{Node: parent.Id, Index: index - 1}, []common.NodeId{parent.Id, left.Id, child.Id},
		"Borrow from left sibling: %s moves up, %s moves down", trace.FormatValue(parent.Keys[index-1]), trace.FormatValue(separator))
}

// borrowFromRight rotates the first key of the right sibling of the child at
// the given index up into the parent and the separating parent key down into
// the child.
func borrowFromRight(rec *trace.Recorder[*Node], parent *Node, index int) {
	child, right := parent.Children[index], parent.Children[index+1]
	separator := parent.Keys[index]
	child.insertAt(separator, len(child.Keys))
	parent.Keys[index] = right.removeAt(0)
	if !right.Leaf {
		child.Children = append(child.Children, right.Children[0])
		right.Children = slices.Delete(right.Children, 0, 1)
	}
	rec.RecordKey(trace.KeyHighlight{Node: parent.Id, Index: index}, []common.NodeId{parent.Id, child.Id, right.Id},
		"Borrow from right sibling: %s moves up, %s moves down", trace.FormatValue(parent.Keys[index]), trace.FormatValue(separator))
}

// merge joins the child at the given index, the separating parent key and
// the right sibling of the child into a single node. The sibling is dropped.
func merge(rec *trace.Recorder[*Node], parent *Node, index int) {
	left, right := parent.Children[index], parent.Children[index+1]
	separator := parent.removeAt(index)
	left.Keys = append(left.Keys, separator)
	left.Keys = append(left.Keys, right.Keys...)
	left.Children = append(left.Children, right.Children...)
	parent.Children = slices.Delete(parent.Children, index+1, index+2)
	rec.Record([]common.NodeId{parent.Id, left.Id}, "Merge with separator %s into %s", trace.FormatValue(separator), label(left))
}
