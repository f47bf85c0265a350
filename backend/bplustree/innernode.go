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
	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
	"golang.org/x/exp/slices"
)

// splitChild splits the full child at the given index. A leaf keeps its
// first t-1 keys, the remaining keys move to a new right leaf which is linked
// into the leaf chain, and a copy of its first key becomes the separator in
// the parent. An inner node moves its median key up instead.
func splitChild(rec *trace.Recorder[*Node], ids *common.IdAllocator, parent *Node, index, t int) {
	child := parent.Children[index]
	before := label(child)
	right := &Node{Id: ids.Next(), Leaf: child.Leaf}
	var separator float64
	if child.Leaf {
		right.Keys = slices.Clone(child.Keys[t-1:])
		child.Keys = child.Keys[:t-1]
		right.Next = child.Next
		child.Next = right
		separator = right.Keys[0]
	} else {
		separator = child.Keys[t-1]
		right.Keys = slices.Clone(child.Keys[t:])
		right.Children = slices.Clone(child.Children[t:])
		child.Keys = child.Keys[:t-1]
		child.Children = child.Children[:t]
	}

	parent.Keys = slices.Insert(parent.Keys, index, separator)
	parent.Children = slices.Insert(parent.Children, index+1, right)
	key := trace.KeyHighlight{Node: parent.Id, Index: index}
	highlighted := []common.NodeId{parent.Id, child.Id, right.Id}
	s := trace.FormatValue(separator)
	if child.Leaf {
		rec.RecordKey(key, highlighted, "Split leaf %s into %s and %s, copy %s up as separator", before, label(child), label(right), s)
	} else {
		rec.RecordKey(key, highlighted, "Split %s: median %s moves up, %s and %s remain", before, s, label(child), label(right))
	}
}

// fill makes sure that the child at the given index holds at least t keys
// before the deletion descends into it.
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

// borrowFromLeft moves the last key of the left sibling into the child at
// the given index and updates the separator between the two.
func borrowFromLeft(rec *trace.Recorder[*Node], parent *Node, index int) {
	child, left := parent.Children[index], parent.Children[index-1]
	last := len(left.Keys) - 1
	if child.Leaf {
		child.Keys = slices.Insert(child.Keys, 0, left.Keys[last])
		left.Keys = left.Keys[:last]
		parent.Keys[index-1] = child.Keys[0]
	} else {
		child.Keys = slices.Insert(child.Keys, 0, parent.Keys[index-1])
		child.Children = slices.Insert(child.Children, 0, left.Children[last+1])
		parent.Keys[index-1] = left.Keys[last]
		left.Keys = left.Keys[:last]
		left.Children = left.Children[:last+1]
	}
	rec.RecordKey(trace.KeyHighlight{Node: parent.Id, Index: index - 1}, []common.NodeId{parent.Id, left.Id, child.Id},
		"Borrow from left sibling, separator becomes %s", trace.FormatValue(parent.Keys[index-1]))
}

// borrowFromRight moves the first key of the right sibling into the child at
// the given index and updates the separator between the two.
func borrowFromRight(rec *trace.Recorder[*Node], parent *Node, index int) {
	child, right := parent.Children[index], parent.Children[index+1]
	if child.Leaf {
		child.Keys = append(child.Keys, right.Keys[0])
		right.Keys = slices.Delete(right.Keys, 0, 1)
		parent.Keys[index] = right.Keys[0]
	} else {
		child.Keys = append(child.Keys, parent.Keys[index])
		child.Children = append(child.Children, right.Children[0])
		parent.Keys[index] = right.Keys[0]
		right.Keys = slices.Delete(right.Keys, 0, 1)
		right.Children = slices.Delete(right.Children, 0, 1)
	}
	rec.RecordKey(trace.KeyHighlight{Node: parent.Id, Index: index}, []common.NodeId{parent.Id, child.Id, right.Id},
		"Borrow from right sibling, separator becomes %s", trace.FormatValue(parent.Keys[index]))
}

// merge joins the child at the given index with its right sibling. Leaves
// drop the separator and take over the sibling's leaf link; inner nodes pull
// the separator down between their keys.
func merge(rec *trace.Recorder[*Node], parent *Node, index int) {
	left, right := parent.Children[index], parent.Children[index+1]
	separator := parent.Keys[index]
	if left.Leaf {
		left.Keys = append(left.Keys, right.Keys...)
		left.Next = right.Next
	} else {
		left.Keys = append(left.Keys, separator)
		left.Keys = append(left.Keys, right.Keys...)
		left.Children = append(left.Children, right.Children...)
	}
	parent.Keys = slices.Delete(parent.Keys, index, index+1)
	parent.Children = slices.Delete(parent.Children, index+1, index+2)
	if left.Leaf {
		rec.Record([]common.NodeId{parent.Id, left.Id}, "Merge leaves into %s, separator %s is dropped", label(left), trace.FormatValue(separator))
	} else {
		rec.Record([]common.NodeId{parent.Id, left.Id}, "Merge with separator %s into %s", trace.FormatValue(separator), label(left))
	}
}
