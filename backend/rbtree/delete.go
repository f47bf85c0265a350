// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package rbtree

import (
	"github.com/Fantom-foundation/treetrace/backend/trace"
)

// Delete removes value from the tree. A node with two children takes over
// the value of its in-order successor, whose node is removed instead. If the
// removed node was black, the missing black is pushed through the tree as a
// "double black" until it can be absorbed.
func (e *Engine) Delete(root *Node, value float64) (*Node, []Step) {
	root = root.Clone()
	v := trace.FormatValue(value)
	rec := trace.NewRecorder("delete "+v, func() *Node { return root.Clone() }, e.observer)
	rec.Process(v, nil)

	z := locate(rec, root, value)
	if z == nil {
		return root, rec.Finish()
	}

	if z.Left != nil && z.Right != nil {
		s := z.Right
		for s.Left != nil {
			s = s.Left
		}
		rec.Record(ids(z, s), "%s has two children, its in-order successor is %s", v, label(s))
		z.Value = s.Value
		rec.Record(ids(z, s), "Copy %s into the node of %s and remove the successor's node instead", label(s), v)
		z = s
	}

	child := z.Left
	if child == nil {
		child = z.Right
	}
	parent := z.Parent
	replace(&root, z, child)
	if child != nil {
		rec.Record(ids(parent, child), "Remove %s %s, %s takes its place", z.Color, label(z), label(child))
	} else {
		rec.Record(ids(parent), "Remove %s leaf %s", z.Color, label(z))
	}

	switch {
	case z.Color == Red:
		rec.Record(ids(parent), "Removed node was red, no fixup needed")
	case isRed(child):
		child.Color = Black
		rec.Record(ids(child), "Replacement %s is red, color it black", label(child))
	default:
		deleteFixup(rec, &root, child, parent)
	}
	blackenRoot(rec, root)
	rec.Record(nil, "%s deleted", v)
	return root, rec.Finish()
}

// deleteFixup removes the extra black carried by x, which may be a missing
// child of parent.
func deleteFixup(rec *trace.Recorder[*Node], root **Node, x, parent *Node) {
	for parent != nil && !isRed(x) {
		if x == parent.Left {
			s := parent.Right
			if s == nil {
				rec.Record(ids(parent), "Double black has no sibling, push it up to %s", label(parent))
				x, parent = parent, parent.Parent
				continue
			}
			if s.Color == Red {
				s.Color, parent.Color = Black, Red
				rotateLeft(root, parent)
				rec.Record(ids(s, parent), "Sibling %s is red: color it black and %s red, rotate left at %s", label(s), label(parent), label(parent))
				continue
			}
			if !isRed(s.Left) && !isRed(s.Right) {
				s.Color = Red
				if parent.Color == Red {
					parent.Color = Black
					rec.Record(ids(s, parent), "Sibling %s has black children: color it red and parent %s black", label(s), label(parent))
					return
				}
				rec.Record(ids(s, parent), "Sibling %s has black children: color it red and push the double black up to %s", label(s), label(parent))
				x, parent = parent, parent.Parent
				continue
			}
			if !isRed(s.Right) {
				nephew := s.Left
				nephew.Color, s.Color = Black, Red
				rotateRight(root, s)
				rec.Record(ids(s, nephew), "Right-left case: sibling %s has a red left child %s, rotate right at %s", label(s), label(nephew), label(s))
				s = parent.Right
			}
			s.Color, parent.Color, s.Right.Color = parent.Color, Black, Black
			rotateLeft(root, parent)
			rec.Record(ids(s, parent, s.Right), "Right-right case: sibling %s has a red right child, rotate left at %s and recolor", label(s), label(parent))
			return
		}

		s := parent.Left
		if s == nil {
			rec.Record(ids(parent), "Double black has no sibling, push it up to %s", label(parent))
			x, parent = parent, parent.Parent
			continue
		}
		if s.Color == Red {
			s.Color, parent.Color = Black, Red
			rotateRight(root, parent)
			rec.Record(ids(s, parent), "Sibling %s is red: color it black and %s red, rotate right at %s", label(s), label(parent), label(parent))
			continue
		}
		if !isRed(s.Left) && !isRed(s.Right) {
			s.Color = Red
			if parent.Color == Red {
				parent.Color = Black
				rec.Record(ids(s, parent), "Sibling %s has black children: color it red and parent %s black", label(s), label(parent))
				return
			}
			rec.Record(ids(s, parent), "Sibling %s has black children: color it red and push the double black up to %s", label(s), label(parent))
			x, parent = parent, parent.Parent
			continue
		}
		if !isRed(s.Left) {
			nephew := s.Right
			nephew.Color, s.Color = Black, Red
			rotateLeft(root, s)
			rec.Record(ids(s, nephew), "Left-right case: sibling %s has a red right child %s, rotate left at %s", label(s), label(nephew), label(s))
			s = parent.Left
		}
		s.Color, parent.Color, s.Left.Color = parent.Color, Black, Black
		rotateRight(root, parent)
		rec.Record(ids(s, parent, s.Left), "Left-left case: sibling %s has a red left child, rotate right at %s and recolor", label(s), label(parent))
		return
	}
	if isRed(x) {
		x.Color = Black
		rec.Record(ids(x), "%s absorbs the double black, color it black", label(x))
	}
}
