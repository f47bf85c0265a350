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
	"fmt"
	"strings"

	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
	"golang.org/x/exp/slices"
)

// Node is a node of a B-Tree. Keys are kept in ascending order. An inner
// node has exactly one child more than it has keys; all keys of child i are
// less than Keys[i], all keys of child i+1 are greater.
type Node struct {
	Id       common.NodeId `json:"id"`
	Keys     []float64     `json:"keys"`
	Children []*Node       `json:"children,omitempty"`
	Leaf     bool          `json:"leaf"`
}

// Clone creates a deep copy of the subtree rooted by n, preserving ids.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	res := &Node{
		Id:   n.Id,
		Keys: slices.Clone(n.Keys),
		Leaf: n.Leaf,
	}
	if len(n.Children) > 0 {
		res.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			res.Children[i] = child.Clone()
		}
	}
	return res
}

func (n *Node) NodeId() common.NodeId { return n.Id }
func (n *Node) NodeKeys() []float64   { return n.Keys }
func (n *Node) NodeChildren() []*Node { return n.Children }

func (n *Node) String() string {
	if n == nil {
		return "nil"
	}
	if n.Leaf {
		return label(n)
	}
	return fmt.Sprintf("%s%v", label(n), n.Children)
}

// label renders the keys of a node, e.g. [1, 2, 3].
func label(n *Node) string {
	return "[" + strings.Join(trace.FormatValues(n.Keys), ", ") + "]"
}

// findItem finds a key in the node, if it exists.
// It returns the index of the key that was found, and it returns true.
// If the key does not exist, it returns false and the index is equal to the last
// visited position in the list, traversed using binary search.
// The index is increased by one when the last visited key was lower than the input key
// so the new key may be inserted after this key.
// It means the index can be used as a position to insert the key in the list,
// and, in inner nodes, as the index of the child to descend to.
func (n *Node) findItem(key float64) (index int, exists bool) {
	end := len(n.Keys) - 1
	var start, mid int
	var lower bool
	for start <= end {
		mid = (start + end) / 2
		switch {
		case n.Keys[mid] == key:
			return mid, true
		case n.Keys[mid] < key:
			start = mid + 1
			lower = true
		default:
			end = mid - 1
			lower = false
		}
	}

	if lower {
		mid += 1
	}
	return mid, false
}

// insertAt inserts the key at the given position. The keys beyond this index
// are shifted right.
func (n *Node) insertAt(key float64, index int) {
	n.Keys = slices.Insert(n.Keys, index, key)
}

// removeAt removes the key at the given position.
func (n *Node) removeAt(index int) float64 {
	key := n.Keys[index]
	n.Keys = slices.Delete(n.Keys, index, index+1)
	return key
}

// childIndex returns the position of child among the children of n, or -1.
func (n *Node) childIndex(child *Node) int {
	return slices.Index(n.Children, child)
}
