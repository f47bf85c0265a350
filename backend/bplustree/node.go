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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
	"golang.org/x/exp/slices"
)

// Node is a node of a B+Tree. Leaves store the keys of the tree and are
// linked from left to right through Next. Inner nodes store routing keys
// only: Keys[i] equals the smallest key of the subtree rooted by
// Children[i+1].
type Node struct {
	Id       common.NodeId `json:"id"`
	Keys     []float64     `json:"keys"`
	Children []*Node       `json:"children,omitempty"`
	Leaf     bool          `json:"leaf"`
	// Next links a leaf to its right neighbour. The link does not own the
	// neighbour; it is encoded by id.
	Next *Node `json:"-"`
}

// MarshalJSON encodes the node with its leaf link replaced by the id of the
// linked leaf.
func (n *Node) MarshalJSON() ([]byte, error) {
	type plain Node
	next := common.NoNode
	if n.Next != nil {
		next = n.Next.Id
	}
	return json.Marshal(struct {
		*plain
		NextId common.NodeId `json:"next,omitempty"`
	}{(*plain)(n), next})
}

// Clone creates a deep copy of the subtree rooted by n, preserving ids. Leaf
// links are redirected to the copies of the linked leaves; links leaving the
// subtree are dropped.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	copies := map[*Node]*Node{}
	res := n.clone(copies)
	for original, dup := range copies {
		if original.Next != nil {
			dup.Next = copies[original.Next]
		}
	}
	return res
}

func (n *Node) clone(copies map[*Node]*Node) *Node {
	res := &Node{
		Id:   n.Id,
		Keys: slices.Clone(n.Keys),
		Leaf: n.Leaf,
	}
	if len(n.Children) > 0 {
		res.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			res.Children[i] = child.clone(copies)
		}
	}
	copies[n] = res
	return res
}

func (n *Node) NodeId() common.NodeId { return n.Id }
func (n *Node) NodeKeys() []float64   { return n.Keys }
func (n *Node) NodeChildren() []*Node { return n.Children }
func (n *Node) NextLeaf() *Node       { return n.Next }

func (n *Node) String() string {
	if n == nil {
		return "nil"
	}
	if n.Leaf {
		return label(n)
	}
	return fmt.Sprintf("%s%v", label(n), n.Children)
}

func label(n *Node) string {
	return "[" + strings.Join(trace.FormatValues(n.Keys), ", ") + "]"
}

// childFor returns the index of the child to descend to when looking for
// key. Keys equal to a routing key are found right of it.
func (n *Node) childFor(key float64) int {
	index, found := slices.BinarySearch(n.Keys, key)
	if found {
		index++
	}
	return index
}

// leftmostLeaf returns the first leaf of the leaf chain below n.
func leftmostLeaf(n *Node) *Node {
	for n != nil && !n.Leaf {
		n = n.Children[0]
	}
	return n
}

func minKey(n *Node) float64 {
	return leftmostLeaf(n).Keys[0]
}
