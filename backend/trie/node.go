// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package trie

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Fantom-foundation/treetrace/common"
)

// Node is a node of a trie. The root holds no character; every other node
// holds the single character on the edge leading to it. EndOfWord marks the
// nodes in which a stored word ends.
type Node struct {
	Id        common.NodeId    `json:"id"`
	Char      string           `json:"char"`
	Children  map[string]*Node `json:"children,omitempty"`
	EndOfWord bool             `json:"endOfWord"`
}

// Clone creates a deep copy of the subtree rooted by n, preserving ids.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	res := &Node{
		Id:        n.Id,
		Char:      n.Char,
		EndOfWord: n.EndOfWord,
	}
	if len(n.Children) > 0 {
		res.Children = make(map[string]*Node, len(n.Children))
		for char, child := range n.Children {
			res.Children[char] = child.Clone()
		}
	}
	return res
}

// chars lists the characters of the children of n in ascending order.
func (n *Node) chars() []string {
	res := maps.Keys(n.Children)
	slices.Sort(res)
	return res
}

// children lists the children of n ordered by their characters.
func (n *Node) children() []*Node {
	chars := n.chars()
	res := make([]*Node, len(chars))
	for i, char := range chars {
		res[i] = n.Children[char]
	}
	return res
}

func (n *Node) NodeId() common.NodeId { return n.Id }
func (n *Node) Letter() string        { return n.Char }
func (n *Node) WordEnd() bool         { return n.EndOfWord }
func (n *Node) NodeChildren() []*Node { return n.children() }

func (n *Node) String() string {
	if n == nil {
		return "nil"
	}
	res := n.Char
	if n.EndOfWord {
		res += "*"
	}
	if len(n.Children) == 0 {
		return res
	}
	res += "("
	for i, child := range n.children() {
		if i > 0 {
			res += " "
		}
		res += child.String()
	}
	return res + ")"
}
