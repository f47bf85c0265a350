// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package trace

import "github.com/xlab/treeprint"

// Render draws a tree as indented text, one node per line. The label
// function describes a single node, the children function lists its
// children. A zero child in a non-empty child list, e.g. a missing left
// child of a binary node, is drawn as a placeholder so that left and right
// remain distinguishable.
func Render[N comparable](root N, label func(N) string, children func(N) []N) string {
	var zero N
	if root == zero {
		return "(empty)\n"
	}
	tree := treeprint.NewWithRoot(label(root))
	addChildren(tree, root, label, children)
	return tree.String()
}

func addChildren[N comparable](branch treeprint.Tree, n N, label func(N) string, children func(N) []N) {
	var zero N
	for _, child := range children(n) {
		switch {
		case child == zero:
			branch.AddNode("·")
		case len(children(child)) == 0:
			branch.AddNode(label(child))
		default:
			addChildren(branch.AddBranch(label(child)), child, label, children)
		}
	}
}
