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

import "github.com/Fantom-foundation/treetrace/backend/traversal"

// Traverse walks the tree in the given order. All orders but leaf order are
// supported.
func Traverse(root *Node, order traversal.Order) ([]float64, []Step, error) {
	return traversal.TraverseBinary(root, order, nil)
}

// Traverse walks the tree like the free function of the same name, reporting
// the steps to the engine's observer.
func (e *Engine) Traverse(root *Node, order traversal.Order) ([]float64, []Step, error) {
	return traversal.TraverseBinary(root, order, e.observer)
}

// InOrder returns the values of the tree in ascending order along with the
// steps visiting them.
func InOrder(root *Node) ([]float64, []Step) {
	return traversal.BinaryInOrder(root, nil)
}
