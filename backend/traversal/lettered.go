// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package traversal

import (
	"fmt"

	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
)

// Lettered is implemented by the node types of tries. Every node but the
// root carries a single letter; children are reported in letter order.
type Lettered[N any] interface {
	comparable
	NodeId() common.NodeId
	Letter() string
	WordEnd() bool
	NodeChildren() []N
}

// LetterLevelOrder visits the letters of a trie breadth first, level by
// level. The root carries no letter and is not visited.
func LetterLevelOrder[N Lettered[N]](root N, observer trace.Observer) ([]string, []trace.Step[N]) {
	v := newVisitor[N, string](LevelOrder, observer)
	var zero N
	if root == zero || len(root.NodeChildren()) == 0 {
		return v.empty()
	}
	queue := append([]N{}, root.NodeChildren()...)
	for level := 1; len(queue) > 0; level++ {
		var next []N
		for _, n := range queue {
			v.enter(n.NodeId())
			v.visited = append(v.visited, n.Letter())
			v.rec.Record(v.path, "Visit '%s' on level %d", n.Letter(), level)
			next = append(next, n.NodeChildren()...)
		}
		queue = next
	}
	return v.finish(quote)
}

// StoredWords visits the words stored in a trie depth first. Since children
// are visited in letter order, words are reported in lexicographic order.
func StoredWords[N Lettered[N]](root N, observer trace.Observer) ([]string, []trace.Step[N]) {
	v := newVisitor[N, string](PreOrder, observer)
	var zero N
	if root == zero || len(root.NodeChildren()) == 0 {
		return v.empty()
	}
	var walk func(n N, prefix string, path trace.Path)
	walk = func(n N, prefix string, path trace.Path) {
		word := prefix + n.Letter()
		path = path.With(n.NodeId())
		if n.WordEnd() {
			v.visited = append(v.visited, word)
			v.rec.Record(path, "Found word '%s'", word)
		}
		for _, child := range n.NodeChildren() {
			walk(child, word, path)
		}
	}
	walk(root, "", nil)
	v.path = trace.Path{root.NodeId()}
	return v.finish(quote)
}

// TraverseLettered dispatches to the producer of the given order. Tries
// support level order over letters and pre-order over stored words.
func TraverseLettered[N Lettered[N]](root N, order Order, observer trace.Observer) ([]string, []trace.Step[N], error) {
	switch order {
	case LevelOrder:
		visited, steps := LetterLevelOrder(root, observer)
		return visited, steps, nil
	case PreOrder:
		visited, steps := StoredWords(root, observer)
		return visited, steps, nil
	}
	return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedOrder, order)
}

func quote(s string) string {
	return "'" + s + "'"
}
