// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"strings"

	"github.com/Fantom-foundation/treetrace/backend/avl"
	"github.com/Fantom-foundation/treetrace/backend/bplustree"
	"github.com/Fantom-foundation/treetrace/backend/bst"
	"github.com/Fantom-foundation/treetrace/backend/btree"
	"github.com/Fantom-foundation/treetrace/backend/input"
	"github.com/Fantom-foundation/treetrace/backend/rbtree"
	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/backend/trie"
	"github.com/Fantom-foundation/treetrace/common"
)

const errUnknownTree = common.ConstError("unknown tree family")

var families = []string{"bst", "avl", "btree", "bplustree", "rbtree", "trie"}

// newSession creates an empty session for the named tree family. The degree
// is only used by B-Trees and B+Trees.
func newSession(family string, degree int, observer trace.Observer) (session, error) {
	switch strings.ToLower(family) {
	case "bst":
		e := bst.NewEngine(observer)
		return numeric(&tree[*bst.Node, float64]{
			create:      lift(e.Build),
			add:         lift2(e.Insert),
			remove:      lift2(e.Delete),
			find:        e.Search,
			walk:        e.Traverse,
			check:       bst.Verify,
			render:      bst.Print,
			fingerprint: bst.Fingerprint,
		}), nil
	case "avl":
		e := avl.NewEngine(observer)
		return numeric(&tree[*avl.Node, float64]{
			create:      lift(e.Build),
			add:         lift2(e.Insert),
			remove:      lift2(e.Delete),
			find:        e.Search,
			walk:        e.Traverse,
			check:       avl.Verify,
			render:      bst.Print,
			fingerprint: bst.Fingerprint,
		}), nil
	case "btree", "b-tree":
		e := btree.NewEngine(observer)
		return numeric(&tree[*btree.Node, float64]{
			create:      withDegree(e.Build, degree),
			add:         withDegree2(e.Insert, degree),
			remove:      withDegree2(e.Delete, degree),
			find:        e.Search,
			walk:        e.Traverse,
			check:       func(root *btree.Node) error { return btree.Verify(root, degree) },
			render:      btree.Print,
			fingerprint: btree.Fingerprint,
		}), nil
	case "bplustree", "b+tree":
		e := bplustree.NewEngine(observer)
		return numeric(&tree[*bplustree.Node, float64]{
			create:      withDegree(e.Build, degree),
			add:         withDegree2(e.Insert, degree),
			remove:      withDegree2(e.Delete, degree),
			find:        e.Search,
			walk:        e.Traverse,
			check:       func(root *bplustree.Node) error { return bplustree.Verify(root, degree) },
			render:      bplustree.Print,
			fingerprint: bplustree.Fingerprint,
		}), nil
	case "rbtree", "red-black":
		e := rbtree.NewEngine(observer)
		return numeric(&tree[*rbtree.Node, float64]{
			create:      lift(e.Build),
			add:         lift2(e.Insert),
			remove:      lift2(e.Delete),
			find:        e.Search,
			walk:        e.Traverse,
			check:       rbtree.Verify,
			render:      rbtree.Print,
			fingerprint: rbtree.Fingerprint,
		}), nil
	case "trie":
		e := trie.NewEngine(observer)
		return &tree[*trie.Node, string]{
			parseAll:    input.ParseWords,
			parse:       input.ParseWord,
			format:      func(word string) string { return word },
			create:      lift(e.Build),
			add:         lift2(e.Insert),
			remove:      lift2(e.Delete),
			find:        e.Search,
			walk:        e.Traverse,
			check:       trie.Verify,
			render:      trie.Print,
			fingerprint: trie.Fingerprint,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q, supported are %s", errUnknownTree, family, strings.Join(families, ", "))
}

// numeric completes a session over trees keyed by numbers.
func numeric[N comparable](t *tree[N, float64]) *tree[N, float64] {
	t.parseAll = input.ParseNumbers
	t.parse = input.ParseValue
	t.format = trace.FormatValue
	return t
}

func lift[N, A any](f func(A) (N, []trace.Step[N])) func(A) (N, []trace.Step[N], error) {
	return func(a A) (N, []trace.Step[N], error) {
		root, steps := f(a)
		return root, steps, nil
	}
}

func lift2[N, K any](f func(N, K) (N, []trace.Step[N])) func(N, K) (N, []trace.Step[N], error) {
	return func(root N, key K) (N, []trace.Step[N], error) {
		root, steps := f(root, key)
		return root, steps, nil
	}
}

func withDegree[N, A any](f func(A, int) (N, []trace.Step[N], error), t int) func(A) (N, []trace.Step[N], error) {
	return func(a A) (N, []trace.Step[N], error) {
		return f(a, t)
	}
}

func withDegree2[N, K any](f func(N, K, int) (N, []trace.Step[N], error), t int) func(N, K) (N, []trace.Step[N], error) {
	return func(root N, key K) (N, []trace.Step[N], error) {
		return f(root, key, t)
	}
}
