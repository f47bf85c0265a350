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
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/backend/traversal"
	"github.com/Fantom-foundation/treetrace/common"
)

// Match classifies the outcome of looking up a word.
type Match int

const (
	// Absent means the trie does not spell the word at all.
	Absent Match = iota
	// Prefix means the word is spelled, but only as the prefix of stored
	// words.
	Prefix
	// Word means the word is stored.
	Word
)

func (m Match) String() string {
	switch m {
	case Absent:
		return "absent"
	case Prefix:
		return "prefix"
	case Word:
		return "word"
	}
	return fmt.Sprintf("match(%d)", int(m))
}

// Lookup walks the letters of word from the root.
func Lookup(root *Node, word string) Match {
	n := root
	if n == nil {
		return Absent
	}
	for _, char := range strings.Split(word, "") {
		child, found := n.Children[char]
		if !found {
			return Absent
		}
		n = child
	}
	if n.EndOfWord {
		return Word
	}
	return Prefix
}

// Contains reports whether word is stored in the trie.
func Contains(root *Node, word string) bool {
	return Lookup(root, word) == Word
}

// Size returns the number of nodes in the trie, including the root.
func Size(n *Node) int {
	if n == nil {
		return 0
	}
	res := 1
	for _, child := range n.Children {
		res += Size(child)
	}
	return res
}

// Words returns all stored words in lexicographic order.
func Words(root *Node) []string {
	var res []string
	var collect func(n *Node, prefix string)
	collect = func(n *Node, prefix string) {
		word := prefix + n.Char
		if n.EndOfWord {
			res = append(res, word)
		}
		for _, child := range n.children() {
			collect(child, word)
		}
	}
	if root != nil {
		collect(root, "")
	}
	return res
}

// Traverse walks the trie in the given order. Level order visits letters,
// pre-order visits the stored words.
func Traverse(root *Node, order traversal.Order) ([]string, []Step, error) {
	return traversal.TraverseLettered(root, order, nil)
}

// Traverse walks the trie in the given order, reporting the steps to the
// engine's observer.
func (e *Engine) Traverse(root *Node, order traversal.Order) ([]string, []Step, error) {
	return traversal.TraverseLettered(root, order, e.observer)
}

// Verify checks that every node below the root holds exactly the letter it
// is filed under, and that every leaf ends a stored word.
func Verify(root *Node) error {
	if root == nil {
		return nil
	}
	var errs []error
	if root.Char != "" {
		errs = append(errs, fmt.Errorf("root %v holds letter %q", root.Id, root.Char))
	}
	if root.EndOfWord {
		errs = append(errs, fmt.Errorf("root %v ends the empty word", root.Id))
	}
	ids := map[common.NodeId]bool{}
	var check func(n *Node, prefix string)
	check = func(n *Node, prefix string) {
		if ids[n.Id] {
			errs = append(errs, fmt.Errorf("node id %v is used more than once", n.Id))
		}
		ids[n.Id] = true
		for char, child := range n.Children {
			if child == nil {
				errs = append(errs, fmt.Errorf("node %v: letter %q has no node", n.Id, char))
				continue
			}
			if child.Char != char {
				errs = append(errs, fmt.Errorf("node %v holds %q but is filed under %q", child.Id, child.Char, char))
			}
			if utf8.RuneCountInString(child.Char) != 1 {
				errs = append(errs, fmt.Errorf("node %v holds %q instead of a single letter", child.Id, child.Char))
			}
			if len(child.Children) == 0 && !child.EndOfWord {
				errs = append(errs, fmt.Errorf("leaf %v for %q ends no word", child.Id, prefix+char))
			}
			check(child, prefix+char)
		}
	}
	check(root, "")
	return errors.Join(errs...)
}

// Fingerprint computes a digest of the stored letters and word marks. Node
// ids do not contribute.
func Fingerprint(root *Node) common.Hash {
	d := common.NewDigester()
	defer d.Release()
	var write func(*Node)
	write = func(n *Node) {
		d.Text(n.Char)
		d.Bool(n.EndOfWord)
		d.Int(len(n.Children))
		for _, child := range n.children() {
			write(child)
		}
	}
	if root == nil {
		d.Marker(0)
	} else {
		d.Marker(1)
		write(root)
	}
	return d.Sum()
}

// Print renders the trie as text, one node per line. Nodes ending a word are
// marked by an asterisk.
func Print(root *Node) string {
	return trace.Render(root, func(n *Node) string {
		res := n.Char
		if n.Char == "" {
			res = "(root)"
		}
		if n.EndOfWord {
			res += "*"
		}
		return fmt.Sprintf("%s %v", res, n.Id)
	}, (*Node).children)
}
