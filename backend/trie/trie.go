// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package trie implements traced operations on tries of lowercase words.
// Words sharing a prefix share the nodes spelling it; a flag marks the nodes
// in which stored words end.
package trie

import (
	"strings"

	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
)

// Step is a recorded step of a trie operation.
type Step = trace.Step[*Node]

// Engine performs traced trie operations. Words are expected to be
// normalized already, see input.ParseWords.
type Engine struct {
	ids      common.IdAllocator
	observer trace.Observer
}

// NewEngine creates an engine reporting to the given observer, which may be
// nil.
func NewEngine(observer trace.Observer) *Engine {
	if observer == nil {
		observer = trace.NilObserver{}
	}
	return &Engine{observer: observer}
}

// Build inserts the given words one after another into an empty trie.
func (e *Engine) Build(words []string) (*Node, []Step) {
	var root *Node
	rec := trace.NewRecorder("build", func() *Node { return root.Clone() }, e.observer)
	for i, word := range words {
		rec.Process(word, words[i+1:])
		e.insert(rec, &root, word)
	}
	rec.Process("", nil)
	rec.Record(nil, "Trie built with %d words in %d nodes", len(Words(root)), Size(root))
	return root, rec.Finish()
}

// Insert adds word to the trie. Inserting a stored word leaves the trie
// unchanged.
func (e *Engine) Insert(root *Node, word string) (*Node, []Step) {
	root = root.Clone()
	rec := trace.NewRecorder("insert "+word, func() *Node { return root.Clone() }, e.observer)
	rec.Process(word, nil)
	e.insert(rec, &root, word)
	return root, rec.Finish()
}

func (e *Engine) insert(rec *trace.Recorder[*Node], root **Node, word string) {
	if word == "" {
		rec.Record(nil, "Empty word, nothing to insert")
		return
	}
	if *root == nil {
		*root = &Node{Id: e.ids.Next()}
		rec.Record([]common.NodeId{(*root).Id}, "Trie is empty, create the root")
	}
	n := *root
	path := trace.Path{n.Id}
	prefix := ""
	for _, char := range strings.Split(word, "") {
		prefix += char
		child, found := n.Children[char]
		if found {
			path = path.With(child.Id)
			rec.Record(path, "'%s' exists, follow it to '%s'", char, prefix)
		} else {
			child = &Node{Id: e.ids.Next(), Char: char}
			if n.Children == nil {
				n.Children = map[string]*Node{}
			}
			n.Children[char] = child
			path = path.With(child.Id)
			rec.Record(path, "'%s' is missing, create a node for '%s'", char, prefix)
		}
		n = child
	}
	if n.EndOfWord {
		rec.Record(path, "'%s' already exists, skipping", word)
		return
	}
	n.EndOfWord = true
	rec.Record(path, "Mark the end of '%s'", word)
}

// Delete removes word from the trie and prunes the nodes no other stored
// word needs. Deleting an absent word leaves the trie unchanged.
func (e *Engine) Delete(root *Node, word string) (*Node, []Step) {
	root = root.Clone()
	rec := trace.NewRecorder("delete "+word, func() *Node { return root.Clone() }, e.observer)
	rec.Process(word, nil)
	if root == nil || len(root.Children) == 0 {
		rec.Record(nil, "Trie is empty, nothing to delete")
		return root, rec.Finish()
	}
	chars := strings.Split(word, "")
	var remove func(n *Node, depth int, path trace.Path) (prune, found bool)
	remove = func(n *Node, depth int, path trace.Path) (bool, bool) {
		if depth == len(chars) {
			if !n.EndOfWord {
				rec.Record(path, "'%s' is only a prefix, nothing to delete", word)
				return false, false
			}
			n.EndOfWord = false
			rec.Record(path, "Clear the end of word mark of '%s'", word)
			if len(n.Children) > 0 {
				rec.Record(path, "Keep '%s', it is the prefix of other words", word)
				return false, true
			}
			return true, true
		}
		char := chars[depth]
		child, exists := n.Children[char]
		if !exists {
			rec.Record(path, "'%s' is missing, '%s' not found", char, word)
			return false, false
		}
		childPath := path.With(child.Id)
		rec.Record(childPath, "Follow '%s'", char)
		prune, found := remove(child, depth+1, childPath)
		if !prune {
			return false, found
		}
		delete(n.Children, char)
		rec.Record(path, "Prune '%s', it has no children and ends no word", strings.Join(chars[:depth+1], ""))
		if depth == 0 {
			return false, true
		}
		if len(n.Children) > 0 || n.EndOfWord {
			rec.Record(path, "Keep '%s', it is still needed", strings.Join(chars[:depth], ""))
			return false, true
		}
		return true, true
	}
	if word == "" {
		rec.Record(nil, "Empty word, nothing to delete")
	} else if _, found := remove(root, 0, trace.Path{root.Id}); found {
		rec.Record(nil, "'%s' deleted", word)
	}
	return root, rec.Finish()
}

// Search looks for word without modifying the trie. Reaching the end of the
// word in a node without the end of word mark reports a prefix, which is not
// a match. The steps of a search carry no snapshots.
func (e *Engine) Search(root *Node, word string) []Step {
	rec := trace.NewRecorder[*Node]("search "+word, nil, e.observer)
	rec.Process(word, nil)
	if word == "" {
		rec.Record(nil, "Empty word, nothing to search")
		return rec.Finish()
	}
	if root == nil || len(root.Children) == 0 {
		rec.Record(nil, "Trie is empty, '%s' not found", word)
		return rec.Finish()
	}
	n := root
	path := trace.Path{n.Id}
	for _, char := range strings.Split(word, "") {
		child, found := n.Children[char]
		if !found {
			rec.Record(path, "'%s' is missing, '%s' not found", char, word)
			return rec.Finish()
		}
		path = path.With(child.Id)
		rec.Record(path, "Follow '%s'", char)
		n = child
	}
	if n.EndOfWord {
		rec.Record(path, "Found '%s'", word)
	} else {
		rec.Record(path, "'%s' is only a prefix, not a stored word", word)
	}
	return rec.Finish()
}
