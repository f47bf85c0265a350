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
	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/backend/traversal"
	"github.com/Fantom-foundation/treetrace/common"
)

// session holds the current tree of one tree family and runs traced
// operations on it. Operands are given as text and parsed by the session,
// since tries take words where all other trees take numbers.
type session interface {
	// load replaces the current tree by one built from the given keys.
	load(keys string) error
	build(keys string) (*outcome, error)
	insert(key string) (*outcome, error)
	delete(key string) (*outcome, error)
	search(key string) (*outcome, error)
	traverse(order traversal.Order) (*outcome, error)
	verify() error
	print() string
	digest() common.Hash
}

// outcome is the result of a single traced operation.
type outcome struct {
	Operation string   `json:"operation"`
	Steps     any      `json:"steps"`
	Visited   []string `json:"visited,omitempty"`
	Digest    string   `json:"digest,omitempty"`
	messages  []string
}

func newOutcome[N any](operation string, steps []trace.Step[N]) *outcome {
	return &outcome{
		Operation: operation,
		Steps:     steps,
		messages:  trace.Messages(steps),
	}
}

// tree implements a session on top of the operations of one tree family.
type tree[N comparable, K any] struct {
	parseAll    func(string) ([]K, error)
	parse       func(string) (K, error)
	format      func(K) string
	create      func([]K) (N, []trace.Step[N], error)
	add         func(N, K) (N, []trace.Step[N], error)
	remove      func(N, K) (N, []trace.Step[N], error)
	find        func(N, K) []trace.Step[N]
	walk        func(N, traversal.Order) ([]K, []trace.Step[N], error)
	check       func(N) error
	render      func(N) string
	fingerprint func(N) common.Hash
	root        N
}

func (t *tree[N, K]) load(keys string) error {
	values, err := t.parseAll(keys)
	if err != nil {
		return err
	}
	root, _, err := t.create(values)
	if err != nil {
		return err
	}
	t.root = root
	return nil
}

func (t *tree[N, K]) build(keys string) (*outcome, error) {
	values, err := t.parseAll(keys)
	if err != nil {
		return nil, err
	}
	root, steps, err := t.create(values)
	if err != nil {
		return nil, err
	}
	t.root = root
	return newOutcome("build", steps), nil
}

func (t *tree[N, K]) insert(key string) (*outcome, error) {
	return t.modify("insert", key, t.add)
}

func (t *tree[N, K]) delete(key string) (*outcome, error) {
	return t.modify("delete", key, t.remove)
}

func (t *tree[N, K]) modify(name string, key string, op func(N, K) (N, []trace.Step[N], error)) (*outcome, error) {
	value, err := t.parse(key)
	if err != nil {
		return nil, err
	}
	root, steps, err := op(t.root, value)
	if err != nil {
		return nil, err
	}
	t.root = root
	return newOutcome(name+" "+t.format(value), steps), nil
}

func (t *tree[N, K]) search(key string) (*outcome, error) {
	value, err := t.parse(key)
	if err != nil {
		return nil, err
	}
	return newOutcome("search "+t.format(value), t.find(t.root, value)), nil
}

func (t *tree[N, K]) traverse(order traversal.Order) (*outcome, error) {
	visited, steps, err := t.walk(t.root, order)
	if err != nil {
		return nil, err
	}
	res := newOutcome(order.String(), steps)
	for _, key := range visited {
		res.Visited = append(res.Visited, t.format(key))
	}
	return res, nil
}

func (t *tree[N, K]) verify() error {
	return t.check(t.root)
}

func (t *tree[N, K]) print() string {
	return t.render(t.root)
}

func (t *tree[N, K]) digest() common.Hash {
	return t.fingerprint(t.root)
}
