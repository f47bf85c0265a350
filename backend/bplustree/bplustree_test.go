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
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/Fantom-foundation/treetrace/backend/input"
	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/backend/traversal"
	"github.com/Fantom-foundation/treetrace/common"
	"github.com/kr/pretty"
)

var decades = []float64{5, 15, 25, 35, 45, 55, 65, 75, 85, 95}

func build(t *testing.T, degree int, values ...float64) (*Engine, *Node) {
	t.Helper()
	engine := NewEngine(nil)
	root, _, err := engine.Build(values, degree)
	common.AssertNoError(t, err)
	if err := Verify(root, degree); err != nil {
		t.Fatalf("invalid tree: %v\n%s", err, Print(root))
	}
	return engine, root
}

func hasMessage(steps []Step, prefix string) bool {
	for _, msg := range trace.Messages(steps) {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

func TestBPlusTree_LeafOrderIsStrictlyIncreasing(t *testing.T) {
	_, root := build(t, 3, decades...)
	visited, steps, err := Traverse(root, traversal.LeafOrder)
	common.AssertNoError(t, err)
	common.AssertArraysEqual(t, decades, visited)
	common.AssertArrayStrictlyIncreasing(t, visited)
	if !hasMessage(steps, "Follow the link to the next leaf") {
		t.Errorf("leaf order should follow leaf links: %v", trace.Messages(steps))
	}
}

func TestBPlusTree_BuildShape(t *testing.T) {
	_, root := build(t, 3, decades...)
	common.AssertArraysEqual(t, []float64{25, 45, 65}, root.Keys)
	if got := len(root.Children); got != 4 {
		t.Fatalf("unexpected number of leaves: %d\n%s", got, Print(root))
	}
	common.AssertArraysEqual(t, []float64{65, 75, 85, 95}, root.Children[3].Keys)
	if got := Height(root); got != 2 {
		t.Errorf("unexpected height, wanted 2, got %d", got)
	}
	if got := Size(root); got != 10 {
		t.Errorf("unexpected size, wanted 10, got %d", got)
	}
}

func TestBPlusTree_LeafSplitCopiesSeparator(t *testing.T) {
	engine := NewEngine(nil)
	_, steps, err := engine.Build([]float64{5, 15, 25, 35, 45}, 3)
	common.AssertNoError(t, err)
	if !hasMessage(steps, "Split leaf [5, 15, 25, 35, 45] into [5, 15] and [25, 35, 45], copy 25 up as separator") {
		t.Errorf("missing leaf split: %v", trace.Messages(steps))
	}
}

func TestBPlusTree_InnerSplitMovesMedian(t *testing.T) {
	values := make([]float64, 0, 30)
	for i := 1; i <= 30; i++ {
		values = append(values, float64(i))
	}
	_, root := build(t, 2, values...)
	if Height(root) < 3 {
		t.Fatalf("tree should have inner nodes below the root:\n%s", Print(root))
	}
	common.AssertArraysEqual(t, values, Values(root))
}

func TestBPlusTree_BuildSnapshotsAreValidTrees(t *testing.T) {
	engine := NewEngine(nil)
	for _, degree := range []int{2, 3, 4} {
		_, steps, err := engine.Build([]float64{10, 20, 5, 6, 12, 30, 7, 17, 3, 1, 2, 25, 26, 27}, degree)
		common.AssertNoError(t, err)
		for i, step := range steps {
			if err := Verify(step.Snapshot, degree); err != nil {
				t.Errorf("t=%d, step %d (%s): invalid snapshot: %v\n%s", degree, i, step.Message, err, Print(step.Snapshot))
			}
		}
	}
}

func TestBPlusTree_InvalidDegreeIsRejected(t *testing.T) {
	engine := NewEngine(nil)
	if _, _, err := engine.Build(decades, 1); !errors.Is(err, input.ErrInvalidDegree) {
		t.Errorf("expected invalid degree, got %v", err)
	}
	if _, _, err := engine.Insert(nil, 1, 101); !errors.Is(err, input.ErrInvalidDegree) {
		t.Errorf("expected invalid degree, got %v", err)
	}
	if _, _, err := engine.Delete(nil, 1, 0); !errors.Is(err, input.ErrInvalidDegree) {
		t.Errorf("expected invalid degree, got %v", err)
	}
}

func TestBPlusTree_InsertOfDuplicateIsNoOp(t *testing.T) {
	engine, root := build(t, 3, decades...)
	res, steps, err := engine.Insert(root, 45, 3)
	common.AssertNoError(t, err)
	if Fingerprint(res) != Fingerprint(root) {
		t.Errorf("duplicate insert changed the tree: %# v", pretty.Formatter(res))
	}
	if got, want := steps[len(steps)-1].Message, "45 already exists, skipping"; got != want {
		t.Errorf("unexpected final message, wanted %q, got %q", want, got)
	}
}

func TestBPlusTree_SearchEndsInLeaf(t *testing.T) {
	engine, root := build(t, 3, decades...)
	steps := engine.Search(root, 45)
	common.AssertArraysEqual(t, []string{
		"Route 45 through [25, 45, 65] to child 2",
		"Found 45 in leaf [45, 55] at position 0",
	}, trace.Messages(steps))

	steps = engine.Search(root, 50)
	if got, want := steps[len(steps)-1].Message, "50 not found, leaf [45, 55] does not contain it"; got != want {
		t.Errorf("unexpected final message, wanted %q, got %q", want, got)
	}
}

func TestBPlusTree_DeleteRefreshesRoutingKey(t *testing.T) {
	engine, root := build(t, 3, decades...)
	res, steps, err := engine.Delete(root, 45, 3)
	common.AssertNoError(t, err)
	if err := Verify(res, 3); err != nil {
		t.Fatalf("invalid tree after delete: %v\n%s", err, Print(res))
	}
	common.AssertArraysEqual(t, []float64{25, 55, 75}, res.Keys)
	common.AssertArraysEqual(t, []float64{5, 15, 25, 35, 55, 65, 75, 85, 95}, Values(res))
	for _, msg := range []string{
		"Borrow from right sibling, separator becomes 75",
		"Routing key 45 no longer exists, replace it by 55",
	} {
		if !hasMessage(steps, msg) {
			t.Errorf("missing step %q in %v", msg, trace.Messages(steps))
		}
	}
}

func TestBPlusTree_DeleteMergesLeavesAndKeepsChain(t *testing.T) {
	engine, root := build(t, 3, decades...)
	res, steps, err := engine.Delete(root, 5, 3)
	common.AssertNoError(t, err)
	if err := Verify(res, 3); err != nil {
		t.Fatalf("invalid tree after delete: %v\n%s", err, Print(res))
	}
	if !hasMessage(steps, "Merge leaves into [5, 15, 25, 35], separator 25 is dropped") {
		t.Errorf("missing merge: %v", trace.Messages(steps))
	}
	common.AssertArraysEqual(t, []float64{45, 65}, res.Keys)
	visited, _, err := Traverse(res, traversal.LeafOrder)
	common.AssertNoError(t, err)
	common.AssertArraysEqual(t, []float64{15, 25, 35, 45, 55, 65, 75, 85, 95}, visited)
	if Size(root) != 10 {
		t.Errorf("input tree was modified by delete")
	}
}

func TestBPlusTree_DeleteAbsentValueIsNoOp(t *testing.T) {
	engine, root := build(t, 3, decades...)
	res, _, err := engine.Delete(root, 50, 3)
	common.AssertNoError(t, err)
	if Fingerprint(res) != Fingerprint(root) {
		t.Errorf("tree changed by deleting an absent value")
	}
}

func TestBPlusTree_DeleteAllYieldsEmptyTree(t *testing.T) {
	for _, degree := range []int{2, 3, 4} {
		data := make([]float64, 0, 150)
		for i := 0; i < 150; i++ {
			data = append(data, float64(i*10+rand.Intn(10)))
		}
		rand.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })
		engine, root := build(t, degree, data...)

		rand.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })
		for i, key := range data {
			var err error
			root, _, err = engine.Delete(root, key, degree)
			common.AssertNoError(t, err)
			if Contains(root, key) {
				t.Fatalf("key %v should not exist in the tree", key)
			}
			if err := Verify(root, degree); err != nil {
				t.Fatalf("t=%d: invalid tree after deleting %d keys: %v\n%s", degree, i+1, err, Print(root))
			}
		}
		if root != nil {
			t.Errorf("tree is not empty: %v", root)
		}
	}
}

func TestBPlusTree_RandomOperationsKeepInvariants(t *testing.T) {
	for _, degree := range []int{2, 3, 5} {
		engine := NewEngine(nil)
		r := rand.New(rand.NewSource(int64(degree)))
		var root *Node
		present := map[float64]bool{}
		for i := 0; i < 600; i++ {
			value := float64(r.Intn(150))
			var err error
			if r.Intn(3) == 0 {
				root, _, err = engine.Delete(root, value, degree)
				delete(present, value)
			} else {
				root, _, err = engine.Insert(root, value, degree)
				present[value] = true
			}
			common.AssertNoError(t, err)
			if err := Verify(root, degree); err != nil {
				t.Fatalf("t=%d: invalid tree after step %d: %v\n%s", degree, i, err, Print(root))
			}
			if got := Size(root); got != len(present) {
				t.Fatalf("t=%d: unexpected size after step %d, wanted %d, got %d", degree, i, len(present), got)
			}
		}
		common.AssertArrayStrictlyIncreasing(t, Values(root))
	}
}

func TestBPlusTree_Traverse(t *testing.T) {
	_, root := build(t, 3, decades...)
	values, _, err := Traverse(root, traversal.InOrder)
	common.AssertNoError(t, err)
	common.AssertArraysEqual(t, decades, values)

	values, _, err = Traverse(root, traversal.LevelOrder)
	common.AssertNoError(t, err)
	common.AssertArraysEqual(t, []float64{25, 45, 65, 5, 15, 25, 35, 45, 55, 65, 75, 85, 95}, values)

	if _, _, err := Traverse(root, traversal.PostOrder); !errors.Is(err, traversal.ErrUnsupportedOrder) {
		t.Errorf("post-order should not be supported, got %v", err)
	}
}

func TestBPlusTree_CloneRedirectsLeafLinks(t *testing.T) {
	_, root := build(t, 3, decades...)
	c := root.Clone()
	if err := Verify(c, 3); err != nil {
		t.Fatalf("clone is not a valid tree: %v", err)
	}
	for i, leaf := range c.Children[:len(c.Children)-1] {
		if leaf.Next != c.Children[i+1] {
			t.Errorf("leaf %d of the clone is not linked to its cloned neighbour", i)
		}
		if leaf.Next == root.Children[i+1] {
			t.Errorf("leaf %d of the clone is linked into the original tree", i)
		}
	}
}

func TestBPlusTree_JsonEncodesLeafLinksById(t *testing.T) {
	_, root := build(t, 3, decades...)
	data, err := json.Marshal(root)
	common.AssertNoError(t, err)

	var decoded struct {
		Keys     []float64 `json:"keys"`
		Children []struct {
			Id   common.NodeId `json:"id"`
			Next common.NodeId `json:"next"`
		} `json:"children"`
	}
	common.AssertNoError(t, json.Unmarshal(data, &decoded))
	common.AssertArraysEqual(t, root.Keys, decoded.Keys)
	for i, child := range decoded.Children {
		want := common.NoNode
		if i+1 < len(decoded.Children) {
			want = decoded.Children[i+1].Id
		}
		if child.Next != want {
			t.Errorf("leaf %d: wanted link to %v, got %v", i, want, child.Next)
		}
	}
}

func TestBPlusTree_VerifyDetectsViolations(t *testing.T) {
	brokenChain := func() *Node {
		l1 := &Node{Id: 2, Leaf: true, Keys: []float64{1, 2}}
		l2 := &Node{Id: 3, Leaf: true, Keys: []float64{5, 6}}
		return &Node{Id: 1, Keys: []float64{5}, Children: []*Node{l1, l2}}
	}
	wrongRoutingKey := func() *Node {
		l2 := &Node{Id: 3, Leaf: true, Keys: []float64{5, 6}}
		l1 := &Node{Id: 2, Leaf: true, Keys: []float64{1, 2}, Next: l2}
		return &Node{Id: 1, Keys: []float64{4}, Children: []*Node{l1, l2}}
	}
	tests := map[string]*Node{
		"broken chain":      brokenChain(),
		"wrong routing key": wrongRoutingKey(),
		"overfull leaf":     {Id: 1, Leaf: true, Keys: []float64{1, 2, 3, 4}},
	}
	for name, root := range tests {
		t.Run(name, func(t *testing.T) {
			if err := Verify(root, 2); err == nil {
				t.Errorf("violation was not detected")
			}
		})
	}
}
