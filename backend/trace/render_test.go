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

import (
	"strings"
	"testing"
)

type labelled struct {
	name     string
	children []*labelled
}

func labelOf(n *labelled) string {
	return n.name
}

func childrenOf(n *labelled) []*labelled {
	return n.children
}

func TestRender_EmptyTree(t *testing.T) {
	if got := Render[*labelled](nil, labelOf, childrenOf); got != "(empty)\n" {
		t.Errorf("unexpected rendering of empty tree: %q", got)
	}
}

func TestRender_ListsAllNodesOnePerLine(t *testing.T) {
	root := &labelled{name: "50", children: []*labelled{
		{name: "30", children: []*labelled{{name: "20"}, nil}},
		{name: "70"},
	}}
	out := Render(root, labelOf, childrenOf)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("unexpected number of lines, wanted 5, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "50" {
		t.Errorf("first line should be the root, got %q", lines[0])
	}
	for i, label := range []string{"30", "20", "·", "70"} {
		if !strings.HasSuffix(lines[i+1], label) {
			t.Errorf("line %d should show %s, got %q", i+1, label, lines[i+1])
		}
	}
}
