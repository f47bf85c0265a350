// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package trace records the execution of tree algorithms as an ordered list
// of steps. Each step names the nodes an algorithm is looking at, narrates
// what happens, and optionally carries an immutable snapshot of the whole
// tree at that instant. Step lists are consumed by replay tools; they never
// feed back into the algorithms.
package trace

import (
	"strconv"

	"github.com/Fantom-foundation/treetrace/common"
)

// KeyHighlight addresses a single key within a multiway node.
type KeyHighlight struct {
	Node  common.NodeId `json:"node"`
	Index int           `json:"index"`
}

// Step is one entry of a recorded trace. N is the node type of the traced
// tree; the zero value of N (a nil pointer) denotes the absence of a
// snapshot.
type Step[N any] struct {
	// Highlighted lists the nodes in focus, usually the cumulative path from
	// the root down to the node currently inspected.
	Highlighted []common.NodeId `json:"highlighted"`
	// Key optionally singles out one key within a multiway node.
	Key *KeyHighlight `json:"key,omitempty"`
	// Message narrates the step.
	Message string `json:"message"`
	// Snapshot is a private copy of the tree at the time of the step.
	Snapshot N `json:"snapshot,omitempty"`
	// Current is the value or word being processed, for display only.
	Current string `json:"current,omitempty"`
	// Remaining lists values or words still queued, for display only.
	Remaining []string `json:"remaining,omitempty"`
}

// Path is a cumulative list of visited node ids.
type Path []common.NodeId

// With returns a new path extended by the given ids. The receiver is never
// modified, so paths can be forked freely while descending a tree.
func (p Path) With(ids ...common.NodeId) Path {
	res := make(Path, 0, len(p)+len(ids))
	res = append(res, p...)
	return append(res, ids...)
}

// FormatValue renders a numeric key the way it is presented in narration,
// i.e. integers without a fractional part.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatValues renders a list of keys.
func FormatValues(values []float64) []string {
	res := make([]string, len(values))
	for i, v := range values {
		res[i] = FormatValue(v)
	}
	return res
}
