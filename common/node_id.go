// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import "fmt"

// NodeId identifies a node of a tree across all snapshots recorded for it.
// Ids are assigned once when a node is created and are preserved by clones,
// so consumers of recorded steps can address "this exact node" in every
// snapshot. The zero value is reserved to denote the absence of a node.
type NodeId uint64

// NoNode is the id used where no node is referenced.
const NoNode = NodeId(0)

func (id NodeId) String() string {
	if id == NoNode {
		return "-"
	}
	return fmt.Sprintf("#%d", id)
}

// IdAllocator hands out node ids from a monotonically increasing counter.
// Ids are never reused. Each engine owns its own allocator, thus independent
// trees in one process never need to coordinate. An allocator is not safe
// for concurrent use.
type IdAllocator struct {
	last NodeId
}

// Next returns a fresh, never before returned id.
func (a *IdAllocator) Next() NodeId {
	a.last++
	return a.last
}

// Last returns the most recently allocated id or NoNode if none was
// allocated so far.
func (a *IdAllocator) Last() NodeId {
	return a.last
}
