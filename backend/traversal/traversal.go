// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package traversal produces step traces of read-only tree walks. The
// producers are generic over the node types of the individual tree engines;
// they never modify a tree and record no snapshots, since the tree does not
// change while it is walked. Recorded steps are reported to the observer
// handed to a producer, which may be nil.
package traversal

import (
	"fmt"
	"strings"

	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/common"
)

const (
	ErrUnknownOrder     = common.ConstError("unknown traversal order")
	ErrUnsupportedOrder = common.ConstError("traversal order not supported by this tree")
)

// Order enumerates the supported visiting orders.
type Order int

const (
	InOrder Order = iota
	PreOrder
	PostOrder
	LevelOrder
	LeafOrder
)

var orderNames = [...]string{"in-order", "pre-order", "post-order", "level-order", "leaf-order"}

func (o Order) String() string {
	if o < 0 || int(o) >= len(orderNames) {
		return fmt.Sprintf("order(%d)", int(o))
	}
	return orderNames[o]
}

// ParseOrder resolves the name of an order. Names are matched ignoring case,
// dashes and a trailing "order", i.e. "in-order", "inorder" and "in" all
// denote InOrder.
func ParseOrder(name string) (Order, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "")
	normalized = strings.TrimSuffix(normalized, "order")
	for i, candidate := range orderNames {
		if strings.TrimSuffix(strings.ReplaceAll(candidate, "-", ""), "order") == normalized {
			return Order(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOrder, name)
}

// visitor records the visiting order shared by all producers.
type visitor[N any, V any] struct {
	order   Order
	rec     *trace.Recorder[N]
	visited []V
	path    trace.Path
	seen    map[common.NodeId]bool
}

func newVisitor[N any, V any](order Order, observer trace.Observer) *visitor[N, V] {
	return &visitor[N, V]{
		order: order,
		rec:   trace.NewRecorder[N](order.String(), nil, observer),
		seen:  map[common.NodeId]bool{},
	}
}

// enter adds a node to the highlighted set of visited nodes.
func (v *visitor[N, V]) enter(id common.NodeId) {
	if !v.seen[id] {
		v.seen[id] = true
		v.path = v.path.With(id)
	}
}

func (v *visitor[N, V]) empty() ([]V, []trace.Step[N]) {
	v.rec.Record(nil, "Tree is empty, nothing to visit")
	return nil, v.rec.Finish()
}

func (v *visitor[N, V]) finish(format func(V) string) ([]V, []trace.Step[N]) {
	labels := make([]string, len(v.visited))
	for i, value := range v.visited {
		labels[i] = format(value)
	}
	v.rec.Record(v.path, "%s traversal complete: %s", capitalize(v.order.String()), strings.Join(labels, ", "))
	return v.visited, v.rec.Finish()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
