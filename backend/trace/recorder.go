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
	"fmt"

	"github.com/Fantom-foundation/treetrace/common"
)

// Recorder collects the steps of a single traced operation. Steps are
// append-only: highlighted ids are copied and, if the recorder was created
// with a snapshot function, every step obtains its own private snapshot of
// the tree at the time it was recorded. Later mutations of the live tree
// thus never leak into recorded steps.
//
// A Recorder is used for exactly one operation and must not be used after
// Finish was called.
type Recorder[N any] struct {
	name      string
	snapshot  func() N
	observer  Observer
	current   string
	remaining []string
	steps     []Step[N]
}

// NewRecorder starts recording the named operation. The snapshot function is
// called once per step to obtain an immutable copy of the current tree; it may
// be nil for read-only operations like searches and traversals. A nil
// observer is replaced by a NilObserver.
func NewRecorder[N any](name string, snapshot func() N, observer Observer) *Recorder[N] {
	if observer == nil {
		observer = NilObserver{}
	}
	observer.StartOperation(name)
	return &Recorder[N]{
		name:     name,
		snapshot: snapshot,
		observer: observer,
	}
}

// Process sets the value in flight and the queue of values still to be
// processed. Both are attached to all subsequently recorded steps.
func (r *Recorder[N]) Process(current string, remaining []string) {
	r.current = current
	if len(remaining) == 0 {
		r.remaining = nil
		return
	}
	r.remaining = append([]string(nil), remaining...)
}

// Record appends a step highlighting the given nodes.
func (r *Recorder[N]) Record(highlighted []common.NodeId, format string, args ...any) {
	r.record(nil, highlighted, fmt.Sprintf(format, args...))
}

// RecordKey appends a step highlighting the given nodes and, in addition, a
// single key of a multiway node.
func (r *Recorder[N]) RecordKey(key KeyHighlight, highlighted []common.NodeId, format string, args ...any) {
	r.record(&key, highlighted, fmt.Sprintf(format, args...))
}

func (r *Recorder[N]) record(key *KeyHighlight, highlighted []common.NodeId, message string) {
	step := Step[N]{
		Highlighted: append([]common.NodeId{}, highlighted...),
		Key:         key,
		Message:     message,
		Current:     r.current,
		Remaining:   r.remaining,
	}
	if r.snapshot != nil {
		step.Snapshot = r.snapshot()
	}
	r.steps = append(r.steps, step)
	r.observer.StepRecorded(len(r.steps)-1, message)
}

// Len returns the number of steps recorded so far.
func (r *Recorder[N]) Len() int {
	return len(r.steps)
}

// Finish ends the operation and hands the recorded steps to the caller.
func (r *Recorder[N]) Finish() []Step[N] {
	r.observer.EndOperation(r.name, len(r.steps))
	steps := r.steps
	r.steps = nil
	return steps
}

// Messages extracts the narration of a list of steps.
func Messages[N any](steps []Step[N]) []string {
	res := make([]string, len(steps))
	for i, step := range steps {
		res[i] = step.Message
	}
	return res
}
