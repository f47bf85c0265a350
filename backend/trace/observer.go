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

//go:generate mockgen -source observer.go -destination observer_mocks.go -package trace

// Observer is a listener interface for tracking the progress of traced
// operations. It can, for instance, be implemented by a user interface or a
// logger to report on activities while an operation is running.
type Observer interface {
	StartOperation(name string)
	StepRecorded(index int, message string)
	EndOperation(name string, steps int)
}

// NilObserver is a trivial implementation of the observer interface above
// which ignores all reported events.
type NilObserver struct{}

func (NilObserver) StartOperation(string)    {}
func (NilObserver) StepRecorded(int, string) {}
func (NilObserver) EndOperation(string, int) {}
