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

import (
	"testing"

	"golang.org/x/exp/constraints"
)

// AssertArraysEqual fails the test if the two slices differ in length or in
// any element.
func AssertArraysEqual[V comparable](t *testing.T, want, got []V) {
	t.Helper()
	if len(want) != len(got) {
		t.Errorf("array sizes differ, wanted %d (%v), got %d (%v)", len(want), want, len(got), got)
		return
	}
	for i := 0; i < len(want); i++ {
		if want[i] != got[i] {
			t.Errorf("element %d differs: wanted %v, got %v", i, want[i], got[i])
		}
	}
}

// AssertArrayStrictlyIncreasing fails the test if the elements of the given
// slice are not in strictly increasing order, which also rules out duplicates.
func AssertArrayStrictlyIncreasing[T constraints.Ordered](t *testing.T, arr []T) {
	t.Helper()
	for i := 1; i < len(arr); i++ {
		if arr[i-1] >= arr[i] {
			t.Errorf("not strictly increasing at %d: %v >= %v", i, arr[i-1], arr[i])
		}
	}
}

// AssertNoError fails the test immediately if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
