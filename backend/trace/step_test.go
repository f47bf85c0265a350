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
	"testing"

	"github.com/Fantom-foundation/treetrace/common"
)

func TestPath_WithDoesNotModifyReceiver(t *testing.T) {
	base := Path{1, 2}
	left := base.With(3)
	right := base.With(4, 5)
	common.AssertArraysEqual(t, []common.NodeId{1, 2}, base)
	common.AssertArraysEqual(t, []common.NodeId{1, 2, 3}, left)
	common.AssertArraysEqual(t, []common.NodeId{1, 2, 4, 5}, right)
}

func TestPath_ForkedPathsDoNotShareStorage(t *testing.T) {
	base := make(Path, 0, 10)
	base = append(base, 1)
	a := base.With(2)
	b := base.With(3)
	if a[1] != 2 || b[1] != 3 {
		t.Errorf("forked paths interfere: %v, %v", a, b)
	}
}

func TestFormatValue(t *testing.T) {
	tests := map[float64]string{
		50:    "50",
		-3:    "-3",
		2.5:   "2.5",
		0.125: "0.125",
		1e6:   "1000000",
	}
	for value, want := range tests {
		if got := FormatValue(value); got != want {
			t.Errorf("unexpected format of %v, wanted %s, got %s", value, want, got)
		}
	}
}

func TestFormatValues(t *testing.T) {
	common.AssertArraysEqual(t, []string{"1", "2.5"}, FormatValues([]float64{1, 2.5}))
}
