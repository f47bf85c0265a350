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

import "testing"

func digestOf(write func(d *Digester)) Hash {
	d := NewDigester()
	defer d.Release()
	write(d)
	return d.Sum()
}

func TestDigester_EmptyInputProducesKeccakOfNothing(t *testing.T) {
	// keccak256 of the empty string
	const want = "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got := digestOf(func(*Digester) {}).String(); got != want {
		t.Errorf("unexpected digest of empty input, wanted %s, got %s", want, got)
	}
}

func TestDigester_IsDeterministic(t *testing.T) {
	write := func(d *Digester) {
		d.Marker('n')
		d.Float(50)
		d.Int(2)
		d.Text("cart")
		d.Bool(true)
	}
	if a, b := digestOf(write), digestOf(write); a != b {
		t.Errorf("digests of equal input differ: %v vs %v", a, b)
	}
}

func TestDigester_DifferentInputsProduceDifferentDigests(t *testing.T) {
	inputs := []func(d *Digester){
		func(d *Digester) { d.Float(1) },
		func(d *Digester) { d.Float(2) },
		func(d *Digester) { d.Float(1); d.Float(2) },
		func(d *Digester) { d.Float(2); d.Float(1) },
		func(d *Digester) { d.Text("ab") },
		func(d *Digester) { d.Text("a"); d.Text("b") },
		func(d *Digester) { d.Bool(true) },
		func(d *Digester) { d.Bool(false) },
	}
	seen := map[Hash]int{}
	for i, input := range inputs {
		h := digestOf(input)
		if j, found := seen[h]; found {
			t.Errorf("inputs %d and %d produce the same digest %v", j, i, h)
		}
		seen[h] = i
	}
}

func TestDigester_PooledHashersAreReset(t *testing.T) {
	first := digestOf(func(d *Digester) { d.Float(7) })
	digestOf(func(d *Digester) { d.Text("noise") })
	if again := digestOf(func(d *Digester) { d.Float(7) }); again != first {
		t.Errorf("reused hasher leaked state: %v vs %v", first, again)
	}
}
