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
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"
	"sync"

	"golang.org/x/crypto/sha3"
)

// Hash is a 32-byte keccak digest.
type Hash [32]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

var keccakHasherPool = sync.Pool{New: func() any { return sha3.NewLegacyKeccak256() }}

// Digester accumulates a canonical encoding of a tree structure and produces
// its keccak256 digest. Trees are fingerprinted by writing their content in a
// fixed visiting order together with structural markers, while node ids are
// left out. Two trees holding the same keys in the same shape thus share a
// digest no matter which ids their nodes were given.
type Digester struct {
	hasher hash.Hash
	buffer [8]byte
}

// NewDigester creates a digester. Release must be called once the digest was
// obtained.
func NewDigester() *Digester {
	hasher := keccakHasherPool.Get().(hash.Hash)
	hasher.Reset()
	return &Digester{hasher: hasher}
}

// Marker writes a single structural marker byte.
func (d *Digester) Marker(m byte) {
	d.buffer[0] = m
	d.hasher.Write(d.buffer[:1])
}

// Float writes a numeric key.
func (d *Digester) Float(value float64) {
	binary.BigEndian.PutUint64(d.buffer[:], math.Float64bits(value))
	d.hasher.Write(d.buffer[:])
}

// Int writes a length or count.
func (d *Digester) Int(value int) {
	binary.BigEndian.PutUint64(d.buffer[:], uint64(value))
	d.hasher.Write(d.buffer[:])
}

// Text writes a length-prefixed string.
func (d *Digester) Text(value string) {
	d.Int(len(value))
	d.hasher.Write([]byte(value))
}

// Bool writes a flag.
func (d *Digester) Bool(value bool) {
	if value {
		d.Marker(1)
	} else {
		d.Marker(0)
	}
}

// Sum returns the digest of everything written so far.
func (d *Digester) Sum() (res Hash) {
	copy(res[:], d.hasher.Sum(nil))
	return res
}

// Release returns the underlying hasher to the pool. The digester must not be
// used afterwards.
func (d *Digester) Release() {
	keccakHasherPool.Put(d.hasher)
	d.hasher = nil
}
