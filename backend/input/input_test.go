// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package input

import (
	"errors"
	"testing"

	"github.com/Fantom-foundation/treetrace/common"
)

func TestParseNumbers_AcceptsValidLists(t *testing.T) {
	tests := map[string][]float64{
		"50, 30, 70":         {50, 30, 70},
		"[50, 30, 70]":       {50, 30, 70},
		"  [1,2,3]  ":        {1, 2, 3},
		"1.5,-2,0.25":        {1.5, -2, 0.25},
		"7":                  {7},
		"1, , 2,":            {1, 2},
		"3, 1, 3, 2, 1":      {3, 1, 2},
		"10, 10.0, 1e1, 20":  {10, 20},
		"[5,15,25,35,45,55]": {5, 15, 25, 35, 45, 55},
		"-0, 0":              {0},
	}
	for text, want := range tests {
		got, err := ParseNumbers(text)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", text, err)
			continue
		}
		common.AssertArraysEqual(t, want, got)
	}
}

func TestParseNumbers_RejectsInvalidInput(t *testing.T) {
	tests := map[string]error{
		"":            ErrEmptyInput,
		"   ":         ErrEmptyInput,
		"[]":          ErrEmptyInput,
		",,":          ErrEmptyInput,
		"1, two, 3":   ErrNotANumber,
		"1, 2x":       ErrNotANumber,
		"NaN":         ErrNotANumber,
		"1, Inf":      ErrNotANumber,
		"[1, 2, [3]]": ErrNotANumber,
	}
	for text, want := range tests {
		if _, err := ParseNumbers(text); !errors.Is(err, want) {
			t.Errorf("unexpected error for %q, wanted %v, got %v", text, want, err)
		}
	}
}

func TestParseValue(t *testing.T) {
	if got, err := ParseValue(" 42.5 "); err != nil || got != 42.5 {
		t.Errorf("unexpected result: %v, %v", got, err)
	}
	if _, err := ParseValue(""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty value should be rejected, got %v", err)
	}
	if _, err := ParseValue("abc"); !errors.Is(err, ErrNotANumber) {
		t.Errorf("non-numeric value should be rejected, got %v", err)
	}
}

func TestParseWords_FoldsCaseAndDropsInvalidTokens(t *testing.T) {
	tests := map[string][]string{
		"cat, car, cart":    {"cat", "car", "cart"},
		"Cat,CAR":           {"cat", "car"},
		"cat, c4t, dog":     {"cat", "dog"},
		"hello world, tree": {"tree"},
		" a ,, b ":          {"a", "b"},
		"cat, cat":          {"cat", "cat"},
		"naïve, plain":      {"plain"},
		"cat, Café, naïve":  {"cat"},
		"Straße, TREE":      {"strasse", "tree"},
		"日本, ok":            {"ok"},
	}
	for text, want := range tests {
		got, err := ParseWords(text)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", text, err)
			continue
		}
		common.AssertArraysEqual(t, want, got)
	}
}

func TestParseWords_NoValidWordIsAnError(t *testing.T) {
	for _, text := range []string{"", "  ", "123, 4u", ",,"} {
		if _, err := ParseWords(text); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("unexpected error for %q: %v", text, err)
		}
	}
}

func TestParseWord(t *testing.T) {
	if got, err := ParseWord(" Tree "); err != nil || got != "tree" {
		t.Errorf("unexpected result: %q, %v", got, err)
	}
	if _, err := ParseWord(""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty word should be rejected, got %v", err)
	}
	if _, err := ParseWord("tr3e"); !errors.Is(err, ErrInvalidWord) {
		t.Errorf("invalid word should be rejected, got %v", err)
	}
	if _, err := ParseWord("Café"); !errors.Is(err, ErrInvalidWord) {
		t.Errorf("word with diacritics should be rejected, got %v", err)
	}
}

func TestParseDegree(t *testing.T) {
	valid := map[string]int{"2": 2, " 3 ": 3, "100": 100}
	for text, want := range valid {
		if got, err := ParseDegree(text); err != nil || got != want {
			t.Errorf("unexpected result for %q: %d, %v", text, got, err)
		}
	}
	for _, text := range []string{"", "1", "0", "-2", "101", "2.5", "three"} {
		if _, err := ParseDegree(text); !errors.Is(err, ErrInvalidDegree) {
			t.Errorf("degree %q should be rejected, got %v", text, err)
		}
	}
}

func TestValidateDegree(t *testing.T) {
	for d := MinDegree; d <= MaxDegree; d++ {
		if err := ValidateDegree(d); err != nil {
			t.Errorf("degree %d should be valid: %v", d, err)
		}
	}
	for _, d := range []int{-1, 0, 1, MaxDegree + 1} {
		if err := ValidateDegree(d); !errors.Is(err, ErrInvalidDegree) {
			t.Errorf("degree %d should be invalid, got %v", d, err)
		}
	}
}
