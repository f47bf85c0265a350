// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package input normalizes the free-form text handed to the tree engines
// into validated value lists. All validation happens here, before any tree
// is touched.
package input

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Fantom-foundation/treetrace/common"
	"golang.org/x/text/cases"
)

const (
	ErrEmptyInput    = common.ConstError("input is empty")
	ErrNotANumber    = common.ConstError("not a number")
	ErrInvalidWord   = common.ConstError("not a lowercase word")
	ErrInvalidDegree = common.ConstError("invalid minimum degree")
)

// MinDegree and MaxDegree bound the minimum degree t of B-Trees and B+Trees.
const (
	MinDegree = 2
	MaxDegree = 100
)

var wordPattern = regexp.MustCompile(`^[a-z]+$`)

// ParseNumbers parses a comma separated list of numbers, optionally enclosed
// in square brackets, e.g. "[50, 30, 70]". Blank tokens are ignored. Any
// other token that is not a finite number is an error. Duplicates are
// removed, keeping the first occurrence, so the result lists the distinct
// values in input order.
func ParseNumbers(text string) ([]float64, error) {
	tokens := tokenize(strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(text), "["), "]"))
	if len(tokens) == 0 {
		return nil, ErrEmptyInput
	}
	res := make([]float64, 0, len(tokens))
	seen := make(map[float64]struct{}, len(tokens))
	for _, token := range tokens {
		value, err := parseNumber(token)
		if err != nil {
			return nil, err
		}
		if _, found := seen[value]; found {
			continue
		}
		seen[value] = struct{}{}
		res = append(res, value)
	}
	return res, nil
}

// ParseValue parses a single number.
func ParseValue(text string) (float64, error) {
	token := strings.TrimSpace(text)
	if token == "" {
		return 0, ErrEmptyInput
	}
	return parseNumber(token)
}

func parseNumber(token string) (float64, error) {
	value, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, token)
	}
	// -0 and 0 are the same key
	if value == 0 {
		value = 0
	}
	return value, nil
}

// ParseWords parses a comma separated list of words. Words are case-folded;
// tokens that are not made of the letters a-z only are dropped silently,
// including words with diacritics like "café". It is an error if no word
// remains.
func ParseWords(text string) ([]string, error) {
	var res []string
	for _, token := range tokenize(text) {
		if word := fold(token); wordPattern.MatchString(word) {
			res = append(res, word)
		}
	}
	if len(res) == 0 {
		return nil, ErrEmptyInput
	}
	return res, nil
}

// ParseWord parses a single word. Unlike ParseWords, an invalid word is an
// error since there would be nothing left to operate on.
func ParseWord(text string) (string, error) {
	token := strings.TrimSpace(text)
	if token == "" {
		return "", ErrEmptyInput
	}
	word := fold(token)
	if !wordPattern.MatchString(word) {
		return "", fmt.Errorf("%w: %q", ErrInvalidWord, token)
	}
	return word, nil
}

// fold case-folds a token, e.g. "Tree" to "tree". Letters with diacritics
// are kept as they are and fail the word pattern afterwards.
func fold(token string) string {
	return cases.Fold().String(token)
}

// ParseDegree parses the minimum degree of a B-Tree or B+Tree.
func ParseDegree(text string) (int, error) {
	token := strings.TrimSpace(text)
	t, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidDegree, token)
	}
	if err := ValidateDegree(t); err != nil {
		return 0, err
	}
	return t, nil
}

// ValidateDegree checks that t is within [MinDegree, MaxDegree].
func ValidateDegree(t int) error {
	if t < MinDegree || t > MaxDegree {
		return fmt.Errorf("%w: %d is outside of [%d, %d]", ErrInvalidDegree, t, MinDegree, MaxDegree)
	}
	return nil
}

func tokenize(text string) []string {
	var res []string
	for _, token := range strings.Split(text, ",") {
		if token = strings.TrimSpace(token); token != "" {
			res = append(res, token)
		}
	}
	return res
}
