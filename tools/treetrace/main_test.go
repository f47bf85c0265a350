// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Fantom-foundation/treetrace/backend/input"
	"github.com/Fantom-foundation/treetrace/backend/traversal"
)

// runTool runs the tool with the given arguments and returns its standard
// and error output.
func runTool(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, log bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &log
	err := app.Run(append([]string{"treetrace"}, args...))
	return out.String(), log.String(), err
}

type result struct {
	Operation string
	Steps     []struct {
		Highlighted []uint64
		Message     string
	}
	Visited []string
	Digest  string
}

func runJson(t *testing.T, args ...string) result {
	t.Helper()
	out, _, err := runTool(t, append(args, "--format", "json", "--quiet")...)
	if err != nil {
		t.Fatalf("failed to run tool: %v", err)
	}
	var res result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("failed to decode output %s: %v", out, err)
	}
	return res
}

func TestBuild_PrintsTraceAndTree(t *testing.T) {
	out, _, err := runTool(t, "build", "--values", "5,3", "--quiet")
	if err != nil {
		t.Fatalf("failed to run tool: %v", err)
	}
	for _, want := range []string{
		"build\n",
		"   1  Tree is empty, 5 becomes the root\n",
		"Binary search tree built with 2 nodes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestBuild_LogsProgress(t *testing.T) {
	_, log, err := runTool(t, "build", "--tree", "rbtree", "--values", "1,2,3")
	if err != nil {
		t.Fatalf("failed to run tool: %v", err)
	}
	for _, want := range []string{"[t=   0:00] - Starting build ...", "Finished build after"} {
		if !strings.Contains(log, want) {
			t.Errorf("log lacks %q:\n%s", want, log)
		}
	}
}

func TestQuietDisablesLogging(t *testing.T) {
	_, log, err := runTool(t, "build", "--values", "1", "--quiet")
	if err != nil || log != "" {
		t.Errorf("unexpected log output %q, error %v", log, err)
	}
}

func TestInsert_RebalancesAvlTree(t *testing.T) {
	res := runJson(t, "insert", "--tree", "avl", "--values", "1,2", "--value", "3")
	if res.Operation != "insert 3" {
		t.Errorf("unexpected operation %q", res.Operation)
	}
	found := false
	for _, step := range res.Steps {
		found = found || step.Message == "Right-Right case at 1"
	}
	if !found {
		t.Errorf("insert should report a right-right case: %v", res.Steps)
	}
}

func TestDelete_FromBPlusTree(t *testing.T) {
	res := runJson(t, "delete", "--tree", "bplustree", "--degree", "3", "--values", "1,2,3,4,5,6,7", "--value", "4")
	if got, want := res.Steps[len(res.Steps)-1].Message, "4 deleted"; !strings.HasPrefix(got, want) {
		t.Errorf("unexpected final message %q", got)
	}
}

func TestSearch_ReportsTriePrefix(t *testing.T) {
	out, _, err := runTool(t, "search", "--tree", "trie", "--values", "cat,car,cart", "--value", "CA", "--quiet")
	if err != nil {
		t.Fatalf("failed to run tool: %v", err)
	}
	if !strings.Contains(out, "'ca' is only a prefix, not a stored word") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestTraverse_FollowsLeafChain(t *testing.T) {
	res := runJson(t, "traverse", "--tree", "bplustree", "--values", "3,1,2,5,4", "--order", "leaf")
	if got, want := strings.Join(res.Visited, ","), "1,2,3,4,5"; got != want {
		t.Errorf("unexpected visiting order, wanted %s, got %s", want, got)
	}
	if res.Operation != "leaf-order" {
		t.Errorf("unexpected operation %q", res.Operation)
	}
}

func TestTraverse_LogsProgress(t *testing.T) {
	_, log, err := runTool(t, "traverse", "--tree", "trie", "--values", "to,tea", "--order", "pre")
	if err != nil {
		t.Fatalf("failed to run tool: %v", err)
	}
	for _, want := range []string{"Starting pre-order ...", "Finished pre-order after 3 steps"} {
		if !strings.Contains(log, want) {
			t.Errorf("log lacks %q:\n%s", want, log)
		}
	}
}

func TestTraverse_RejectsUnsupportedOrder(t *testing.T) {
	_, _, err := runTool(t, "traverse", "--tree", "btree", "--values", "1", "--order", "post", "--quiet")
	if !errors.Is(err, traversal.ErrUnsupportedOrder) {
		t.Errorf("post-order should not be supported on B-Trees, got %v", err)
	}
}

func TestInvalidInputIsReported(t *testing.T) {
	tests := map[string]struct {
		args []string
		want error
	}{
		"unknown tree":   {[]string{"build", "--tree", "splay", "--values", "1"}, errUnknownTree},
		"unknown format": {[]string{"build", "--values", "1", "--format", "xml"}, errUnknownFormat},
		"bad number":     {[]string{"build", "--values", "1,x"}, input.ErrNotANumber},
		"bad degree":     {[]string{"build", "--tree", "btree", "--values", "1", "--degree", "1"}, input.ErrInvalidDegree},
		"no values":      {[]string{"build"}, input.ErrEmptyInput},
		"unknown order":  {[]string{"traverse", "--values", "1", "--order", "zigzag"}, traversal.ErrUnknownOrder},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := runTool(t, append(test.args, "--quiet")...)
			if !errors.Is(err, test.want) {
				t.Errorf("expected %v, got %v", test.want, err)
			}
		})
	}
}

func TestDigestIgnoresInsertionOrderOfSameShape(t *testing.T) {
	a := runJson(t, "build", "--values", "2,1,3", "--digest")
	b := runJson(t, "build", "--values", "2,3,1", "--digest")
	c := runJson(t, "build", "--values", "1,2,3", "--digest")
	if a.Digest == "" || a.Digest != b.Digest {
		t.Errorf("trees of the same shape should share a digest: %q vs %q", a.Digest, b.Digest)
	}
	if a.Digest == c.Digest {
		t.Errorf("trees of different shape should have different digests")
	}
}

func TestOutWritesTraceFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "trace.json")
	if _, _, err := runTool(t, "build", "--tree", "btree", "--values", "1,2,3,4", "--out", file, "--quiet"); err != nil {
		t.Fatalf("failed to run tool: %v", err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read trace: %v", err)
	}
	var res result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("failed to decode trace: %v", err)
	}
	if res.Operation != "build" || len(res.Steps) == 0 {
		t.Errorf("unexpected trace: %s", data)
	}
}

func TestVerify(t *testing.T) {
	for _, family := range families {
		values := "5,2,8,1,9,3"
		if family == "trie" {
			values = "tea,ten,to,inn"
		}
		out, _, err := runTool(t, "verify", "--tree", family, "--values", values, "--quiet")
		if err != nil {
			t.Errorf("verification of %s failed: %v", family, err)
		}
		if !strings.HasSuffix(out, "Verification successful!\n") {
			t.Errorf("unexpected output for %s:\n%s", family, out)
		}
	}
}

func TestValueIsRequired(t *testing.T) {
	if _, _, err := runTool(t, "insert", "--values", "1", "--quiet"); err == nil {
		t.Errorf("insert without a value should fail")
	}
}
