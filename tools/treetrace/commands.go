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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Fantom-foundation/treetrace/backend/trace"
	"github.com/Fantom-foundation/treetrace/backend/traversal"
	"github.com/Fantom-foundation/treetrace/common"
	"github.com/urfave/cli/v2"
)

const errUnknownFormat = common.ConstError("unknown output format")

var (
	treeFlag = cli.StringFlag{
		Name:  "tree",
		Usage: "the tree family, one of bst, avl, btree, bplustree, rbtree, trie",
		Value: "bst",
	}
	valuesFlag = cli.StringFlag{
		Name:  "values",
		Usage: "comma separated keys, or words for tries, the tree is built from",
	}
	valueFlag = cli.StringFlag{
		Name:     "value",
		Usage:    "the key or word to operate on",
		Required: true,
	}
	degreeFlag = cli.IntFlag{
		Name:  "degree",
		Usage: "the minimum degree of B-Trees and B+Trees",
		Value: 2,
	}
	formatFlag = cli.StringFlag{
		Name:  "format",
		Usage: "the output format, text or json",
		Value: "text",
	}
	orderFlag = cli.StringFlag{
		Name:  "order",
		Usage: "the traversal order, one of in, pre, post, level, leaf",
		Value: "in-order",
	}
	quietFlag = cli.BoolFlag{
		Name:  "quiet",
		Usage: "disables progress logging",
	}
	digestFlag = cli.BoolFlag{
		Name:  "digest",
		Usage: "reports a fingerprint of the resulting tree",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "sets the file the trace is written to as JSON, disabled if empty",
	}
)

var commonFlags = []cli.Flag{
	&treeFlag,
	&valuesFlag,
	&degreeFlag,
	&formatFlag,
	&quietFlag,
	&digestFlag,
	&outFlag,
}

var Build = cli.Command{
	Action: func(ctx *cli.Context) error {
		return run(ctx, false, func(s session) (*outcome, error) {
			return s.build(ctx.String(valuesFlag.Name))
		})
	},
	Name:  "build",
	Usage: "traces building a tree from a list of keys",
	Flags: commonFlags,
}

var Insert = cli.Command{
	Action: func(ctx *cli.Context) error {
		return run(ctx, true, func(s session) (*outcome, error) {
			return s.insert(ctx.String(valueFlag.Name))
		})
	},
	Name:  "insert",
	Usage: "traces inserting a key into a tree built from the given keys",
	Flags: append([]cli.Flag{&valueFlag}, commonFlags...),
}

var Delete = cli.Command{
	Action: func(ctx *cli.Context) error {
		return run(ctx, true, func(s session) (*outcome, error) {
			return s.delete(ctx.String(valueFlag.Name))
		})
	},
	Name:  "delete",
	Usage: "traces deleting a key from a tree built from the given keys",
	Flags: append([]cli.Flag{&valueFlag}, commonFlags...),
}

var Search = cli.Command{
	Action: func(ctx *cli.Context) error {
		return run(ctx, true, func(s session) (*outcome, error) {
			return s.search(ctx.String(valueFlag.Name))
		})
	},
	Name:  "search",
	Usage: "traces searching a key in a tree built from the given keys",
	Flags: append([]cli.Flag{&valueFlag}, commonFlags...),
}

var Traverse = cli.Command{
	Action: func(ctx *cli.Context) error {
		order, err := traversal.ParseOrder(ctx.String(orderFlag.Name))
		if err != nil {
			return err
		}
		return run(ctx, true, func(s session) (*outcome, error) {
			return s.traverse(order)
		})
	},
	Name:  "traverse",
	Usage: "traces walking a tree built from the given keys",
	Flags: append([]cli.Flag{&orderFlag}, commonFlags...),
}

var Verify = cli.Command{
	Action: verify,
	Name:   "verify",
	Usage:  "builds a tree from the given keys and checks its invariants",
	Flags:  commonFlags,
}

// run opens a session, optionally preloaded with the tree built from the
// values flag, applies the given operation and reports its outcome.
func run(ctx *cli.Context, preload bool, apply func(session) (*outcome, error)) error {
	format := ctx.String(formatFlag.Name)
	if format != "text" && format != "json" {
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
	s, err := open(ctx, preload)
	if err != nil {
		return err
	}
	res, err := apply(s)
	if err != nil {
		return err
	}
	if ctx.Bool(digestFlag.Name) {
		res.Digest = s.digest().String()
	}
	if file := ctx.String(outFlag.Name); file != "" {
		if err := writeJsonFile(file, res); err != nil {
			return err
		}
	}
	out := ctx.App.Writer
	if format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(res)
	}
	printOutcome(out, s, res)
	return nil
}

func open(ctx *cli.Context, preload bool) (session, error) {
	var observer trace.Observer
	if !ctx.Bool(quietFlag.Name) {
		observer = &logObserver{log: NewLog(ctx.App.ErrWriter)}
	}
	s, err := newSession(ctx.String(treeFlag.Name), ctx.Int(degreeFlag.Name), observer)
	if err != nil {
		return nil, err
	}
	if values := ctx.String(valuesFlag.Name); preload && values != "" {
		if err := s.load(values); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func printOutcome(out io.Writer, s session, res *outcome) {
	fmt.Fprintln(out, res.Operation)
	for i, msg := range res.messages {
		fmt.Fprintf(out, "%4d  %s\n", i+1, msg)
	}
	fmt.Fprint(out, s.print())
	if res.Digest != "" {
		fmt.Fprintf(out, "digest: %s\n", res.Digest)
	}
}

func verify(ctx *cli.Context) error {
	s, err := open(ctx, true)
	if err != nil {
		return err
	}
	fmt.Fprint(ctx.App.Writer, s.print())
	if err := s.verify(); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	if ctx.Bool(digestFlag.Name) {
		fmt.Fprintf(ctx.App.Writer, "digest: %v\n", s.digest())
	}
	fmt.Fprintln(ctx.App.Writer, "Verification successful!")
	return nil
}

// writeJsonFile marshals the given data into a JSON file.
func writeJsonFile[T any](file string, data T) error {
	content, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(file, content, 0600)
}
