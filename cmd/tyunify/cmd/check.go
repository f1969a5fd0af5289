// Copyright 2026 The tyunify Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/cue-unify/tyunify/cmd/tyunify/config"
	"github.com/cue-unify/tyunify/cmd/tyunify/parse"
	"github.com/cue-unify/tyunify/internal/types"
	"github.com/cue-unify/tyunify/internal/types/tree"
	"github.com/cue-unify/tyunify/unifyerrors"
)

func newCheckCmd(c *Command) *cobra.Command {
	var (
		cfgPath  string
		showStat bool
		argsFlag string
	)

	cmd := &cobra.Command{
		Use:   "check <file.tyx>...",
		Short: "run the two-pass protocol over a .tyx tree and print resolved types",
		Long: `check parses one or more .tyx tree files (an atom is
(atom T1 T2 ...), a call is (call name arg1 arg2 ...)), builds the
reference tree.MethodNode/AtomicNode AST, runs pass 1, resolves pass 2
against the unique top-level type pass 1 produced, runs pass 3, and prints
every node's resolved type.`,
		RunE: func(cc *cobra.Command, args []string) error {
			if argsFlag != "" {
				extra, err := shlex.Split(argsFlag)
				if err != nil {
					return fmt.Errorf("check: parsing --args: %w", err)
				}
				args = append(args, extra...)
			}
			if len(args) == 0 {
				return fmt.Errorf("check: at least one .tyx file required")
			}

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			for _, path := range args {
				if err := runCheck(c, cfg, path, showStat); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to a .tyunify.yaml config file")
	cmd.Flags().BoolVar(&showStat, "stats", false, "print pass counters after checking")
	cmd.Flags().StringVar(&argsFlag, "args", "", "shell-quoted extra file paths, split with shlex and appended to the positional arguments")

	return cmd
}

func runCheck(c *Command, cfg *config.Config, path string, showStats bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	root, err := parse.Tree(string(src), cfg)
	if err != nil {
		return fmt.Errorf("check: %s: %w", path, err)
	}

	ctx := types.NewContext(cfg.ConverterRegistry())

	cands, err := root.PossibleUnifiers(ctx, types.NewUnifier(), false)
	if err != nil {
		return reportErr(c, path, err)
	}
	if len(cands) != 1 {
		terms := make([]types.Term, len(cands))
		for i, cand := range cands {
			terms[i] = cand.Term
		}
		return reportErr(c, path, types.NewTooManyPossibleTypes(root.Pos(), terms))
	}

	final, err := root.ResolveUnifiers(ctx, cands[0].Term, cands[0].Sigma, nil, true)
	if err != nil {
		return reportErr(c, path, err)
	}
	root.FinalizeUnifiers(final.Sigma)

	fmt.Fprintf(c.Stdout(), "%s: %s\n", path, final.Term)
	printNode(c, root, 1)

	if showStats {
		fmt.Fprint(c.Stdout(), ctx.Stats.String())
	}
	return nil
}

func printNode(c *Command, n tree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if m, ok := n.(tree.MethodNode); ok {
		for _, a := range m.Args() {
			fmt.Fprintf(c.Stdout(), "%s%s\n", indent, a.SelectedReturn())
			printNode(c, a, depth+1)
		}
	}
}

// ErrPrintedError is returned once a failure has already been written to
// stderr via unifyerrors.Print, so Main doesn't print it a second time
// (mirrors cmd/cue/cmd's ErrPrintedError sentinel).
var ErrPrintedError = fmt.Errorf("tyunify: check failed")

func reportErr(c *Command, path string, err error) error {
	fmt.Fprintf(c.Stderr(), "%s:\n", path)
	unifyerrors.Print(c.Stderr(), err)
	return ErrPrintedError
}
