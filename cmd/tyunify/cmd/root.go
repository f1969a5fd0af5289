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

// Package cmd is the tyunify command tree, grounded on cmd/cue/cmd's
// Command-wraps-cobra.Command pattern (root.go's newRootCmd), scaled down
// to this CLI's single real subcommand.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Command wraps a *cobra.Command with the in/out streams tests redirect,
// mirroring cmd/cue/cmd.Command.
type Command struct {
	*cobra.Command

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (c *Command) SetInput(r io.Reader)  { c.stdin = r }
func (c *Command) SetOutput(w io.Writer) { c.stdout = w; c.Command.SetOut(w) }
func (c *Command) SetError(w io.Writer)  { c.stderr = w; c.Command.SetErr(w) }

func (c *Command) Stdin() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

func (c *Command) Stdout() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return os.Stdout
}

func (c *Command) Stderr() io.Writer {
	if c.stderr != nil {
		return c.stderr
	}
	return os.Stderr
}

// New builds the tyunify root command and its subcommand tree.
func New() *Command {
	c := &Command{Command: &cobra.Command{
		Use:           "tyunify",
		Short:         "two-pass type unification and overload resolution",
		SilenceUsage:  true,
		SilenceErrors: true,
	}}
	c.AddCommand(newCheckCmd(c))
	return c
}

// Main is the CLI entrypoint, grounded on cmd/cue/cmd's Main: run the root
// command and translate an error into a process exit code. It is also the
// hook testscript.RunMain registers the "tyunify" binary name against in
// the package's script tests.
func Main() int {
	c := New()
	if err := c.Execute(); err != nil {
		if err != ErrPrintedError {
			fmt.Fprintln(c.Stderr(), err)
		}
		return 1
	}
	return 0
}
