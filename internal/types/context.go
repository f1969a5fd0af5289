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

package types

import (
	"fmt"
	"log"
	"os"

	"github.com/cue-unify/tyunify/internal/passtats"
)

// Context carries everything shared across one top-level check: the Var
// factory, the converter registry, pass counters, and an opt-in trace flag.
// It is passed by reference through UnifyEngine and TreeProtocol calls,
// mirroring the teacher's adt.OpContext threaded through every evaluator
// call; unlike OpContext it holds no mutable evaluation state of its own,
// since Unifier immutability (spec.md §5) means nothing here needs undo.
type Context struct {
	Vars       *VarFactory
	Converters *ConverterRegistry

	// Trace enables step-by-step tracing of unify attempts to stderr, off
	// by default, mirroring adt.OpContext.LogEval's gated conditional
	// printf (internal/core/adt/log.go).
	Trace bool

	Stats passtats.Counts
}

// NewContext returns a ready-to-use Context with a fresh VarFactory and the
// given converter registry (nil is fine; it behaves as an empty registry).
func NewContext(reg *ConverterRegistry) *Context {
	if reg == nil {
		reg = NewConverterRegistry()
	}
	return &Context{Vars: NewVarFactory(), Converters: reg}
}

func (c *Context) tracef(format string, args ...interface{}) {
	if c == nil || !c.Trace {
		return
	}
	log.New(os.Stderr, "types: ", 0).Output(2, fmt.Sprintf(format, args...))
}
