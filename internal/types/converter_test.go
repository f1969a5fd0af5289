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

package types_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/cue-unify/tyunify/internal/types"
)

func TestRegistryIndexing(t *testing.T) {
	reg := types.NewConverterRegistry()
	intT, floatT, strT := types.NewKnown("int"), types.NewKnown("float"), types.NewKnown("string")
	reg.Register(types.NewConverter("int->float", intT, floatT))
	reg.Register(types.NewConverter("int->string", intT, strT))

	casts := reg.CastsFrom(intT)
	qt.Assert(t, qt.Equals(len(casts), 2))

	sources := reg.SourcesOf(floatT)
	qt.Assert(t, qt.Equals(len(sources), 1))
	qt.Assert(t, qt.Equals(sources[0].Name, "int->float"))
}

func TestGlobalConverterAppliesToAnySource(t *testing.T) {
	ctx := newCtx()
	reg := types.NewConverterRegistry()
	v := ctx.Vars.Fresh("T")
	listV := types.NewApplied("List", v)
	reg.Register(types.NewConverter("T->list", v, listV))

	casts := reg.CastsFrom(types.NewKnown("anything"))
	qt.Assert(t, qt.Equals(len(casts), 1))
}

func TestFreshInstanceIsolatesGenerics(t *testing.T) {
	ctx := newCtx()
	v := ctx.Vars.Fresh("T")
	conv := types.NewConverter("id", v, types.NewApplied("Box", v))

	a := conv.FreshInstance(ctx)
	b := conv.FreshInstance(ctx)

	av, aok := a.Source().(*types.Var)
	bv, bok := b.Source().(*types.Var)
	qt.Assert(t, qt.IsTrue(aok))
	qt.Assert(t, qt.IsTrue(bok))
	qt.Assert(t, qt.IsFalse(types.Equal(av, bv)))

	// The shared generic within one instance is still shared after renaming.
	boxed := a.Target().(*types.Known)
	qt.Assert(t, qt.IsTrue(types.Equal(boxed.Args[0], av)))
}
