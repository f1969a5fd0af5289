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

package tree_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/cue-unify/tyunify/internal/site"
	"github.com/cue-unify/tyunify/internal/types"
	"github.com/cue-unify/tyunify/internal/types/tree"
)

func atom(ctx *types.Context, pos site.Pos, cands ...types.Term) tree.Node {
	return tree.NewAtomicNode(pos, cands, false)
}

// TestMethodOverloadDisambiguation is scenario 3 of spec.md §8: two
// overloads, only one of which accepts the given argument types.
func TestMethodOverloadDisambiguation(t *testing.T) {
	ctx := newCtx()
	intT, floatT := types.NewKnown("int"), types.NewKnown("float")
	overloads := []*types.Dummy{
		types.NewMethod(intT, intT, intT),
		types.NewMethod(floatT, floatT, floatT),
	}
	args := []tree.Node{
		atom(ctx, site.New("a", 0), intT),
		atom(ctx, site.New("a", 1), intT),
	}
	call := tree.NewMethodNode(site.New("call", 0), overloads, args, nil, false)

	cands, err := call.PossibleUnifiers(ctx, types.NewUnifier(), false)
	qt.Assert(t, qt.IsTrue(err == nil))
	qt.Assert(t, qt.Equals(len(cands), 1))
	qt.Assert(t, qt.IsTrue(types.Equal(cands[0].Term, intT)))

	final, err := call.ResolveUnifiers(ctx, intT, cands[0].Sigma, nil, true)
	qt.Assert(t, qt.IsTrue(err == nil))
	qt.Assert(t, qt.IsTrue(types.Equal(final.Term, intT)))
}

// TestMethodGenericResolvesUpward exercises a single generic overload
// Identity<T>(T) -> T: a concrete argument resolves T upward to that
// argument's type. This is the simple case of upward generic resolution;
// see TestMethodGenericConversionResolvesUpward for spec.md §8 scenario 1
// proper, which additionally routes through a generic implicit conversion.
func TestMethodGenericResolvesUpward(t *testing.T) {
	ctx := newCtx()
	intT := types.NewKnown("int")
	v := ctx.Vars.Fresh("T")
	overloads := []*types.Dummy{types.NewMethod(v, v)}
	args := []tree.Node{atom(ctx, site.New("a", 0), intT)}
	call := tree.NewMethodNode(site.New("call", 0), overloads, args, nil, false)

	cands, err := call.PossibleUnifiers(ctx, types.NewUnifier(), false)
	qt.Assert(t, qt.IsTrue(err == nil))
	qt.Assert(t, qt.Equals(len(cands), 1))
	qt.Assert(t, qt.IsTrue(types.Equal(cands[0].Term, intT)))
}

// TestMethodDownstreamInferenceLeavesVarUnresolved is scenario 5 of
// spec.md §8: a "Consume" overload whose generic only appears in the
// argument position leaves that generic unresolved in the node's own
// candidate, since nothing downstream constrains it yet.
func TestMethodDownstreamInferenceLeavesVarUnresolved(t *testing.T) {
	ctx := newCtx()
	floatT := types.NewKnown("float")
	v := ctx.Vars.Fresh("T")
	// Consume<T>(T) -> float: argument position generic, unconstrained by
	// the fixed float return.
	overloads := []*types.Dummy{types.NewMethod(floatT, v)}
	argVar := ctx.Vars.Fresh("U")
	args := []tree.Node{atom(ctx, site.New("a", 0), argVar)}
	call := tree.NewMethodNode(site.New("call", 0), overloads, args, nil, false)

	cands, err := call.PossibleUnifiers(ctx, types.NewUnifier(), false)
	qt.Assert(t, qt.IsTrue(err == nil))
	qt.Assert(t, qt.Equals(len(cands), 1))
	qt.Assert(t, qt.IsTrue(types.Equal(cands[0].Term, floatT)))
	qt.Assert(t, qt.IsFalse(types.IsResolved(cands[0].Sigma.Resolve(v))))
}

// TestMethodNoPossibleOverload is scenario: no overload accepts the given
// arguments at all, even after the implicit-cast retry.
func TestMethodNoPossibleOverload(t *testing.T) {
	ctx := newCtx()
	intT, strT := types.NewKnown("int"), types.NewKnown("string")
	overloads := []*types.Dummy{types.NewMethod(intT, intT)}
	args := []tree.Node{atom(ctx, site.New("a", 0), strT)}
	call := tree.NewMethodNode(site.New("call", 0), overloads, args, nil, false)

	_, err := call.PossibleUnifiers(ctx, types.NewUnifier(), false)
	qt.Assert(t, qt.IsTrue(err != nil))
	_, ok := err.(*types.NoPossibleOverloadError)
	qt.Assert(t, qt.IsTrue(ok))
}

// TestMethodImplicitArgumentCast exercises the registry-backed retry pass:
// the sole overload only accepts float, but an int->float converter lets an
// int argument through.
func TestMethodImplicitArgumentCast(t *testing.T) {
	ctx := newCtx()
	intT, floatT := types.NewKnown("int"), types.NewKnown("float")
	ctx.Converters.Register(types.NewConverter("int->float", intT, floatT))

	overloads := []*types.Dummy{types.NewMethod(floatT, floatT)}
	args := []tree.Node{atom(ctx, site.New("a", 0), intT)}
	call := tree.NewMethodNode(site.New("call", 0), overloads, args, nil, false)

	cands, err := call.PossibleUnifiers(ctx, types.NewUnifier(), false)
	qt.Assert(t, qt.IsTrue(err == nil))
	qt.Assert(t, qt.Equals(len(cands), 1))
	qt.Assert(t, qt.IsTrue(types.Equal(cands[0].Term, floatT)))

	final, err := call.ResolveUnifiers(ctx, floatT, cands[0].Sigma, nil, true)
	qt.Assert(t, qt.IsTrue(err == nil))
	qt.Assert(t, qt.IsTrue(types.Equal(final.Term, floatT)))
}

// TestMethodGenericConversionResolvesUpward is scenario 1 of spec.md §8:
// First(ExFunc(float)), where First: List<T> -> T and ExFunc: A -> Func<int,
// A[]>. Without conversions pass 1 fails outright (List and Func never
// unify). Registering the generic conversion Func<int, T[]> -> List<T> must
// let pass 2 select T=float, attach the conversion on the ExFunc node, and
// yield top type float.
func TestMethodGenericConversionResolvesUpward(t *testing.T) {
	ctx := newCtx()
	intT, floatT := types.NewKnown("int"), types.NewKnown("float")

	convT := ctx.Vars.Fresh("T")
	ctx.Converters.Register(types.NewConverter(
		"Func->List",
		types.NewApplied("Func", intT, types.NewArray(convT)),
		types.NewApplied("List", convT),
	))

	// ExFunc: A -> Func<int, A[]>.
	exFuncA := ctx.Vars.Fresh("A")
	exFuncOverload := types.NewMethod(types.NewApplied("Func", intT, types.NewArray(exFuncA)), exFuncA)
	exFuncArgs := []tree.Node{atom(ctx, site.New("a", 0), floatT)}
	exFuncCall := tree.NewMethodNode(site.New("ExFunc", 0), []*types.Dummy{exFuncOverload}, exFuncArgs, nil, false)

	// First: List<T> -> T.
	firstT := ctx.Vars.Fresh("T")
	firstOverload := types.NewMethod(firstT, types.NewApplied("List", firstT))
	firstArgs := []tree.Node{exFuncCall}
	firstCall := tree.NewMethodNode(site.New("First", 0), []*types.Dummy{firstOverload}, firstArgs, nil, false)

	cands, err := firstCall.PossibleUnifiers(ctx, types.NewUnifier(), false)
	qt.Assert(t, qt.IsTrue(err == nil))
	qt.Assert(t, qt.Equals(len(cands), 1))
	qt.Assert(t, qt.IsTrue(types.Equal(cands[0].Term, floatT)))

	final, err := firstCall.ResolveUnifiers(ctx, floatT, cands[0].Sigma, nil, true)
	qt.Assert(t, qt.IsTrue(err == nil))
	qt.Assert(t, qt.IsTrue(types.Equal(final.Term, floatT)))

	cast := exFuncCall.ImplicitCast()
	qt.Assert(t, qt.IsTrue(cast != nil))
	qt.Assert(t, qt.Equals(cast.Converter.Name, "Func->List"))
	qt.Assert(t, qt.IsTrue(types.Equal(cast.Target, types.NewApplied("List", floatT))))
}
