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

func newCtx() *types.Context {
	return types.NewContext(nil)
}

func TestAtomicDirectMatch(t *testing.T) {
	ctx := newCtx()
	intT, floatT := types.NewKnown("int"), types.NewKnown("float")
	n := tree.NewAtomicNode(site.New("t", 0), []types.Term{intT, floatT}, false)

	cand, err := n.ResolveUnifiers(ctx, intT, types.NewUnifier(), nil, true)
	qt.Assert(t, qt.IsTrue(err == nil))
	qt.Assert(t, qt.IsTrue(types.Equal(cand.Term, intT)))
	qt.Assert(t, qt.IsTrue(types.Equal(n.SelectedReturn(), intT)))
}

func TestAtomicImplicitCast(t *testing.T) {
	ctx := newCtx()
	intT, floatT := types.NewKnown("int"), types.NewKnown("float")
	ctx.Converters.Register(types.NewConverter("int->float", intT, floatT))

	n := tree.NewAtomicNode(site.New("t", 0), []types.Term{intT}, false)
	cand, err := n.ResolveUnifiers(ctx, floatT, types.NewUnifier(), nil, true)
	qt.Assert(t, qt.IsTrue(err == nil))
	qt.Assert(t, qt.IsTrue(types.Equal(cand.Term, intT)))
	qt.Assert(t, qt.IsTrue(n.ImplicitCast() != nil))
	qt.Assert(t, qt.Equals(n.ImplicitCast().Converter.Name, "int->float"))
}

func TestAtomicNoResolvableOverload(t *testing.T) {
	ctx := newCtx()
	intT, strT := types.NewKnown("int"), types.NewKnown("string")
	n := tree.NewAtomicNode(site.New("t", 0), []types.Term{intT}, false)

	_, err := n.ResolveUnifiers(ctx, strT, types.NewUnifier(), nil, true)
	qt.Assert(t, qt.IsTrue(err != nil))
	_, ok := err.(*types.NoResolvableOverloadError)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestAtomicMultipleImplicits(t *testing.T) {
	ctx := newCtx()
	intT, floatT, strT := types.NewKnown("int"), types.NewKnown("float"), types.NewKnown("string")
	ctx.Converters.Register(types.NewConverter("int->num", intT, strT))
	ctx.Converters.Register(types.NewConverter("float->num", floatT, strT))

	n := tree.NewAtomicNode(site.New("t", 0), []types.Term{intT, floatT}, false)
	_, err := n.ResolveUnifiers(ctx, strT, types.NewUnifier(), nil, true)
	qt.Assert(t, qt.IsTrue(err != nil))
	_, ok := err.(*types.MultipleImplicitsError)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestAtomicFinalizeIsIdempotent(t *testing.T) {
	ctx := newCtx()
	intT := types.NewKnown("int")
	n := tree.NewAtomicNode(site.New("t", 0), []types.Term{intT}, false)

	cand, err := n.ResolveUnifiers(ctx, intT, types.NewUnifier(), nil, true)
	qt.Assert(t, qt.IsTrue(err == nil))
	n.FinalizeUnifiers(cand.Sigma)
	qt.Assert(t, qt.IsTrue(types.Equal(n.SelectedReturn(), intT)))
	n.FinalizeUnifiers(cand.Sigma)
	qt.Assert(t, qt.IsTrue(types.Equal(n.SelectedReturn(), intT)))
}
