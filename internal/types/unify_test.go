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

	"github.com/google/go-cmp/cmp"

	"github.com/cue-unify/tyunify/internal/site"
	"github.com/cue-unify/tyunify/internal/types"
)

func newCtx() *types.Context {
	return types.NewContext(types.NewConverterRegistry())
}

func TestUnifyKnownToKnown(t *testing.T) {
	ctx := newCtx()
	a := types.NewApplied("List", types.NewKnown("int"))
	b := types.NewApplied("List", types.NewKnown("int"))
	_, err := types.Unify(ctx, site.NoPos, a, b, types.NewUnifier())
	if err != nil {
		t.Fatalf("unify: %v", err)
	}
}

func TestUnifyHeadMismatch(t *testing.T) {
	ctx := newCtx()
	a := types.NewKnown("int")
	b := types.NewKnown("string")
	_, err := types.Unify(ctx, site.NoPos, a, b, types.NewUnifier())
	if err == nil {
		t.Fatal("expected NotEqual error")
	}
	if _, ok := err.(*types.NotEqualError); !ok {
		t.Fatalf("got %T, want *NotEqualError", err)
	}
}

func TestUnifyArityMismatch(t *testing.T) {
	ctx := newCtx()
	a := types.NewApplied("Func", types.NewKnown("int"))
	b := types.NewApplied("Func", types.NewKnown("int"), types.NewKnown("int"))
	_, err := types.Unify(ctx, site.NoPos, a, b, types.NewUnifier())
	if _, ok := err.(*types.ArityNotEqualError); !ok {
		t.Fatalf("got %T, want *ArityNotEqualError", err)
	}
}

func TestUnifyBindsVar(t *testing.T) {
	ctx := newCtx()
	v := ctx.Vars.Fresh("T")
	intT := types.NewKnown("int")
	sigma, err := types.Unify(ctx, site.NoPos, v, intT, types.NewUnifier())
	if err != nil {
		t.Fatalf("unify: %v", err)
	}
	got := sigma.Resolve(v)
	if !types.Equal(got, intT) {
		t.Fatalf("resolved %s, want %s", got, intT)
	}
}

func TestUnifySymmetry(t *testing.T) {
	ctx1, ctx2 := newCtx(), newCtx()
	a := types.NewApplied("List", types.NewKnown("int"))
	v1 := ctx1.Vars.Fresh("T")
	b1 := types.NewApplied("List", v1)

	sigma1, err1 := types.Unify(ctx1, site.NoPos, a, b1, types.NewUnifier())
	if err1 != nil {
		t.Fatalf("a~b: %v", err1)
	}

	v2 := ctx2.Vars.Fresh("T")
	b2 := types.NewApplied("List", v2)
	sigma2, err2 := types.Unify(ctx2, site.NoPos, b2, a, types.NewUnifier())
	if err2 != nil {
		t.Fatalf("b~a: %v", err2)
	}

	r1 := sigma1.Resolve(v1)
	r2 := sigma2.Resolve(v2)
	if diff := cmp.Diff(r1.String(), r2.String()); diff != "" {
		t.Fatalf("unify(a,b) and unify(b,a) resolved differently (-a +b):\n%s", diff)
	}
}

func TestOccursCheck(t *testing.T) {
	ctx := newCtx()
	v := ctx.Vars.Fresh("T")
	listOfV := types.NewApplied("List", v)
	_, err := types.Unify(ctx, site.NoPos, v, listOfV, types.NewUnifier())
	if _, ok := err.(*types.RecursionBindingError); !ok {
		t.Fatalf("got %T, want *RecursionBindingError", err)
	}
}

func TestRestrictedIntersection(t *testing.T) {
	ctx := newCtx()
	floatT, doubleT, stringT := types.NewKnown("float"), types.NewKnown("double"), types.NewKnown("string")
	v1 := ctx.Vars.FreshRestricted("a", []*types.Known{floatT, doubleT})
	v2 := ctx.Vars.FreshRestricted("b", []*types.Known{stringT, doubleT})

	sigma, err := types.Unify(ctx, site.NoPos, v1, v2, types.NewUnifier())
	if err != nil {
		t.Fatalf("unify: %v", err)
	}
	r1 := sigma.Resolve(v1)
	r2 := sigma.Resolve(v2)
	if !types.Equal(r1, r2) {
		t.Fatalf("expected v1 and v2 to resolve to the same term, got %s and %s", r1, r2)
	}
	if !types.Equal(r1, doubleT) {
		t.Fatalf("expected the unique intersection double, got %s", r1)
	}
}

func TestRestrictedIntersectionEmpty(t *testing.T) {
	ctx := newCtx()
	intT, boolT := types.NewKnown("int"), types.NewKnown("bool")
	v1 := ctx.Vars.FreshRestricted("a", []*types.Known{intT})
	v2 := ctx.Vars.FreshRestricted("b", []*types.Known{boolT})
	_, err := types.Unify(ctx, site.NoPos, v1, v2, types.NewUnifier())
	if _, ok := err.(*types.IntersectionFailureError); !ok {
		t.Fatalf("got %T, want *IntersectionFailureError", err)
	}
}

func TestRestrictedOutOfDomain(t *testing.T) {
	ctx := newCtx()
	intT, stringT := types.NewKnown("int"), types.NewKnown("string")
	v := ctx.Vars.FreshRestricted("a", []*types.Known{intT})
	_, err := types.Unify(ctx, site.NoPos, v, stringT, types.NewUnifier())
	if _, ok := err.(*types.RestrictionFailureError); !ok {
		t.Fatalf("got %T, want *RestrictionFailureError", err)
	}
}

func TestIdempotence(t *testing.T) {
	ctx := newCtx()
	intT := types.NewKnown("int")
	v := ctx.Vars.Fresh("T")
	sigma, err := types.Unify(ctx, site.NoPos, v, intT, types.NewUnifier())
	if err != nil {
		t.Fatalf("unify: %v", err)
	}
	before := sigma.Len()
	sigma2, err := types.Unify(ctx, site.NoPos, sigma.Resolve(v), sigma.Resolve(intT), sigma)
	if err != nil {
		t.Fatalf("re-unify: %v", err)
	}
	if sigma2.Len() != before {
		t.Fatalf("re-unifying already-equal resolved terms should not grow the unifier: %d -> %d", before, sigma2.Len())
	}
}
