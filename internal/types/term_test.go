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

	"github.com/cue-unify/tyunify/internal/types"
)

func TestEqualKnown(t *testing.T) {
	a := types.NewApplied("List", types.NewKnown("int"))
	b := types.NewApplied("List", types.NewKnown("int"))
	c := types.NewApplied("List", types.NewKnown("string"))
	if !types.Equal(a, b) {
		t.Fatal("expected equal Knowns with same head/args to be equal")
	}
	if types.Equal(a, c) {
		t.Fatal("expected different args to be unequal")
	}
}

func TestVarIdentity(t *testing.T) {
	f := types.NewVarFactory()
	v1 := f.Fresh("T")
	v2 := f.Fresh("T")
	if types.Equal(v1, v2) {
		t.Fatal("two distinct Vars with the same label must not be equal")
	}
	if !types.Equal(v1, v1) {
		t.Fatal("a Var must equal itself")
	}
}

func TestIsResolved(t *testing.T) {
	f := types.NewVarFactory()
	intT := types.NewKnown("int")
	v := f.Fresh("T")

	if !types.IsResolved(intT) {
		t.Error("atomic Known should be resolved")
	}
	if types.IsResolved(v) {
		t.Error("Var should never be resolved")
	}
	listOfV := types.NewApplied("List", v)
	if types.IsResolved(listOfV) {
		t.Error("List<Var> should not be resolved")
	}
	m := types.NewMethod(intT, intT)
	if !types.IsResolved(m) {
		t.Error("Dummy should resolve via its last argument")
	}
}

func TestDummyArity(t *testing.T) {
	intT := types.NewKnown("int")
	strT := types.NewKnown("string")
	m := types.NewMethod(intT, strT, strT)
	if m.Arity() != 3 {
		t.Fatalf("got arity %d, want 3", m.Arity())
	}
	if len(m.Params()) != 2 {
		t.Fatalf("got %d params, want 2", len(m.Params()))
	}
	if !types.Equal(m.Return(), intT) {
		t.Fatal("Return() should be the last argument")
	}
}
