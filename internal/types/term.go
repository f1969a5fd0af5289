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

// Package types implements the two-pass type unification and overload
// resolution engine: TypeTerm, Unifier, UnifyEngine, and ConverterRegistry.
package types

import (
	"fmt"

	"github.com/google/uuid"
)

// Term is the sealed sum type of type expressions: Known, Dummy, or Var
// (spec.md §3). The unexported method keeps the sum closed to this package,
// mirroring the teacher's adt.Expr/adt.Value closed-interface sum.
type Term interface {
	isTerm()
	// String renders the term for diagnostics and debug output.
	String() string
}

// Known is a known atomic type (Args empty) or an application of a known
// type constructor, e.g. List<T>, Func<A,B>, Array<T>. Array is modeled as
// a distinguished unary constructor head so languages without first-class
// generics can still be represented (spec.md §3).
type Known struct {
	Head string
	Args []Term
}

func (*Known) isTerm() {}

func (k *Known) String() string {
	if len(k.Args) == 0 {
		return k.Head
	}
	s := k.Head + "<"
	for i, a := range k.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ">"
}

// NewKnown builds an atomic Known type with no arguments.
func NewKnown(head string) *Known { return &Known{Head: head} }

// NewApplied builds a Known type-constructor application.
func NewApplied(head string, args ...Term) *Known { return &Known{Head: head, Args: args} }

// ArrayHead is the distinguished constructor head for array types.
const ArrayHead = "Array"

// NewArray builds the array-of-elem Known term.
func NewArray(elem Term) *Known { return &Known{Head: ArrayHead, Args: []Term{elem}} }

// Dummy is an ordered aggregate of terms whose semantic "return" is the last
// element. The canonical use is Tag == "method", with Args holding the
// parameter types followed by the return type. Dummies never resolve to a
// runtime type on their own (spec.md §3).
type Dummy struct {
	Tag  string
	Args []Term
}

func (*Dummy) isTerm() {}

func (d *Dummy) String() string {
	s := d.Tag + "("
	for i, a := range d.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// MethodTag is the Dummy tag used for overload signatures: params... then
// the return type.
const MethodTag = "method"

// NewMethod builds a Dummy("method", params..., ret). Arity is len(params)+1.
func NewMethod(ret Term, params ...Term) *Dummy {
	return &Dummy{Tag: MethodTag, Args: append(append([]Term{}, params...), ret)}
}

// Params returns the parameter terms of a method Dummy (all but the last
// argument).
func (d *Dummy) Params() []Term {
	if len(d.Args) == 0 {
		return nil
	}
	return d.Args[:len(d.Args)-1]
}

// Return returns the semantic return term of the Dummy: its last argument.
func (d *Dummy) Return() Term {
	if len(d.Args) == 0 {
		panic("dummy has zero arity")
	}
	return d.Args[len(d.Args)-1]
}

// Arity is the number of arguments the Dummy carries. Invariant: arity >= 1.
func (d *Dummy) Arity() int { return len(d.Args) }

// Var is a unification variable with a fresh identity. Restricted, if
// non-nil, is a non-empty finite set of Known terms the variable may bind
// to (models numeric-literal polymorphism, spec.md §3). Restricted never
// contains a Var.
type Var struct {
	id         uuid.UUID
	label      string
	Restricted []*Known
}

func (*Var) isTerm() {}

func (v *Var) String() string {
	if v.label != "" {
		return "?" + v.label
	}
	return "?" + v.id.String()[:8]
}

// ID returns the variable's fresh identity. Two Vars are equal iff their IDs
// are equal (spec.md §3's identity invariant).
func (v *Var) ID() uuid.UUID { return v.id }

// IsRestricted reports whether v carries a non-empty restricted domain.
func (v *Var) IsRestricted() bool { return len(v.Restricted) > 0 }

// VarFactory mints fresh Vars. A fresh uuid.UUID per Var (rather than an
// incrementing counter) keeps identity well-defined even if two
// VarFactories are ever used concurrently from independent call sites, e.g.
// ImplicitConverter.FreshInstance running on different goroutines for
// different conversions.
type VarFactory struct{}

// NewVarFactory returns a ready-to-use VarFactory.
func NewVarFactory() *VarFactory { return &VarFactory{} }

// Fresh mints a new, globally unique, unrestricted Var. label is cosmetic,
// used only by String/debug output.
func (f *VarFactory) Fresh(label string) *Var {
	return &Var{id: uuid.New(), label: label}
}

// FreshRestricted mints a new Var restricted to domain. domain must be
// non-empty and contain only fully-resolved Knowns; callers violating this
// get a panic, since it is a programmer error (cf. spec.md §7's
// "Finalize-phase errors are programmer bugs" policy extended to
// construction-time misuse).
func (f *VarFactory) FreshRestricted(label string, domain []*Known) *Var {
	if len(domain) == 0 {
		panic("types: restricted Var requires a non-empty domain")
	}
	for _, k := range domain {
		if !IsResolved(k) {
			panic("types: restricted Var domain must contain only fully-resolved Knowns")
		}
	}
	cp := append([]*Known{}, domain...)
	return &Var{id: uuid.New(), label: label, Restricted: cp}
}

// IsResolved reports whether t is a Known with every argument resolved.
// Vars are never resolved; a Dummy resolves via its last argument
// (spec.md §3).
func IsResolved(t Term) bool {
	switch x := t.(type) {
	case *Known:
		for _, a := range x.Args {
			if !IsResolved(a) {
				return false
			}
		}
		return true
	case *Dummy:
		return IsResolved(x.Return())
	case *Var:
		return false
	default:
		panic(fmt.Sprintf("types: unknown term kind %T", t))
	}
}

// Equal reports structural equality: two Vars are equal iff identical
// identity; two Knowns are equal iff same head and pointwise-equal args;
// two Dummys are equal iff same tag and pointwise-equal args.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case *Var:
		y, ok := b.(*Var)
		return ok && x.id == y.id
	case *Known:
		y, ok := b.(*Known)
		if !ok || x.Head != y.Head || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Dummy:
		y, ok := b.(*Dummy)
		if !ok || x.Tag != y.Tag || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("types: unknown term kind %T", a))
	}
}

// containsVar reports whether v occurs anywhere within t (structurally),
// used by the occurs check in UnifyEngine.
func containsVar(t Term, v *Var) bool {
	switch x := t.(type) {
	case *Var:
		return x.id == v.id
	case *Known:
		for _, a := range x.Args {
			if containsVar(a, v) {
				return true
			}
		}
		return false
	case *Dummy:
		for _, a := range x.Args {
			if containsVar(a, v) {
				return true
			}
		}
		return false
	default:
		panic(fmt.Sprintf("types: unknown term kind %T", t))
	}
}
