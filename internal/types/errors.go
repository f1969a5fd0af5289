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

// This file contains the error encodings of spec.md §7. Every kind embeds
// unifyerrors.Message for its human text and implements unifyerrors.Error.
// Unification errors are recovered locally by the overload search (each
// try accumulates its error and moves to the next candidate); only when all
// candidates are exhausted does one surface, always as a
// NoResolvableOverload aggregate of the recorded errors, even when only one
// error was recorded.

import (
	"fmt"

	"github.com/cue-unify/tyunify/internal/site"
	"github.com/cue-unify/tyunify/unifyerrors"
)

// NotEqualError reports a head mismatch of two resolved non-Var terms.
// Kind names which term kind disagreed ("Known", "Dummy", "Var", or "" for
// a mismatch across kinds), corresponding to spec.md §7's
// NotEqual / NotEqual<Kind>.
type NotEqualError struct {
	unifyerrors.Message
	Kind     string
	Pos      site.Pos
	Left, Right Term
}

func newNotEqual(pos site.Pos, kind string, left, right Term) *NotEqualError {
	tag := "NotEqual"
	if kind != "" {
		tag = fmt.Sprintf("NotEqual<%s>", kind)
	}
	return &NotEqualError{
		Message: unifyerrors.NewMessagef("%s: %s != %s", tag, left, right),
		Kind:    kind, Pos: pos, Left: left, Right: right,
	}
}

func (e *NotEqualError) Position() site.Pos         { return e.Pos }
func (e *NotEqualError) InputPositions() []site.Pos { return nil }
func (e *NotEqualError) Path() []string             { return nil }

// ArityNotEqualError reports matching heads with differing arities.
type ArityNotEqualError struct {
	unifyerrors.Message
	Pos         site.Pos
	Left, Right Term
}

func newArityNotEqual(pos site.Pos, left, right Term) *ArityNotEqualError {
	return &ArityNotEqualError{
		Message: unifyerrors.NewMessagef("ArityNotEqual: %s vs %s", left, right),
		Pos:     pos, Left: left, Right: right,
	}
}

func (e *ArityNotEqualError) Position() site.Pos         { return e.Pos }
func (e *ArityNotEqualError) InputPositions() []site.Pos { return nil }
func (e *ArityNotEqualError) Path() []string             { return nil }

// RecursionBindingError reports that binding v to t would make t contain v.
type RecursionBindingError struct {
	unifyerrors.Message
	Pos    site.Pos
	Var    *Var
	Target Term
}

func newRecursionBinding(pos site.Pos, v *Var, target Term) *RecursionBindingError {
	return &RecursionBindingError{
		Message: unifyerrors.NewMessagef("RecursionBinding: %s occurs in %s", v, target),
		Pos:     pos, Var: v, Target: target,
	}
}

func (e *RecursionBindingError) Position() site.Pos         { return e.Pos }
func (e *RecursionBindingError) InputPositions() []site.Pos { return nil }
func (e *RecursionBindingError) Path() []string             { return nil }

// IntersectionFailureError reports that two restricted Vars share no
// admissible Known (spec.md §4.2).
type IntersectionFailureError struct {
	unifyerrors.Message
	Pos      site.Pos
	Left, Right *Var
}

func newIntersectionFailure(pos site.Pos, left, right *Var) *IntersectionFailureError {
	return &IntersectionFailureError{
		Message: unifyerrors.NewMessagef("IntersectionFailure: %s and %s share no admissible type", left, right),
		Pos:     pos, Left: left, Right: right,
	}
}

func (e *IntersectionFailureError) Position() site.Pos         { return e.Pos }
func (e *IntersectionFailureError) InputPositions() []site.Pos { return nil }
func (e *IntersectionFailureError) Path() []string              { return nil }

// RestrictionFailureError reports binding a restricted Var to a Known
// outside its restricted set.
type RestrictionFailureError struct {
	unifyerrors.Message
	Pos    site.Pos
	Var    *Var
	Target *Known
}

func newRestrictionFailure(pos site.Pos, v *Var, target *Known) *RestrictionFailureError {
	return &RestrictionFailureError{
		Message: unifyerrors.NewMessagef("RestrictionFailure: %s cannot bind to %s", v, target),
		Pos:     pos, Var: v, Target: target,
	}
}

func (e *RestrictionFailureError) Position() site.Pos         { return e.Pos }
func (e *RestrictionFailureError) InputPositions() []site.Pos { return nil }
func (e *RestrictionFailureError) Path() []string              { return nil }

// UnboundRestrError reports resolving a Var with no final binding.
type UnboundRestrError struct {
	unifyerrors.Message
	Pos site.Pos
	Var *Var
}

func newUnboundRestr(pos site.Pos, v *Var) *UnboundRestrError {
	return &UnboundRestrError{
		Message: unifyerrors.NewMessagef("UnboundRestr: %s has no final binding", v),
		Pos:     pos, Var: v,
	}
}

func (e *UnboundRestrError) Position() site.Pos         { return e.Pos }
func (e *UnboundRestrError) InputPositions() []site.Pos { return nil }
func (e *UnboundRestrError) Path() []string              { return nil }

// NoPossibleOverloadError reports that pass 1 found zero viable overloads.
// ArgSets carries the per-argument candidate lists that were tried.
type NoPossibleOverloadError struct {
	unifyerrors.Message
	Pos     site.Pos
	ArgSets [][]Term
}

func NewNoPossibleOverload(pos site.Pos, argSets [][]Term) *NoPossibleOverloadError {
	return &NoPossibleOverloadError{
		Message: unifyerrors.NewMessagef("NoPossibleOverload: no overload matches the given arguments"),
		Pos:     pos, ArgSets: argSets,
	}
}

func (e *NoPossibleOverloadError) Position() site.Pos         { return e.Pos }
func (e *NoPossibleOverloadError) InputPositions() []site.Pos { return nil }
func (e *NoPossibleOverloadError) Path() []string              { return nil }

// NoResolvableOverloadError reports that pass 2 found zero overloads
// matching the required type. Causes collects the errors of every failed
// attempt (direct matches, implicit conversions, finalization), in the
// order they occurred, with exact duplicates dropped.
type NoResolvableOverloadError struct {
	unifyerrors.Message
	Pos      site.Pos
	Required Term
	Causes   unifyerrors.List
}

func NewNoResolvableOverload(pos site.Pos, required Term, causes unifyerrors.List) *NoResolvableOverloadError {
	return &NoResolvableOverloadError{
		Message:  unifyerrors.NewMessagef("NoResolvableOverload: no overload resolves to %s", required),
		Pos:      pos, Required: required, Causes: causes,
	}
}

func (e *NoResolvableOverloadError) Position() site.Pos         { return e.Pos }
func (e *NoResolvableOverloadError) InputPositions() []site.Pos { return unifyerrors.Positions(e.Causes) }
func (e *NoResolvableOverloadError) Path() []string              { return nil }

// MultipleOverloadsError reports two or more distinct direct-match
// overloads succeeding at finalize.
type MultipleOverloadsError struct {
	unifyerrors.Message
	Pos        site.Pos
	Candidates []Term
}

func NewMultipleOverloads(pos site.Pos, candidates []Term) *MultipleOverloadsError {
	return &MultipleOverloadsError{
		Message:    unifyerrors.NewMessagef("MultipleOverloads: %d overloads match", len(candidates)),
		Pos:        pos, Candidates: candidates,
	}
}

func (e *MultipleOverloadsError) Position() site.Pos         { return e.Pos }
func (e *MultipleOverloadsError) InputPositions() []site.Pos { return nil }
func (e *MultipleOverloadsError) Path() []string              { return nil }

// MultipleImplicitsError reports two or more distinct implicit-cast
// overloads succeeding at the same call site.
type MultipleImplicitsError struct {
	unifyerrors.Message
	Pos        site.Pos
	Candidates []*ImplicitConverter
}

func NewMultipleImplicits(pos site.Pos, candidates []*ImplicitConverter) *MultipleImplicitsError {
	return &MultipleImplicitsError{
		Message: unifyerrors.NewMessagef("MultipleImplicits: %d implicit conversions apply", len(candidates)),
		Pos:     pos, Candidates: candidates,
	}
}

func (e *MultipleImplicitsError) Position() site.Pos         { return e.Pos }
func (e *MultipleImplicitsError) InputPositions() []site.Pos { return nil }
func (e *MultipleImplicitsError) Path() []string              { return nil }

// TooManyPossibleTypesError reports that top-level pass 1 did not produce
// exactly one final top type when the caller demanded uniqueness.
type TooManyPossibleTypesError struct {
	unifyerrors.Message
	Pos    site.Pos
	Types  []Term
}

func NewTooManyPossibleTypes(pos site.Pos, types []Term) *TooManyPossibleTypesError {
	return &TooManyPossibleTypesError{
		Message: unifyerrors.NewMessagef("TooManyPossibleTypes: %d candidate top types", len(types)),
		Pos:     pos, Types: types,
	}
}

func (e *TooManyPossibleTypesError) Position() site.Pos         { return e.Pos }
func (e *TooManyPossibleTypesError) InputPositions() []site.Pos { return nil }
func (e *TooManyPossibleTypesError) Path() []string              { return nil }
