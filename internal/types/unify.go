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
	"github.com/cue-unify/tyunify/internal/site"
)

// Unify is the UnifyEngine of spec.md §4.1: it produces an extended
// substitution or a typed error. Recursing on argument pairs threads σ
// left-to-right, which already carries a later argument's bindings back
// into the result; no separate outer fixpoint loop is needed for a single
// top-level call; TreeProtocol achieves the described "rerun to a
// fixpoint" behavior across calls by re-invoking Unify as more information
// becomes available (pass 1's force_implicits retry, pass 2's bidirectional
// argument walk).
func Unify(ctx *Context, pos site.Pos, a, b Term, sigma *Unifier) (*Unifier, error) {
	ctx.Stats.Unifications++
	ctx.tracef("unify %s ~ %s", a, b)

	// Step 1: identity.
	if sameTerm(a, b) {
		return sigma, nil
	}

	// Step 2: resolve both sides and recheck identity/equality.
	ar := sigma.Resolve(a)
	br := sigma.Resolve(b)
	if Equal(ar, br) {
		return sigma, nil
	}

	// Step 3: bind an unbound Var on either side, swapping symmetrically.
	if va, ok := ar.(*Var); ok {
		return sigma.Bind(ctx, pos, va, br)
	}
	if vb, ok := br.(*Var); ok {
		return sigma.Bind(ctx, pos, vb, ar)
	}

	// Step 4: both sides are non-Var; compare heads.
	switch x := ar.(type) {
	case *Known:
		y, ok := br.(*Known)
		if !ok {
			return nil, newNotEqual(pos, "", ar, br)
		}
		if x.Head != y.Head {
			return nil, newNotEqual(pos, "Known", ar, br)
		}
		return unifyArgs(ctx, pos, x.Args, y.Args, sigma)

	case *Dummy:
		y, ok := br.(*Dummy)
		if !ok {
			return nil, newNotEqual(pos, "", ar, br)
		}
		if x.Tag != y.Tag {
			return nil, newNotEqual(pos, "Dummy", ar, br)
		}
		return unifyArgs(ctx, pos, x.Args, y.Args, sigma)

	default:
		return nil, newNotEqual(pos, "", ar, br)
	}
}

// unifyArgs unifies two argument lists left-to-right (step 5-6): arities
// must match, then each pair is unified in turn, threading σ.
func unifyArgs(ctx *Context, pos site.Pos, as, bs []Term, sigma *Unifier) (*Unifier, error) {
	if len(as) != len(bs) {
		return nil, newArityNotEqual(pos, &Dummy{Tag: "args", Args: as}, &Dummy{Tag: "args", Args: bs})
	}
	for i := range as {
		next, err := Unify(ctx, pos, as[i], bs[i], sigma)
		if err != nil {
			return nil, err
		}
		sigma = next
	}
	return sigma, nil
}

// sameTerm reports reference identity: the same *Known/*Dummy/*Var pointer,
// used only as the cheap fast path of step 1.
func sameTerm(a, b Term) bool {
	switch x := a.(type) {
	case *Var:
		y, ok := b.(*Var)
		return ok && x == y
	case *Known:
		y, ok := b.(*Known)
		return ok && x == y
	case *Dummy:
		y, ok := b.(*Dummy)
		return ok && x == y
	default:
		return false
	}
}
