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
	"github.com/google/uuid"

	"github.com/cue-unify/tyunify/internal/site"
)

// Unifier is an immutable Var -> Term substitution. Every binding operation
// returns a new Unifier; the receiver is never mutated, so two Unifiers
// produced during the same pass share nothing mutable (spec.md §5).
type Unifier struct {
	bindings map[uuid.UUID]Term
}

// NewUnifier returns the empty substitution.
func NewUnifier() *Unifier {
	return &Unifier{bindings: map[uuid.UUID]Term{}}
}

// Resolve chases a Var through the map until it reaches a non-Var or an
// unbound Var. Knowns and Dummys are returned as-is.
func (u *Unifier) Resolve(t Term) Term {
	for {
		v, ok := t.(*Var)
		if !ok {
			return t
		}
		next, bound := u.bindings[v.id]
		if !bound {
			return t
		}
		t = next
	}
}

// with returns a new Unifier identical to u but additionally binding v to t.
// Binding is idempotent: re-binding v to the term it already resolves to
// returns an equivalent (freshly copied) Unifier rather than erroring.
func (u *Unifier) with(v *Var, t Term) *Unifier {
	nb := make(map[uuid.UUID]Term, len(u.bindings)+1)
	for k, val := range u.bindings {
		nb[k] = val
	}
	nb[v.id] = t
	return &Unifier{bindings: nb}
}

// Len reports the number of bindings, for debug output.
func (u *Unifier) Len() int { return len(u.bindings) }

// Bind implements the restricted-variable binding semantics of spec.md
// §4.2 for a fresh binding v -> t. It is the sole entry point UnifyEngine
// uses once it has determined that v is an unbound Var being bound to a
// resolved term t (or to another unbound Var).
func (u *Unifier) Bind(ctx *Context, pos site.Pos, v *Var, t Term) (*Unifier, error) {
	if containsVar(t, v) {
		ctx.Stats.OccursRejects++
		return nil, newRecursionBinding(pos, v, t)
	}
	ctx.Stats.Bindings++

	if !v.IsRestricted() {
		return u.with(v, t), nil
	}

	switch x := t.(type) {
	case *Dummy:
		panic("types: restricted Var cannot bind to a Dummy; restricted Vars are scalar-only (spec.md §4.2)")

	case *Var:
		if !x.IsRestricted() {
			// The unrestricted side is retargeted so the restriction
			// follows the identity that keeps it (spec.md §4.2).
			if containsVar(v, x) {
				ctx.Stats.OccursRejects++
				return nil, newRecursionBinding(pos, x, v)
			}
			return u.with(x, v), nil
		}
		inter := intersectKnowns(v.Restricted, x.Restricted)
		switch {
		case len(inter) == 0:
			return nil, newIntersectionFailure(pos, v, x)
		case len(inter) == len(x.Restricted):
			return u.with(v, x), nil
		case len(inter) == len(v.Restricted):
			return u.with(x, v), nil
		case len(inter) == 1:
			k := Term(inter[0])
			nb := u.with(v, k)
			return nb.with(x, k), nil
		default:
			w := ctx.Vars.FreshRestricted("", inter)
			nb := u.with(v, w)
			return nb.with(x, w), nil
		}

	case *Known:
		if IsResolved(x) {
			if !knownInSet(x, v.Restricted) {
				return nil, newRestrictionFailure(pos, v, x)
			}
			return u.with(v, x), nil
		}
		var successes int
		var last *Unifier
		for _, r := range v.Restricted {
			nb, err := Unify(ctx, pos, r, x, u)
			if err == nil {
				successes++
				last = nb
			}
		}
		switch successes {
		case 0:
			return nil, newRestrictionFailure(pos, v, x)
		case 1:
			return last.with(v, x), nil
		default:
			return u.with(v, x), nil
		}

	default:
		panic("types: unknown term kind in Bind")
	}
}

// intersectKnowns returns the Knowns common to both sets, by structural
// equality, preserving a's order.
func intersectKnowns(a, b []*Known) []*Known {
	var out []*Known
	for _, x := range a {
		for _, y := range b {
			if Equal(x, y) {
				out = append(out, x)
				break
			}
		}
	}
	return out
}

func knownInSet(k *Known, set []*Known) bool {
	for _, r := range set {
		if Equal(k, r) {
			return true
		}
	}
	return false
}
