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

package tree

import (
	"github.com/cue-unify/tyunify/internal/site"
	"github.com/cue-unify/tyunify/internal/types"
	"github.com/cue-unify/tyunify/unifyerrors"
)

// atomicImpl is the reference AtomicNode: a fixed, non-empty candidate list
// (spec.md §3), e.g. the overloads of a numeric literal or a symbol
// lookup. WillSelectFn is the optional will_select hook (spec.md §3); a nil
// WillSelectFn is a no-op that always succeeds.
type atomicImpl struct {
	cands           []types.Term
	interchangeable bool
	willSelect      func(ctx *types.Context, t types.Term, cast *RealizedImplicitCast, sigma *types.Unifier) (*types.Unifier, error)
	pos             site.Pos

	selected types.Term
	cast     *RealizedImplicitCast
}

// NewAtomicNode builds a reference AtomicNode over a fixed, non-empty
// candidate list. interchangeable, if true, makes multiple direct matches
// resolve by picking the first rather than raising MultipleOverloads.
func NewAtomicNode(pos site.Pos, candidates []types.Term, interchangeable bool) AtomicNode {
	if len(candidates) == 0 {
		panic("tree: AtomicNode requires a non-empty candidate list")
	}
	return &atomicImpl{cands: candidates, interchangeable: interchangeable, pos: pos}
}

// SetWillSelect installs the will_select hook.
func (n *atomicImpl) SetWillSelect(fn func(ctx *types.Context, t types.Term, cast *RealizedImplicitCast, sigma *types.Unifier) (*types.Unifier, error)) {
	n.willSelect = fn
}

func (n *atomicImpl) Candidates() []types.Term            { return n.cands }
func (n *atomicImpl) OverloadsInterchangeable() bool       { return n.interchangeable }
func (n *atomicImpl) Pos() site.Pos                        { return n.pos }
func (n *atomicImpl) SelectedReturn() types.Term           { return n.selected }
func (n *atomicImpl) ImplicitCast() *RealizedImplicitCast  { return n.cast }

func (n *atomicImpl) WillSelect(ctx *types.Context, t types.Term, cast *RealizedImplicitCast, sigma *types.Unifier) (*types.Unifier, error) {
	if n.willSelect == nil {
		return sigma, nil
	}
	return n.willSelect(ctx, t, cast, sigma)
}

// PossibleUnifiers is pass 1 for an atomic node (spec.md §4.6's closing
// note): each candidate, simplified under sigma, paired with sigma itself.
func (n *atomicImpl) PossibleUnifiers(ctx *types.Context, sigma *types.Unifier, forceImplicits bool) ([]Candidate, error) {
	out := make([]Candidate, len(n.cands))
	for i, c := range n.cands {
		out[i] = Candidate{Term: Simplify(c, sigma), Sigma: sigma}
	}
	return out, nil
}

// ResolveUnifiers is pass 2 for an atomic node (spec.md §4.6).
func (n *atomicImpl) ResolveUnifiers(ctx *types.Context, required types.Term, sigma *types.Unifier, override *CastPolicy, allowChildCasts bool) (Candidate, error) {
	pos := n.pos

	if override != nil && override.Kind == RequiredCastKind {
		var errs unifyerrors.List
		for _, t := range n.cands {
			cand, err := n.tryConvert(ctx, pos, override.Conv, t, required, sigma)
			if err != nil {
				errs.Add(unifyerrors.Promote(err, ""))
				continue
			}
			return cand, nil
		}
		return Candidate{}, types.NewNoResolvableOverload(pos, required, errs)
	}

	var direct []Candidate
	var errs unifyerrors.List
	for _, t := range n.cands {
		s2, err := types.Unify(ctx, pos, t, required, sigma)
		if err != nil {
			errs.Add(unifyerrors.Promote(err, ""))
			continue
		}
		direct = append(direct, Candidate{Term: t, Sigma: s2})
	}
	if len(direct) > 0 {
		if len(direct) > 1 && !n.interchangeable {
			cands := make([]types.Term, len(direct))
			for i, d := range direct {
				cands[i] = d.Term
			}
			return Candidate{}, types.NewMultipleOverloads(pos, cands)
		}
		chosen := direct[0]
		s3, err := n.WillSelect(ctx, chosen.Term, nil, chosen.Sigma)
		if err != nil {
			return Candidate{}, err
		}
		n.selected = Simplify(chosen.Term, s3)
		n.cast = nil
		return Candidate{Term: n.selected, Sigma: s3}, nil
	}

	if !allowChildCasts {
		return Candidate{}, types.NewNoResolvableOverload(pos, required, errs)
	}

	var implicit []Candidate
	var implicitConvs []*types.ImplicitConverter
	for _, t := range n.cands {
		for _, conv := range implicitCandidates(ctx, required, t) {
			cand, err := n.tryConvert(ctx, pos, conv, t, required, sigma)
			if err != nil {
				errs.Add(unifyerrors.Promote(err, ""))
				continue
			}
			implicit = append(implicit, cand)
			implicitConvs = append(implicitConvs, conv)
		}
	}
	if len(implicit) == 0 {
		return Candidate{}, types.NewNoResolvableOverload(pos, required, errs)
	}
	if len(implicit) > 1 {
		return Candidate{}, types.NewMultipleImplicits(pos, implicitConvs)
	}
	return implicit[0], nil
}

// tryConvert attempts converting t to required through conv, returning the
// selected Candidate on success. It mutates n.selected/n.cast on success.
func (n *atomicImpl) tryConvert(ctx *types.Context, pos site.Pos, conv0 *types.ImplicitConverter, t, required types.Term, sigma *types.Unifier) (Candidate, error) {
	conv := conv0.FreshInstance(ctx)
	ctx.Stats.Casts++
	s2, err := types.Unify(ctx, pos, conv.Source(), t, sigma)
	if err != nil {
		return Candidate{}, err
	}
	s3, err := types.Unify(ctx, pos, conv.Target(), required, s2)
	if err != nil {
		return Candidate{}, err
	}
	cast := realizeConverter(conv, s3)
	s4, err := n.WillSelect(ctx, t, cast, s3)
	if err != nil {
		return Candidate{}, err
	}
	n.selected = Simplify(t, s4)
	n.cast = cast
	return Candidate{Term: n.selected, Sigma: s4}, nil
}

// FinalizeUnifiers is pass 3: idempotent re-simplification under the final
// sigma (spec.md §4.7). No failures are possible here.
func (n *atomicImpl) FinalizeUnifiers(sigma *types.Unifier) {
	if n.selected != nil {
		n.selected = Simplify(n.selected, sigma)
	}
	n.cast = n.cast.Simplify(sigma)
}

// implicitCandidates gathers the converters pass 1/2 should try for
// converting candidate t to the required type, preferring target-indexed
// lookup (spec.md §4.5 step 3's stated order: sources_of(R) first, then
// casts_from).
func implicitCandidates(ctx *types.Context, required, t types.Term) []*types.ImplicitConverter {
	out := ctx.Converters.SourcesOf(required)
	out = append(out, ctx.Converters.CastsFrom(t)...)
	return dedupConverters(out)
}

func dedupConverters(in []*types.ImplicitConverter) []*types.ImplicitConverter {
	seen := map[*types.ImplicitConverter]bool{}
	var out []*types.ImplicitConverter
	for _, c := range in {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
