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

// methodImpl is the reference MethodNode: an overload set, a list of child
// argument trees, and a per-(overload, arg-index) cast policy (spec.md §3).
type methodImpl struct {
	overloads       []*types.Dummy
	args            []Node
	policyFn        func(m *types.Dummy, i int) CastPolicy
	interchangeable bool
	willSelectFn    func(ctx *types.Context, m *types.Dummy, cast *RealizedImplicitCast, sigma *types.Unifier) (*types.Unifier, error)
	generateFn      func(argSets [][]Candidate) []*types.Dummy
	pos             site.Pos

	alwaysCheckImplicitCasts bool

	realizable       []*types.Dummy
	selectedOverload *types.Dummy
	returnTerm       types.Term
	cast             *RealizedImplicitCast
}

// PolicyFunc maps an overload and parameter index to its cast policy.
type PolicyFunc func(m *types.Dummy, i int) CastPolicy

// AlwaysAnyCast is a PolicyFunc that allows implicit casts on every
// parameter of every overload; a convenient default for simple call sites.
func AlwaysAnyCast(*types.Dummy, int) CastPolicy { return AnyCast }

// NewMethodNode builds a reference MethodNode. policyFn may be nil, in
// which case every parameter allows any implicit cast (AlwaysAnyCast).
func NewMethodNode(pos site.Pos, overloads []*types.Dummy, args []Node, policyFn PolicyFunc, interchangeable bool) MethodNode {
	if policyFn == nil {
		policyFn = AlwaysAnyCast
	}
	return &methodImpl{pos: pos, overloads: overloads, args: args, policyFn: policyFn, interchangeable: interchangeable}
}

// SetWillSelect installs the will_select hook.
func (n *methodImpl) SetWillSelect(fn func(ctx *types.Context, m *types.Dummy, cast *RealizedImplicitCast, sigma *types.Unifier) (*types.Unifier, error)) {
	n.willSelectFn = fn
}

// SetGenerateOverloads installs the generate_overloads hook for nodes whose
// overload set depends on argument types (e.g. member access).
func (n *methodImpl) SetGenerateOverloads(fn func(argSets [][]Candidate) []*types.Dummy) {
	n.generateFn = fn
}

// SetAlwaysCheckImplicitCasts installs the caller-forced eager-check flag
// (spec.md §4.4 step 5).
func (n *methodImpl) SetAlwaysCheckImplicitCasts(always bool) {
	n.alwaysCheckImplicitCasts = always
}

func (n *methodImpl) Overloads() []*types.Dummy            { return n.overloads }
func (n *methodImpl) Args() []Node                         { return n.args }
func (n *methodImpl) ParamCastPolicy(m *types.Dummy, i int) CastPolicy { return n.policyFn(m, i) }
func (n *methodImpl) OverloadsInterchangeable() bool        { return n.interchangeable }
func (n *methodImpl) RealizableOverloads() []*types.Dummy   { return n.realizable }
func (n *methodImpl) Pos() site.Pos                         { return n.pos }
func (n *methodImpl) SelectedReturn() types.Term            { return n.returnTerm }
func (n *methodImpl) ImplicitCast() *RealizedImplicitCast   { return n.cast }

func (n *methodImpl) GenerateOverloads(argSets [][]Candidate) {
	if n.generateFn != nil {
		n.overloads = n.generateFn(argSets)
	}
}

func (n *methodImpl) WillSelect(ctx *types.Context, m *types.Dummy, cast *RealizedImplicitCast, sigma *types.Unifier) (*types.Unifier, error) {
	if n.willSelectFn == nil {
		return sigma, nil
	}
	return n.willSelectFn(ctx, m, cast, sigma)
}

// computeArgSets recurses on every argument (spec.md §4.4 step 1), threading
// a single-candidate result's sigma into the next sibling for precision and
// otherwise carrying the caller's sigma.
func (n *methodImpl) computeArgSets(ctx *types.Context, sigma *types.Unifier, forceImplicits bool) ([][]Candidate, error) {
	argSets := make([][]Candidate, len(n.args))
	cur := sigma
	for i, a := range n.args {
		res, err := a.PossibleUnifiers(ctx, cur, forceImplicits)
		if err != nil {
			return nil, err
		}
		argSets[i] = res
		if len(res) == 1 {
			cur = res[0].Sigma
		} else {
			cur = sigma
		}
	}
	return argSets, nil
}

// PossibleUnifiers is pass 1 (spec.md §4.4).
func (n *methodImpl) PossibleUnifiers(ctx *types.Context, sigma *types.Unifier, forceImplicits bool) ([]Candidate, error) {
	argSets, err := n.computeArgSets(ctx, sigma, forceImplicits)
	if err != nil {
		return nil, err
	}
	n.GenerateOverloads(argSets)

	realizableSet := map[*types.Dummy]bool{}
	var returns []Candidate

	tryCategory := func(useRegistry bool, onlyEligible bool) {
		for _, m := range n.overloads {
			if onlyEligible && (realizableSet[m] || !n.hasCastableParam(m, len(argSets))) {
				continue
			}
			ok, rets := n.tryOverload(ctx, m, argSets, sigma, useRegistry)
			if ok {
				realizableSet[m] = true
				returns = append(returns, rets...)
				if n.interchangeable {
					break
				}
			}
		}
	}

	tryCategory(false, false)
	if len(returns) == 0 || n.alwaysCheckImplicitCasts {
		tryCategory(true, true)
	}

	if len(returns) == 0 && !forceImplicits {
		return n.PossibleUnifiers(ctx, sigma, true)
	}

	var realizable []*types.Dummy
	for _, m := range n.overloads {
		if realizableSet[m] {
			realizable = append(realizable, m)
		}
	}
	n.realizable = realizable

	if len(returns) == 0 {
		return nil, types.NewNoPossibleOverload(n.pos, argSetsToTerms(argSets))
	}
	return returns, nil
}

// hasCastableParam reports whether overload m has at least one parameter
// whose policy is not NoCastAllowed, the step-5 eligibility test.
func (n *methodImpl) hasCastableParam(m *types.Dummy, nargs int) bool {
	for i := 0; i < nargs; i++ {
		if n.ParamCastPolicy(m, i).Kind != NoCastAllowed {
			return true
		}
	}
	return false
}

// tryOverload is the cartesian-product argument walk of spec.md §4.4 step
// 4/5: check(m, 0, sigma) recursing over argument positions, trying the
// required-cast and straight paths (and, if useRegistry, registry-sourced
// implicit casts) at each position.
func (n *methodImpl) tryOverload(ctx *types.Context, m *types.Dummy, argSets [][]Candidate, sigma *types.Unifier, useRegistry bool) (bool, []Candidate) {
	params := m.Params()
	arity := len(params)
	wkArgs := make([]types.Term, arity+1)
	var any bool
	var returns []Candidate

	var recurse func(i int, cur *types.Unifier)
	recurse = func(i int, cur *types.Unifier) {
		if i == arity {
			resultVar := ctx.Vars.Fresh("")
			wkArgs[arity] = resultVar
			candidate := &types.Dummy{Tag: types.MethodTag, Args: append([]types.Term{}, wkArgs...)}
			ctx.Stats.OverloadsTried++
			next, err := types.Unify(ctx, n.pos, m, candidate, cur)
			if err != nil {
				return
			}
			any = true
			returns = append(returns, Candidate{Term: Simplify(m.Return(), next), Sigma: next})
			return
		}

		param := params[i]
		policy := n.ParamCastPolicy(m, i)
		for _, cand := range argSets[i] {
			t := cand.Term

			if policy.Kind == RequiredCastKind {
				conv := policy.Conv.FreshInstance(ctx)
				ctx.Stats.Casts++
				if s2, err := types.Unify(ctx, n.pos, conv.Source(), t, cur); err == nil {
					if s3, err2 := types.Unify(ctx, n.pos, param, conv.Target(), s2); err2 == nil {
						wkArgs[i] = s3.Resolve(param)
						recurse(i+1, s3)
					}
				}
			}

			if s2, err := types.Unify(ctx, n.pos, param, t, cur); err == nil {
				wkArgs[i] = t
				recurse(i+1, s2)
			} else if useRegistry && policy.Kind == AnyCastAllowed {
				for _, conv0 := range implicitCandidates(ctx, param, t) {
					conv := conv0.FreshInstance(ctx)
					ctx.Stats.Casts++
					s3, err3 := types.Unify(ctx, n.pos, conv.Source(), t, cur)
					if err3 != nil {
						continue
					}
					s4, err4 := types.Unify(ctx, n.pos, conv.Target(), param, s3)
					if err4 != nil {
						continue
					}
					wkArgs[i] = s4.Resolve(param)
					recurse(i+1, s4)
				}
			}
		}
	}
	recurse(0, sigma)
	return any, returns
}

func argSetsToTerms(argSets [][]Candidate) [][]types.Term {
	out := make([][]types.Term, len(argSets))
	for i, set := range argSets {
		row := make([]types.Term, len(set))
		for j, c := range set {
			row[j] = c.Term
		}
		out[i] = row
	}
	return out
}

// finalizeAttempt is one (overload, sigma, cast) combination that reached
// the point of trying try_finalize.
type finalizeAttempt struct {
	m     *types.Dummy
	sigma *types.Unifier
	cast  *RealizedImplicitCast
}

// ResolveUnifiers is pass 2 (spec.md §4.5): pick exactly one overload and
// one set of per-argument unifications for required result type R.
func (n *methodImpl) ResolveUnifiers(ctx *types.Context, required types.Term, sigma *types.Unifier, override *CastPolicy, allowChildCasts bool) (Candidate, error) {
	pos := n.pos
	var errs unifyerrors.List

	runFinalize := func(attempts []finalizeAttempt) (winners []finalizeAttempt, results []Candidate) {
		for _, a := range attempts {
			cand, err := n.tryFinalize(ctx, a.m, required, a.sigma, a.cast, allowChildCasts)
			if err != nil {
				errs.Add(unifyerrors.Promote(err, ""))
				continue
			}
			winners = append(winners, a)
			results = append(results, cand)
		}
		return winners, results
	}

	commit := func(winners []finalizeAttempt, results []Candidate) (Candidate, error) {
		// Re-run the sole winner so its children's recorded state reflects
		// the chosen overload, undoing any tentative writes left behind by
		// other attempts explored along the way (spec.md §5's "owning
		// pass" rule for mutable node-result slots).
		final, err := n.tryFinalize(ctx, winners[0].m, required, winners[0].sigma, winners[0].cast, allowChildCasts)
		if err != nil {
			return Candidate{}, err
		}
		_ = results
		return final, nil
	}

	if override != nil && override.Kind == RequiredCastKind {
		var attempts []finalizeAttempt
		for _, m := range n.realizable {
			conv := override.Conv.FreshInstance(ctx)
			ctx.Stats.Casts++
			s2, err := types.Unify(ctx, pos, conv.Source(), m.Return(), sigma)
			if err != nil {
				errs.Add(unifyerrors.Promote(err, ""))
				continue
			}
			s3, err := types.Unify(ctx, pos, conv.Target(), required, s2)
			if err != nil {
				errs.Add(unifyerrors.Promote(err, ""))
				continue
			}
			attempts = append(attempts, finalizeAttempt{m, s3, realizeConverter(conv, s3)})
		}
		winners, results := runFinalize(attempts)
		switch len(winners) {
		case 0:
			return Candidate{}, types.NewNoResolvableOverload(pos, required, errs)
		case 1:
			return commit(winners, results)
		default:
			var convs []*types.ImplicitConverter
			for _, w := range winners {
				convs = append(convs, w.cast.Converter)
			}
			return Candidate{}, types.NewMultipleImplicits(pos, convs)
		}
	}

	// Step 2: direct match.
	var directAttempts []finalizeAttempt
	for _, m := range n.realizable {
		s2, err := types.Unify(ctx, pos, m.Return(), required, sigma)
		if err != nil {
			errs.Add(unifyerrors.Promote(err, ""))
			continue
		}
		directAttempts = append(directAttempts, finalizeAttempt{m, s2, nil})
	}
	directWinners, directResults := runFinalize(directAttempts)
	switch len(directWinners) {
	case 1:
		return commit(directWinners, directResults)
	default:
		if len(directWinners) > 1 {
			var terms []types.Term
			for _, w := range directWinners {
				terms = append(terms, types.Term(w.m))
			}
			return Candidate{}, types.NewMultipleOverloads(pos, terms)
		}
	}

	if !allowChildCasts {
		return Candidate{}, types.NewNoResolvableOverload(pos, required, errs)
	}

	// Step 3: any implicit cast.
	var implicitAttempts []finalizeAttempt
	for _, m := range n.realizable {
		for _, conv0 := range implicitCandidates(ctx, required, m.Return()) {
			conv := conv0.FreshInstance(ctx)
			ctx.Stats.Casts++
			s2, err := types.Unify(ctx, pos, conv.Source(), m.Return(), sigma)
			if err != nil {
				errs.Add(unifyerrors.Promote(err, ""))
				continue
			}
			s3, err := types.Unify(ctx, pos, conv.Target(), required, s2)
			if err != nil {
				errs.Add(unifyerrors.Promote(err, ""))
				continue
			}
			implicitAttempts = append(implicitAttempts, finalizeAttempt{m, s3, realizeConverter(conv, s3)})
		}
	}
	implicitWinners, implicitResults := runFinalize(implicitAttempts)
	switch len(implicitWinners) {
	case 0:
		return Candidate{}, types.NewNoResolvableOverload(pos, required, errs)
	case 1:
		return commit(implicitWinners, implicitResults)
	default:
		var convs []*types.ImplicitConverter
		for _, w := range implicitWinners {
			convs = append(convs, w.cast.Converter)
		}
		return Candidate{}, types.NewMultipleImplicits(pos, convs)
	}
}

// tryFinalize is spec.md §4.5's try_finalize: it runs will_select, then
// walks the overload's arguments bidirectionally, bouncing ends once on
// ambiguity, and finally ties everything together against the required
// result type (or against m's own return type when a cast bridges the two).
func (n *methodImpl) tryFinalize(ctx *types.Context, m *types.Dummy, required types.Term, sigma *types.Unifier, cast *RealizedImplicitCast, allowChildCasts bool) (Candidate, error) {
	cur, err := n.WillSelect(ctx, m, cast, sigma)
	if err != nil {
		return Candidate{}, err
	}

	arity := len(m.Params())
	argReturns := make([]types.Term, arity)
	lo, hi := 0, arity-1
	forward := true
	failedLatch := false

	for lo <= hi {
		idx := lo
		if !forward {
			idx = hi
		}
		childRequired := Simplify(m.Params()[idx], cur)
		childPolicy := n.ParamCastPolicy(m, idx)
		var childOverride *CastPolicy
		if childPolicy.Kind == RequiredCastKind {
			p := childPolicy
			childOverride = &p
		}

		res, cerr := n.args[idx].ResolveUnifiers(ctx, childRequired, cur, childOverride, allowChildCasts)
		if cerr == nil {
			cur = res.Sigma
			// The tie-together unify below needs the type that actually
			// satisfies the parameter: when the child resolved through an
			// implicit cast, that is the cast's target, not the child's
			// own pre-cast type (which an atomic child's res.Term still
			// reports).
			if childCast := n.args[idx].ImplicitCast(); childCast != nil {
				argReturns[idx] = childCast.Target
			} else {
				argReturns[idx] = res.Term
			}
			if forward {
				lo++
			} else {
				hi--
			}
			failedLatch = false
			continue
		}

		if isAmbiguity(cerr) && !failedLatch {
			forward = !forward
			failedLatch = true
			continue
		}
		return Candidate{}, cerr
	}

	// The tie-together target is required when m's own return was matched
	// directly against it (cast == nil), but m.Return() when a cast was
	// used to bridge the two (spec.md §4.5's "R_or_m.return"): m.Return()
	// and required are then different heads on purpose, and the cast's own
	// earlier conv.Source()/conv.Target() unifications already reconciled
	// required's generics with m.Return()'s.
	tieReturn := required
	if cast != nil {
		tieReturn = m.Return()
	}
	tie := &types.Dummy{Tag: types.MethodTag, Args: append(append([]types.Term{}, argReturns...), tieReturn)}
	final, err := types.Unify(ctx, n.pos, m, tie, cur)
	if err != nil {
		return Candidate{}, err
	}

	n.selectedOverload = m
	n.cast = cast
	n.returnTerm = Simplify(required, final)
	return Candidate{Term: n.returnTerm, Sigma: final}, nil
}

func isAmbiguity(err error) bool {
	switch err.(type) {
	case *types.MultipleOverloadsError, *types.MultipleImplicitsError:
		return true
	default:
		return false
	}
}

// FinalizeUnifiers is pass 3 (spec.md §4.7): idempotent re-simplification,
// then recurse to children.
func (n *methodImpl) FinalizeUnifiers(sigma *types.Unifier) {
	if n.selectedOverload != nil {
		n.selectedOverload = Simplify(n.selectedOverload, sigma).(*types.Dummy)
	}
	if n.returnTerm != nil {
		n.returnTerm = Simplify(n.returnTerm, sigma)
	}
	n.cast = n.cast.Simplify(sigma)
	for _, a := range n.args {
		a.FinalizeUnifiers(sigma)
	}
}
