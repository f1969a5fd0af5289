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

// Package tree defines the TreeProtocol (spec.md §4.4-§4.7, §6): the
// three-phase contract tree nodes implement, plus a reference
// implementation (MethodNode, AtomicNode) a client can embed instead of
// writing their own. The protocol is deliberately a flat interface rather
// than a class hierarchy of "method tree" vs "atomic tree" as inheritance
// (spec.md §9's design note): Go interfaces plus two concrete
// implementors model the same dispatch without the inheritance machinery
// the original source used.
package tree

import (
	"github.com/cue-unify/tyunify/internal/site"
	"github.com/cue-unify/tyunify/internal/types"
)

// Candidate pairs a term with the Unifier under which it was derived. Pass
// 1 returns a list of these per node; each one is an independently
// plausible top-level type, not required to be globally consistent with
// its siblings (spec.md §4.4's soundness note).
type Candidate struct {
	Term  types.Term
	Sigma *types.Unifier
}

// Node is the TreeProtocol every tree node implements (spec.md §6's
// TreeNode trait).
type Node interface {
	// PossibleUnifiers is pass 1: bottom-up candidate enumeration.
	PossibleUnifiers(ctx *types.Context, sigma *types.Unifier, forceImplicits bool) ([]Candidate, error)

	// ResolveUnifiers is pass 2: top-down overload/cast selection against
	// a required result type. override, if non-nil, is the RequiredCast
	// policy the parent forced on this child (spec.md §4.5 order, step 1).
	ResolveUnifiers(ctx *types.Context, required types.Term, sigma *types.Unifier, override *CastPolicy, allowChildCasts bool) (Candidate, error)

	// FinalizeUnifiers is pass 3: idempotent read-only re-simplification.
	FinalizeUnifiers(sigma *types.Unifier)

	// SelectedReturn is the term pass 2 settled on, valid after
	// ResolveUnifiers succeeds.
	SelectedReturn() types.Term

	// ImplicitCast is the cast realized at this node, if any.
	ImplicitCast() *RealizedImplicitCast

	// Pos is this node's site, for error messages.
	Pos() site.Pos
}

// MethodNode is the sub-contract for overloaded call nodes (spec.md §6's
// MethodTreeNode).
type MethodNode interface {
	Node

	// Overloads is the overload set, a list of arity-matching "method"
	// Dummys.
	Overloads() []*types.Dummy
	// Args is the node's child argument trees.
	Args() []Node
	// ParamCastPolicy reports the cast policy for overload m's i-th
	// parameter.
	ParamCastPolicy(m *types.Dummy, i int) CastPolicy
	// OverloadsInterchangeable reports whether pass 1 may stop at the
	// first successful overload instead of enumerating them all.
	OverloadsInterchangeable() bool
	// WillSelect is a hook run when pass 2 is about to commit to
	// overload m with the given cast; it may perform extra unification
	// and fail.
	WillSelect(ctx *types.Context, m *types.Dummy, cast *RealizedImplicitCast, sigma *types.Unifier) (*types.Unifier, error)
	// GenerateOverloads lets a node whose overload set depends on
	// argument types (e.g. member access) populate Overloads from the
	// per-argument candidate sets computed so far. The default reference
	// implementation's GenerateOverloads is a no-op; only nodes that
	// need it override it.
	GenerateOverloads(argSets [][]Candidate)

	// RealizableOverloads is pass 1's result slot.
	RealizableOverloads() []*types.Dummy

	// SetAlwaysCheckImplicitCasts forces pass 1 to run the
	// registry-backed implicit-cast search even when the direct pass
	// already produced candidates (spec.md §4.4 step 5's "OR the
	// caller requested always_check_implicit_casts"), distinct from
	// forceImplicits's full-retry redo.
	SetAlwaysCheckImplicitCasts(bool)
}

// AtomicNode is the sub-contract for fixed-candidate nodes such as literals
// or overloaded symbols (spec.md §6's AtomicTreeNode).
type AtomicNode interface {
	Node

	// Candidates is the node's fixed, non-empty candidate list.
	Candidates() []types.Term
	// OverloadsInterchangeable reports whether multiple direct matches
	// are resolved by picking the first rather than erroring.
	OverloadsInterchangeable() bool
	// WillSelect is the same hook as MethodNode's.
	WillSelect(ctx *types.Context, t types.Term, cast *RealizedImplicitCast, sigma *types.Unifier) (*types.Unifier, error)
}
