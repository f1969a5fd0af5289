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

import "github.com/cue-unify/tyunify/internal/types"

// CastKind distinguishes the three per-(overload,argument-index) policies
// of spec.md §3's MethodNode contract.
type CastKind int

const (
	// NoCastAllowed forbids any implicit conversion at this position.
	NoCastAllowed CastKind = iota
	// AnyCastAllowed lets the engine search the ConverterRegistry freely.
	AnyCastAllowed
	// RequiredCastKind forces exactly one named converter.
	RequiredCastKind
)

// CastPolicy is the result of MethodNode.ParamCastPolicy: one of
// RequiredCast(conv), AnyCastAllowed, or NoCastAllowed.
type CastPolicy struct {
	Kind CastKind
	Conv *types.ImplicitConverter // set iff Kind == RequiredCastKind
}

// RequiredCast builds a policy forcing conv.
func RequiredCast(conv *types.ImplicitConverter) CastPolicy {
	return CastPolicy{Kind: RequiredCastKind, Conv: conv}
}

// AnyCast is the AnyCastAllowed policy value.
var AnyCast = CastPolicy{Kind: AnyCastAllowed}

// NoCast is the NoCastAllowed policy value.
var NoCast = CastPolicy{Kind: NoCastAllowed}

// RealizedImplicitCast is attached to a tree node once pass 2 selects a
// conversion: the chosen converter instance, the realized target term, and
// the realized generic Vars (spec.md §3). It is re-simplified in pass 3.
type RealizedImplicitCast struct {
	Converter *types.ImplicitConverter // the fresh instance used
	Target    types.Term               // the realized target term
	Generics  []types.Term             // the realized values of the converter's Vars, in declaration order
}

// Simplify re-applies sigma to the cast's realized fields, for pass 3.
func (c *RealizedImplicitCast) Simplify(sigma *types.Unifier) *RealizedImplicitCast {
	if c == nil {
		return nil
	}
	generics := make([]types.Term, len(c.Generics))
	for i, g := range c.Generics {
		generics[i] = Simplify(g, sigma)
	}
	return &RealizedImplicitCast{
		Converter: c.Converter,
		Target:    Simplify(c.Target, sigma),
		Generics:  generics,
	}
}

// Simplify partially resolves t under sigma: bound Vars are replaced by
// what they resolve to (recursively), unbound Vars and concrete heads are
// left as-is. Unlike types.Resolve it never fails: an unbound Var simply
// stays a Var, which is what spec.md §4.7/§8 need for nodes whose generics
// remain unresolved (e.g. scenario 5's "Consume" example).
func Simplify(t types.Term, sigma *types.Unifier) types.Term {
	switch x := sigma.Resolve(t).(type) {
	case *types.Var:
		return x
	case *types.Known:
		if len(x.Args) == 0 {
			return x
		}
		args := make([]types.Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = Simplify(a, sigma)
		}
		return &types.Known{Head: x.Head, Args: args}
	case *types.Dummy:
		args := make([]types.Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = Simplify(a, sigma)
		}
		return &types.Dummy{Tag: x.Tag, Args: args}
	default:
		panic("tree: unknown term kind in Simplify")
	}
}

// realizeConverter builds a RealizedImplicitCast from a fresh converter
// instance and the sigma in effect after it was unified in.
func realizeConverter(conv *types.ImplicitConverter, sigma *types.Unifier) *RealizedImplicitCast {
	var generics []types.Term
	collectVars(conv.Method, map[string]bool{}, &generics, sigma)
	return &RealizedImplicitCast{
		Converter: conv,
		Target:    Simplify(conv.Target(), sigma),
		Generics:  generics,
	}
}

func collectVars(t types.Term, seen map[string]bool, out *[]types.Term, sigma *types.Unifier) {
	switch x := t.(type) {
	case *types.Var:
		key := x.ID().String()
		if !seen[key] {
			seen[key] = true
			*out = append(*out, Simplify(x, sigma))
		}
	case *types.Known:
		for _, a := range x.Args {
			collectVars(a, seen, out, sigma)
		}
	case *types.Dummy:
		for _, a := range x.Args {
			collectVars(a, seen, out, sigma)
		}
	}
}
