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

import "github.com/google/uuid"

// ImplicitConverter records a user-declared implicit conversion: a "method"
// term (Source) -> Target, possibly containing generic Vars shared across
// the two positions (spec.md §3 ImplicitConverter).
type ImplicitConverter struct {
	Name   string
	Method *Dummy // Dummy("method", Source, Target); arity 2.
}

// NewConverter builds a named converter (Source) -> Target.
func NewConverter(name string, source, target Term) *ImplicitConverter {
	return &ImplicitConverter{Name: name, Method: NewMethod(target, source)}
}

// Source returns the converter's parameter type.
func (c *ImplicitConverter) Source() Term { return c.Method.Params()[0] }

// Target returns the converter's result type.
func (c *ImplicitConverter) Target() Term { return c.Method.Return() }

func (c *ImplicitConverter) String() string {
	return c.Name + ": " + c.Source().String() + " -> " + c.Target().String()
}

// FreshInstance produces a copy of c with every Var systematically renamed
// to a fresh identity, so that unification at one use site never leaks
// constraints into another (spec.md §3 "Instance isolation").
func (c *ImplicitConverter) FreshInstance(ctx *Context) *ImplicitConverter {
	mapping := map[uuid.UUID]*Var{}
	return &ImplicitConverter{
		Name:   c.Name,
		Method: renameTerm(ctx, c.Method, mapping).(*Dummy),
	}
}

func renameTerm(ctx *Context, t Term, mapping map[uuid.UUID]*Var) Term {
	switch x := t.(type) {
	case *Var:
		if nv, ok := mapping[x.id]; ok {
			return nv
		}
		var nv *Var
		if x.IsRestricted() {
			nv = ctx.Vars.FreshRestricted(x.label, x.Restricted)
		} else {
			nv = ctx.Vars.Fresh(x.label)
		}
		mapping[x.id] = nv
		return nv
	case *Known:
		if len(x.Args) == 0 {
			return x
		}
		args := make([]Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = renameTerm(ctx, a, mapping)
		}
		return &Known{Head: x.Head, Args: args}
	case *Dummy:
		args := make([]Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = renameTerm(ctx, a, mapping)
		}
		return &Dummy{Tag: x.Tag, Args: args}
	default:
		panic("types: unknown term kind in renameTerm")
	}
}

// ConverterRegistry indexes converters three ways (spec.md §4.3):
// by source head, by target head (always, since targets must be
// head-known), and a global bucket for Var-sourced converters that apply
// to any source.
type ConverterRegistry struct {
	bySourceHead map[string][]*ImplicitConverter
	byTargetHead map[string][]*ImplicitConverter
	global       []*ImplicitConverter
}

// NewConverterRegistry returns an empty registry.
func NewConverterRegistry() *ConverterRegistry {
	return &ConverterRegistry{
		bySourceHead: map[string][]*ImplicitConverter{},
		byTargetHead: map[string][]*ImplicitConverter{},
	}
}

// NewConverterRegistryFromHeadMap builds a registry of trivial, non-generic
// converters from a head -> []target-head map, mirroring the "declare
// conversions as a plain map" constructor of spec.md §6's TypeResolver.
func NewConverterRegistryFromHeadMap(m map[string][]string) *ConverterRegistry {
	r := NewConverterRegistry()
	for from, tos := range m {
		for _, to := range tos {
			r.Register(NewConverter(from+"->"+to, NewKnown(from), NewKnown(to)))
		}
	}
	return r
}

// Register adds conv to the registry. conv.Target() must be head-known
// (spec.md §4.3); violating this is a programmer error.
func (r *ConverterRegistry) Register(conv *ImplicitConverter) {
	target, ok := conv.Target().(*Known)
	if !ok {
		panic("types: ConverterRegistry: converter target must be head-known")
	}
	r.byTargetHead[target.Head] = append(r.byTargetHead[target.Head], conv)

	if source, ok := conv.Source().(*Known); ok {
		r.bySourceHead[source.Head] = append(r.bySourceHead[source.Head], conv)
	} else {
		r.global = append(r.global, conv)
	}
}

// CastsFrom returns the converters applicable to a value of type term: the
// global (Var-sourced) converters, plus any indexed under term's head when
// term is head-known.
func (r *ConverterRegistry) CastsFrom(term Term) []*ImplicitConverter {
	out := append([]*ImplicitConverter{}, r.global...)
	if k, ok := term.(*Known); ok {
		out = append(out, r.bySourceHead[k.Head]...)
	}
	return out
}

// SourcesOf returns the converters whose target matches term's head, or
// nil if term is not head-known (targets must be head-known).
func (r *ConverterRegistry) SourcesOf(term Term) []*ImplicitConverter {
	k, ok := term.(*Known)
	if !ok {
		return nil
	}
	return append([]*ImplicitConverter{}, r.byTargetHead[k.Head]...)
}

// SourcesListOf is SourcesOf projected to just the converters' source
// terms, for callers that only need candidate source types, not the
// converters themselves.
func (r *ConverterRegistry) SourcesListOf(term Term) []Term {
	convs := r.SourcesOf(term)
	out := make([]Term, len(convs))
	for i, c := range convs {
		out[i] = c.Source()
	}
	return out
}
