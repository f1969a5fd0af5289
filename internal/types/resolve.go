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

import "github.com/cue-unify/tyunify/internal/site"

// ConcreteType is a fully-resolved type, assembled by Resolve (spec.md
// §4.8). It mirrors Known's shape but is guaranteed to contain no Var or
// Dummy anywhere within it.
type ConcreteType struct {
	Head string
	Args []ConcreteType
}

func (c ConcreteType) String() string {
	if len(c.Args) == 0 {
		return c.Head
	}
	s := c.Head + "<"
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ">"
}

// Realizer lets a client plug in its own host type-constructor application,
// e.g. to assemble a real reflect.Type-like value instead of the default
// ConcreteType tree. The array head is realized through ArrayOf rather than
// Apply, per spec.md §4.8, since not every host models arrays as a regular
// generic.
type Realizer interface {
	Apply(head string, args []ConcreteType) (ConcreteType, error)
	ArrayOf(elem ConcreteType) (ConcreteType, error)
}

// identityRealizer assembles the ConcreteType tree verbatim; used when a
// client supplies no Realizer of its own.
type identityRealizer struct{}

func (identityRealizer) Apply(head string, args []ConcreteType) (ConcreteType, error) {
	return ConcreteType{Head: head, Args: args}, nil
}

func (identityRealizer) ArrayOf(elem ConcreteType) (ConcreteType, error) {
	return ConcreteType{Head: ArrayHead, Args: []ConcreteType{elem}}, nil
}

// DefaultRealizer is the identity Realizer used by Resolve when r is nil.
var DefaultRealizer Realizer = identityRealizer{}

// Resolve walks term under sigma and assembles a ConcreteType, per spec.md
// §4.8:
//   - Var: if bound, recurse; else UnboundRestr.
//   - Dummy: resolves to its last argument's resolution.
//   - Known with no args: the atomic type.
//   - Known with args: recurse on args, then assemble via r (the array
//     head via r.ArrayOf).
func Resolve(pos site.Pos, term Term, sigma *Unifier, r Realizer) (ConcreteType, error) {
	if r == nil {
		r = DefaultRealizer
	}
	return resolve1(pos, term, sigma, r)
}

func resolve1(pos site.Pos, term Term, sigma *Unifier, r Realizer) (ConcreteType, error) {
	switch x := sigma.Resolve(term).(type) {
	case *Var:
		return ConcreteType{}, newUnboundRestr(pos, x)
	case *Dummy:
		return resolve1(pos, x.Return(), sigma, r)
	case *Known:
		if len(x.Args) == 0 {
			return ConcreteType{Head: x.Head}, nil
		}
		args := make([]ConcreteType, len(x.Args))
		for i, a := range x.Args {
			ct, err := resolve1(pos, a, sigma, r)
			if err != nil {
				return ConcreteType{}, err
			}
			args[i] = ct
		}
		if x.Head == ArrayHead {
			return r.ArrayOf(args[0])
		}
		return r.Apply(x.Head, args)
	default:
		panic("types: unknown term kind in Resolve")
	}
}
