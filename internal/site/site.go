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

// Package site tracks where in a client's tree a term or node came from, for
// use in error messages. It intentionally does not know about source files,
// lines, or columns: the AST is an external collaborator (spec.md §1) and the
// core only needs a comparable handle a client can attach meaning to.
package site

import "fmt"

// Pos is an opaque, comparable handle identifying a site in a client's tree,
// such as a call expression or a literal. The zero value is NoPos.
type Pos struct {
	label string
	n     int
}

// NoPos is the zero value of Pos, representing an unknown or absent site.
var NoPos = Pos{}

// New returns a Pos labelled for human consumption. Two Pos values with the
// same label and index compare equal; distinct calls with distinct indices
// never do, even with the same label.
func New(label string, index int) Pos {
	return Pos{label: label, n: index}
}

// IsValid reports whether p is something other than NoPos.
func (p Pos) IsValid() bool { return p != NoPos }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	if p.n == 0 {
		return p.label
	}
	return fmt.Sprintf("%s#%d", p.label, p.n)
}

// Compare orders Pos values for stable diagnostic sorting. NoPos sorts first.
func Compare(a, b Pos) int {
	switch {
	case a == b:
		return 0
	case a == NoPos:
		return -1
	case b == NoPos:
		return 1
	case a.label != b.label:
		if a.label < b.label {
			return -1
		}
		return 1
	case a.n < b.n:
		return -1
	default:
		return 1
	}
}
