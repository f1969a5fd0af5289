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
	"fmt"

	"github.com/kr/pretty"
)

// Dump renders t resolved under sigma, followed by a kr/pretty dump of its
// resolved field structure, for use in failing test output (mirrors
// internal/core/adt/debug.go's dedicated debug-printer file).
func Dump(t Term, sigma *Unifier) string {
	r := sigma.Resolve(t)
	return fmt.Sprintf("%s\n%s", r, pretty.Sprint(r))
}

// DumpUnifier renders every binding in sigma, one per line, sorted by
// neither key nor value (map iteration order is not guaranteed); intended
// for ad-hoc debugging, not golden-file comparisons.
func DumpUnifier(sigma *Unifier) string {
	s := fmt.Sprintf("unifier (%d bindings):\n", sigma.Len())
	for id, t := range sigma.bindings {
		s += fmt.Sprintf("  %s -> %s\n", id.String()[:8], t)
	}
	return s
}
