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

// Package passtats counts unification work, mirroring the teacher's
// cue/stats package: a plain counter struct printed as a table, rather than
// a logging or metrics library, since the core evaluator it is grounded on
// (internal/core/adt) has none either.
package passtats

import "fmt"

// Counts tallies the work done across the three passes for one top-level
// check. A Context (internal/types) owns one and increments it as it goes.
type Counts struct {
	Unifications  int64 // calls into UnifyEngine.Unify
	Bindings      int64 // Var bindings attempted that passed the occurs check
	OccursRejects int64 // occurs-check failures
	OverloadsTried int64 // overload/argument combinations tried in pass 1
	Casts         int64 // fresh implicit-conversion instances tried
}

// Add accumulates o into c, for combining per-node counts into a run total.
func (c *Counts) Add(o Counts) {
	c.Unifications += o.Unifications
	c.Bindings += o.Bindings
	c.OccursRejects += o.OccursRejects
	c.OverloadsTried += o.OverloadsTried
	c.Casts += o.Casts
}

// String renders the counters as a fixed-width table, one row per counter.
func (c Counts) String() string {
	return fmt.Sprintf(
		"unifications %6d\nbindings     %6d\noccurs-rejects %4d\noverloads-tried %3d\ncasts        %6d\n",
		c.Unifications, c.Bindings, c.OccursRejects, c.OverloadsTried, c.Casts,
	)
}
