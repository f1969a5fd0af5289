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

// Command tyunify is a thin CLI over the internal/types checker: it parses
// a .tyx tree, runs the three-pass protocol, and prints the resolved types.
package main

import (
	"os"

	"github.com/cue-unify/tyunify/cmd/tyunify/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
