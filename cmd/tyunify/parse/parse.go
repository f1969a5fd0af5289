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

// Package parse is a small hand-written recursive-descent reader for the
// .tyx tree language: a type is a bare head (`int`) or a constructor
// application (`(Array int)`); a tree node is `(atom T1 T2 ...)` for a
// fixed-candidate leaf or `(call name arg1 arg2 ...)` for an overloaded
// call whose overload set comes from the accompanying config. Grounded on
// the teacher's own cue/scanner + cue/parser split, scaled down to the one
// bracketed-atom grammar this CLI needs: a full CUE-grade scanner/parser
// pair would be out of proportion to a demo front end for a library whose
// real client is Go code, not text.
package parse

import (
	"fmt"

	"github.com/cue-unify/tyunify/cmd/tyunify/config"
	"github.com/cue-unify/tyunify/internal/site"
	"github.com/cue-unify/tyunify/internal/types"
	"github.com/cue-unify/tyunify/internal/types/tree"
)

// sexpr is the untyped parse tree: either an atom (bare token) or a list of
// sub-expressions, enclosed in parens.
type sexpr struct {
	atom string  // set iff list == nil
	list []sexpr // set iff this is a parenthesized form
	pos  int     // byte offset, for site.Pos labels
}

// lexer splits .tyx source into '(' ')' and whitespace-delimited tokens.
type lexer struct {
	src string
	pos int
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func (l *lexer) atEnd() bool {
	l.skipSpace()
	return l.pos >= len(l.src)
}

func (l *lexer) readSexpr() (sexpr, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return sexpr{}, fmt.Errorf("parse: unexpected end of input")
	}
	start := l.pos
	if l.src[l.pos] == '(' {
		l.pos++
		items := []sexpr{}
		for {
			l.skipSpace()
			if l.pos >= len(l.src) {
				return sexpr{}, fmt.Errorf("parse: unterminated list starting at byte %d", start)
			}
			if l.src[l.pos] == ')' {
				l.pos++
				return sexpr{list: items, pos: start}, nil
			}
			item, err := l.readSexpr()
			if err != nil {
				return sexpr{}, err
			}
			items = append(items, item)
		}
	}
	if l.src[l.pos] == ')' {
		return sexpr{}, fmt.Errorf("parse: unexpected ')' at byte %d", l.pos)
	}
	for l.pos < len(l.src) && !isSpace(l.src[l.pos]) && l.src[l.pos] != '(' && l.src[l.pos] != ')' {
		l.pos++
	}
	return sexpr{atom: l.src[start:l.pos], pos: start}, nil
}

// ParseType reads a single type expression, e.g. "int" or "(Array int)".
func ParseType(src string) (types.Term, error) {
	l := &lexer{src: src}
	s, err := l.readSexpr()
	if err != nil {
		return nil, err
	}
	if !l.atEnd() {
		return nil, fmt.Errorf("parse: trailing input after type expression")
	}
	return buildType(s)
}

func buildType(s sexpr) (types.Term, error) {
	if s.list == nil {
		return types.NewKnown(s.atom), nil
	}
	if len(s.list) == 0 {
		return nil, fmt.Errorf("parse: empty type expression at byte %d", s.pos)
	}
	head, ok := headName(s.list[0])
	if !ok {
		return nil, fmt.Errorf("parse: type constructor head must be a bare name, at byte %d", s.pos)
	}
	args := make([]types.Term, len(s.list)-1)
	for i, sub := range s.list[1:] {
		t, err := buildType(sub)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return &types.Known{Head: head, Args: args}, nil
}

func headName(s sexpr) (string, bool) {
	if s.list != nil {
		return "", false
	}
	return s.atom, true
}

// Tree reads a whole .tyx source into a single tree.Node, resolving (call
// name ...) overload sets against cfg.
func Tree(src string, cfg *config.Config) (tree.Node, error) {
	l := &lexer{src: src}
	s, err := l.readSexpr()
	if err != nil {
		return nil, err
	}
	if !l.atEnd() {
		return nil, fmt.Errorf("parse: trailing input after tree expression")
	}
	return buildTree(s, cfg)
}

func buildTree(s sexpr, cfg *config.Config) (tree.Node, error) {
	if s.list == nil || len(s.list) == 0 {
		return nil, fmt.Errorf("parse: expected (atom ...) or (call ...) at byte %d", s.pos)
	}
	head, ok := headName(s.list[0])
	if !ok {
		return nil, fmt.Errorf("parse: tree node head must be a bare name, at byte %d", s.pos)
	}

	pos := site.New("tyx", s.pos)

	switch head {
	case "atom":
		cands := make([]types.Term, len(s.list)-1)
		for i, sub := range s.list[1:] {
			t, err := buildType(sub)
			if err != nil {
				return nil, err
			}
			cands[i] = t
		}
		if len(cands) == 0 {
			return nil, fmt.Errorf("parse: (atom ...) at byte %d needs at least one candidate type", s.pos)
		}
		return tree.NewAtomicNode(pos, cands, false), nil

	case "call":
		if len(s.list) < 2 {
			return nil, fmt.Errorf("parse: (call name ...) at byte %d is missing its name", s.pos)
		}
		name, ok := headName(s.list[1])
		if !ok {
			return nil, fmt.Errorf("parse: call name must be a bare name, at byte %d", s.pos)
		}
		overloads, ok := cfg.Overload(name)
		if !ok {
			return nil, fmt.Errorf("parse: unknown call %q at byte %d (not declared in config overloads)", name, s.pos)
		}
		args := make([]tree.Node, len(s.list)-2)
		for i, sub := range s.list[2:] {
			n, err := buildTree(sub, cfg)
			if err != nil {
				return nil, err
			}
			args[i] = n
		}
		return tree.NewMethodNode(pos, overloads, args, nil, false), nil

	default:
		return nil, fmt.Errorf("parse: unknown tree node kind %q at byte %d (want atom or call)", head, s.pos)
	}
}
