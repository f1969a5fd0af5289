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

// Package unifyerrors defines the shared error model for the unification
// engine (spec.md §7). The pivotal type is the Error interface; the
// information it carries is best retrieved with Path, Positions, and Print.
package unifyerrors

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cue-unify/tyunify/internal/site"
)

// New is a convenience wrapper for [errors.New]. It does not return a
// structured Error.
func New(msg string) error { return errors.New(msg) }

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Unwrap returns the result of calling Unwrap on err, if it implements it.
func Unwrap(err error) error { return errors.Unwrap(err) }

// Message implements the error interface and carries a delayed-format
// message so that callers can re-render it (e.g. for localization) instead
// of baking in fmt.Sprintf at construction time.
type Message struct {
	format string
	args   []interface{}
}

// NewMessagef creates a Message for human consumption. args are retained
// verbatim, not formatted, so the message can be rendered more than once.
func NewMessagef(format string, args ...interface{}) Message {
	return Message{format: format, args: args}
}

// Msg returns the unformatted message and its arguments.
func (m *Message) Msg() (format string, args []interface{}) {
	return m.format, m.args
}

func (m *Message) Error() string {
	return fmt.Sprintf(m.format, m.args...)
}

// Error is the common interface implemented by every diagnostic the engine
// produces (spec.md §7's error kinds all implement this).
type Error interface {
	error

	// Position returns the primary site of an error.
	Position() site.Pos
	// InputPositions reports sites that contributed to the error.
	InputPositions() []site.Pos
	// Path returns the path into the tree where the error occurred, or nil.
	Path() []string
	// Msg returns the unformatted message and its arguments.
	Msg() (format string, args []interface{})
}

// Positions returns all sites associated with err, the primary site first,
// sorted and de-duplicated thereafter.
func Positions(err error) []site.Pos {
	e := Error(nil)
	if !errors.As(err, &e) {
		return nil
	}
	a := make([]site.Pos, 0, 3)
	pos := e.Position()
	if pos.IsValid() {
		a = append(a, pos)
	}
	sortFrom := len(a)
	for _, p := range e.InputPositions() {
		if p.IsValid() && p != pos {
			a = append(a, p)
		}
	}
	slices.SortFunc(a[sortFrom:], site.Compare)
	return slices.CompactFunc(a, func(x, y site.Pos) bool { return x == y })
}

// Path returns the path of err if it is an Error.
func Path(err error) []string {
	if e := Error(nil); errors.As(err, &e) {
		return e.Path()
	}
	return nil
}

// posError is the Error implementation returned by Newf and used as the
// parent of Wrapf: a site plus a Message. The error kinds in package types
// do not embed it; each embeds Message and supplies its own
// Position/InputPositions/Path.
type posError struct {
	pos  site.Pos
	Message
}

func (e *posError) Path() []string              { return nil }
func (e *posError) InputPositions() []site.Pos   { return nil }
func (e *posError) Position() site.Pos           { return e.pos }

// Newf creates an Error at the given site with the given message.
func Newf(p site.Pos, format string, args ...interface{}) Error {
	return &posError{pos: p, Message: NewMessagef(format, args...)}
}

// Wrapf creates an Error at p wrapping err for additional context.
func Wrapf(err error, p site.Pos, format string, args ...interface{}) Error {
	parent := &posError{pos: p, Message: NewMessagef(format, args...)}
	return Wrap(parent, err)
}

// Wrap makes child a subordinate of parent. If child is a List, the result
// wraps each element individually.
func Wrap(parent Error, child error) Error {
	if child == nil {
		return parent
	}
	if l, ok := child.(List); ok {
		out := make(List, len(l))
		for i, e := range l {
			out[i] = &wrapped{parent, e}
		}
		return out
	}
	return &wrapped{parent, child}
}

type wrapped struct {
	main Error
	wrap error
}

func (e *wrapped) Error() string {
	msg := e.main.Error()
	switch {
	case e.wrap == nil:
		return msg
	case msg == "":
		return e.wrap.Error()
	default:
		return fmt.Sprintf("%s: %s", msg, e.wrap)
	}
}

func (e *wrapped) Is(target error) bool      { return Is(e.main, target) }
func (e *wrapped) As(target interface{}) bool { return As(e.main, target) }
func (e *wrapped) Unwrap() error              { return e.wrap }

func (e *wrapped) Msg() (format string, args []interface{}) { return e.main.Msg() }

func (e *wrapped) Path() []string {
	if p := e.main.Path(); p != nil {
		return p
	}
	return Path(e.wrap)
}

func (e *wrapped) InputPositions() []site.Pos {
	return append(e.main.InputPositions(), Positions(e.wrap)...)
}

func (e *wrapped) Position() site.Pos {
	if p := e.main.Position(); p != site.NoPos {
		return p
	}
	if w, ok := e.wrap.(Error); ok {
		return w.Position()
	}
	return site.NoPos
}

// Promote converts a plain error to an Error, attaching msg as context if it
// is not already one.
func Promote(err error, msg string) Error {
	if e, ok := err.(Error); ok {
		return e
	}
	return Wrapf(err, site.NoPos, "%s", msg)
}

// List is an ordered list of Errors, itself an error.
type List []Error

func (p List) Error() string {
	switch len(p) {
	case 0:
		return ""
	case 1:
		return p[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", p[0].Error(), len(p)-1)
	}
}

func (p List) Is(target error) bool {
	for _, e := range p {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}

func (p List) As(target interface{}) bool {
	for _, e := range p {
		if errors.As(e, target) {
			return true
		}
	}
	return false
}

// Position, InputPositions, Path and Msg are those of the list's first
// error, so that a List is itself an Error; an empty List reports none.
func (p List) Position() site.Pos                       { return p.first().Position() }
func (p List) InputPositions() []site.Pos               { return p.first().InputPositions() }
func (p List) Path() []string                           { return p.first().Path() }
func (p List) Msg() (format string, args []interface{}) { return p.first().Msg() }

func (p List) first() Error {
	if len(p) == 0 {
		return &posError{}
	}
	return p[0]
}

// Add appends err to the list, flattening nested Lists and skipping exact
// duplicates already present.
func (p *List) Add(err Error) {
	*p = appendToList(*p, err)
}

func appendToList(a List, err Error) List {
	switch x := err.(type) {
	case nil:
		return a
	case List:
		for _, e := range x {
			a = appendToList(a, e)
		}
		return a
	default:
		for _, e := range a {
			if e == err {
				return a
			}
		}
		return append(a, err)
	}
}

// Errors reports the individual errors of err: itself if it is a single
// Error, its elements if it is a List, or a promoted wrapper otherwise.
func Errors(err error) []Error {
	if err == nil {
		return nil
	}
	var l List
	var e Error
	switch {
	case errors.As(err, &l):
		return l
	case errors.As(err, &e):
		return []Error{e}
	default:
		return []Error{Promote(err, "")}
	}
}

// Sanitize sorts and de-duplicates a List on a best-effort basis. A single
// error, or nil, is returned unchanged.
func Sanitize(err Error) Error {
	l, ok := err.(List)
	if !ok {
		return err
	}
	a := slices.Clone(l)
	slices.SortFunc(a, func(x, y Error) int {
		if c := site.Compare(x.Position(), y.Position()); c != 0 {
			return c
		}
		return strings.Compare(x.Error(), y.Error())
	})
	a = slices.CompactFunc(a, func(x, y Error) bool { return x.Error() == y.Error() })
	if len(a) == 1 {
		return a[0]
	}
	return a
}

// Print writes a human-readable rendering of err to w, one error per line,
// each prefixed by its position when known.
func Print(w io.Writer, err error) {
	for _, e := range Errors(err) {
		if pos := e.Position(); pos.IsValid() {
			fmt.Fprintf(w, "%s: %s\n", pos, e.Error())
		} else {
			fmt.Fprintf(w, "%s\n", e.Error())
		}
	}
}
