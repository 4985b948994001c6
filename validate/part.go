// Copyright 2026 The Satchel Authors.
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

// Package validate runs a token stream through a fixed-shape state
// machine and produces a flat list of Parts for package parse to
// assemble into a command. It rejects anything that doesn't match the
// grammar with a 1-based, token-indexed error message.
package validate

import "github.com/satchel-db/satchel/lex"

// Part is one semantic fragment of a validated request.
type Part interface {
	isPart()
}

// Keyword is emitted verbatim whenever the lexer produces a KEYWORD
// token; it never changes the validator's state.
type Keyword struct {
	Name string
	Type lex.KeywordKind
}

// Value is a single bare or parenthesis-less quoted string.
type Value struct{ S string }

// Values is a flat parenthesised list: ( "a", "b" ).
type Values struct{ S []string }

// NestedValues is a parenthesised list of parenthesised lists:
// ( ("a","b"), ("c") ).
type NestedValues struct{ S [][]string }

// Lifetime is a bracketed lifetime annotation. It is carried through
// the AST but not yet interpreted by package exec.
type Lifetime struct {
	// Ref is the reference name given by the block's trailing
	// identifier, or "" if this lifetime wasn't named. A leading '&'
	// makes the identifier mandatory.
	Ref string
	Kind LifetimeKind
	// Value is required for User/Connection kinds, forbidden for
	// Static, and unused (reserved) for Date.
	Value string
}

// LifetimeKind mirrors ast.LifetimeKind without importing package ast,
// since validate sits below parse in the pipeline.
type LifetimeKind int

const (
	LifetimeStatic LifetimeKind = iota
	LifetimeDate
	LifetimeUser
	LifetimeConnection
)

func (Keyword) isPart()      {}
func (Value) isPart()        {}
func (Values) isPart()       {}
func (NestedValues) isPart() {}
func (Lifetime) isPart()     {}
