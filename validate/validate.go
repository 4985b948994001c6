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

package validate

import (
	"fmt"

	"github.com/satchel-db/satchel/lex"
)

type state int

const (
	stateDefault state = iota
	stateValues
	stateValue
	stateDelimiter
	stateNestedNext
	stateNestedNextDel
	statePreLifetime
	stateLifetime
	stateFilledLifetime
	stateNamedLifetime
)

type context int

const (
	ctxDefault context = iota
	ctxValue
	ctxNestedValue
	ctxReference
)

// builder walks the token stream one token at a time, accumulating
// Parts. Its shape (state + context + scratch buffers) mirrors the
// reference validator's Builder<State, Context>.
type builder struct {
	state   state
	context context

	valuesBuf       []string
	nestedValuesBuf [][]string

	lifetimeRef   *string
	lifetimeName  *string
	lifetimeValue *string

	parts []Part
}

func (b *builder) reset() {
	b.state = stateDefault
	b.context = ctxDefault
	b.valuesBuf = nil
	b.nestedValuesBuf = nil
	b.lifetimeRef = nil
	b.lifetimeName = nil
	b.lifetimeValue = nil
}

// Validate runs tokens through the state machine below and returns the
// resulting Parts, or an error prefixed with the 1-based index of the
// offending token.
func Validate(tokens []lex.Token) ([]Part, error) {
	b := &builder{}
	for i, tok := range tokens {
		if err := b.transition(tok); err != nil {
			return nil, fmt.Errorf("%d: %s", i+1, err)
		}
	}
	return b.parts, nil
}

func strp(s string) *string { return &s }

func (b *builder) transition(tok lex.Token) error {
	switch b.state {

	case stateDefault:
		if b.context != ctxDefault {
			return fmt.Errorf("invalid state DEFAULT with a non-default context")
		}
		switch tok.Kind {
		case lex.LPAREN:
			b.state = stateValues
			b.context = ctxValue
		case lex.KEYWORD:
			b.parts = append(b.parts, Keyword{Name: tok.Text, Type: tok.KeywordType})
		case lex.LBRACE:
			b.state = statePreLifetime
		case lex.VALUE:
			b.parts = append(b.parts, Value{S: tok.Text})
		default:
			return fmt.Errorf("invalid token %s after Default state", tok.Kind)
		}
		return nil

	case stateValues:
		switch tok.Kind {
		case lex.VALUE:
			b.state = stateValue
			switch b.context {
			case ctxValue:
				b.valuesBuf = append(b.valuesBuf, tok.Text)
			case ctxNestedValue:
				last := len(b.nestedValuesBuf) - 1
				b.nestedValuesBuf[last] = append(b.nestedValuesBuf[last], tok.Text)
			default:
				return fmt.Errorf("invalid context after Value in Values")
			}
		case lex.LPAREN:
			if b.context != ctxValue {
				return fmt.Errorf("invalid context for Values to receive another left parenthesis")
			}
			b.context = ctxNestedValue
			b.nestedValuesBuf = append(b.nestedValuesBuf, nil)
		default:
			return fmt.Errorf("invalid token %s after Values", tok.Kind)
		}
		return nil

	case stateValue:
		switch tok.Kind {
		case lex.DELIM:
			b.state = stateDelimiter
		case lex.RPAREN:
			switch b.context {
			case ctxValue:
				b.parts = append(b.parts, Values{S: b.valuesBuf})
				b.reset()
			case ctxNestedValue:
				b.state = stateNestedNext
			default:
				return fmt.Errorf("invalid context for right parenthesis in Value")
			}
		default:
			return fmt.Errorf("invalid token %s after Value", tok.Kind)
		}
		return nil

	case stateDelimiter:
		switch tok.Kind {
		case lex.VALUE:
			b.state = stateValue
			switch b.context {
			case ctxNestedValue:
				last := len(b.nestedValuesBuf) - 1
				b.nestedValuesBuf[last] = append(b.nestedValuesBuf[last], tok.Text)
			case ctxValue:
				b.valuesBuf = append(b.valuesBuf, tok.Text)
			default:
				return fmt.Errorf("invalid context for Delimiter")
			}
		default:
			return fmt.Errorf("invalid token %s after Delimiter", tok.Kind)
		}
		return nil

	case stateNestedNext:
		if b.context != ctxNestedValue {
			return fmt.Errorf("invalid state NestedNext with context other than NestedValue")
		}
		switch tok.Kind {
		case lex.RPAREN:
			b.parts = append(b.parts, NestedValues{S: b.nestedValuesBuf})
			b.reset()
		case lex.DELIM:
			b.nestedValuesBuf = append(b.nestedValuesBuf, nil)
			b.state = stateNestedNextDel
		default:
			return fmt.Errorf("invalid token %s after Nested Next", tok.Kind)
		}
		return nil

	case stateNestedNextDel:
		if b.context != ctxNestedValue {
			return fmt.Errorf("invalid state NestedNextDel with context other than NestedValue")
		}
		switch tok.Kind {
		case lex.LPAREN:
			b.state = stateValues
		default:
			return fmt.Errorf("invalid token %s after Nested Next Delimiter", tok.Kind)
		}
		return nil

	case statePreLifetime:
		switch tok.Kind {
		case lex.AMP:
			if b.context == ctxReference {
				return fmt.Errorf("reference appeared twice")
			}
			b.context = ctxReference
		case lex.LIFETIME:
			b.lifetimeName = strp(tok.Text)
			b.state = stateLifetime
		default:
			return fmt.Errorf("invalid token %s after Pre Lifetime", tok.Kind)
		}
		return nil

	case stateLifetime:
		switch tok.Kind {
		case lex.VALUE:
			b.state = stateFilledLifetime
			b.lifetimeValue = strp(tok.Text)
		case lex.RBRACE:
			if b.context != ctxDefault {
				return fmt.Errorf("tried to exit referenced lifetime before giving ident of reference")
			}
			if err := b.constructLifetime(); err != nil {
				return err
			}
			b.reset()
		case lex.IDENT:
			b.lifetimeRef = strp(tok.Text)
			b.state = stateNamedLifetime
		default:
			return fmt.Errorf("invalid token %s after Lifetime", tok.Kind)
		}
		return nil

	case stateFilledLifetime:
		switch tok.Kind {
		case lex.IDENT:
			b.lifetimeRef = strp(tok.Text)
			b.state = stateNamedLifetime
		case lex.RBRACE:
			if b.context != ctxDefault {
				return fmt.Errorf("tried to exit referenced lifetime before giving ident of reference")
			}
			if err := b.constructLifetime(); err != nil {
				return err
			}
			b.reset()
		default:
			return fmt.Errorf("invalid token %s after Filled Lifetime", tok.Kind)
		}
		return nil

	case stateNamedLifetime:
		switch tok.Kind {
		case lex.RBRACE:
			if err := b.constructLifetime(); err != nil {
				return err
			}
			b.reset()
		default:
			return fmt.Errorf("invalid token %s after Named Lifetime", tok.Kind)
		}
		return nil
	}

	return fmt.Errorf("invalid validator state")
}

// constructLifetime assembles the accumulated lifetime buffers into a
// Lifetime Part, applying each kind's value constraint: 's forbids a
// value, 'u and 'c require one, 'd is reserved.
func (b *builder) constructLifetime() error {
	if b.lifetimeName == nil {
		return fmt.Errorf("lifetime created without lifetime")
	}
	var ref string
	if b.lifetimeRef != nil {
		ref = *b.lifetimeRef
	}
	var value string
	hasValue := b.lifetimeValue != nil
	if hasValue {
		value = *b.lifetimeValue
	}

	var kind LifetimeKind
	switch *b.lifetimeName {
	case "s":
		if hasValue {
			return fmt.Errorf("static lifetime does not take a value")
		}
		kind = LifetimeStatic
	case "d":
		return fmt.Errorf("date lifetime is reserved and not yet implemented")
	case "u":
		if !hasValue {
			return fmt.Errorf("user lifetime needs a user hash as value")
		}
		kind = LifetimeUser
	case "c":
		if !hasValue {
			return fmt.Errorf("connection lifetime needs a connection hash as value")
		}
		kind = LifetimeConnection
	default:
		return fmt.Errorf("unrecognized lifetime %q", *b.lifetimeName)
	}

	b.parts = append(b.parts, Lifetime{Ref: ref, Kind: kind, Value: value})
	return nil
}
