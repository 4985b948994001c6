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

package lex

import "testing"

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanBasic(t *testing.T) {
	toks := Scan(`GET ("a","b")`)
	want := []Kind{KEYWORD, LPAREN, VALUE, DELIM, VALUE, RPAREN}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if toks[0].KeywordType != OperationKeyword {
		t.Fatalf("GET should be an operation keyword")
	}
	if toks[2].Text != "a" || toks[4].Text != "b" {
		t.Fatalf("unexpected value text: %q %q", toks[2].Text, toks[4].Text)
	}
}

func TestScanCaseInsensitiveKeyword(t *testing.T) {
	toks := Scan(`get ("a")`)
	if toks[0].Kind != KEYWORD || toks[0].Text != "GET" {
		t.Fatalf("lowercase keyword not recognized: %+v", toks[0])
	}
}

func TestScanLifetime(t *testing.T) {
	toks := Scan(`[&'u "bob" ref1]`)
	want := []Kind{LBRACE, AMP, LIFETIME, VALUE, IDENT, RBRACE}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanUnterminatedValueRunsToEOF(t *testing.T) {
	toks := Scan(`GET "abc`)
	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %+v", len(toks), toks)
	}
	if toks[1].Kind != VALUE || toks[1].Text != "abc" {
		t.Fatalf("unterminated string should swallow to EOF, got %+v", toks[1])
	}
}

func TestScanIllegalByte(t *testing.T) {
	toks := Scan(`GET %`)
	if toks[1].Kind != ILLEGAL || toks[1].Text != "%" {
		t.Fatalf("expected ILLEGAL token for '%%', got %+v", toks[1])
	}
}

func TestScanDelimiters(t *testing.T) {
	toks := Scan(`"a";"b","c"`)
	if toks[1].Kind != DELIM || toks[1].Text != ";" {
		t.Fatalf("expected ';' delimiter, got %+v", toks[1])
	}
	if toks[3].Kind != DELIM || toks[3].Text != "," {
		t.Fatalf("expected ',' delimiter, got %+v", toks[3])
	}
}
