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

package perm

import (
	"testing"

	"github.com/satchel-db/satchel/ast"
)

func TestMatrixLeafFallsBackToCategory(t *testing.T) {
	m := Matrix{"read": true}
	if !m.Get("read.get") {
		t.Fatalf("read.get should fall back to read=true")
	}
	m["read.get"] = false
	if m.Get("read.get") {
		t.Fatalf("explicit read.get=false should override the category")
	}
}

func TestMatrixAuthenticateDefaultsTrue(t *testing.T) {
	m := Matrix{}
	if !m.Get("authenticate") {
		t.Fatalf("authenticate should default to true")
	}
}

func TestMatrixWritePopRequiresBoth(t *testing.T) {
	m := Matrix{"write": true}
	if m.Get("write.pop") {
		t.Fatalf("write.pop should require both write and read, not write alone")
	}
	m["read"] = true
	if !m.Get("write.pop") {
		t.Fatalf("write.pop should be true once both write and read are true")
	}
}

func TestMatrixTransactionFallsBackToWrite(t *testing.T) {
	m := Matrix{"write": true}
	if !m.Get("transaction") {
		t.Fatalf("transaction should fall back to write")
	}
}

func TestMatrixUnknownKeyDefaultsFalse(t *testing.T) {
	m := Matrix{}
	if m.Get("something.undefined") {
		t.Fatalf("unknown keys should default to false")
	}
}

func TestAuthorizePurgeRestrictedToTestMode(t *testing.T) {
	p := Profile{Name: "full", Matrix: Matrix{"write": true, "write.purge": true}}
	if err := p.AuthorizeOp(ast.Purge{}, ModeDefault); err == nil {
		t.Fatalf("expected Purge to be rejected outside Test mode")
	}
	if err := p.AuthorizeOp(ast.Purge{}, ModeTest); err != nil {
		t.Fatalf("expected Purge to be allowed in Test mode: %v", err)
	}
}

func TestAuthorizeOpDenied(t *testing.T) {
	p := Profile{Name: "readonly", Matrix: Matrix{"read": true}}
	if err := p.AuthorizeOp(ast.Put{Keys: []string{"a"}, Values: [][]string{{"1"}}}, ModeDefault); err == nil {
		t.Fatalf("expected write to be denied for a read-only profile")
	}
	if err := p.AuthorizeOp(ast.Get{Keys: []string{"a"}}, ModeDefault); err != nil {
		t.Fatalf("expected read to be allowed: %v", err)
	}
}

func TestSetForTokenFallsBackToDefault(t *testing.T) {
	set := &Set{
		Default: Profile{Name: "default", Matrix: Matrix{"read": true}},
		Rules:   []Rule{{Name: "admin", Token: "secret", Matrix: Matrix{"read": true, "write": true}}},
	}
	if set.ForToken("secret").Name != "admin" {
		t.Fatalf("expected to resolve the admin rule")
	}
	if set.ForToken("unknown").Name != "default" {
		t.Fatalf("expected unmatched token to resolve the default profile")
	}
}

func TestParsePermissionDocument(t *testing.T) {
	doc := `{
		"default": {"read": true},
		"profiles": [
			{"name": "admin", "token": "tok1", "permissions": {"read": true, "write": true, "write.purge": true}}
		]
	}`
	set, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Rules) != 1 || set.Rules[0].Name != "admin" {
		t.Fatalf("unexpected rules: %+v", set.Rules)
	}
	if !set.ForToken("tok1").Matrix.Get("write.purge") {
		t.Fatalf("admin profile should allow write.purge")
	}
}

func TestFingerprintIsStableAndShort(t *testing.T) {
	a := Fingerprint("token-abc")
	b := Fingerprint("token-abc")
	if a != b {
		t.Fatalf("fingerprint should be deterministic")
	}
	if len(a) != 16 {
		t.Fatalf("expected a 16-hex-char fingerprint, got %q", a)
	}
	if a == Fingerprint("token-xyz") {
		t.Fatalf("distinct tokens should not collide in this small test set")
	}
}
