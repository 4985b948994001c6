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

package session

import (
	"testing"

	"github.com/satchel-db/satchel/perm"
	"github.com/satchel-db/satchel/store"
)

func newTestSession() *Session {
	return New(store.New(), perm.DefaultProfile(), perm.ModeDefault, nil)
}

func TestPutThenGetScenario(t *testing.T) {
	s := newTestSession()
	if got := s.Handle(`PUT ("a";"b") (("1","2");("3"))`); got != "Ok" {
		t.Fatalf("PUT: got %q", got)
	}
	if got := s.Handle(`GET ("a","b")`); got != `[["1", "2"], ["3"]]` {
		t.Fatalf("GET: got %q", got)
	}
}

func TestHasExistsScenario(t *testing.T) {
	s := newTestSession()
	s.Handle(`PUT ("a","c") (("1"),("3"))`)
	if got := s.Handle(`HAS ("a","c") "3"`); got != "[false, true]" {
		t.Fatalf("HAS: got %q", got)
	}
	if got := s.Handle(`EXISTS ("a","c")`); got != "[true, true]" {
		t.Fatalf("EXISTS: got %q", got)
	}
}

func TestTransactionSuccessScenario(t *testing.T) {
	s := newTestSession()
	if got := s.Handle("SEQUENCE"); got != "Ok" {
		t.Fatalf("SEQUENCE: got %q", got)
	}
	if got := s.Handle(`PUT ("x") (("1"))`); got != "+Queue" {
		t.Fatalf("PUT queue: got %q", got)
	}
	if got := s.Handle(`DELETE ("x")`); got != "+Queue" {
		t.Fatalf("DELETE queue: got %q", got)
	}
	if got := s.Handle("EXECUTE"); got != "Ok" {
		t.Fatalf("EXECUTE: got %q", got)
	}
	if got := s.Handle(`EXISTS ("x")`); got != "[false]" {
		t.Fatalf("EXISTS after transaction: got %q", got)
	}
}

func TestTransactionFailureScenario(t *testing.T) {
	s := newTestSession()
	s.Handle("SEQUENCE")
	if got := s.Handle(`PUT ("y") (("9"))`); got != "+Queue" {
		t.Fatalf("got %q", got)
	}
	if got := s.Handle(`PUT ("y","z") (("1"))`); got != "+Queue" {
		t.Fatalf("got %q", got)
	}
	got := s.Handle("EXECUTE")
	want := "Err: 1)Amount of Keys must match amount of values provided."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got := s.Handle(`EXISTS ("y")`); got != "[false]" {
		t.Fatalf("a failed transaction should not publish any of its writes, got %q", got)
	}
}

func TestPurgeRestrictedInDefaultMode(t *testing.T) {
	s := newTestSession()
	got := s.Handle("PURGE")
	want := "Err: Can not use restricted Commands in mode Default"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPurgeAllowedInTestMode(t *testing.T) {
	s := New(store.New(), perm.DefaultProfile(), perm.ModeTest, nil)
	if got := s.Handle("PURGE"); got != "Ok" {
		t.Fatalf("got %q", got)
	}
}

func TestReplaceRetractPopScenario(t *testing.T) {
	s := newTestSession()
	if got := s.Handle(`REPLACE "k" ("v1","v2")`); got != "Ok" {
		t.Fatalf("REPLACE: got %q", got)
	}
	if got := s.Handle(`GET ("k")`); got != `[["v1", "v2"]]` {
		t.Fatalf("GET: got %q", got)
	}
	if got := s.Handle(`RETRACT ("k") ("v1")`); got != "Ok" {
		t.Fatalf("RETRACT: got %q", got)
	}
	if got := s.Handle(`GET ("k")`); got != `[["v2"]]` {
		t.Fatalf("GET after retract: got %q", got)
	}
	if got := s.Handle(`POP "k"`); got != `["v2"]` {
		t.Fatalf("POP: got %q", got)
	}
	if got := s.Handle(`EXISTS ("k")`); got != "[false]" {
		t.Fatalf("EXISTS after pop: got %q", got)
	}
}

func TestSequenceAlreadyInTransaction(t *testing.T) {
	s := newTestSession()
	s.Handle("SEQUENCE")
	got := s.Handle("SEQUENCE")
	if got != "Err: Connection is already in sequence mode." {
		t.Fatalf("got %q", got)
	}
}

func TestAbortOutsideTransaction(t *testing.T) {
	s := newTestSession()
	got := s.Handle("ABORT")
	if got != "Err: Connection is not in sequence mode." {
		t.Fatalf("got %q", got)
	}
}

func TestAbortDiscardsQueue(t *testing.T) {
	s := newTestSession()
	s.Handle("SEQUENCE")
	s.Handle(`PUT ("a") (("1"))`)
	got := s.Handle("ABORT")
	if got != "Ok" {
		t.Fatalf("got %q", got)
	}
	if got := s.Handle(`EXISTS ("a")`); got != "[false]" {
		t.Fatalf("aborted transaction should not have applied, got %q", got)
	}
}

func TestAuthSetsAuthenticatedFlag(t *testing.T) {
	s := newTestSession()
	if s.Authenticated() {
		t.Fatalf("session should start unauthenticated")
	}
	got := s.Handle(`AUTH "token123"`)
	if got != "Ok" {
		t.Fatalf("got %q", got)
	}
	if !s.Authenticated() {
		t.Fatalf("AUTH should set the authenticated flag")
	}
}

func TestPermissionDenied(t *testing.T) {
	s := New(store.New(), perm.Profile{Name: "readonly", Matrix: perm.Matrix{"read": true}}, perm.ModeDefault, nil)
	got := s.Handle(`PUT ("a") (("1"))`)
	if got != "Err: Permissions are not sufficient to perform this operation" {
		t.Fatalf("got %q", got)
	}
}

func TestEmptyCommand(t *testing.T) {
	s := newTestSession()
	got := s.Handle("")
	if got != "Err:  Empty Command" {
		t.Fatalf("got %q", got)
	}
}
