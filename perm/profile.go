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
	"fmt"

	"github.com/satchel-db/satchel/ast"
)

// RunMode gates restricted operations. Only Test allows Purge.
type RunMode int

const (
	ModeDefault RunMode = iota
	ModeTest
)

func (m RunMode) String() string {
	if m == ModeTest {
		return "Test"
	}
	return "Default"
}

// Profile is a named permission matrix.
type Profile struct {
	Name   string
	Matrix Matrix
}

// DefaultProfile is the built-in unrestricted profile, used as a Set's
// default when no permission document, or no "default" entry in one,
// is configured.
func DefaultProfile() Profile {
	return Profile{Name: "default", Matrix: DefaultMatrix()}
}

// AuthorizeOp reports whether this profile permits op to run under
// mode. It deliberately does not gate on whether the session has
// authenticated: a connection's permission profile is fixed once, at
// accept time, and AuthorizeOp only checks that profile's matrix and
// the run mode.
func (p Profile) AuthorizeOp(op ast.Op, mode RunMode) error {
	var key string
	switch o := op.(type) {
	case ast.Get:
		key = "read.get"
	case ast.Exists:
		key = "read.exists"
	case ast.Has:
		key = "read.has"
	case ast.Put:
		key = "write.put"
	case ast.Delete:
		key = "write.delete"
	case ast.Clear:
		key = "write.clear"
	case ast.Replace:
		key = "write.replace"
	case ast.Retract:
		key = "write.retract"
	case ast.Purge:
		if mode != ModeTest {
			return fmt.Errorf("Can not use restricted Commands in mode %s", mode)
		}
		key = "write.purge"
	case ast.Pop:
		key = "write.pop"
	default:
		_ = o
		return fmt.Errorf("unrecognized operation %T", op)
	}

	if !p.Matrix.Get(key) {
		return fmt.Errorf("Permissions are not sufficient to perform this operation")
	}
	return nil
}

// AuthorizeInstruction reports whether this profile permits instr.
func (p Profile) AuthorizeInstruction(instr ast.Instruction) error {
	var key string
	switch instr.(type) {
	case ast.Sequence, ast.Abort, ast.Execute:
		key = "transaction"
	case ast.Authenticate:
		key = "authenticate"
	default:
		return fmt.Errorf("unrecognized instruction %T", instr)
	}

	if !p.Matrix.Get(key) {
		return fmt.Errorf("Permissions are not sufficient to perform this instruction")
	}
	return nil
}
