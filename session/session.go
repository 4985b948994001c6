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

// Package session drives one connection's state machine: lex, validate,
// parse, authorize, and execute each line.
package session

import (
	"log"

	"github.com/google/uuid"

	"github.com/satchel-db/satchel/ast"
	"github.com/satchel-db/satchel/exec"
	"github.com/satchel-db/satchel/frame"
	"github.com/satchel-db/satchel/lex"
	"github.com/satchel-db/satchel/parse"
	"github.com/satchel-db/satchel/perm"
	"github.com/satchel-db/satchel/store"
	"github.com/satchel-db/satchel/validate"
)

// Mode is the connection's current input mode.
type Mode int

const (
	ModeDefault Mode = iota
	ModeTransaction
)

// Session holds all per-connection state. It is not safe for concurrent
// use: one goroutine per connection owns it exclusively.
type Session struct {
	ID      string
	Store   *store.Store
	Profile perm.Profile
	RunMode perm.RunMode
	Logger  *log.Logger

	mode          Mode
	opQueue       []ast.Op
	authenticated bool
}

// New creates a session bound to store s, authorized under profile, and
// gated by runMode's restricted-command policy.
func New(s *store.Store, profile perm.Profile, runMode perm.RunMode, logger *log.Logger) *Session {
	return &Session{
		ID:      uuid.NewString(),
		Store:   s,
		Profile: profile,
		RunMode: runMode,
		Logger:  logger,
		mode:    ModeDefault,
	}
}

// Authenticated reports whether AUTH has been issued on this session.
func (s *Session) Authenticated() bool { return s.authenticated }

// Handle runs one request line through the full pipeline and returns
// the exact text that should be written back to the client (including
// any "Err: " prefix).
func (s *Session) Handle(line string) string {
	tokens := lex.Scan(line)
	parts, err := validate.Validate(tokens)
	if err != nil {
		return frame.ErrPrefix + err.Error()
	}
	if len(parts) == 0 {
		return frame.ErrPrefix + " Empty Command"
	}

	kw, ok := parts[0].(validate.Keyword)
	if !ok {
		return frame.ErrPrefix + "first argument needs to be a keyword"
	}

	var response string
	switch kw.Type {
	case lex.OperationKeyword:
		response = s.handleOperation(parts)
	case lex.InstructionKeyword:
		response = s.handleInstruction(parts)
	default:
		response = frame.ErrPrefix + "unrecognized keyword type"
	}

	if s.Logger != nil {
		s.Logger.Printf("session=%s op=%s result_len=%d", s.ID, kw.Name, len(response))
	}
	return response
}

func (s *Session) handleOperation(parts []validate.Part) string {
	op, err := parse.Operation(parts)
	if err != nil {
		return frame.ErrPrefix + err.Error()
	}
	if err := s.Profile.AuthorizeOp(op, s.RunMode); err != nil {
		return frame.ErrPrefix + err.Error()
	}

	if s.mode == ModeTransaction {
		s.opQueue = append(s.opQueue, op)
		return "+Queue"
	}

	res, err := exec.ExecuteSingle(s.Store, op)
	if err != nil {
		return frame.ErrPrefix + err.Error()
	}
	return res
}

func (s *Session) handleInstruction(parts []validate.Part) string {
	instr, err := parse.Instruction(parts)
	if err != nil {
		return frame.ErrPrefix + err.Error()
	}
	if err := s.Profile.AuthorizeInstruction(instr); err != nil {
		return frame.ErrPrefix + err.Error()
	}

	switch instr.(type) {
	case ast.Sequence:
		if s.mode == ModeTransaction {
			return frame.ErrPrefix + "Connection is already in sequence mode."
		}
		s.mode = ModeTransaction

	case ast.Abort:
		if s.mode != ModeTransaction {
			return frame.ErrPrefix + "Connection is not in sequence mode."
		}
		s.opQueue = nil
		s.mode = ModeDefault

	case ast.Execute:
		if s.mode != ModeTransaction {
			return frame.ErrPrefix + "Connection is not in sequence mode."
		}
		ops := s.opQueue
		s.opQueue = nil
		s.mode = ModeDefault
		res, err := exec.ExecuteTransaction(s.Store, ops)
		if err != nil {
			return frame.ErrPrefix + err.Error()
		}
		return res

	case ast.Authenticate:
		s.authenticated = true
		if s.Logger != nil {
			auth := instr.(ast.Authenticate)
			s.Logger.Printf("session=%s authenticated token_fingerprint=%s", s.ID, perm.Fingerprint(auth.Token))
		}
	}

	return "Ok"
}
