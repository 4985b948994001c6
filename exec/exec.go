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

// Package exec runs a parsed ast.Op (or a batch of them, as a
// transaction) against a store.Store and renders the result the way a
// client expects to see it on the wire.
package exec

import (
	"fmt"

	"github.com/satchel-db/satchel/ast"
	"github.com/satchel-db/satchel/store"
)

// ExecuteSingle runs one operation to completion, publishing any writes
// before returning.
func ExecuteSingle(s *store.Store, op ast.Op) (string, error) {
	res, err := dispatch(s, op)
	if err != nil {
		return "", err
	}
	s.Publish()
	return res, nil
}

// ExecuteTransaction runs ops in order against a single writer batch.
// If any op fails, nothing written by the batch is published and the
// error is formatted as "<0-based index>)<message>".
func ExecuteTransaction(s *store.Store, ops []ast.Op) (string, error) {
	for i, op := range ops {
		if _, err := dispatch(s, op); err != nil {
			return "", fmt.Errorf("%d)%s", i, err)
		}
	}
	s.Publish()
	return "Ok", nil
}

func dispatch(s *store.Store, op ast.Op) (string, error) {
	switch o := op.(type) {
	case ast.Get, ast.Exists, ast.Has:
		return executeRead(s, op)
	case ast.Pop:
		return executeReadWrite(s, o)
	default:
		return executeWrite(s, op)
	}
}

func executeRead(s *store.Store, op ast.Op) (string, error) {
	switch o := op.(type) {
	case ast.Get:
		out := make([][]string, len(o.Keys))
		for i, k := range o.Keys {
			out[i] = s.Get(k)
		}
		return renderNestedStrings(out), nil

	case ast.Exists:
		out := make([]bool, len(o.Keys))
		for i, k := range o.Keys {
			out[i] = s.ContainsKey(k)
		}
		return renderBools(out), nil

	case ast.Has:
		out := make([]bool, len(o.Keys))
		for i, k := range o.Keys {
			out[i] = s.ContainsValue(k, o.Value)
		}
		return renderBools(out), nil
	}
	return "", fmt.Errorf("unrecognized read operation %T", op)
}

func executeWrite(s *store.Store, op ast.Op) (string, error) {
	switch o := op.(type) {
	case ast.Put:
		for i, key := range o.Keys {
			for _, value := range o.Values[i] {
				s.Insert(key, value)
			}
		}

	case ast.Delete:
		for _, key := range o.Keys {
			s.Empty(key)
		}

	case ast.Clear:
		for _, key := range o.Keys {
			s.Clear(key)
		}

	case ast.Retract:
		retract := make(map[string]bool, len(o.Values))
		for _, v := range o.Values {
			retract[v] = true
		}
		for _, key := range o.Keys {
			if !s.ContainsKey(key) {
				continue
			}
			s.Retain(key, func(v string) bool { return !retract[v] })
		}

	case ast.Replace:
		if len(o.Values) == 1 {
			s.Update(o.Key, o.Values)
		} else {
			s.Reserve(o.Key, len(o.Values))
			for _, v := range o.Values {
				s.Insert(o.Key, v)
			}
		}

	case ast.Purge:
		s.Purge()

	default:
		return "", fmt.Errorf("unrecognized write operation %T", op)
	}

	return "Ok", nil
}

func executeReadWrite(s *store.Store, op ast.Pop) (string, error) {
	popped := s.Peek(op.Key)
	s.Empty(op.Key)
	return renderStrings(popped), nil
}
