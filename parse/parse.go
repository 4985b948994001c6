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

// Package parse turns a validated Part list into a typed ast.Op or
// ast.Instruction, checking that each keyword got the exact argument
// count and shape it requires.
package parse

import (
	"errors"

	"github.com/satchel-db/satchel/ast"
	"github.com/satchel-db/satchel/lex"
	"github.com/satchel-db/satchel/validate"
)

// Operation dispatches a Part list whose first element is an operation
// Keyword to the matching ast.Op.
func Operation(parts []validate.Part) (ast.Op, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty command")
	}
	kw, ok := parts[0].(validate.Keyword)
	if !ok {
		return nil, errors.New("First Argument needs to be Keyword")
	}
	if kw.Type != lex.OperationKeyword {
		return nil, errors.New("Operation does not exist")
	}
	switch kw.Name {
	case "GET":
		return parseGet(parts)
	case "HAS":
		return parseHas(parts)
	case "EXISTS":
		return parseExists(parts)
	case "PUT":
		return parsePut(parts)
	case "DELETE":
		return parseDelete(parts)
	case "CLEAR":
		return parseClear(parts)
	case "REPLACE":
		return parseReplace(parts)
	case "RETRACT":
		return parseRetract(parts)
	case "PURGE":
		return parsePurge(parts)
	case "POP":
		return parsePop(parts)
	default:
		return nil, errors.New("Operation does not exist")
	}
}

// Instruction dispatches a Part list whose first element is an
// instruction Keyword to the matching ast.Instruction.
func Instruction(parts []validate.Part) (ast.Instruction, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty command")
	}
	kw, ok := parts[0].(validate.Keyword)
	if !ok {
		return nil, errors.New("function not implemented")
	}
	if kw.Type != lex.InstructionKeyword {
		return nil, errors.New("instruction does not exist")
	}
	switch kw.Name {
	case "SEQUENCE":
		return ast.Sequence{}, nil
	case "ABORT":
		return ast.Abort{}, nil
	case "EXECUTE":
		return ast.Execute{}, nil
	case "AUTH":
		return parseAuth(parts)
	default:
		return nil, errors.New("instruction does not exist")
	}
}

func intoValues(p validate.Part) ([]string, error) {
	v, ok := p.(validate.Values)
	if !ok {
		return nil, errors.New("expected a parenthesised value list")
	}
	return v.S, nil
}

func intoNested(p validate.Part) ([][]string, error) {
	v, ok := p.(validate.NestedValues)
	if !ok {
		return nil, errors.New("expected a nested parenthesised value list")
	}
	return v.S, nil
}

func intoValue(p validate.Part) (string, error) {
	v, ok := p.(validate.Value)
	if !ok {
		return "", errors.New("expected a single value")
	}
	return v.S, nil
}

func parseGet(parts []validate.Part) (ast.Op, error) {
	if len(parts) != 2 {
		return nil, errors.New("GET requires 1 Argument: <Keys>")
	}
	keys, err := intoValues(parts[1])
	if err != nil {
		return nil, err
	}
	return ast.Get{Keys: keys}, nil
}

func parseHas(parts []validate.Part) (ast.Op, error) {
	if len(parts) != 3 {
		return nil, errors.New("HAS requires 2 Arguments: <Keys> <Value>")
	}
	keys, err := intoValues(parts[1])
	if err != nil {
		return nil, err
	}
	value, err := intoValue(parts[2])
	if err != nil {
		return nil, err
	}
	return ast.Has{Keys: keys, Value: value}, nil
}

func parseExists(parts []validate.Part) (ast.Op, error) {
	if len(parts) != 2 {
		return nil, errors.New("EXISTS requires 1 Argument: <Keys>")
	}
	keys, err := intoValues(parts[1])
	if err != nil {
		return nil, err
	}
	return ast.Exists{Keys: keys}, nil
}

func parsePut(parts []validate.Part) (ast.Op, error) {
	if len(parts) != 3 {
		return nil, errors.New("PUT requires 2 Arguments: <Keys> <<Values>>")
	}
	keys, err := intoValues(parts[1])
	if err != nil {
		return nil, err
	}
	values, err := intoNested(parts[2])
	if err != nil {
		return nil, err
	}
	if len(keys) != len(values) {
		return nil, errors.New("Amount of Keys must match amount of values provided.")
	}
	return ast.Put{Keys: keys, Values: values}, nil
}

func parseDelete(parts []validate.Part) (ast.Op, error) {
	if len(parts) != 2 {
		return nil, errors.New("DELETE requires 1 Argument: <Keys>")
	}
	keys, err := intoValues(parts[1])
	if err != nil {
		return nil, err
	}
	return ast.Delete{Keys: keys}, nil
}

func parseClear(parts []validate.Part) (ast.Op, error) {
	if len(parts) != 2 {
		return nil, errors.New("CLEAR requires 1 Argument: <Keys>")
	}
	keys, err := intoValues(parts[1])
	if err != nil {
		return nil, err
	}
	return ast.Clear{Keys: keys}, nil
}

func parseReplace(parts []validate.Part) (ast.Op, error) {
	if len(parts) != 3 {
		return nil, errors.New("REPLACE requires 2 Arguments <Keys> <Values>")
	}
	key, err := intoValue(parts[1])
	if err != nil {
		return nil, err
	}
	values, err := intoValues(parts[2])
	if err != nil {
		return nil, err
	}
	return ast.Replace{Key: key, Values: values}, nil
}

func parseRetract(parts []validate.Part) (ast.Op, error) {
	if len(parts) != 3 {
		return nil, errors.New("RETRACT requires 2 Arguments: <Keys> <Values>")
	}
	keys, err := intoValues(parts[1])
	if err != nil {
		return nil, err
	}
	values, err := intoValues(parts[2])
	if err != nil {
		return nil, err
	}
	return ast.Retract{Keys: keys, Values: values}, nil
}

func parsePurge(parts []validate.Part) (ast.Op, error) {
	if len(parts) != 1 {
		return nil, errors.New("PURGE requires no Arguments")
	}
	return ast.Purge{}, nil
}

func parsePop(parts []validate.Part) (ast.Op, error) {
	if len(parts) != 2 {
		return nil, errors.New("POP requires 1 Argument: <Key>")
	}
	key, err := intoValue(parts[1])
	if err != nil {
		return nil, err
	}
	return ast.Pop{Key: key}, nil
}

func parseAuth(parts []validate.Part) (ast.Instruction, error) {
	if len(parts) != 2 {
		return nil, errors.New("AUTH requires 1 Argument: <Auth>")
	}
	token, err := intoValue(parts[1])
	if err != nil {
		return nil, err
	}
	return ast.Authenticate{Token: token}, nil
}
