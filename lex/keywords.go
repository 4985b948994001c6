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

import "strings"

// operationKeywords and instructionKeywords are matched case-insensitively
// against identifiers. REDUCE is reserved for a future aggregate
// operation with no defined arity yet; it lexes as a KEYWORD, and the
// parser rejects it as an operation that does not exist.
var operationKeywords = map[string]bool{
	"GET":     true,
	"EXISTS":  true,
	"HAS":     true,
	"PUT":     true,
	"DELETE":  true,
	"CLEAR":   true,
	"REPLACE": true,
	"RETRACT": true,
	"PURGE":   true,
	"POP":     true,
	"REDUCE":  true,
}

var instructionKeywords = map[string]bool{
	"SEQUENCE": true,
	"ABORT":    true,
	"EXECUTE":  true,
	"AUTH":     true,
}

// lookupKeyword reports whether upper is a reserved word and, if so,
// which table it came from.
func lookupKeyword(upper string) KeywordKind {
	if operationKeywords[upper] {
		return OperationKeyword
	}
	if instructionKeywords[upper] {
		return InstructionKeyword
	}
	return NotKeyword
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func toUpper(s string) string {
	return strings.ToUpper(s)
}
