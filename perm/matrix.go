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

// Package perm authorizes operations and instructions against a named
// permission profile and the server's run mode.
package perm

// Matrix is a sparse permission table: a two-level namespace where a
// leaf key (e.g. "read.get") can be left unset to fall back to its
// category ("read"). Unlisted keys resolve false, except "authenticate"
// which defaults true.
type Matrix map[string]bool

// Get resolves permission against a fixed set of fallback rules:
//   - a leaf falls back to its category when unset
//   - "write.pop" falls back to (write && read), not just "write"
//   - "transaction" falls back to "write"
//   - "authenticate" defaults to true
//   - anything else defaults to false
func (m Matrix) Get(permission string) bool {
	if v, ok := m[permission]; ok {
		return v
	}

	switch permission {
	case "read", "write":
		return false

	case "read.get", "read.exists", "read.has":
		return m.category("read")

	case "write.put", "write.delete", "write.clear", "write.replace", "write.retract", "write.purge":
		return m.category("write")

	case "write.pop":
		return m.category("write") && m.category("read")

	case "transaction":
		return m.category("write")

	case "authenticate":
		return true

	default:
		return false
	}
}

func (m Matrix) category(name string) bool {
	if v, ok := m[name]; ok {
		return v
	}
	return false
}

// DefaultMatrix grants unrestricted read/write to the built-in profile
// used when no permission file is configured.
func DefaultMatrix() Matrix {
	return Matrix{"read": true, "write": true}
}
