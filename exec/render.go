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

package exec

import (
	"strconv"
	"strings"
)

// renderStrings renders a string slice the way Rust's {:?} renders a
// Vec<String>: ["a", "b"], or [] when empty.
func renderStrings(vs []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(v))
	}
	b.WriteByte(']')
	return b.String()
}

// renderNestedStrings renders a Vec<Vec<String>>-shaped result, e.g.
// [["1", "2"], ["3"]].
func renderNestedStrings(vss [][]string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, vs := range vss {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(renderStrings(vs))
	}
	b.WriteByte(']')
	return b.String()
}

// renderBools renders a Vec<bool>-shaped result, e.g. [true, false].
func renderBools(bs []bool) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range bs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatBool(v))
	}
	b.WriteByte(']')
	return b.String()
}
