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
	"encoding/json"
	"os"
)

// Rule binds a bearer token to a named profile.
type Rule struct {
	Name   string `json:"name"`
	Token  string `json:"token"`
	Matrix Matrix `json:"permissions"`
}

// Set is the parsed form of a permission file: a default profile plus
// an ordered list of token-matched rules, consulted in order.
type Set struct {
	Default Profile
	Rules   []Rule
}

// jsonSet mirrors the on-disk document shape: a "default" matrix and a
// "profiles" list of {name, token, permissions}.
type jsonSet struct {
	Default   Matrix `json:"default"`
	Profiles  []Rule `json:"profiles"`
}

// DefaultSet returns a Set with no rules and the built-in unrestricted
// default profile, used when no permission file is configured.
func DefaultSet() *Set {
	return &Set{Default: DefaultProfile()}
}

// Parse decodes a permission file document.
func Parse(data []byte) (*Set, error) {
	var doc jsonSet
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	set := &Set{Rules: doc.Profiles}
	if doc.Default != nil {
		set.Default = Profile{Name: "default", Matrix: doc.Default}
	} else {
		set.Default = DefaultProfile()
	}
	return set, nil
}

// FromFile loads a permission file from path. A missing file is not an
// error: an unconfigured path falls back to DefaultSet, so a server can
// start with an unrestricted default profile before an operator has
// written a permission file.
func FromFile(path string) (*Set, error) {
	if path == "" {
		return DefaultSet(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSet(), nil
		}
		return nil, err
	}
	return Parse(data)
}

// FromEnvironment builds a Set from SATCHEL_PERMISSIONS, an inline JSON
// document, for deployments that can't mount a permission file.
func FromEnvironment() (*Set, error) {
	doc := os.Getenv("SATCHEL_PERMISSIONS")
	if doc == "" {
		return DefaultSet(), nil
	}
	return Parse([]byte(doc))
}

// ForToken resolves the profile that applies to token, falling back to
// the default profile when no rule matches.
func (s *Set) ForToken(token string) Profile {
	for _, rule := range s.Rules {
		if rule.Token == token {
			return Profile{Name: rule.Name, Matrix: rule.Matrix}
		}
	}
	return s.Default
}
