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

// Package store holds the multi-valued key-value map that backs every
// operation in package exec. It gives lock-free, snapshot-consistent
// reads by sharding keys across buckets, each of which publishes an
// immutable map for readers with sync/atomic.Value while its own
// mutex-guarded "pending" map absorbs writes: a single-writer,
// many-reader split with no read-side locking.
package store

import (
	"sync"
	"sync/atomic"

	"github.com/dchest/siphash"
	"golang.org/x/exp/slices"
)

const shardCount = 16

// a fixed key so every shard hashes with the same siphash parameters;
// the value only needs to distribute keys evenly, not resist attack.
const shardSeed0, shardSeed1 = 0x9ae16a3b2f90404f, 0xc949d7c7509e6557

// Store is a sharded, concurrency-safe multiset map[string][]string.
type Store struct {
	shards [shardCount]shard
}

// New returns an empty Store.
func New() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i].published.Store(map[string][]string{})
	}
	return s
}

type shard struct {
	mu        sync.Mutex
	pending   map[string][]string
	published atomic.Value // map[string][]string
}

func bucketOf(key string) uint64 {
	return siphash.Hash(shardSeed0, shardSeed1, []byte(key))
}

func (s *Store) shardFor(key string) *shard {
	return &s.shards[bucketOf(key)%shardCount]
}

func (sh *shard) snapshot() map[string][]string {
	v, _ := sh.published.Load().(map[string][]string)
	return v
}

// publish copies pending into a fresh immutable map and swaps it in
// atomically, so concurrent readers never observe a partially-written
// bucket.
func (sh *shard) publish() {
	snap := make(map[string][]string, len(sh.pending))
	for k, vs := range sh.pending {
		cp := make([]string, len(vs))
		copy(cp, vs)
		snap[k] = cp
	}
	sh.published.Store(snap)
}

func (sh *shard) ensurePending() {
	if sh.pending == nil {
		sh.pending = make(map[string][]string)
	}
}

// Get returns the multiset of values under key, or nil if key is not
// in the published snapshot. The returned slice is a private copy of the
// published snapshot.
func (s *Store) Get(key string) []string {
	snap := s.shardFor(key).snapshot()
	vs, ok := snap[key]
	if !ok {
		return nil
	}
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}

// ContainsKey reports whether key is present in the published
// snapshot, including a key whose values were all cleared.
func (s *Store) ContainsKey(key string) bool {
	snap := s.shardFor(key).snapshot()
	_, ok := snap[key]
	return ok
}

// ContainsValue reports whether value is present among key's published
// values.
func (s *Store) ContainsValue(key, value string) bool {
	snap := s.shardFor(key).snapshot()
	return slices.Contains(snap[key], value)
}

// Insert appends value to key's pending multiset. Callers must call
// Publish once their batch of writes is complete.
func (s *Store) Insert(key, value string) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.ensurePending()
	sh.pending[key] = append(sh.pending[key], value)
}

// Empty removes key and all of its values from the pending map.
func (s *Store) Empty(key string) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.ensurePending()
	delete(sh.pending, key)
}

// Clear removes all values for key but leaves an empty entry in place.
// It is a no-op if key is not already present: Clear never creates a
// key, it only empties one that exists.
func (s *Store) Clear(key string) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.ensurePending()
	if _, ok := sh.pending[key]; ok {
		sh.pending[key] = []string{}
	}
}

// Retain keeps only the values for which keep returns true.
func (s *Store) Retain(key string, keep func(value string) bool) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.ensurePending()
	vs, ok := sh.pending[key]
	if !ok {
		return
	}
	kept := vs[:0]
	for _, v := range vs {
		if keep(v) {
			kept = append(kept, v)
		}
	}
	sh.pending[key] = kept
}

// Update overwrites key's entire pending multiset with values.
func (s *Store) Update(key string, values []string) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.ensurePending()
	cp := make([]string, len(values))
	copy(cp, values)
	sh.pending[key] = cp
}

// Reserve pre-sizes a fresh multiset for key with the given capacity
// hint, clearing any previous values. Used by Replace before a batch of
// Inserts so the value slice doesn't reallocate mid-write.
func (s *Store) Reserve(key string, n int) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.ensurePending()
	sh.pending[key] = make([]string, 0, n)
}

// Purge drops every key from every shard's pending map.
func (s *Store) Purge() {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		sh.pending = make(map[string][]string)
		sh.mu.Unlock()
	}
}

// Publish atomically exposes every shard's pending writes to readers.
func (s *Store) Publish() {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		sh.ensurePending()
		sh.publish()
		sh.mu.Unlock()
	}
}

// Peek reads key's values from the writer's own pending view rather
// than the published snapshot. Pop uses this writer-view semantics: a
// concurrent reader's GET may briefly disagree with what Pop saw.
func (s *Store) Peek(key string) []string {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.ensurePending()
	vs := sh.pending[key]
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}
