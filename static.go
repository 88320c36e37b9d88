// Copyright 2025 The Rivaas Authors
//
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

package pathtrie

import (
	"sync"

	"github.com/coriolis-dev/pathtrie/internal/bloom"
)

// staticDirectLookupThreshold mirrors the teacher's CompiledRouteTable: below
// this many registered static paths, a direct map lookup is cheaper than
// consulting the bloom filter first.
const staticDirectLookupThreshold = 10

// staticEntry holds every method registered under one canonical static path.
type staticEntry[T comparable] struct {
	methods map[string][]handlerRecord[T]
}

// staticIndex is the static fast path (§4.9): a canonical-path → method →
// handler-records map, accelerated by a bloom filter for negative lookups.
// Bits can only be set, never cleared, so Remove rebuilds the filter from
// the surviving path set whenever an entry is dropped entirely.
type staticIndex[T comparable] struct {
	mu       sync.RWMutex
	entries  map[string]*staticEntry[T]
	filter   *bloom.Filter
	size     uint64
	numHash  int
}

func newStaticIndex[T comparable](size uint64, numHash int) *staticIndex[T] {
	return &staticIndex[T]{
		entries: make(map[string]*staticEntry[T]),
		filter:  bloom.New(size, numHash),
		size:    size,
		numHash: numHash,
	}
}

// insert appends rec under path/method, creating the entry on demand, and
// records path in the bloom filter.
func (s *staticIndex[T]) insert(path, method string, rec handlerRecord[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[path]
	if !ok {
		entry = &staticEntry[T]{methods: make(map[string][]handlerRecord[T])}
		s.entries[path] = entry
	}
	entry.methods[method] = append(entry.methods[method], rec)
	s.filter.Add([]byte(path))
}

// lookup returns the first handler record for path/method (falling back to
// the any-method entry) provided its plan is absent — the static fast path
// deliberately never returns records with a plan, falling through to the
// trie walk instead.
func (s *staticIndex[T]) lookup(path, method string) (handlerRecord[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) >= staticDirectLookupThreshold && !s.filter.Test([]byte(path)) {
		return handlerRecord[T]{}, false
	}

	entry, ok := s.entries[path]
	if !ok {
		return handlerRecord[T]{}, false
	}

	recs, ok := entry.methods[method]
	if (!ok || len(recs) == 0) && method != "" {
		recs, ok = entry.methods[""]
	}
	if !ok || len(recs) == 0 {
		return handlerRecord[T]{}, false
	}

	rec := recs[0]
	if len(rec.plan) != 0 {
		return handlerRecord[T]{}, false
	}

	return rec, true
}

// remove deletes the method entry under path, discarding the whole path
// entry (and rebuilding the bloom filter from the surviving keys) if no
// methods remain. It reports whether anything changed.
func (s *staticIndex[T]) remove(path, method string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[path]
	if !ok {
		return false
	}
	if _, ok := entry.methods[method]; !ok {
		return false
	}

	delete(entry.methods, method)
	if len(entry.methods) == 0 {
		delete(s.entries, path)
		s.rebuildFilterLocked()
	}

	return true
}

func (s *staticIndex[T]) rebuildFilterLocked() {
	s.filter.Reset()
	for path := range s.entries {
		s.filter.Add([]byte(path))
	}
}

func (s *staticIndex[T]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
