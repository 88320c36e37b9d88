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
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// TreeStats reports read-only introspection about a Tree's current shape.
type TreeStats struct {
	NodeCount       int
	MaxDepth        int
	StaticCacheSize int
}

// Tree is a generic (method, path) → T router core. The zero value is not
// usable; construct with New.
//
// Two independent guards protect the tree: trieMu over the trie root, and
// static's own mutex over the static fast path. Insert takes the static-map
// guard (purely-static patterns only) and releases it before it takes the
// trie guard; it never holds both at once, so a concurrent reader can see a
// new static pattern in one structure before the other. Remove always
// acquires the trie guard and acquires the static-map guard only for
// purely-static patterns; lookups acquire only what they need.
type Tree[T comparable] struct {
	root   *node[T]
	trieMu sync.RWMutex
	static *staticIndex[T]

	bloomFilterSize    uint64
	bloomHashFunctions int
	maxDepthWarning    int

	diagnostics DiagnosticHandler
	tracer      trace.Tracer
	meter       metric.Meter
	opCounter   metric.Int64Counter
	opHistogram metric.Float64Histogram
}

// New constructs a Tree with the given options applied. Construction cannot
// fail — there's no I/O or external resource at this point — so New returns
// *Tree[T] directly rather than (*Tree[T], error).
func New[T comparable](opts ...Option[T]) *Tree[T] {
	t := &Tree[T]{
		root:               &node[T]{},
		bloomFilterSize:    defaultBloomFilterSize,
		bloomHashFunctions: defaultBloomHashFuncs,
		tracer:             defaultTracer(),
		meter:              defaultMeter(),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.static = newStaticIndex[T](max(t.bloomFilterSize, 100), t.bloomHashFunctions)
	t.initInstruments()

	return t
}

// Insert registers payload under method and pattern. Insertion is
// non-destructive: repeated inserts of the same method/pattern accumulate
// handler records at that node in insertion order (a DiagRedundantRegistration
// diagnostic is emitted from the second insert on). Insert is atomic: on
// analyzer failure, no state is modified.
func (t *Tree[T]) Insert(method, pattern string, payload T) error {
	start := time.Now()
	segments := normalize(pattern)

	elements, plan, hadMidOptional, err := analyzePattern(segments)
	if err != nil {
		ctx, span := t.startSpan(context.Background(), "pathtrie.insert", method, len(segments))
		t.finishSpan(span, "error", err)
		t.recordMetric(ctx, "insert", "error", time.Since(start))
		return err
	}

	ctx, span := t.startSpan(context.Background(), "pathtrie.insert", method, len(segments))

	isStatic := len(plan) == 0
	canonical := strings.Join(segments, "/")

	if isStatic {
		t.static.insert(canonical, method, handlerRecord[T]{payload: payload})
	}

	t.trieMu.Lock()
	terminal := t.root.insertPath(elements)
	duplicate := len(terminal.methods[method]) > 0
	terminal.appendRecord(method, handlerRecord[T]{payload: payload, plan: plan})
	t.trieMu.Unlock()

	if duplicate {
		t.emitDiagnostic(DiagRedundantRegistration, "pattern/method already registered", map[string]any{
			"method": method, "pattern": pattern,
		})
	}
	if hadMidOptional {
		t.emitDiagnostic(DiagMidPatternOptionalMarker, "optional marker seen on a non-last segment", map[string]any{
			"method": method, "pattern": pattern,
		})
	}
	if t.maxDepthWarning > 0 && len(elements) > t.maxDepthWarning {
		t.emitDiagnostic(DiagExcessiveDepth, "pattern depth exceeds configured warning threshold", map[string]any{
			"method": method, "pattern": pattern, "depth": len(elements),
		})
	}

	t.finishSpan(span, "ok", nil)
	t.recordMetric(ctx, "insert", "ok", time.Since(start))

	return nil
}

// FindOne returns the single best match for method and path (§4.4): the
// static fast path first, then a priority-ordered (static > parameter >
// wildcard) trie walk. If capture is set, parameters are extracted from the
// winning record's plan. A miss returns *RouteNotFoundError.
func (t *Tree[T]) FindOne(method, path string, capture bool) (T, Params, error) {
	start := time.Now()
	segments := normalize(path)
	ctx, span := t.startSpan(context.Background(), "pathtrie.find_one", method, len(segments))

	canonical := strings.Join(segments, "/")
	if !strings.ContainsAny(canonical, ":*") {
		if rec, ok := t.static.lookup(canonical, method); ok {
			t.finishSpan(span, "static_hit", nil)
			t.recordMetric(ctx, "find_one", "static_hit", time.Since(start))
			return rec.payload, nil, nil
		}
	}

	t.trieMu.RLock()
	rec, ok := t.root.findOne(segments, 0, method)
	t.trieMu.RUnlock()

	if !ok {
		var zero T
		err := &RouteNotFoundError{Method: method, Path: path}
		t.finishSpan(span, "miss", err)
		t.recordMetric(ctx, "find_one", "miss", time.Since(start))
		return zero, nil, err
	}

	var params Params
	if capture {
		params = extractParams(segments, rec.plan)
	}

	t.finishSpan(span, "hit", nil)
	t.recordMetric(ctx, "find_one", "hit", time.Since(start))

	return rec.payload, params, nil
}

// FindAll returns every handler record reachable by a path-consistent match
// for method and path (§4.7), de-duplicated by payload (first occurrence
// wins) and ordered per the traversal order: wildcard, then parameter, then
// static, then the node's own methods at path exhaustion. It never errors;
// a path with no matches returns an empty (non-nil) slice.
func (t *Tree[T]) FindAll(method, path string, capture bool) []Match[T] {
	start := time.Now()
	segments := normalize(path)
	ctx, span := t.startSpan(context.Background(), "pathtrie.find_all", method, len(segments))

	var collected []handlerRecord[T]
	t.trieMu.RLock()
	t.root.findAll(segments, 0, method, &collected)
	t.trieMu.RUnlock()

	seen := make(map[T]bool, len(collected))
	matches := make([]Match[T], 0, len(collected))
	for _, rec := range collected {
		if seen[rec.payload] {
			continue
		}
		seen[rec.payload] = true

		m := Match[T]{Payload: rec.payload}
		if capture {
			m.Params = extractParams(segments, rec.plan)
		}
		matches = append(matches, m)
	}

	result := "miss"
	if len(matches) > 0 {
		result = "hit"
	}
	t.finishSpan(span, result, nil)
	t.recordMetric(ctx, "find_all", result, time.Since(start))

	return matches
}

// Remove clears every handler record for method/pattern from both the trie
// and (for purely-static patterns) the static fast path, pruning any node
// that becomes unreachable. It reports whether anything was changed.
func (t *Tree[T]) Remove(method, pattern string) (bool, error) {
	start := time.Now()
	segments := normalize(pattern)

	elements, plan, _, err := analyzePattern(segments)
	if err != nil {
		ctx, span := t.startSpan(context.Background(), "pathtrie.remove", method, len(segments))
		t.finishSpan(span, "error", err)
		t.recordMetric(ctx, "remove", "error", time.Since(start))
		return false, err
	}

	ctx, span := t.startSpan(context.Background(), "pathtrie.remove", method, len(segments))

	isStatic := len(plan) == 0
	canonical := strings.Join(segments, "/")

	t.trieMu.Lock()
	trieChanged := t.root.removePath(elements, method)
	t.trieMu.Unlock()

	staticChanged := false
	if isStatic {
		staticChanged = t.static.remove(canonical, method)
	}

	changed := trieChanged || staticChanged

	result := "miss"
	if changed {
		result = "hit"
	}
	t.finishSpan(span, result, nil)
	t.recordMetric(ctx, "remove", result, time.Since(start))

	return changed, nil
}

// Len returns the number of distinct static+dynamic terminal patterns
// currently registered (a node counts once regardless of how many methods
// it carries).
func (t *Tree[T]) Len() int {
	t.trieMu.RLock()
	defer t.trieMu.RUnlock()
	return countTerminals(t.root)
}

// Stats returns read-only introspection about the tree's current shape.
func (t *Tree[T]) Stats() TreeStats {
	t.trieMu.RLock()
	nodeCount, maxDepth := statsWalk(t.root, 0)
	t.trieMu.RUnlock()

	return TreeStats{
		NodeCount:       nodeCount,
		MaxDepth:        maxDepth,
		StaticCacheSize: t.static.len(),
	}
}
