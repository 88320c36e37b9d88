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
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultBloomFilterSize = 1000
	defaultBloomHashFuncs  = 3
)

// Option configures a Tree[T] at construction time.
type Option[T comparable] func(*Tree[T])

// WithBloomFilterSize sets the bit size of the static fast path's bloom
// filter. Larger sizes reduce false positives.
//
// Default: 1000. Recommended: 2-3x the number of static patterns.
func WithBloomFilterSize[T comparable](size uint64) Option[T] {
	return func(t *Tree[T]) {
		t.bloomFilterSize = size
	}
}

// WithBloomFilterHashFunctions sets the number of hash functions used by the
// static fast path's bloom filter. More hash functions reduce false
// positives at the cost of more bit checks per lookup.
//
// Default: 3. Range: 1-10 (values outside this range are clamped).
func WithBloomFilterHashFunctions[T comparable](numFuncs int) Option[T] {
	return func(t *Tree[T]) {
		t.bloomHashFunctions = max(1, min(numFuncs, 10))
	}
}

// WithTracer enables OpenTelemetry tracing of Insert/FindOne/FindAll/Remove
// with the given tracer. Unset, the tree uses a no-op tracer (zero
// overhead, zero external calls).
func WithTracer[T comparable](tracer trace.Tracer) Option[T] {
	return func(t *Tree[T]) {
		t.tracer = tracer
	}
}

// WithMeter enables OpenTelemetry metrics (an operation counter and a
// latency histogram) with the given meter. Unset, the tree uses a no-op
// meter.
func WithMeter[T comparable](meter metric.Meter) Option[T] {
	return func(t *Tree[T]) {
		t.meter = meter
	}
}

// WithDiagnostics sets a diagnostic handler for informational events:
// duplicate pattern/method registration, a mid-pattern optional marker, and
// patterns exceeding the depth warning threshold. The tree behaves
// identically whether or not a handler is configured.
func WithDiagnostics[T comparable](handler DiagnosticHandler) Option[T] {
	return func(t *Tree[T]) {
		t.diagnostics = handler
	}
}

// WithMaxDepthWarning sets the segment-count threshold above which Insert
// emits a DiagExcessiveDepth diagnostic. It never rejects the pattern —
// this is visibility only. A value of 0 (the default) disables the check.
func WithMaxDepthWarning[T comparable](depth int) Option[T] {
	return func(t *Tree[T]) {
		t.maxDepthWarning = depth
	}
}
